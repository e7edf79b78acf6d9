package service

import "errors"

var (
	// Produk yang direferensikan tidak ada — tidak ada record yang dibuat
	ErrProductNotFound = errors.New("product not found")

	// Kredensial gateway kosong saat konstruksi client — fatal config error
	ErrGatewayNotConfigured = errors.New("payment gateway credential not configured")

	// HTTP 401 dari gateway = kredensial operator salah, bukan failure transien
	ErrGatewayAuth = errors.New("payment gateway rejected the configured credential")
)

// GatewayError = penolakan non-sukses dari gateway (selain 401)
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return "payment gateway error: " + e.Message
	}
	return "payment gateway error"
}
