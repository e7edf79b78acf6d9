package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// BitnobClient memanggil hosted-checkout API Bitnob.
type BitnobClient struct {
	baseURL string
	apiKey  string
	http    *http.Client

	// URL callback webhook + redirect sukses/gagal yang ikut dikirim per request
	callbackURL string
	successURL  string
	failureURL  string
}

// NewBitnobClient membangun client. Key kosong = fatal config error, bukan
// error per-request. Prefix "Bearer " yang kebawa dari env di-strip —
// kesalahan operator yang sering kejadian.
func NewBitnobClient(apiKey, baseURL, callbackURL, successURL, failureURL string) (*BitnobClient, error) {
	key := strings.TrimSpace(apiKey)
	if strings.HasPrefix(strings.ToLower(key), "bearer ") {
		key = strings.TrimSpace(key[7:])
	}
	if key == "" {
		return nil, ErrGatewayNotConfigured
	}

	return &BitnobClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      key,
		http:        &http.Client{Timeout: 30 * time.Second},
		callbackURL: callbackURL,
		successURL:  successURL,
		failureURL:  failureURL,
	}, nil
}

type bitnobPaymentPayload struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Description   string  `json:"description"`
	CustomerEmail string  `json:"customerEmail"`
	Reference     string  `json:"reference"`
	CallbackURL   string  `json:"callbackUrl,omitempty"`
	SuccessURL    string  `json:"successUrl,omitempty"`
	FailureURL    string  `json:"failureUrl,omitempty"`
}

func (b *BitnobClient) InitiatePayment(ctx context.Context, in InitiatePaymentInput) (*InitiatePaymentResult, error) {
	payload := bitnobPaymentPayload{
		Amount:        in.Amount.InexactFloat64(),
		Currency:      in.Currency,
		Description:   in.Description,
		CustomerEmail: in.CustomerEmail,
		Reference:     in.DonationID.String(),
		CallbackURL:   b.callbackURL,
		SuccessURL:    b.successURL,
		FailureURL:    b.failureURL,
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.baseURL+"/api/v1/wallets/create-payment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitnob request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bitnob response: %w", err)
	}

	var parsed map[string]interface{}
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &parsed); err != nil {
			log.Printf("[WARN] Response Bitnob bukan JSON valid: %v", err)
			parsed = map[string]interface{}{}
		}
	}

	// 401 = kredensial/environment operator salah, dibedakan dari error gateway biasa
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrGatewayAuth
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    lookupString(parsed, gatewayMessagePaths),
		}
	}

	result := &InitiatePaymentResult{
		CheckoutURL: lookupString(parsed, checkoutURLPaths),
		Reference:   lookupString(parsed, gatewayReferencePaths),
	}
	if result.Reference == "" {
		result.Reference = in.DonationID.String()
	}
	if result.CheckoutURL == "" {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "no payment url in gateway response"}
	}
	return result, nil
}

// Bentuk response Bitnob tidak konsisten antar versi — field yang sama bisa
// muncul di beberapa lokasi. Daftar kandidat dicoba berurutan.
var (
	gatewayReferencePaths = [][]string{
		{"data", "reference"},
		{"data", "id"},
		{"reference"},
		{"id"},
	}
	checkoutURLPaths = [][]string{
		{"data", "paymentUrl"},
		{"data", "checkoutUrl"},
		{"data", "url"},
		{"paymentUrl"},
		{"checkoutUrl"},
		{"url"},
	}
	gatewayMessagePaths = [][]string{
		{"message"},
		{"error"},
		{"data", "message"},
	}
)

// lookupString mengambil nilai string pertama yang ketemu dari daftar path
func lookupString(m map[string]interface{}, paths [][]string) string {
	for _, path := range paths {
		cur := interface{}(m)
		ok := true
		for _, key := range path {
			obj, isMap := cur.(map[string]interface{})
			if !isMap {
				ok = false
				break
			}
			cur, ok = obj[key]
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}
		if s, isStr := cur.(string); isStr && s != "" {
			return s
		}
	}
	return ""
}
