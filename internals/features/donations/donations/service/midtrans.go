package service

import (
	"context"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransProvider = provider checkout alternatif (Snap hosted page).
// Order ID Snap = donation id, jadi webhook midtrans bisa dikorelasikan
// lewat jalur yang sama dengan Bitnob.
type MidtransProvider struct {
	client snap.Client
}

func NewMidtransProvider(serverKey string, useProduction bool) (*MidtransProvider, error) {
	key := strings.TrimSpace(serverKey)
	if key == "" {
		return nil, ErrGatewayNotConfigured
	}

	p := &MidtransProvider{}
	if useProduction {
		p.client.New(key, midtrans.Production)
	} else {
		p.client.New(key, midtrans.Sandbox)
	}
	return p, nil
}

func (p *MidtransProvider) InitiatePayment(ctx context.Context, in InitiatePaymentInput) (*InitiatePaymentResult, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID: in.DonationID.String(),
			// Snap pakai amount integer (unit terkecil)
			GrossAmt: in.Amount.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.CustomerName,
			Email: in.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    in.DonationID.String(),
				Price: in.Amount.Round(0).IntPart(),
				Qty:   1,
				Name:  truncate(in.Description, 50),
			},
		},
	}

	resp, err := p.client.CreateTransaction(req)
	if err != nil {
		if err.StatusCode == 401 {
			return nil, ErrGatewayAuth
		}
		return nil, &GatewayError{StatusCode: err.StatusCode, Message: err.Message}
	}

	return &InitiatePaymentResult{
		CheckoutURL: resp.RedirectURL,
		Reference:   in.DonationID.String(),
	}, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
