package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitiatePaymentInput: satu inisiasi pembayaran ke gateway.
// Reference yang dikirim ke gateway SELALU donation id — itu kunci
// korelasi yang dipakai webhook.
type InitiatePaymentInput struct {
	DonationID    uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Description   string
	CustomerName  string
	CustomerEmail string
}

type InitiatePaymentResult struct {
	CheckoutURL string
	// Reference versi gateway; fallback ke donation id kalau gateway tidak mengembalikan
	Reference string
}

// PaymentProvider diimplement Bitnob (default) dan Midtrans Snap
type PaymentProvider interface {
	InitiatePayment(ctx context.Context, in InitiatePaymentInput) (*InitiatePaymentResult, error)
}
