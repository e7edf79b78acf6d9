package model

type DonationStatus string
type PaymentGatewayProvider string
type GatewayEventStatus string

// Lifecycle donasi:
// pending (baru dibuat) → processing (gateway ack) / failed (gateway tolak)
// → completed / failed / expired (hanya lewat webhook)
const (
	DonationStatusPending    DonationStatus = "pending"
	DonationStatusProcessing DonationStatus = "processing"
	DonationStatusCompleted  DonationStatus = "completed"
	DonationStatusFailed     DonationStatus = "failed"
	DonationStatusExpired    DonationStatus = "expired"
)

const (
	GatewayProviderBitnob   PaymentGatewayProvider = "bitnob"
	GatewayProviderMidtrans PaymentGatewayProvider = "midtrans"
)

// Status processing internal per-delivery webhook (audit log).
// skipped = delivery dicatat tapi tidak menggerakkan donasi apa pun
// (event tidak dikenali).
const (
	GatewayEventStatusReceived GatewayEventStatus = "received"
	GatewayEventStatusSuccess  GatewayEventStatus = "success"
	GatewayEventStatusFailed   GatewayEventStatus = "failed"
	GatewayEventStatusSkipped  GatewayEventStatus = "skipped"
)
