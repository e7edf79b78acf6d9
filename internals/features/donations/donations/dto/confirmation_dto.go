package dto

// Payload endpoint konfirmasi donasi (dipakai juga oleh notifier internal)
type DonationConfirmationRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	DonorName   string  `json:"donorName"`
	ProductName string  `json:"productName" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	SchoolName  string  `json:"schoolName"`
	DonationID  string  `json:"donationId" validate:"required"`
}
