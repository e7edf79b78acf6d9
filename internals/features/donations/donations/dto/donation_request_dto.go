package dto

type CreateDonationRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"` // Produk yang didonasikan
	SchoolID  string `json:"schoolId" validate:"omitempty,uuid"` // Opsional; fallback kalau produk tidak terikat sekolah

	Amount   float64 `json:"amount" validate:"required,gt=0,lte=1000000"` // USD; batas atas tolak input fat-finger
	Quantity int     `json:"quantity" validate:"omitempty,min=1,max=10000"`

	// Donasi anonim: tanpa login, wajib sertakan email kontak
	IsAnonymous    bool   `json:"isAnonymous"`
	AnonymousEmail string `json:"anonymousEmail" validate:"required_if=IsAnonymous true,omitempty,email"`
	AnonymousName  string `json:"anonymousName" validate:"omitempty,max=100"`
}

// Normalize mengisi default yang tidak dikirim klien
func (r *CreateDonationRequest) Normalize() {
	if r.Quantity == 0 {
		r.Quantity = 1
	}
}

type CreateDonationResponse struct {
	Success    bool   `json:"success"`
	DonationID string `json:"donationId"`
	PaymentURL string `json:"paymentUrl"`
	Reference  string `json:"reference"`
}
