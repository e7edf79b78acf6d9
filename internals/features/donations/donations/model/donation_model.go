package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Donation struct {
	DonationID uuid.UUID `gorm:"column:donation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_id"`

	// Donatur terdaftar ATAU kontak anonim — tepat satu yang terisi
	DonationDonorID        *uuid.UUID `gorm:"column:donation_donor_id;type:uuid" json:"donation_donor_id,omitempty"`
	DonationAnonymousName  string     `gorm:"column:donation_anonymous_name;type:varchar(100)" json:"donation_anonymous_name,omitempty"`
	DonationAnonymousEmail string     `gorm:"column:donation_anonymous_email;type:varchar(255)" json:"donation_anonymous_email,omitempty"`

	DonationSchoolID  *uuid.UUID `gorm:"column:donation_school_id;type:uuid" json:"donation_school_id,omitempty"`
	DonationProductID uuid.UUID  `gorm:"column:donation_product_id;type:uuid;not null" json:"donation_product_id"`

	DonationAmount   decimal.Decimal `gorm:"column:donation_amount;type:numeric(14,2);not null;check:donation_amount > 0" json:"donation_amount"`
	DonationCurrency string          `gorm:"column:donation_currency;type:varchar(10);default:'USD'" json:"donation_currency"`
	DonationQuantity int             `gorm:"column:donation_quantity;not null;default:1;check:donation_quantity > 0" json:"donation_quantity"`

	DonationStatus DonationStatus `gorm:"column:donation_status;type:varchar(20);default:'pending'" json:"donation_status"`

	// Reference dari gateway; diisi setelah pembayaran diinisiasi
	DonationTransactionHash string `gorm:"column:donation_transaction_hash;type:varchar(100)" json:"donation_transaction_hash,omitempty"`

	DonationPurpose string `gorm:"column:donation_purpose;type:text" json:"donation_purpose"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}
