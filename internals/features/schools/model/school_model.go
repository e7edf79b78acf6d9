package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SchoolStatus string

const (
	SchoolStatusPending  SchoolStatus = "pending"
	SchoolStatusApproved SchoolStatus = "approved"
)

type School struct {
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_id"`

	SchoolName     string `gorm:"column:school_name;type:varchar(255);not null" json:"school_name"`
	SchoolLocation string `gorm:"column:school_location;type:varchar(255)" json:"school_location"`

	SchoolStudentsCount int `gorm:"column:school_students_count;default:0" json:"school_students_count"`

	// Ledger: hanya naik, hanya di-update oleh webhook reconciler saat donasi completed
	SchoolTotalReceived decimal.Decimal `gorm:"column:school_total_received;type:numeric(14,2);not null;default:0" json:"school_total_received"`

	SchoolWalletAddress string       `gorm:"column:school_wallet_address;type:varchar(255)" json:"school_wallet_address,omitempty"`
	SchoolStatus        SchoolStatus `gorm:"column:school_status;type:varchar(20);default:'pending'" json:"school_status"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (School) TableName() string {
	return "schools"
}
