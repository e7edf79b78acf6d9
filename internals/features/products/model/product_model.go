package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	schoolModel "flowaid_backend/internals/features/schools/model"
)

// Product = item yang bisa didonasikan, opsional terikat ke satu sekolah
type Product struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;default:gen_random_uuid();primaryKey" json:"product_id"`

	ProductName     string          `gorm:"column:product_name;type:varchar(255);not null" json:"product_name"`
	ProductCategory string          `gorm:"column:product_category;type:varchar(100)" json:"product_category"`
	ProductPrice    decimal.Decimal `gorm:"column:product_price;type:numeric(14,2);not null;default:0" json:"product_price"`
	ProductStock    int             `gorm:"column:product_stock;default:0" json:"product_stock"`

	ProductSchoolID *uuid.UUID          `gorm:"column:product_school_id;type:uuid" json:"product_school_id,omitempty"`
	School          *schoolModel.School `gorm:"foreignKey:ProductSchoolID;references:SchoolID" json:"school,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
