package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowaid_backend/internals/features/donations/donations/model"
	productModel "flowaid_backend/internals/features/products/model"
)

// DonationService = record manager donasi. Semua tulis ke tabel donations
// lewat sini; insert jalan dengan koneksi service (bypass RLS) karena donasi
// anonim tidak punya principal ter-autentikasi.
type DonationService struct {
	DB *gorm.DB
}

func NewDonationService(db *gorm.DB) *DonationService {
	return &DonationService{DB: db}
}

// FindProduct mengambil produk + asosiasi sekolahnya
func (s *DonationService) FindProduct(ctx context.Context, productID uuid.UUID) (*productModel.Product, error) {
	var product productModel.Product
	err := s.DB.WithContext(ctx).
		Preload("School").
		Where("product_id = ?", productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ResolveSchoolID dengan urutan prioritas:
// asosiasi sekolah milik produk > schoolId dari request > kolom school mentah produk
func ResolveSchoolID(product *productModel.Product, requestSchoolID *uuid.UUID) *uuid.UUID {
	if product.School != nil && product.School.SchoolID != uuid.Nil {
		id := product.School.SchoolID
		return &id
	}
	if requestSchoolID != nil && *requestSchoolID != uuid.Nil {
		return requestSchoolID
	}
	return product.ProductSchoolID
}

// BuildPurpose menyusun deskripsi donasi secara deterministik
func BuildPurpose(productName string, isAnonymous bool, anonymousName string) string {
	if !isAnonymous {
		return fmt.Sprintf("Donation for %s", productName)
	}
	if anonymousName != "" {
		return fmt.Sprintf("Donation for %s (from %s)", productName, anonymousName)
	}
	return fmt.Sprintf("Anonymous donation for %s", productName)
}

// CreatePending menyimpan record donasi baru berstatus pending.
// Gagal insert = stop total — pembayaran tidak boleh diinisiasi untuk
// record yang tidak ada.
func (s *DonationService) CreatePending(ctx context.Context, donation *model.Donation) error {
	donation.DonationStatus = model.DonationStatusPending
	if err := s.DB.WithContext(ctx).Create(donation).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan donasi:", err)
		return err
	}
	return nil
}

// MarkProcessing: gateway sudah ack — simpan reference & naikkan status
func (s *DonationService) MarkProcessing(ctx context.Context, donation *model.Donation, gatewayReference string) error {
	if gatewayReference == "" {
		gatewayReference = donation.DonationID.String()
	}
	donation.DonationStatus = model.DonationStatusProcessing
	donation.DonationTransactionHash = gatewayReference

	return s.DB.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_id = ?", donation.DonationID).
		Updates(map[string]interface{}{
			"donation_status":           model.DonationStatusProcessing,
			"donation_transaction_hash": gatewayReference,
		}).Error
}

// MarkFailed: gateway menolak inisiasi
func (s *DonationService) MarkFailed(ctx context.Context, donation *model.Donation) {
	donation.DonationStatus = model.DonationStatusFailed
	if err := s.DB.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_id = ?", donation.DonationID).
		Update("donation_status", model.DonationStatusFailed).Error; err != nil {
		log.Println("[ERROR] Gagal menandai donasi failed:", err)
	}
}
