// 📁 controller/donation_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowaid_backend/internals/features/donations/donations/dto"
	"flowaid_backend/internals/features/donations/donations/model"
	donationService "flowaid_backend/internals/features/donations/donations/service"
	helper "flowaid_backend/internals/helpers"

	"github.com/shopspring/decimal"
)

type DonationController struct {
	DB         *gorm.DB
	Service    *donationService.DonationService
	Reconciler *donationService.WebhookReconciler
	Provider   donationService.PaymentProvider
	Mailer     *donationService.ConfirmationMailer
	Limiter    *donationService.DonationLimiter
	Validate   *validator.Validate
}

func NewDonationController(db *gorm.DB, provider donationService.PaymentProvider, mailer *donationService.ConfirmationMailer) *DonationController {
	return &DonationController{
		DB:         db,
		Service:    donationService.NewDonationService(db),
		Reconciler: donationService.NewWebhookReconciler(db),
		Provider:   provider,
		Mailer:     mailer,
		// 10 request per jam per donatur (email anonim / IP)
		Limiter:  donationService.NewDonationLimiter(10, time.Hour),
		Validate: validator.New(),
	}
}

// 🟢 CREATE DONATION: validasi → rate limit → record pending → inisiasi
// pembayaran → processing + email, atau failed. Bisa tanpa login (anonim)
// maupun dengan login (donatur terdaftar).
func (ctrl *DonationController) CreateDonation(c *fiber.Ctx) error {
	var body dto.CreateDonationRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}
	body.Normalize()

	// ✋ Validasi: satu pelanggaran = seluruh request ditolak
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	// 🔐 Identitas donatur dari session token (identity provider eksternal).
	// Donasi non-anonim wajib login.
	var donorID *uuid.UUID
	donorEmail, _ := c.Locals("user_email").(string)
	if !body.IsAnonymous {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		parsed, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User ID dalam token tidak valid",
			})
		}
		donorID = &parsed
	}

	// ⏳ Rate limit per identifier, SEBELUM ada side effect apa pun
	identifier := c.IP()
	if body.IsAnonymous {
		identifier = strings.ToLower(strings.TrimSpace(body.AnonymousEmail))
	}
	if allowed, _, retryAfter := ctrl.Limiter.Allow(identifier); !allowed {
		retrySeconds := int(retryAfter.Seconds()) + 1
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retrySeconds))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":               "Terlalu banyak donasi dari identitas ini. Coba lagi nanti.",
			"retry_after_seconds": retrySeconds,
		})
	}

	// 📦 Produk wajib ada sebelum record dibuat
	productID, _ := uuid.Parse(body.ProductID)
	product, err := ctrl.Service.FindProduct(c.UserContext(), productID)
	if err != nil {
		if errors.Is(err, donationService.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data produk",
		})
	}

	var requestSchoolID *uuid.UUID
	if body.SchoolID != "" {
		if parsed, err := uuid.Parse(body.SchoolID); err == nil {
			requestSchoolID = &parsed
		}
	}

	// 🧹 Bangun entitas donasi (status pending)
	donation := model.Donation{
		DonationDonorID:   donorID,
		DonationSchoolID:  donationService.ResolveSchoolID(product, requestSchoolID),
		DonationProductID: product.ProductID,
		DonationAmount:    decimal.NewFromFloat(body.Amount),
		DonationCurrency:  "USD",
		DonationQuantity:  body.Quantity,
		DonationPurpose:   donationService.BuildPurpose(product.ProductName, body.IsAnonymous, body.AnonymousName),
	}
	if body.IsAnonymous {
		// Anonim: tanpa donor_id, kontak lewat email wajib
		donation.DonationDonorID = nil
		donation.DonationAnonymousName = body.AnonymousName
		donation.DonationAnonymousEmail = strings.ToLower(strings.TrimSpace(body.AnonymousEmail))
	}

	// 📂 Simpan record — gagal di sini berarti stop, gateway tidak dipanggil
	if err := ctrl.Service.CreatePending(c.UserContext(), &donation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create donation record",
		})
	}

	customerEmail := donorEmail
	customerName := body.AnonymousName
	if body.IsAnonymous {
		customerEmail = donation.DonationAnonymousEmail
	}

	// 💳 Inisiasi pembayaran di gateway; reference = donation id
	result, err := ctrl.Provider.InitiatePayment(c.UserContext(), donationService.InitiatePaymentInput{
		DonationID:    donation.DonationID,
		Amount:        donation.DonationAmount,
		Currency:      donation.DonationCurrency,
		Description:   "Donation: " + product.ProductName,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
	})
	if err != nil {
		ctrl.Service.MarkFailed(c.UserContext(), &donation)

		if errors.Is(err, donationService.ErrGatewayAuth) {
			// 401 dari gateway = kredensial operator salah, bukan error transien
			log.Println("[ERROR] Kredensial payment gateway ditolak (401) — cek API key & environment")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Payment gateway credential misconfigured. Contact the administrator.",
			})
		}
		var ge *donationService.GatewayError
		if errors.As(err, &ge) {
			msg := ge.Message
			if msg == "" {
				msg = "Failed to initialize payment"
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": msg})
		}
		log.Println("[ERROR] Gagal memanggil payment gateway:", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to initialize payment",
		})
	}

	// 📂 Simpan reference gateway & naikkan status ke processing
	if err := ctrl.Service.MarkProcessing(c.UserContext(), &donation, result.Reference); err != nil {
		// Pembayaran sudah jalan — jangan gagalkan response, cukup catat
		log.Println("[ERROR] Gagal update donasi ke processing:", err)
	}

	// ✉️ Email konfirmasi: fire-and-forget, tidak menunggu hasil
	if customerEmail != "" {
		schoolName := ""
		if product.School != nil {
			schoolName = product.School.SchoolName
		}
		ctrl.Mailer.SendAsync(dto.DonationConfirmationRequest{
			Email:       customerEmail,
			DonorName:   customerName,
			ProductName: product.ProductName,
			Amount:      body.Amount,
			Quantity:    body.Quantity,
			SchoolName:  schoolName,
			DonationID:  donation.DonationID.String(),
		})
	}

	// ✅ Response sukses dengan URL checkout
	return c.JSON(dto.CreateDonationResponse{
		Success:    true,
		DonationID: donation.DonationID.String(),
		PaymentURL: result.CheckoutURL,
		Reference:  result.Reference,
	})
}

// 🟢 HANDLE PAYMENT WEBHOOK: update status donasi dari notifikasi gateway.
// SELALU balas 200 — gateway tidak boleh dikasih alasan untuk retry,
// retry = risiko double-credit ledger.
func (ctrl *DonationController) HandlePaymentWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		log.Println("[INFO] Body webhook tidak bisa diparse, di-ack saja:", err)
		return c.JSON(fiber.Map{"success": true, "message": "Acknowledged"})
	}

	if err := ctrl.Reconciler.Reconcile(c.UserContext(), body); err != nil {
		log.Println("[ERROR] Webhook gagal diproses:", err)
		return c.JSON(fiber.Map{"success": true, "message": "Acknowledged with error"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Webhook processed"})
}

// 🟢 SEND DONATION CONFIRMATION: kirim ulang tanda terima via endpoint
func (ctrl *DonationController) SendDonationConfirmation(c *fiber.Ctx) error {
	var body dto.DonationConfirmationRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Mailer.Send(c.UserContext(), body); err != nil {
		log.Println("[ERROR] Gagal kirim email konfirmasi:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// 🟢 GET ALL DONATIONS: seluruh data donasi (admin), terbaru dulu
func (ctrl *DonationController) GetAllDonations(c *fiber.Ctx) error {
	var donations []model.Donation
	if err := ctrl.DB.Order("created_at desc").Find(&donations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data donasi",
		})
	}
	return c.JSON(donations)
}

// canViewDonorListing: donatur hanya boleh melihat listing miliknya sendiri,
// admin boleh semuanya
func canViewDonorListing(callerID, callerRole, targetID string) bool {
	if callerRole == "admin" {
		return true
	}
	return callerID != "" && callerID == targetID
}

// 🟢 GET DONATIONS BY USER ID: donasi milik donatur tertentu.
// Donasi anonim tidak pernah muncul di listing per-donatur.
func (ctrl *DonationController) GetDonationsByUserID(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id tidak valid",
		})
	}

	callerID, _ := c.Locals("user_id").(string)
	callerRole, _ := c.Locals("user_role").(string)
	if !canViewDonorListing(callerID, callerRole, userID.String()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Akses ditolak",
		})
	}

	var donations []model.Donation
	if err := ctrl.DB.
		Where("donation_donor_id = ?", userID).
		Order("created_at desc").
		Find(&donations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data donasi user",
		})
	}
	return c.JSON(donations)
}

// 🟢 GET DONATION BY ID
func (ctrl *DonationController) GetDonationByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id tidak valid",
		})
	}

	var donation model.Donation
	if err := ctrl.DB.Where("donation_id = ?", id).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Donasi tidak ditemukan",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data donasi",
		})
	}
	return c.JSON(donation)
}
