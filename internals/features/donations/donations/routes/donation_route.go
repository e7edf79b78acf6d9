package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	donationController "flowaid_backend/internals/features/donations/donations/controller"
	donationService "flowaid_backend/internals/features/donations/donations/service"
	middlewares "flowaid_backend/internals/middlewares"
)

// DonationRoutes defines the routes for donations
func DonationRoutes(api fiber.Router, db *gorm.DB, provider donationService.PaymentProvider, mailer *donationService.ConfirmationMailer) {
	donationCtrl := donationController.NewDonationController(db, provider, mailer)

	// Endpoint pembuatan donasi dipagari limiter kasar per-IP juga
	api.Post("/", middlewares.DonationRateLimiter(), donationCtrl.CreateDonation) // Create donation + payment URL

	// Listing memuat kontak donatur anonim → admin saja; listing per-donatur
	// wajib login dan di-scope ke pemiliknya di controller
	api.Get("/", middlewares.RequireRole("admin"), donationCtrl.GetAllDonations)
	api.Get("/user/:user_id", middlewares.RequireAuth(), donationCtrl.GetDonationsByUserID)
	api.Get("/by-id/:id", donationCtrl.GetDonationByID)

	// Webhook dari payment gateway — selalu di-ack 200
	api.Post("/webhook", donationCtrl.HandlePaymentWebhook)

	// Kirim (ulang) email tanda terima
	api.Post("/confirmation", donationCtrl.SendDonationConfirmation)
}
