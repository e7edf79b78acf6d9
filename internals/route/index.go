// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	donationRoutes "flowaid_backend/internals/features/donations/donations/routes"
	donationService "flowaid_backend/internals/features/donations/donations/service"
	schoolRoutes "flowaid_backend/internals/features/schools/routes"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, provider donationService.PaymentProvider, mailer *donationService.ConfirmationMailer) {
	api := app.Group("/api")

	log.Println("[INFO] Setting up DonationRoutes...")
	donationRoutes.DonationRoutes(api.Group("/donations"), db, provider, mailer)

	log.Println("[INFO] Setting up SchoolRoutes...")
	schoolRoutes.SchoolRoutes(api.Group("/schools"), db)
}
