package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "flowaid_backend/internals/features/schools/controller"
)

// SchoolRoutes defines the routes for schools
func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := schoolController.NewSchoolController(db)

	api.Get("/", ctrl.GetApprovedSchools)     // Daftar sekolah approved
	api.Get("/by-id/:id", ctrl.GetSchoolByID) // Detail sekolah
}
