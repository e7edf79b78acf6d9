package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowaid_backend/internals/features/schools/model"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

// 🟢 GET SCHOOLS: daftar sekolah approved + total_received (sisi baca ledger)
func (ctrl *SchoolController) GetApprovedSchools(c *fiber.Ctx) error {
	var schools []model.School
	if err := ctrl.DB.
		Where("school_status = ?", model.SchoolStatusApproved).
		Order("school_name asc").
		Find(&schools).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data sekolah",
		})
	}
	return c.JSON(schools)
}

// 🟢 GET SCHOOL BY ID
func (ctrl *SchoolController) GetSchoolByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id tidak valid",
		})
	}

	var school model.School
	if err := ctrl.DB.Where("school_id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Sekolah tidak ditemukan",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data sekolah",
		})
	}
	return c.JSON(school)
}
