package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	loggerMiddleware "flowaid_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dengan urutan: recovery dulu,
// lalu CORS, limiter global, access log, koneksi DB, terakhir identitas.
func SetupMiddlewares(app *fiber.App, db *gorm.DB) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(DBMiddleware(db))
	app.Use(IdentityMiddleware())
}
