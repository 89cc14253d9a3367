package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "nhatro_backend/internals/helpers"
)

var startedAt = time.Now()

// BaseRoutes exposes the liveness endpoint used by the deploy platform.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Database unreachable")
		}
		return helper.JsonOK(c, "OK", fiber.Map{
			"status": "healthy",
			"uptime": time.Since(startedAt).Round(time.Second).String(),
		})
	})
}
