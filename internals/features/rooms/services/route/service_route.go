package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/rooms/services/controller"
)

// ServiceLandlordRoutes mounts service management under the landlord group.
func ServiceLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewServiceController(db)

	svc := landlord.Group("/services")
	svc.Get("/", ctl.List)
	svc.Post("/", ctl.Create)
	svc.Put("/:id", ctl.Update)
	svc.Delete("/:id", ctl.Delete)
}
