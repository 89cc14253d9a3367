package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/schedules/schedule/controller"
)

// ScheduleRenterRoutes mounts appointment booking for renters.
func ScheduleRenterRoutes(renter fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleController(db)

	schedules := renter.Group("/schedules")
	schedules.Get("/", ctl.ListMine)
	schedules.Post("/", ctl.Book)
	schedules.Post("/:id/cancel", ctl.Cancel)
}

// ScheduleLandlordRoutes mounts appointment triage for landlords.
func ScheduleLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleController(db)

	schedules := landlord.Group("/schedules")
	schedules.Get("/", ctl.List)
	schedules.Post("/:id/approve", ctl.Approve)
	schedules.Post("/:id/reject", ctl.Reject)
}
