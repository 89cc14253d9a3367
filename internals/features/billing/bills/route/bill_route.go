package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/billing/bills/controller"
)

// BillLandlordRoutes mounts bill management under the landlord group.
func BillLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewBillController(db)

	bills := landlord.Group("/bills")
	bills.Get("/", ctl.List)
	bills.Post("/", ctl.Create)
	bills.Get("/:id", ctl.GetByID)
	bills.Delete("/:id", ctl.Delete)
	bills.Post("/:id/confirm-cash", ctl.ConfirmCash)
}

// BillRenterRoutes mounts the renter-facing bill surface.
func BillRenterRoutes(renter fiber.Router, db *gorm.DB) {
	ctl := controller.NewBillController(db)

	bills := renter.Group("/bills")
	bills.Get("/", ctl.ListMine)
	bills.Post("/:id/vnpay", ctl.CreateVNPayURL)
}

// BillPublicRoutes mounts the gateway callback. The auth middleware
// skips this path.
func BillPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewBillController(db)
	api.Get("/bills/vnpay/ipn", ctl.VNPayIPN)
}
