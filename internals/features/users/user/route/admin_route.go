package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nhatro_backend/internals/features/users/user/controller"
)

// UserAdminRoutes mounts the admin user management endpoints. The caller
// passes a group already gated to ADMIN.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	users := admin.Group("/users")
	users.Get("/", ctl.List)
	users.Get("/:id", ctl.GetByID)
	users.Post("/", ctl.Create)
	users.Put("/:id", ctl.Update)
	users.Delete("/:id", ctl.Deactivate)
}

// UserLandlordRoutes exposes the renter directory to landlords.
func UserLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)
	landlord.Get("/renters", ctl.ListRenters)
}
