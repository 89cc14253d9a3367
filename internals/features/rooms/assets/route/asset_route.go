package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nhatro_backend/internals/features/rooms/assets/controller"
)

func AssetLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssetController(db)

	assets := landlord.Group("/assets")
	assets.Get("/", ctl.List)
	assets.Post("/", ctl.Create)
	assets.Put("/:id", ctl.Update)
	assets.Delete("/:id", ctl.Delete)
}
