package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nhatro_backend/internals/features/rooms/rooms/controller"
)

// RoomPublicRoutes: browse + detail, no auth.
func RoomPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewRoomController(db)

	rooms := public.Group("/rooms")
	rooms.Get("/", ctl.List)
	rooms.Get("/:id", ctl.GetByID)
}

// RoomLandlordRoutes: room CRUD + renter links, landlord gated by caller.
func RoomLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewRoomController(db)

	rooms := landlord.Group("/rooms")
	rooms.Post("/", ctl.Create)
	rooms.Put("/:id", ctl.Update)
	rooms.Delete("/:id", ctl.Delete)

	roomUsers := landlord.Group("/room-users")
	roomUsers.Post("/add-many", ctl.AddRoomUsers)
	roomUsers.Get("/:roomId", ctl.ListRoomUsers)
	roomUsers.Delete("/:roomId/:userId", ctl.RemoveRoomUser)
}
