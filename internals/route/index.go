package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	billRoute "nhatro_backend/internals/features/billing/bills/route"
	contractRoute "nhatro_backend/internals/features/contracts/contract/route"
	assetRoute "nhatro_backend/internals/features/rooms/assets/route"
	roomRoute "nhatro_backend/internals/features/rooms/rooms/route"
	serviceRoute "nhatro_backend/internals/features/rooms/services/route"
	scheduleRoute "nhatro_backend/internals/features/schedules/schedule/route"
	authRoute "nhatro_backend/internals/features/users/auth/route"
	userRoute "nhatro_backend/internals/features/users/user/route"
	authMiddleware "nhatro_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature group:
//
//	/api/auth  public auth surface
//	/api       public browsing + gateway callbacks
//	/api/u     renter endpoints
//	/api/l     landlord endpoints
//	/api/a     admin endpoints
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)

	api := app.Group("/api")
	roomRoute.RoomPublicRoutes(api, db)
	billRoute.BillPublicRoutes(api, db)

	authed := authMiddleware.AuthMiddleware(db)

	renter := api.Group("/u", authed,
		authMiddleware.OnlyRoles(constants.RoleErrorRenter("renter features"), constants.RoleRenter))
	contractRoute.ContractRenterRoutes(renter, db)
	billRoute.BillRenterRoutes(renter, db)
	scheduleRoute.ScheduleRenterRoutes(renter, db)

	landlord := api.Group("/l", authed,
		authMiddleware.OnlyRoles(constants.RoleErrorLandlord("landlord features"), constants.RoleLandlord, constants.RoleAdmin))
	roomRoute.RoomLandlordRoutes(landlord, db)
	assetRoute.AssetLandlordRoutes(landlord, db)
	serviceRoute.ServiceLandlordRoutes(landlord, db)
	contractRoute.ContractLandlordRoutes(landlord, db)
	billRoute.BillLandlordRoutes(landlord, db)
	scheduleRoute.ScheduleLandlordRoutes(landlord, db)
	userRoute.UserLandlordRoutes(landlord, db)

	admin := api.Group("/a", authed,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("admin features"), constants.RoleAdmin))
	userRoute.UserAdminRoutes(admin, db)
}
