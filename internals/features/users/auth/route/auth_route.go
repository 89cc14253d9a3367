package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nhatro_backend/internals/features/users/auth/controller"
	"nhatro_backend/internals/middlewares"
	authMiddleware "nhatro_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// ==========================
	// Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	// cookie-based endpoints stay here (cookie path)
	baseAuth.Get("/csrf", authController.CSRF)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// 🔓 public
	baseAuth.Post("/login", middlewares.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", middlewares.RegisterRateLimiter(), authController.Register)

	// 🔒 protected
	protected := baseAuth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Post("/change-password", authController.ChangePassword)
	protected.Get("/account", authController.Account)
}
