package authRoutes

import (
	authController "khanqah/controllers/auth"
	"khanqah/middleware"
	authValidator "khanqah/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login and OTP verification routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/verify-otp", authController.VerifyOTP)
	authGroup.Post("/login", authController.Login)
	authGroup.Get("/login-history", middleware.JWTMiddleware, authValidator.LoginHistoryList(), authController.LoginHistoryList)
}
