package userRoutes

import (
	userController "khanqah/controllers/userControllers"
	"khanqah/middleware"
	"khanqah/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidator.ProfileUpdate(), userController.UpdateProfile)
	userGroup.Post("/profile/image", middleware.JWTMiddleware, userController.UploadProfileImage)
}
