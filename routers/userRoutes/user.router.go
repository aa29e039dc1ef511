package userRoutes

import (
	courseController "skillspring/controllers/course"
	userController "skillspring/controllers/userControllers"
	"skillspring/middleware"
	userValidator "skillspring/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile and enrollment listing routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidator.UpdateProfile(), userController.UpdateProfile)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseController.GetEnrollments)
}
