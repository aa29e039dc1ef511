package categoryRoutes

import (
	categoryController "skillspring/controllers/category"
	"skillspring/middleware"
	"skillspring/models"
	categoryValidator "skillspring/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up public category listing and admin CRUD
func SetupCategoryRoutes(app *fiber.App) {
	app.Get("/category/list", categoryController.GetCategories)

	adminGroup := app.Group("/admin/category", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	adminGroup.Post("/create", categoryValidator.CreateCategory(), categoryController.CreateCategory)
	adminGroup.Delete("/:id", categoryController.DeleteCategory)
}
