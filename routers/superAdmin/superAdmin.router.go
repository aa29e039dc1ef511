package superAdminRoutes

import (
	superAdminController "skillspring/controllers/superAdmin"
	"skillspring/middleware"
	"skillspring/models"
	superAdminValidator "skillspring/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

// SetupSuperAdminRoutes sets up admin user management
func SetupSuperAdminRoutes(app *fiber.App) {
	app.Get("/admin/users", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), superAdminController.AdminListUsers)

	userGroup := app.Group("/admin/user", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	userGroup.Put("/:id/role", superAdminValidator.ChangeRole(), superAdminController.AdminChangeUserRole)
	userGroup.Delete("/:id", superAdminController.AdminRemoveUser)
}
