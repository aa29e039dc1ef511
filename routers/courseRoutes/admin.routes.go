package courseRoutes

import (
	courseController "skillspring/controllers/course"
	"skillspring/middleware"
	"skillspring/models"
	courseValidator "skillspring/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the admin review queue and dashboard
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/pending", courseController.AdminGetPendingCourses)
	adminGroup.Post("/:id/approve", courseController.AdminApproveCourse)
	adminGroup.Post("/:id/reject", courseValidator.RejectCourse(), courseController.AdminRejectCourse)

	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	dashGroup.Get("/stats", courseController.AdminDashboardStats)
}
