package courseController

import (
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/policy"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats returns headline counts for the admin dashboard.
func AdminDashboardStats(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	db := database.Database.Db

	var totalUsers, totalCourses, pendingCourses, totalEnrollments int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("status = ?", courseModels.StatusPending).Count(&pendingCourses)
	db.Model(&courseModels.Enrollment{}).Count(&totalEnrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":       totalUsers,
		"total_courses":     totalCourses,
		"pending_courses":   pendingCourses,
		"total_enrollments": totalEnrollments,
	})
}
