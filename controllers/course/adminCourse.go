package courseController

import (
	"log"

	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/policy"
	"skillspring/utils"
	courseValidator "skillspring/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AdminGetPendingCourses lists the review queue.
func AdminGetPendingCourses(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var courses []courseModels.Course
	err = database.Database.Db.Where("status = ?", courseModels.StatusPending).
		Order("updated_at asc").Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// AdminApproveCourse publishes a pending course to the catalog.
func AdminApproveCourse(c *fiber.Ctx) error {
	return adminTransitionCourse(c, courseModels.StatusApproved, "")
}

// AdminRejectCourse sends a pending (or, as an override, approved)
// course back to its instructor with a reason.
func AdminRejectCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRejection").(*courseValidator.RejectCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	return adminTransitionCourse(c, courseModels.StatusRejected, reqData.Reason)
}

func adminTransitionCourse(c *fiber.Ctx, target, reason string) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	course, err := findCourse(db, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if !courseModels.CanTransition(course.Status, target) {
		return middleware.ErrorResponse(c, apperrors.InvalidState("Course is not awaiting review!"))
	}

	course.Status = target
	course.RejectionReason = reason
	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course status!", nil)
	}

	// Best effort: notification failure never rolls back the
	// transition.
	var instructor models.User
	if err := db.First(&instructor, course.InstructorID).Error; err == nil {
		if err := utils.NotifyCourseStatus(instructor.Email, instructor.Name, course.Title, target, reason); err != nil {
			log.Printf("Failed to notify instructor %d about course %d: %v", instructor.ID, course.ID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated successfully!", course)
}
