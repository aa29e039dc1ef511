package courseController

import (
	"errors"

	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/policy"
	courseValidator "skillspring/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// resolveActor maps the JWT principal on the request to its profile.
func resolveActor(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, apperrors.Forbidden("Unauthorized!")
	}
	return policy.ResolveUser(database.Database.Db, userID)
}

// findCourse loads a course by id or returns NotFound.
func findCourse(db *gorm.DB, courseID int) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.First(&course, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Course not found!")
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// requireDraft gates structural edits: content may only change while
// the course is in draft, never under review or live. A rejected
// course reopens as a draft on the first edit, dropping the stored
// rejection reason with it.
func requireDraft(db *gorm.DB, course *courseModels.Course) error {
	if course.Status == courseModels.StatusRejected &&
		courseModels.CanTransition(course.Status, courseModels.StatusDraft) {
		course.Status = courseModels.StatusDraft
		course.RejectionReason = ""
		return db.Save(course).Error
	}
	if course.Status != courseModels.StatusDraft {
		return apperrors.InvalidState("Course can only be edited while in draft!")
	}
	return nil
}

// CreateCourse creates a new draft course owned by the instructor.
func CreateCourse(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireInstructor(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, reqData.CategoryID).Error; err != nil {
		return middleware.ErrorResponse(c, apperrors.Validation("Category does not exist!"))
	}

	course := courseModels.Course{
		InstructorID: user.ID,
		CategoryID:   uint(reqData.CategoryID),
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		Level:        reqData.Level,
		Status:       courseModels.StatusDraft,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates content fields of a draft course.
func UpdateCourse(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
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
	if err := policy.RequireCourseOwner(user, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := requireDraft(db, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *reqData.CategoryID).Error; err != nil {
			return middleware.ErrorResponse(c, apperrors.Validation("Category does not exist!"))
		}
		course.CategoryID = uint(*reqData.CategoryID)
	}

	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// GetMyCourses lists the instructor's own courses in every status.
func GetMyCourses(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireInstructor(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("instructor_id = ?", user.ID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// SubmitForReview moves a draft course with content into the admin
// review queue.
func SubmitForReview(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
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
	if err := policy.RequireCourseOwner(user, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if !courseModels.CanTransition(course.Status, courseModels.StatusPending) {
		return middleware.ErrorResponse(c, apperrors.InvalidState("Only draft courses can be submitted for review!"))
	}

	// A course with no curriculum has nothing to review.
	var sectionCount int64
	if err := db.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit course!", nil)
	}
	if sectionCount == 0 {
		return middleware.ErrorResponse(c, apperrors.Validation("Add at least one section before submitting for review!"))
	}

	var lessonCount int64
	err = db.Model(&courseModels.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", course.ID).
		Count(&lessonCount).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit course!", nil)
	}
	if lessonCount == 0 {
		return middleware.ErrorResponse(c, apperrors.Validation("Add at least one lesson before submitting for review!"))
	}

	course.Status = courseModels.StatusPending
	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course submitted for review!", course)
}
