package courseController

import (
	"time"

	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/policy"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls a student in an approved course. Paid courses
// record a mock payment in the same transaction.
func EnrollInCourse(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireStudent(user); err != nil {
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
	if course.Status != courseModels.StatusApproved {
		return middleware.ErrorResponse(c, apperrors.InvalidState("Course is not open for enrollment!"))
	}

	enrollment := courseModels.Enrollment{
		StudentID:       user.ID,
		CourseID:        course.ID,
		EnrolledAt:      time.Now(),
		ProgressPercent: 0,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		if course.Price > 0 {
			payment := models.Payment{
				StudentID:     user.ID,
				CourseID:      course.ID,
				Amount:        course.Price,
				Method:        models.PaymentMethodMock,
				Status:        models.PaymentStatusSuccess,
				TransactionID: uuid.NewString(),
			}
			return tx.Create(&payment).Error
		}
		return nil
	})
	if err != nil {
		// The (student_id, course_id) unique index catches the double
		// enroll, racing or not.
		if database.IsDuplicate(err) {
			return middleware.ErrorResponse(c, apperrors.Conflict("You are already enrolled in this course!"))
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the student's enrollments with course info.
func GetEnrollments(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireStudent(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("student_id = ?", user.ID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}

	courseIDs := make([]uint, len(enrollments))
	for i, enrollment := range enrollments {
		courseIDs[i] = enrollment.CourseID
	}

	coursesByID := make(map[uint]courseModels.Course, len(courseIDs))
	if len(courseIDs) > 0 {
		var courses []courseModels.Course
		if err := db.Find(&courses, courseIDs).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		for _, course := range courses {
			coursesByID[course.ID] = course
		}
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, enrollment := range enrollments {
		result[i] = EnrollmentWithCourse{
			Enrollment: enrollment,
			Course:     coursesByID[enrollment.CourseID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
	})
}

// GetCourseProgress returns the stored percentage plus the per-lesson
// completion map for the player sidebar.
func GetCourseProgress(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireStudent(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	if _, err := findCourse(db, courseID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	enrollment, err := policy.RequireEnrollment(db, user.ID, uint(courseID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var completed []courseModels.LessonProgress
	err = db.Where("student_id = ? AND is_completed = ?", user.ID, true).
		Where("lesson_id IN (?)", db.Model(&courseModels.Lesson{}).
			Select("lessons.id").
			Joins("JOIN sections ON sections.id = lessons.section_id").
			Where("sections.course_id = ?", courseID)).
		Find(&completed).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completedLessons := make([]uint, len(completed))
	for i, progress := range completed {
		completedLessons[i] = progress.LessonID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress_percent":  enrollment.ProgressPercent,
		"completed_lessons": completedLessons,
	})
}
