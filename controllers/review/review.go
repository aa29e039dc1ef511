package reviewController

import (
	"errors"

	"skillspring/aggregates"
	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/policy"
	reviewValidator "skillspring/validators/review"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitReview upserts the student's review of a course keyed on
// (course, student) and recomputes the course rating atomically with
// it. A resubmission replaces the earlier rating and text.
func SubmitReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	user, err := policy.ResolveUser(db, userID)
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

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.ErrorResponse(c, apperrors.NotFound("Course not found!"))
	}

	reqData, ok := c.Locals("validatedReview").(*reviewValidator.SubmitReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var review models.Review
	err = db.Transaction(func(tx *gorm.DB) error {
		// The course row is the aggregate target; locking it first
		// serializes concurrent review writes for the same course so
		// each rating recompute reads the previous writer's committed
		// reviews.
		var target courseModels.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, course.ID).Error; err != nil {
			return err
		}

		if _, err := policy.RequireEnrollment(tx, user.ID, course.ID); err != nil {
			return err
		}

		err := tx.Where("course_id = ? AND student_id = ?", course.ID, user.ID).First(&review).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			review = models.Review{
				CourseID:  course.ID,
				StudentID: user.ID,
				Rating:    reqData.Rating,
				Text:      reqData.Text,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			review.Rating = reqData.Rating
			review.Text = reqData.Text
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		}

		return aggregates.RecomputeCourseRating(tx, course.ID)
	})
	if err != nil {
		if database.IsDuplicate(err) {
			return middleware.ErrorResponse(c, apperrors.Conflict("Review already submitted, please retry to update it!"))
		}
		if apperrors.KindOf(err) != apperrors.KindUnknown {
			return middleware.ErrorResponse(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review submitted successfully!", review)
}

// GetCourseReviews returns a course's reviews with reviewer names.
func GetCourseReviews(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&models.Review{}).Where("course_id = ?", courseID).Count(&total)

	var reviews []models.Review
	err = db.Where("course_id = ?", courseID).
		Order("created_at desc").Offset(offset).Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	type ReviewWithName struct {
		models.Review
		StudentName string `json:"student_name"`
	}

	studentIDs := make([]uint, len(reviews))
	for i, review := range reviews {
		studentIDs[i] = review.StudentID
	}

	namesByID := make(map[uint]string, len(studentIDs))
	if len(studentIDs) > 0 {
		var students []models.User
		if err := db.Select("id, name").Find(&students, studentIDs).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
		}
		for _, student := range students {
			namesByID[student.ID] = student.Name
		}
	}

	result := make([]ReviewWithName, len(reviews))
	for i, review := range reviews {
		result[i] = ReviewWithName{Review: review, StudentName: namesByID[review.StudentID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
