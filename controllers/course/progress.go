package courseController

import (
	"errors"
	"time"

	"skillspring/aggregates"
	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	courseModels "skillspring/models/course"
	"skillspring/policy"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MarkLessonComplete upserts the student's completion fact for a
// lesson and recomputes the enrollment percentage in the same
// transaction. Marking an already-completed lesson is a no-op that
// returns the unchanged percentage.
func MarkLessonComplete(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireStudent(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return middleware.ErrorResponse(c, apperrors.NotFound("Lesson not found!"))
	}

	var section courseModels.Section
	if err := db.First(&section, lesson.SectionID).Error; err != nil {
		return middleware.ErrorResponse(c, apperrors.NotFound("Lesson not found!"))
	}

	percent := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		// The enrollment row is the aggregate target; locking it
		// serializes concurrent completions so the recompute below
		// never reads a snapshot missing another writer's rows.
		if _, err := policy.RequireEnrollmentForUpdate(tx, user.ID, section.CourseID); err != nil {
			return err
		}

		var progress courseModels.LessonProgress
		err := tx.Where("student_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now()
			progress = courseModels.LessonProgress{
				StudentID:   user.ID,
				LessonID:    lesson.ID,
				IsCompleted: true,
				CompletedAt: &now,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else if !progress.IsCompleted {
			now := time.Now()
			progress.IsCompleted = true
			progress.CompletedAt = &now
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		}

		percent, err = aggregates.RecomputeProgress(tx, user.ID, section.CourseID)
		return err
	})
	if err != nil {
		if database.IsDuplicate(err) {
			// Racing duplicate of the same completion; the fact is
			// already recorded, so report the stored state.
			return middleware.ErrorResponse(c, apperrors.Conflict("Lesson already marked complete!"))
		}
		if apperrors.KindOf(err) != apperrors.KindUnknown {
			return middleware.ErrorResponse(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete!", fiber.Map{
		"lesson_id":        lesson.ID,
		"progress_percent": percent,
	})
}
