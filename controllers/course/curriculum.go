package courseController

import (
	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	courseModels "skillspring/models/course"
	"skillspring/policy"
	courseValidator "skillspring/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddSection appends a section to a draft course. OrderIndex is the
// current section count, keeping the ordering dense and zero-based.
func AddSection(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedSection").(*courseValidator.AddSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var section courseModels.Section
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Count(&count).Error; err != nil {
			return err
		}

		section = courseModels.Section{
			CourseID:   course.ID,
			Title:      reqData.Title,
			OrderIndex: int(count),
		}
		return tx.Create(&section).Error
	})
	if err != nil {
		// A racing append collides on (course_id, order_index).
		if database.IsDuplicate(err) {
			return middleware.ErrorResponse(c, apperrors.Conflict("Section ordering conflict, please retry!"))
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section added successfully!", section)
}

// AddLesson appends a lesson to a section. Ownership and draft state
// are resolved transitively through the section's course.
func AddLesson(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	sectionID, err := c.ParamsInt("id")
	if err != nil || sectionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section ID!", nil)
	}

	db := database.Database.Db

	var section courseModels.Section
	if err := db.First(&section, sectionID).Error; err != nil {
		return middleware.ErrorResponse(c, apperrors.NotFound("Section not found!"))
	}

	course, err := findCourse(db, int(section.CourseID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireCourseOwner(user, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := requireDraft(db, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.AddLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&courseModels.Lesson{}).Where("section_id = ?", section.ID).Count(&count).Error; err != nil {
			return err
		}

		lesson = courseModels.Lesson{
			SectionID:       section.ID,
			Title:           reqData.Title,
			VideoURL:        reqData.VideoURL,
			DurationMinutes: reqData.DurationMinutes,
			OrderIndex:      int(count),
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			return middleware.ErrorResponse(c, apperrors.Conflict("Lesson ordering conflict, please retry!"))
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added successfully!", lesson)
}

// DeleteSection removes a section and its lessons from a draft course
// and re-compacts the remaining section order.
func DeleteSection(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	sectionID, err := c.ParamsInt("id")
	if err != nil || sectionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section ID!", nil)
	}

	db := database.Database.Db

	var section courseModels.Section
	if err := db.First(&section, sectionID).Error; err != nil {
		return middleware.ErrorResponse(c, apperrors.NotFound("Section not found!"))
	}

	course, err := findCourse(db, int(section.CourseID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireCourseOwner(user, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := requireDraft(db, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("section_id = ?", section.ID).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&section).Error; err != nil {
			return err
		}
		return compactSections(tx, section.CourseID, section.OrderIndex)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// DeleteLesson removes a lesson from a draft course and re-compacts
// the section's lesson order. Progress rows referencing the lesson are
// left in place; the percentage computation ignores them.
func DeleteLesson(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
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
		return middleware.ErrorResponse(c, apperrors.NotFound("Section not found!"))
	}

	course, err := findCourse(db, int(section.CourseID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireCourseOwner(user, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := requireDraft(db, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&lesson).Error; err != nil {
			return err
		}
		return compactLessons(tx, lesson.SectionID, lesson.OrderIndex)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// compactSections shifts sections above the removed index down by one,
// in ascending order so each update moves into the slot just freed.
func compactSections(tx *gorm.DB, courseID uint, removedIndex int) error {
	var sections []courseModels.Section
	err := tx.Where("course_id = ? AND order_index > ?", courseID, removedIndex).
		Order("order_index asc").Find(&sections).Error
	if err != nil {
		return err
	}
	for i := range sections {
		err := tx.Model(&sections[i]).Update("order_index", sections[i].OrderIndex-1).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func compactLessons(tx *gorm.DB, sectionID uint, removedIndex int) error {
	var lessons []courseModels.Lesson
	err := tx.Where("section_id = ? AND order_index > ?", sectionID, removedIndex).
		Order("order_index asc").Find(&lessons).Error
	if err != nil {
		return err
	}
	for i := range lessons {
		err := tx.Model(&lessons[i]).Update("order_index", lessons[i].OrderIndex-1).Error
		if err != nil {
			return err
		}
	}
	return nil
}
