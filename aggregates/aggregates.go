// Package aggregates owns the derived-field recomputation routines.
// They are the only writers of Enrollment.ProgressPercent and
// Course.Rating/RatingCount, and must run inside the same transaction
// as the fact change that triggered them.
package aggregates

import (
	"math"

	"skillspring/models"
	courseModels "skillspring/models/course"

	"gorm.io/gorm"
)

// courseLessonIDs selects the ids of all lessons currently reachable
// from the course through its sections. Progress rows pointing at
// removed lessons fall outside this set and are ignored.
func courseLessonIDs(tx *gorm.DB, courseID uint) *gorm.DB {
	return tx.Model(&courseModels.Lesson{}).
		Select("lessons.id").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID)
}

// RecomputeProgress recalculates the completion percentage for one
// (student, course) pair from the lesson-progress facts and persists
// it on the enrollment. A course with zero lessons yields 0.
func RecomputeProgress(tx *gorm.DB, studentID, courseID uint) (int, error) {
	var total int64
	err := tx.Model(&courseModels.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}

	percent := 0
	if total > 0 {
		var completed int64
		err = tx.Model(&courseModels.LessonProgress{}).
			Where("student_id = ? AND is_completed = ?", studentID, true).
			Where("lesson_id IN (?)", courseLessonIDs(tx, courseID)).
			Count(&completed).Error
		if err != nil {
			return 0, err
		}
		percent = int(math.Round(100 * float64(completed) / float64(total)))
	}

	err = tx.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Update("progress_percent", percent).Error
	if err != nil {
		return 0, err
	}

	return percent, nil
}

// RecomputeCourseRating recalculates a course's rating and review
// count from the full current review set. Rating is stored at full
// precision; display rounding happens at the JSON boundary.
func RecomputeCourseRating(tx *gorm.DB, courseID uint) error {
	var stats struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return tx.Model(&courseModels.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"rating":       stats.Avg,
			"rating_count": stats.Count,
		}).Error
}

// DisplayRating rounds a stored rating to one decimal for responses.
func DisplayRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}
