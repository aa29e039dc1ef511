package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress records that a student completed a lesson. Absence of
// a row means "not started". References the lesson by id only; rows
// whose lesson was removed are simply excluded from the percentage.
type LessonProgress struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"uniqueIndex:idx_progress_student_lesson;not null"`
	LessonID    uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_student_lesson;not null"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}
