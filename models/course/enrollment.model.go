package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment is the fact that a student has access to a course.
// ProgressPercent is derived from the student's lesson progress and is
// only written by the progress recomputation.
type Enrollment struct {
	gorm.Model
	StudentID       uint      `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	CourseID        uint      `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	EnrolledAt      time.Time `json:"enrolled_at"`
	ProgressPercent int       `json:"progress_percent" gorm:"default:0"`
}
