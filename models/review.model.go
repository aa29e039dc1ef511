package models

import "gorm.io/gorm"

// Review holds one student's rating of a course. One row per
// (course, student) pair; resubmission updates the row in place.
type Review struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_review_course_student;not null"`
	StudentID uint   `json:"student_id" gorm:"uniqueIndex:idx_review_course_student;not null"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Text      string `json:"text" gorm:"type:text;not null"`
}
