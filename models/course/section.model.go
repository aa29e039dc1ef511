package course

import "gorm.io/gorm"

// Section is an ordered block of lessons within a course. OrderIndex
// is dense and zero-based per course; the unique index makes a racing
// double-append fail at the store instead of producing duplicates.
type Section struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"uniqueIndex:idx_section_course_order;not null"`
	Title      string `json:"title" gorm:"not null"`
	OrderIndex int    `json:"order_index" gorm:"uniqueIndex:idx_section_course_order;default:0"`
}
