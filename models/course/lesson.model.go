package course

import "gorm.io/gorm"

// Lesson is a single unit of content within a section. VideoURL is an
// opaque reference into external video hosting.
type Lesson struct {
	gorm.Model
	SectionID       uint   `json:"section_id" gorm:"uniqueIndex:idx_lesson_section_order;not null"`
	Title           string `json:"title" gorm:"not null"`
	VideoURL        string `json:"video_url" gorm:"default:''"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"uniqueIndex:idx_lesson_section_order;default:0"`
}
