package course

import "gorm.io/gorm"

// Course lifecycle states. A course is publicly visible only while
// approved; every catalog query must go through the Approved scope.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course represents a course authored by an instructor. Rating and
// RatingCount are derived from the review rows and must only be
// written by the rating recomputation, never by handlers directly.
type Course struct {
	gorm.Model
	InstructorID    uint    `json:"instructor_id" gorm:"index;not null"`
	CategoryID      uint    `json:"category_id" gorm:"index;not null"`
	Title           string  `json:"title" gorm:"not null"`
	Description     string  `json:"description" gorm:"type:text;default:''"`
	ThumbnailURL    string  `json:"thumbnail_url" gorm:"default:''"`
	Price           float64 `json:"price" gorm:"default:0"`
	Level           string  `json:"level" gorm:"default:'Beginner'"`
	Status          string  `json:"status" gorm:"default:'draft';index"`
	RejectionReason string  `json:"rejection_reason" gorm:"type:text;default:''"`
	Rating          float64 `json:"rating" gorm:"default:0"`
	RatingCount     int     `json:"rating_count" gorm:"default:0"`
}

// transitions maps each state to the states it may move to.
// approved -> rejected is the admin-only revert.
var transitions = map[string][]string{
	StatusDraft:    {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusDraft},
	StatusApproved: {StatusRejected},
}

// CanTransition reports whether the lifecycle allows moving a course
// from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidLevel reports whether level is one of the three known levels.
func ValidLevel(level string) bool {
	return level == LevelBeginner || level == LevelIntermediate || level == LevelAdvanced
}

// Approved is the single catalog-visibility predicate. Every listing
// read shown to students must apply it.
func Approved(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", StatusApproved)
}
