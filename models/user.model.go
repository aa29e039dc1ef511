package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold. Exactly one, assigned at signup and changed
// only through the admin user-management endpoints.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Name              string    `json:"name" gorm:"default:''"`
	Email             string    `json:"email" gorm:"unique;not null"`
	Password          string    `json:"-" gorm:"not null"`
	Role              string    `json:"role" gorm:"default:'student'"`
	Bio               string    `json:"bio" gorm:"type:text;default:''"`
	ProfilePictureURL string    `json:"profile_picture_url" gorm:"default:''"`
	LastLogin         time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted         bool      `json:"-" gorm:"default:false"`
}

// ValidRole reports whether role names one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor || role == RoleAdmin
}
