package models

import "gorm.io/gorm"

// Category groups courses in the public catalog
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
}
