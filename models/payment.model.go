package models

import "gorm.io/gorm"

const (
	PaymentMethodMock = "mock"

	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment records the (mocked) purchase made when a student enrolls in
// a paid course. Written in the same transaction as the enrollment.
type Payment struct {
	gorm.Model
	StudentID     uint    `json:"student_id" gorm:"index;not null"`
	CourseID      uint    `json:"course_id" gorm:"index;not null"`
	Amount        float64 `json:"amount" gorm:"not null"`
	Method        string  `json:"method" gorm:"default:'mock'"`
	Status        string  `json:"status" gorm:"default:'success'"`
	TransactionID string  `json:"transaction_id" gorm:"unique"`
}
