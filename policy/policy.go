// Package policy is the access gate consulted before every mutation.
// Each protected action has exactly one predicate here; handlers never
// re-derive ownership or role checks at the call site.
package policy

import (
	"errors"

	"skillspring/apperrors"
	"skillspring/models"
	courseModels "skillspring/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResolveUser maps an authenticated principal id to its profile.
// Returns NotFound when no profile row exists yet (mid-signup race);
// callers treat that as unauthenticated.
func ResolveUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found!")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func RequireAdmin(user *models.User) error {
	if user.Role != models.RoleAdmin {
		return apperrors.Forbidden("Admin access required!")
	}
	return nil
}

func RequireInstructor(user *models.User) error {
	if user.Role != models.RoleInstructor {
		return apperrors.Forbidden("Instructor access required!")
	}
	return nil
}

func RequireStudent(user *models.User) error {
	if user.Role != models.RoleStudent {
		return apperrors.Forbidden("Student access required!")
	}
	return nil
}

// RequireCourseOwner gates content mutations: sections, lessons,
// field updates and submit-for-review all require the acting user to
// be the course's instructor.
func RequireCourseOwner(user *models.User, c *courseModels.Course) error {
	if c.InstructorID != user.ID {
		return apperrors.Forbidden("You do not own this course!")
	}
	return nil
}

// RequireEnrollment gates progress and review writes. Returns the
// enrollment so callers can update it in the same transaction.
func RequireEnrollment(db *gorm.DB, studentID, courseID uint) (*courseModels.Enrollment, error) {
	return requireEnrollment(db, studentID, courseID)
}

// RequireEnrollmentForUpdate is RequireEnrollment with the enrollment
// row locked until the surrounding transaction commits. Mutations
// that recompute the stored progress must take it: the lock
// serializes concurrent completions for the same enrollment, so each
// recompute reads the previous writer's committed rows. The lock
// clause is a no-op on sqlite, where a single writer holds the whole
// database anyway.
func RequireEnrollmentForUpdate(tx *gorm.DB, studentID, courseID uint) (*courseModels.Enrollment, error) {
	return requireEnrollment(tx.Clauses(clause.Locking{Strength: "UPDATE"}), studentID, courseID)
}

func requireEnrollment(db *gorm.DB, studentID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Forbidden("You are not enrolled in this course!")
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
