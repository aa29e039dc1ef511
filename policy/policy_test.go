package policy_test

import (
	"testing"

	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/policy"
	"skillspring/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRequireEnrollment(t *testing.T) {
	testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, _ := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)

	db := database.Database.Db

	_, err := policy.RequireEnrollment(db, student.ID, course.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	seeded := testutil.NewEnrollment(t, student.ID, course.ID)
	enrollment, err := policy.RequireEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, enrollment.ID)
}

func TestRequireEnrollmentForUpdate(t *testing.T) {
	testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, _ := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	testutil.NewEnrollment(t, student.ID, course.ID)

	db := database.Database.Db

	// The locked row must be usable as the write target for the rest
	// of the transaction.
	err := db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := policy.RequireEnrollmentForUpdate(tx, student.ID, course.ID)
		if err != nil {
			return err
		}
		enrollment.ProgressPercent = 40
		return tx.Save(enrollment).Error
	})
	require.NoError(t, err)

	var stored courseModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&stored).Error)
	assert.Equal(t, 40, stored.ProgressPercent)

	_, err = policy.RequireEnrollmentForUpdate(db, student.ID, course.ID+1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestRequireCourseOwner(t *testing.T) {
	testutil.SetupApp(t)

	owner, _ := testutil.NewUser(t, "Owner", models.RoleInstructor)
	other, _ := testutil.NewUser(t, "Other", models.RoleInstructor)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, owner.ID, category.ID, courseModels.StatusDraft, 0)

	assert.NoError(t, policy.RequireCourseOwner(&owner, &course))

	err := policy.RequireCourseOwner(&other, &course)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}
