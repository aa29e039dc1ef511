package aggregates_test

import (
	"testing"
	"time"

	"skillspring/aggregates"
	"skillspring/database"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourse(t *testing.T, lessons int) (courseModels.Course, courseModels.Enrollment, []courseModels.Lesson, models.User) {
	t.Helper()

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, _ := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	section := testutil.NewSection(t, course.ID, 0)

	out := make([]courseModels.Lesson, lessons)
	for i := range out {
		out[i] = testutil.NewLesson(t, section.ID, i)
	}
	enrollment := testutil.NewEnrollment(t, student.ID, course.ID)
	return course, enrollment, out, student
}

func completeLesson(t *testing.T, studentID, lessonID uint) {
	t.Helper()
	now := time.Now()
	err := database.Database.Db.Create(&courseModels.LessonProgress{
		StudentID:   studentID,
		LessonID:    lessonID,
		IsCompleted: true,
		CompletedAt: &now,
	}).Error
	require.NoError(t, err)
}

func TestRecomputeProgressZeroLessons(t *testing.T) {
	testutil.SetupApp(t)

	course, _, _, student := seedCourse(t, 0)

	percent, err := aggregates.RecomputeProgress(database.Database.Db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)
}

func TestRecomputeProgressRounds(t *testing.T) {
	testutil.SetupApp(t)

	course, _, lessons, student := seedCourse(t, 3)
	completeLesson(t, student.ID, lessons[0].ID)

	percent, err := aggregates.RecomputeProgress(database.Database.Db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, percent)

	completeLesson(t, student.ID, lessons[1].ID)
	percent, err = aggregates.RecomputeProgress(database.Database.Db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, percent)
}

func TestRecomputeProgressPersistsOnEnrollment(t *testing.T) {
	testutil.SetupApp(t)

	course, enrollment, lessons, student := seedCourse(t, 2)
	completeLesson(t, student.ID, lessons[0].ID)
	completeLesson(t, student.ID, lessons[1].ID)

	percent, err := aggregates.RecomputeProgress(database.Database.Db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, percent)

	var stored courseModels.Enrollment
	require.NoError(t, database.Database.Db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 100, stored.ProgressPercent)
}

func TestRecomputeProgressIgnoresRemovedLessons(t *testing.T) {
	testutil.SetupApp(t)

	course, _, lessons, student := seedCourse(t, 2)
	completeLesson(t, student.ID, lessons[0].ID)
	completeLesson(t, student.ID, lessons[1].ID)

	// Remove one completed lesson; its progress row stays behind but
	// must no longer count.
	require.NoError(t, database.Database.Db.Unscoped().Delete(&lessons[1]).Error)

	percent, err := aggregates.RecomputeProgress(database.Database.Db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, percent)

	var orphans int64
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("student_id = ?", student.ID).Count(&orphans)
	assert.Equal(t, int64(2), orphans)
}

func TestRecomputeCourseRating(t *testing.T) {
	testutil.SetupApp(t)

	course, _, _, student := seedCourse(t, 1)
	other, _ := testutil.NewUser(t, "Other", models.RoleStudent)
	testutil.NewEnrollment(t, other.ID, course.ID)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Review{CourseID: course.ID, StudentID: student.ID, Rating: 5, Text: "Great."}).Error)
	require.NoError(t, db.Create(&models.Review{CourseID: course.ID, StudentID: other.ID, Rating: 2, Text: "Rough."}).Error)

	require.NoError(t, aggregates.RecomputeCourseRating(db, course.ID))

	var updated courseModels.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Equal(t, 3.5, updated.Rating)
	assert.Equal(t, 2, updated.RatingCount)
}

func TestRecomputeCourseRatingNoReviews(t *testing.T) {
	testutil.SetupApp(t)

	course, _, _, _ := seedCourse(t, 1)

	db := database.Database.Db
	require.NoError(t, db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
		Updates(map[string]interface{}{"rating": 4.2, "rating_count": 3}).Error)

	require.NoError(t, aggregates.RecomputeCourseRating(db, course.ID))

	var updated courseModels.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Equal(t, 0.0, updated.Rating)
	assert.Equal(t, 0, updated.RatingCount)
}

func TestDisplayRating(t *testing.T) {
	assert.Equal(t, 4.3, aggregates.DisplayRating(4.333333))
	assert.Equal(t, 4.7, aggregates.DisplayRating(4.666666))
	assert.Equal(t, 0.0, aggregates.DisplayRating(0))
}
