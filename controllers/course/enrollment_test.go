package courseController_test

import (
	"fmt"
	"net/http"
	"testing"

	"skillspring/database"
	"skillspring/models"
	courseModels "skillspring/models/course"
	"skillspring/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollInCourse(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	_, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)

	resp, result := testutil.Request(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := testutil.Data(t, result)
	assert.Equal(t, float64(0), data["progress_percent"])
}

func TestEnrollTwiceConflicts(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)

	path := fmt.Sprintf("/course/%d/enroll", course.ID)
	resp, _ := testutil.Request(t, app, "POST", path, studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = testutil.Request(t, app, "POST", path, studentToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollUnapprovedCourse(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	_, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")

	for _, status := range []string{courseModels.StatusDraft, courseModels.StatusPending, courseModels.StatusRejected} {
		course := testutil.NewCourse(t, instructor.ID, category.ID, status, 0)
		resp, _ := testutil.Request(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, status)
	}
}

func TestEnrollRequiresStudent(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, instructorToken := testutil.NewUser(t, "Inst", models.RoleInstructor)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)

	resp, _ := testutil.Request(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), instructorToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEnrollPaidCourseRecordsPayment(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 49.99)

	resp, _ := testutil.Request(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment models.Payment
	err := database.Database.Db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&payment).Error
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodMock, payment.Method)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, 49.99, payment.Amount)
	assert.NotEmpty(t, payment.TransactionID)
}

func TestGetEnrollmentsIncludesCourses(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	first := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	second := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	testutil.NewEnrollment(t, student.ID, first.ID)
	testutil.NewEnrollment(t, student.ID, second.ID)

	resp, result := testutil.Request(t, app, "GET", "/user/enrollments", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	enrollments := testutil.Data(t, result)["enrollments"].([]interface{})
	require.Len(t, enrollments, 2)

	seen := make(map[float64]bool)
	for _, raw := range enrollments {
		entry := raw.(map[string]interface{})
		course := entry["course"].(map[string]interface{})
		assert.Equal(t, entry["course_id"], course["ID"])
		assert.NotEmpty(t, course["title"])
		seen[course["ID"].(float64)] = true
	}
	assert.True(t, seen[float64(first.ID)])
	assert.True(t, seen[float64(second.ID)])
}

func TestMarkLessonCompleteUpdatesProgress(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	section := testutil.NewSection(t, course.ID, 0)
	l1 := testutil.NewLesson(t, section.ID, 0)
	l2 := testutil.NewLesson(t, section.ID, 1)
	testutil.NewEnrollment(t, student.ID, course.ID)

	resp, result := testutil.Request(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", l1.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50), testutil.Data(t, result)["progress_percent"])

	resp, result = testutil.Request(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", l2.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(100), testutil.Data(t, result)["progress_percent"])

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.ProgressPercent)
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	section := testutil.NewSection(t, course.ID, 0)
	l1 := testutil.NewLesson(t, section.ID, 0)
	testutil.NewLesson(t, section.ID, 1)
	testutil.NewEnrollment(t, student.ID, course.ID)

	path := fmt.Sprintf("/lesson/%d/complete", l1.ID)
	resp, result := testutil.Request(t, app, "POST", path, studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50), testutil.Data(t, result)["progress_percent"])

	resp, result = testutil.Request(t, app, "POST", path, studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50), testutil.Data(t, result)["progress_percent"])

	var count int64
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("student_id = ? AND lesson_id = ?", student.ID, l1.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkLessonCompleteRequiresEnrollment(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	_, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	section := testutil.NewSection(t, course.ID, 0)
	lesson := testutil.NewLesson(t, section.ID, 0)

	resp, _ := testutil.Request(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", lesson.ID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	app := testutil.SetupApp(t)

	_, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)

	resp, _ := testutil.Request(t, app, "POST", "/lesson/9999/complete", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCourseProgress(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	section := testutil.NewSection(t, course.ID, 0)
	l1 := testutil.NewLesson(t, section.ID, 0)
	testutil.NewLesson(t, section.ID, 1)
	testutil.NewEnrollment(t, student.ID, course.ID)

	resp, result := testutil.Request(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", l1.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, result = testutil.Request(t, app, "GET", fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := testutil.Data(t, result)
	assert.Equal(t, float64(50), data["progress_percent"])
	completed, ok := data["completed_lessons"].([]interface{})
	require.True(t, ok)
	require.Len(t, completed, 1)
	assert.Equal(t, float64(l1.ID), completed[0])
}

func TestGetCourseProgressRequiresEnrollment(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	_, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)

	resp, _ := testutil.Request(t, app, "GET", fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCourseWithNoLessonsStaysAtZeroPercent(t *testing.T) {
	app := testutil.SetupApp(t)

	instructor, _ := testutil.NewUser(t, "Inst", models.RoleInstructor)
	student, studentToken := testutil.NewUser(t, "Student", models.RoleStudent)
	category := testutil.NewCategory(t, "Design")
	course := testutil.NewCourse(t, instructor.ID, category.ID, courseModels.StatusApproved, 0)
	testutil.NewEnrollment(t, student.ID, course.ID)

	resp, result := testutil.Request(t, app, "GET", fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), testutil.Data(t, result)["progress_percent"])
}
