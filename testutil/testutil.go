// Package testutil spins up the full route surface over an in-memory
// sqlite database for HTTP-level tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillspring/config"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"
	authRoutes "skillspring/routers/authRoutes"
	categoryRoutes "skillspring/routers/categoryRoutes"
	courseRoutes "skillspring/routers/courseRoutes"
	reviewRoutes "skillspring/routers/reviewRoutes"
	superAdminRoutes "skillspring/routers/superAdmin"
	userRoutes "skillspring/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupApp builds a fiber app with every route registered, backed by a
// fresh in-memory database.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.JWTKey = "test-secret"
	config.AppConfig.SaltRound = bcrypt.MinCost

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)

	return app
}

// NewUser inserts a user with the given role and returns it along
// with a valid token.
func NewUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@test.io", uuid.NewString()),
		Password: string(hash),
		Role:     role,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user, token
}

// RemoveUser marks a user row deleted, simulating a principal whose
// profile vanished between authentication and resolution.
func RemoveUser(t *testing.T, userID uint) {
	t.Helper()

	err := database.Database.Db.Model(&models.User{}).Where("id = ?", userID).Update("is_deleted", true).Error
	if err != nil {
		t.Fatalf("failed to remove user: %v", err)
	}
}

// NewCategory inserts a category.
func NewCategory(t *testing.T, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// NewCourse inserts a course directly, bypassing the authoring flow,
// for tests that need a specific starting state.
func NewCourse(t *testing.T, instructorID, categoryID uint, status string, price float64) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		InstructorID: instructorID,
		CategoryID:   categoryID,
		Title:        "Course " + uuid.NewString()[:8],
		Level:        courseModels.LevelBeginner,
		Status:       status,
		Price:        price,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

// NewSection appends a section to a course.
func NewSection(t *testing.T, courseID uint, orderIndex int) courseModels.Section {
	t.Helper()

	section := courseModels.Section{
		CourseID:   courseID,
		Title:      fmt.Sprintf("Section %d", orderIndex+1),
		OrderIndex: orderIndex,
	}
	if err := database.Database.Db.Create(&section).Error; err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	return section
}

// NewLesson appends a lesson to a section.
func NewLesson(t *testing.T, sectionID uint, orderIndex int) courseModels.Lesson {
	t.Helper()

	lesson := courseModels.Lesson{
		SectionID:  sectionID,
		Title:      fmt.Sprintf("Lesson %d", orderIndex+1),
		VideoURL:   "https://videos.test.io/" + uuid.NewString(),
		OrderIndex: orderIndex,
	}
	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		t.Fatalf("failed to create lesson: %v", err)
	}
	return lesson
}

// NewEnrollment enrolls a student directly.
func NewEnrollment(t *testing.T, studentID, courseID uint) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		t.Fatalf("failed to create enrollment: %v", err)
	}
	return enrollment
}

// Request performs a JSON request against the app and decodes the
// response envelope.
func Request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	result := make(map[string]interface{})
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

// Data extracts the data object from a response envelope.
func Data(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", result)
	}
	return data
}
