package courseController

import (
	"strings"

	"skillspring/aggregates"
	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	courseModels "skillspring/models/course"

	"github.com/gofiber/fiber/v2"
)

// SectionWithLessons is the curriculum projection returned by the
// course detail endpoint, ordered for display and player navigation.
type SectionWithLessons struct {
	courseModels.Section
	Lessons []courseModels.Lesson `json:"lessons"`
}

// ListCourses is the public catalog. Only approved courses are ever
// returned; the Approved scope is the single visibility predicate.
func ListCourses(c *fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Query("search"))
	categoryID := c.QueryInt("category", 0)
	priceBand := c.Query("price") // free | paid
	level := c.Query("level")
	minRating := c.QueryFloat("min_rating", 0)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 12)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Scopes(courseModels.Approved)

	if keyword != "" {
		// Case-insensitive on every backend; postgres LIKE alone is not.
		db = db.Where("LOWER(title) LIKE LOWER(?)", "%"+keyword+"%")
	}
	if categoryID > 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	if priceBand == "free" {
		db = db.Where("price = 0")
	} else if priceBand == "paid" {
		db = db.Where("price > 0")
	}
	if level != "" {
		db = db.Where("level = ?", level)
	}
	if minRating > 0 {
		db = db.Where("rating >= ?", minRating)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	for i := range courses {
		courses[i].Rating = aggregates.DisplayRating(courses[i].Rating)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetail returns a course with its ordered curriculum.
// Approved courses are public; non approved ones are visible only to
// their owner and to admins.
func GetCourseDetail(c *fiber.Ctx) error {
	var user *models.User
	if _, ok := c.Locals("userId").(uint); ok {
		var err error
		user, err = resolveActor(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	course, err := findCourse(db, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if course.Status != courseModels.StatusApproved &&
		(user == nil || (course.InstructorID != user.ID && user.Role != models.RoleAdmin)) {
		return middleware.ErrorResponse(c, apperrors.NotFound("Course not found!"))
	}

	var sections []courseModels.Section
	if err := db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	curriculum := make([]SectionWithLessons, len(sections))
	for i, section := range sections {
		curriculum[i] = SectionWithLessons{Section: section}
		err := db.Where("section_id = ?", section.ID).Order("order_index asc").Find(&curriculum[i].Lessons).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
		}
	}

	var instructor models.User
	db.Select("id, name, bio, profile_picture_url").First(&instructor, course.InstructorID)

	var category models.Category
	db.First(&category, course.CategoryID)

	// Whether the requesting student already has access
	isEnrolled := false
	if user != nil {
		var enrollment courseModels.Enrollment
		isEnrolled = db.Where("student_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error == nil
	}

	course.Rating = aggregates.DisplayRating(course.Rating)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"sections":    curriculum,
		"instructor":  instructor,
		"category":    category,
		"is_enrolled": isEnrolled,
	})
}
