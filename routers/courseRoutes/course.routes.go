package courseRoutes

import (
	courseController "skillspring/controllers/course"
	"skillspring/middleware"
	courseValidator "skillspring/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, authoring and learning routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog (approved courses only)
	courseGroup.Get("/list", courseController.ListCourses)

	// Instructor authoring
	courseGroup.Post("/create", middleware.JWTMiddleware, courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Get("/mine", middleware.JWTMiddleware, courseController.GetMyCourses)
	courseGroup.Put("/:id", middleware.JWTMiddleware, courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Post("/:id/section", middleware.JWTMiddleware, courseValidator.AddSection(), courseController.AddSection)
	courseGroup.Post("/:id/submit", middleware.JWTMiddleware, courseController.SubmitForReview)
	courseGroup.Post("/:id/thumbnail", middleware.JWTMiddleware, courseController.UploadThumbnail)

	// Course detail: public for approved courses; owner and admins
	// also see unapproved ones when authenticated
	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, courseController.GetCourseDetail)

	// Student learning
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseController.EnrollInCourse)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, courseController.GetCourseProgress)

	sectionGroup := app.Group("/section")
	sectionGroup.Post("/:id/lesson", middleware.JWTMiddleware, courseValidator.AddLesson(), courseController.AddLesson)
	sectionGroup.Delete("/:id", middleware.JWTMiddleware, courseController.DeleteSection)

	lessonGroup := app.Group("/lesson")
	lessonGroup.Post("/:id/complete", middleware.JWTMiddleware, courseController.MarkLessonComplete)
	lessonGroup.Delete("/:id", middleware.JWTMiddleware, courseController.DeleteLesson)
}
