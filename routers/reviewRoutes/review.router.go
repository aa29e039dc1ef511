package reviewRoutes

import (
	reviewController "skillspring/controllers/review"
	"skillspring/middleware"
	reviewValidator "skillspring/validators/review"

	"github.com/gofiber/fiber/v2"
)

// SetupReviewRoutes sets up review submission and listing
func SetupReviewRoutes(app *fiber.App) {
	app.Post("/course/:id/review", middleware.JWTMiddleware, reviewValidator.SubmitReview(), reviewController.SubmitReview)
	app.Get("/course/:id/reviews", reviewController.GetCourseReviews)
}
