package reviewValidator

import (
	"strings"

	"skillspring/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubmitReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func SubmitReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		reqData.Text = strings.TrimSpace(reqData.Text)
		if reqData.Text == "" {
			errors["text"] = "Review text is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
