package courseValidator

import (
	"strings"

	"skillspring/middleware"

	"github.com/gofiber/fiber/v2"
)

type AddSectionRequest struct {
	Title string `json:"title"`
}

type AddLessonRequest struct {
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
}

func AddSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddSectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

func AddLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
