package courseValidator

import (
	"strings"

	"skillspring/middleware"
	courseModels "skillspring/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description"`
	CategoryID  int     `json:"category_id" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Level       string  `json:"level"`
}

type UpdateCourseRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  *int     `json:"category_id"`
	Price       *float64 `json:"price"`
	Level       string   `json:"level"`
}

type RejectCourseRequest struct {
	Reason string `json:"reason"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Level == "" {
			reqData.Level = courseModels.LevelBeginner
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "CategoryID":
					errors["category_id"] = "Category is required!"
				case "Price":
					errors["price"] = "Price cannot be negative!"
				}
			}
		}

		if !courseModels.ValidLevel(reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.Level != "" && !courseModels.ValidLevel(reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func RejectCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RejectCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// The reason feeds instructor-facing feedback; an empty one
		// would leave them guessing.
		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Rejection reason is required!"})
		}

		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}
