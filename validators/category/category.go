package categoryValidator

import (
	"strings"

	"skillspring/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
