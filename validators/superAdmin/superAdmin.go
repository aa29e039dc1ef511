package superAdminValidator

import (
	"skillspring/middleware"
	"skillspring/models"

	"github.com/gofiber/fiber/v2"
)

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func ChangeRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangeRoleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidRole(reqData.Role) {
			return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role must be student, instructor or admin!"})
		}

		c.Locals("validatedRoleChange", reqData)
		return c.Next()
	}
}
