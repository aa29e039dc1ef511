package userValidator

import (
	"skillspring/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Name              string `json:"name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
