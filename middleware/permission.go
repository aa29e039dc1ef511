package middleware

import (
	"skillspring/database"
	"skillspring/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that rejects requests whose
// authenticated user does not hold the given role. Route groups use it
// as a coarse gate; the policy package remains the authority consulted
// inside every mutation.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if user.Role != role {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
