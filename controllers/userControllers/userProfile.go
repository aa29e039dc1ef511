package userController

import (
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/policy"
	userValidator "skillspring/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// GetProfile resolves the authenticated principal to its profile.
// A missing profile row is NotFound; clients treat it as signed out.
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user, err := policy.ResolveUser(database.Database.Db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile lets a user edit their own display fields. Role is
// deliberately not updatable here.
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user, err := policy.ResolveUser(database.Database.Db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}
	if reqData.ProfilePictureURL != "" {
		user.ProfilePictureURL = reqData.ProfilePictureURL
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}
