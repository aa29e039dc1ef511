package superAdminController

import (
	"skillspring/apperrors"
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	"skillspring/policy"
	superAdminValidator "skillspring/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers lists all active users for the admin users page.
func AdminListUsers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	admin, err := policy.ResolveUser(db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(admin); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := db.Model(&models.User{}).Where("is_deleted = ?", false)

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminChangeUserRole sets a user's role. The only path in the system
// that ever changes a role after signup.
func AdminChangeUserRole(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	admin, err := policy.ResolveUser(db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(admin); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedRoleChange").(*superAdminValidator.ChangeRoleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	target, err := policy.ResolveUser(db, uint(targetID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	target.Role = reqData.Role
	if err := db.Model(target).Update("role", target.Role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", target)
}

// AdminRemoveUser soft-removes a user account.
func AdminRemoveUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	admin, err := policy.ResolveUser(db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(admin); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	if uint(targetID) == admin.ID {
		return middleware.ErrorResponse(c, apperrors.Validation("You cannot remove your own account!"))
	}

	target, err := policy.ResolveUser(db, uint(targetID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	target.IsDeleted = true
	if err := db.Model(target).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User removed successfully!", nil)
}
