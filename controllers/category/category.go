package categoryController

import (
	"skillspring/database"
	"skillspring/middleware"
	"skillspring/models"
	"skillspring/policy"
	categoryValidator "skillspring/validators/category"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory adds a catalog category. Admin only.
func CreateCategory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	user, err := policy.ResolveUser(db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.CreateCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := db.Create(&category).Error; err != nil {
		if database.IsDuplicate(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// DeleteCategory removes a category. Admin only.
func DeleteCategory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	user, err := policy.ResolveUser(db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireAdmin(user); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	categoryID, err := c.ParamsInt("id")
	if err != nil || categoryID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
	}

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if err := db.Delete(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

// GetCategories lists all categories for catalog filters. Public.
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}
