package courseController

import (
	"io"
	"log"

	"skillspring/database"
	"skillspring/middleware"
	"skillspring/policy"
	"skillspring/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadThumbnail streams a thumbnail image to object storage and
// stores the returned reference URL on the draft course. Raw bytes are
// never persisted here.
func UploadThumbnail(c *fiber.Ctx) error {
	user, err := resolveActor(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	course, err := findCourse(db, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := policy.RequireCourseOwner(user, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := requireDraft(db, course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read thumbnail file!", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read thumbnail file!", nil)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := utils.UploadObject(fileHeader.Filename, data, contentType)
	if err != nil {
		log.Printf("Thumbnail upload failed for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload thumbnail!", nil)
	}

	course.ThumbnailURL = url
	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", fiber.Map{
		"thumbnail_url": url,
	})
}
