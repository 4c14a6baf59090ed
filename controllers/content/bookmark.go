package contentController

import (
	"errors"

	"khanqah/database"
	"khanqah/middleware"
	contentModels "khanqah/models/content"
	courseModels "khanqah/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// targetExists verifies the bookmarked content actually exists
func targetExists(targetType string, targetID uint) bool {
	db := database.Database.Db
	var count int64

	switch targetType {
	case contentModels.TargetArticle:
		db.Model(&contentModels.Article{}).Where("id = ? AND is_deleted = ?", targetID, false).Count(&count)
	case contentModels.TargetEbook:
		db.Model(&contentModels.Ebook{}).Where("id = ? AND is_deleted = ?", targetID, false).Count(&count)
	case contentModels.TargetCourse:
		db.Model(&courseModels.Course{}).Where("id = ? AND is_deleted = ?", targetID, false).Count(&count)
	}

	return count > 0
}

// ToggleBookmark creates a bookmark or removes an existing one
func ToggleBookmark(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedBookmark").(*struct {
		TargetType string `json:"targetType" validate:"required,oneof=ARTICLE EBOOK COURSE"`
		TargetID   uint   `json:"targetId" validate:"required,min=1"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !targetExists(reqData.TargetType, reqData.TargetID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bookmark target not found!", nil)
	}

	var bookmark contentModels.Bookmark
	err := database.Database.Db.
		Where("user_id = ? AND target_type = ? AND target_id = ? AND is_deleted = ?",
			userId, reqData.TargetType, reqData.TargetID, false).
		First(&bookmark).Error

	if err == nil {
		bookmark.IsDeleted = true
		if err := database.Database.Db.Save(&bookmark).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove bookmark!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookmark removed.", map[string]interface{}{
			"bookmarked": false,
		})
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to toggle bookmark!", nil)
	}

	bookmark = contentModels.Bookmark{
		UserID:     userId,
		TargetType: reqData.TargetType,
		TargetID:   reqData.TargetID,
	}
	if err := database.Database.Db.Create(&bookmark).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create bookmark!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bookmark added.", map[string]interface{}{
		"bookmarked": true,
		"bookmark":   bookmark,
	})
}

// GetBookmarks lists the caller's bookmarks, optionally filtered by type
func GetBookmarks(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedBookmarkList").(*struct {
		Page       *int   `json:"page" validate:"required,min=1"`
		Limit      *int   `json:"limit" validate:"required,min=1,max=100"`
		TargetType string `json:"targetType" validate:"omitempty,oneof=ARTICLE EBOOK COURSE"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false)
	countQuery := database.Database.Db.Model(&contentModels.Bookmark{}).
		Where("user_id = ? AND is_deleted = ?", userId, false)
	if reqData.TargetType != "" {
		query = query.Where("target_type = ?", reqData.TargetType)
		countQuery = countQuery.Where("target_type = ?", reqData.TargetType)
	}

	var bookmarks []contentModels.Bookmark
	var total int64

	if err := query.Order("created_at desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&bookmarks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookmarks!", nil)
	}

	countQuery.Count(&total)

	response := map[string]interface{}{
		"bookmarks": bookmarks,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookmarks fetched successfully!", response)
}
