package contentController

import (
	"khanqah/database"
	"khanqah/middleware"
	contentModels "khanqah/models/content"

	"github.com/gofiber/fiber/v2"
)

// GetAllArticles lists published articles, newest first
func GetAllArticles(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page" validate:"required,min=1"`
		Limit *int `json:"limit" validate:"required,min=1,max=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var articles []contentModels.Article
	var total int64

	if err := database.Database.Db.
		Where("status = ? AND is_deleted = ?", contentModels.ArticlePublished, false).
		Order("published_at desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&articles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch articles!", nil)
	}

	database.Database.Db.Model(&contentModels.Article{}).
		Where("status = ? AND is_deleted = ?", contentModels.ArticlePublished, false).
		Count(&total)

	response := map[string]interface{}{
		"articles": articles,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully!", response)
}

// GetArticleBySlug returns a single published article
func GetArticleBySlug(c *fiber.Ctx) error {
	slug := c.Locals("articleSlug").(string)

	var article contentModels.Article
	if err := database.Database.Db.
		Where("slug = ? AND status = ? AND is_deleted = ?", slug, contentModels.ArticlePublished, false).
		First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article fetched successfully!", article)
}
