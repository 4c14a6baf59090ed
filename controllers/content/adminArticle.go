package contentController

import (
	"time"

	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	contentModels "khanqah/models/content"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
)

func requireAdmin(c *fiber.Ctx) *models.User {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
		return nil
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
		return nil
	}

	if user.Role != "ADMIN" {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
		return nil
	}

	return &user
}

// AdminCreateArticle creates a draft article
func AdminCreateArticle(c *fiber.Ctx) error {
	admin := requireAdmin(c)
	if admin == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedArticle").(*struct {
		Title    string `json:"title" validate:"required,min=3,max=200"`
		Excerpt  string `json:"excerpt" validate:"omitempty,max=500"`
		Body     string `json:"body" validate:"required"`
		CoverURL string `json:"coverUrl" validate:"omitempty,url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug := utils.Slugify(reqData.Title)

	var existing contentModels.Article
	if err := database.Database.Db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An article with this title already exists!", nil)
	}

	article := contentModels.Article{
		Title:    reqData.Title,
		Slug:     slug,
		Excerpt:  reqData.Excerpt,
		Body:     reqData.Body,
		CoverURL: reqData.CoverURL,
		AuthorID: admin.ID,
		Status:   contentModels.ArticleDraft,
	}

	if err := database.Database.Db.Create(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Article created successfully.", article)
}

// AdminUpdateArticle edits an article's content fields
func AdminUpdateArticle(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	articleID := c.Locals("articleID").(int)

	reqData, ok := c.Locals("validatedArticleUpdate").(*struct {
		Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
		Excerpt  *string `json:"excerpt" validate:"omitempty,max=500"`
		Body     *string `json:"body" validate:"omitempty"`
		CoverURL *string `json:"coverUrl" validate:"omitempty,url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var article contentModels.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", articleID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	if reqData.Title != nil {
		article.Title = *reqData.Title
		article.Slug = utils.Slugify(*reqData.Title)
	}
	if reqData.Excerpt != nil {
		article.Excerpt = *reqData.Excerpt
	}
	if reqData.Body != nil {
		article.Body = *reqData.Body
	}
	if reqData.CoverURL != nil {
		article.CoverURL = *reqData.CoverURL
	}

	if err := database.Database.Db.Save(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article updated successfully.", article)
}

// AdminPublishArticle publishes immediately or schedules for later.
// A nil publishAt means publish now.
func AdminPublishArticle(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	articleID := c.Locals("articleID").(int)

	reqData, ok := c.Locals("validatedPublish").(*struct {
		PublishAt *time.Time `json:"publishAt"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var article contentModels.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", articleID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	if reqData.PublishAt != nil && reqData.PublishAt.After(time.Now()) {
		article.Status = contentModels.ArticleScheduled
		article.PublishAt = reqData.PublishAt
		article.PublishedAt = nil
	} else {
		publishedAt := time.Now()
		article.Status = contentModels.ArticlePublished
		article.PublishAt = nil
		article.PublishedAt = &publishedAt
	}

	if err := database.Database.Db.Save(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article publish state updated.", article)
}

// AdminUnpublishArticle moves an article back to draft
func AdminUnpublishArticle(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	articleID := c.Locals("articleID").(int)

	var article contentModels.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", articleID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	article.Status = contentModels.ArticleDraft
	article.PublishAt = nil
	article.PublishedAt = nil

	if err := database.Database.Db.Save(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unpublish article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article moved to draft.", article)
}

// AdminDeleteArticle soft-deletes an article
func AdminDeleteArticle(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	articleID := c.Locals("articleID").(int)

	var article contentModels.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", articleID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	article.IsDeleted = true
	if err := database.Database.Db.Save(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article deleted successfully.", nil)
}

// AdminGetAllArticles lists articles of every status
func AdminGetAllArticles(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

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
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&articles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch articles!", nil)
	}

	database.Database.Db.Model(&contentModels.Article{}).
		Where("is_deleted = ?", false).Count(&total)

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
