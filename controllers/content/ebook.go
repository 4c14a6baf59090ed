package contentController

import (
	"log"
	"strconv"

	"khanqah/config"
	"khanqah/database"
	"khanqah/middleware"
	contentModels "khanqah/models/content"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllEbooks lists published e-books
func GetAllEbooks(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page" validate:"required,min=1"`
		Limit *int `json:"limit" validate:"required,min=1,max=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var ebooks []contentModels.Ebook
	var total int64

	if err := database.Database.Db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&ebooks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch e-books!", nil)
	}

	database.Database.Db.Model(&contentModels.Ebook{}).
		Where("is_published = ? AND is_deleted = ?", true, false).Count(&total)

	response := map[string]interface{}{
		"ebooks": ebooks,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "E-books fetched successfully!", response)
}

// GetEbookBySlug returns one published e-book
func GetEbookBySlug(c *fiber.Ctx) error {
	slug := c.Locals("ebookSlug").(string)

	var ebook contentModels.Ebook
	if err := database.Database.Db.
		Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).
		First(&ebook).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "E-book not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "E-book fetched successfully!", ebook)
}

// AdminCreateEbook uploads a new e-book. Metadata comes as multipart form
// fields alongside the file.
func AdminCreateEbook(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	title := c.FormValue("title")
	if title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}

	slug := utils.Slugify(title)

	var existing contentModels.Ebook
	if err := database.Database.Db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An e-book with this title already exists!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "E-book file is required!", nil)
	}

	storedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Failed to save e-book file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save e-book file!", nil)
	}

	ebook := contentModels.Ebook{
		Title:       title,
		Slug:        slug,
		Author:      c.FormValue("author"),
		Description: c.FormValue("description"),
		FileURL:     utils.GetFileURL(storedPath),
	}

	if language := c.FormValue("language"); language != "" {
		ebook.Language = language
	}
	if pages := c.FormValue("pages"); pages != "" {
		if n, err := strconv.Atoi(pages); err == nil && n > 0 {
			ebook.Pages = n
		}
	}

	if cover, err := c.FormFile("cover"); err == nil {
		coverPath, err := utils.SaveUploadedFile(cover, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Failed to save e-book cover: %v", err)
		} else {
			ebook.CoverURL = utils.GetFileURL(coverPath)
		}
	}

	if err := database.Database.Db.Create(&ebook).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create e-book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "E-book created successfully.", ebook)
}

// AdminUpdateEbook edits e-book metadata and publish state
func AdminUpdateEbook(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	ebookID := c.Locals("ebookID").(int)

	reqData, ok := c.Locals("validatedEbookUpdate").(*struct {
		Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
		Author      *string `json:"author" validate:"omitempty,max=200"`
		Description *string `json:"description" validate:"omitempty"`
		Language    *string `json:"language" validate:"omitempty,max=10"`
		Pages       *int    `json:"pages" validate:"omitempty,min=1"`
		IsPublished *bool   `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var ebook contentModels.Ebook
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ebookID, false).First(&ebook).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "E-book not found!", nil)
	}

	if reqData.Title != nil {
		ebook.Title = *reqData.Title
		ebook.Slug = utils.Slugify(*reqData.Title)
	}
	if reqData.Author != nil {
		ebook.Author = *reqData.Author
	}
	if reqData.Description != nil {
		ebook.Description = *reqData.Description
	}
	if reqData.Language != nil {
		ebook.Language = *reqData.Language
	}
	if reqData.Pages != nil {
		ebook.Pages = *reqData.Pages
	}
	if reqData.IsPublished != nil {
		ebook.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&ebook).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update e-book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "E-book updated successfully.", ebook)
}

// AdminDeleteEbook soft-deletes an e-book
func AdminDeleteEbook(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	ebookID := c.Locals("ebookID").(int)

	var ebook contentModels.Ebook
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ebookID, false).First(&ebook).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "E-book not found!", nil)
	}

	ebook.IsDeleted = true
	if err := database.Database.Db.Save(&ebook).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete e-book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "E-book deleted successfully.", nil)
}
