package contentValidator

import (
	"strings"
	"time"

	"khanqah/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed on the '" + fe.Tag() + "' rule!"
		}
	} else {
		errors["request"] = "Invalid request data!"
	}
	return errors
}

// ContentList validates pagination query params for content listings
func ContentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page" validate:"required,min=1"`
			Limit *int `json:"limit" validate:"required,min=1,max=100"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// ArticleSlug validates the :slug path parameter
func ArticleSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Article slug is required!", nil)
		}

		c.Locals("articleSlug", slug)
		return c.Next()
	}
}

// EbookSlug validates the :slug path parameter
func EbookSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "E-book slug is required!", nil)
		}

		c.Locals("ebookSlug", slug)
		return c.Next()
	}
}

// ArticleID validates the :articleId path parameter
func ArticleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		articleID, err := c.ParamsInt("articleId")
		if err != nil || articleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid article ID!", nil)
		}

		c.Locals("articleID", articleID)
		return c.Next()
	}
}

// EbookID validates the :ebookId path parameter
func EbookID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ebookID, err := c.ParamsInt("ebookId")
		if err != nil || ebookID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid e-book ID!", nil)
		}

		c.Locals("ebookID", ebookID)
		return c.Next()
	}
}

// CreateArticle validates a new article payload
func CreateArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    string `json:"title" validate:"required,min=3,max=200"`
			Excerpt  string `json:"excerpt" validate:"omitempty,max=500"`
			Body     string `json:"body" validate:"required"`
			CoverURL string `json:"coverUrl" validate:"omitempty,url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedArticle", reqData)
		return c.Next()
	}
}

// UpdateArticle validates an article update payload
func UpdateArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
			Excerpt  *string `json:"excerpt" validate:"omitempty,max=500"`
			Body     *string `json:"body" validate:"omitempty"`
			CoverURL *string `json:"coverUrl" validate:"omitempty,url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedArticleUpdate", reqData)
		return c.Next()
	}
}

// PublishArticle validates the publish payload. publishAt in the past or
// absent means publish immediately.
func PublishArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PublishAt *time.Time `json:"publishAt"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

// UpdateEbook validates an e-book update payload
func UpdateEbook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
			Author      *string `json:"author" validate:"omitempty,max=200"`
			Description *string `json:"description" validate:"omitempty"`
			Language    *string `json:"language" validate:"omitempty,max=10"`
			Pages       *int    `json:"pages" validate:"omitempty,min=1"`
			IsPublished *bool   `json:"isPublished"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedEbookUpdate", reqData)
		return c.Next()
	}
}

// Bookmark validates a bookmark toggle payload
func Bookmark() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TargetType string `json:"targetType" validate:"required,oneof=ARTICLE EBOOK COURSE"`
			TargetID   uint   `json:"targetId" validate:"required,min=1"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedBookmark", reqData)
		return c.Next()
	}
}

// BookmarkList validates pagination and an optional target type filter
func BookmarkList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page       *int   `json:"page" validate:"required,min=1"`
			Limit      *int   `json:"limit" validate:"required,min=1,max=100"`
			TargetType string `json:"targetType" validate:"omitempty,oneof=ARTICLE EBOOK COURSE"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedBookmarkList", reqData)
		return c.Next()
	}
}
