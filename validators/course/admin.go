package courseValidator

import (
	"encoding/json"
	"strings"

	"khanqah/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var courseLevels = map[string]bool{
	"BEGINNER":     true,
	"INTERMEDIATE": true,
	"ADVANCED":     true,
}

var lessonTypes = map[string]bool{
	"VIDEO":   true,
	"ARTICLE": true,
	"QUIZ":    true,
}

// ModuleID validates the :moduleId path parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := c.ParamsInt("moduleId")
		if err != nil || moduleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// StudentID validates the :studentId path parameter
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := c.ParamsInt("studentId")
		if err != nil || studentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student ID!", nil)
		}

		c.Locals("studentID", studentID)
		return c.Next()
	}
}

// RequestID validates the :requestId path parameter
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := c.ParamsInt("requestId")
		if err != nil || requestID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
		}

		c.Locals("requestID", requestID)
		return c.Next()
	}
}

// CreateCourse validates a new course payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Level        string `json:"level"`
			Duration     string `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Level != "" && !courseLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a course update payload. Empty fields are left
// unchanged by the handler.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Level        string `json:"level"`
			Duration     string `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Level != "" && !courseLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// PublishCourse validates a publish/unpublish request
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Publish *bool `json:"publish"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Publish == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"publish": "The publish field is required!",
			})
		}

		c.Locals("publishStatus", *reqData.Publish)
		return c.Next()
	}
}

// CreateModule validates a new module payload
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates a module update payload
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// CreateLesson validates a new lesson payload
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string         `json:"title"`
			Type            string         `json:"type"`
			DurationMinutes *int           `json:"duration_minutes"`
			IsFree          bool           `json:"is_free"`
			OrderIndex      *int           `json:"order_index"`
			VideoURL        string         `json:"video_url"`
			Body            string         `json:"body"`
			QuizData        datatypes.JSON `json:"quiz_data"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if !lessonTypes[reqData.Type] {
			errors["type"] = "Type must be VIDEO, ARTICLE or QUIZ!"
		}
		if reqData.DurationMinutes != nil && *reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}
		switch reqData.Type {
		case "VIDEO":
			if strings.TrimSpace(reqData.VideoURL) == "" {
				errors["video_url"] = "Video URL is required for video lessons!"
			}
		case "ARTICLE":
			if strings.TrimSpace(reqData.Body) == "" {
				errors["body"] = "Body is required for article lessons!"
			}
		case "QUIZ":
			if len(reqData.QuizData) == 0 || !json.Valid(reqData.QuizData) {
				errors["quiz_data"] = "Valid quiz data is required for quiz lessons!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates a lesson update payload
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string         `json:"title"`
			Type            string         `json:"type"`
			DurationMinutes *int           `json:"duration_minutes"`
			IsFree          *bool          `json:"is_free"`
			OrderIndex      *int           `json:"order_index"`
			VideoURL        string         `json:"video_url"`
			Body            string         `json:"body"`
			QuizData        datatypes.JSON `json:"quiz_data"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Type != "" && !lessonTypes[reqData.Type] {
			errors["type"] = "Type must be VIDEO, ARTICLE or QUIZ!"
		}
		if reqData.DurationMinutes != nil && *reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}
		if len(reqData.QuizData) > 0 && !json.Valid(reqData.QuizData) {
			errors["quiz_data"] = "Quiz data must be valid JSON!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// RejectCertificate validates a rejection payload
func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Reason) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "A rejection reason is required!",
			})
		}

		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}
