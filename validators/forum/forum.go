package forumValidator

import (
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

// QuestionID validates the :questionId path parameter
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, err := c.ParamsInt("questionId")
		if err != nil || questionID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
		}

		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// Question validates a new forum question payload
func Question() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    string `json:"title" validate:"required,min=5,max=200"`
			Body     string `json:"body" validate:"required,min=10"`
			CourseID *uint  `json:"courseId" validate:"omitempty,min=1"`
			IsPublic *bool  `json:"isPublic"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// QuestionList validates question listing query params
func QuestionList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int  `json:"page" validate:"required,min=1"`
			Limit    *int  `json:"limit" validate:"required,min=1,max=100"`
			CourseID *uint `json:"courseId" validate:"omitempty,min=1"`
			Mine     bool  `json:"mine"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedQuestionList", reqData)
		return c.Next()
	}
}

// Answer validates an answer payload
func Answer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Body string `json:"body" validate:"required,min=10"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
