package forumRoutes

import (
	forumController "khanqah/controllers/forum"
	"khanqah/middleware"
	forumValidator "khanqah/validators/forum"

	"github.com/gofiber/fiber/v2"
)

// SetupForumRoutes sets up the Q&A forum routes
func SetupForumRoutes(app *fiber.App) {
	forumGroup := app.Group("/forum")

	forumGroup.Post("/question",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("ask-question"),
		forumValidator.Question(),
		forumController.AskQuestion)

	forumGroup.Get("/questions",
		middleware.OptionalJWTMiddleware,
		forumValidator.QuestionList(),
		forumController.GetQuestions)

	forumGroup.Get("/question/:questionId",
		middleware.OptionalJWTMiddleware,
		forumValidator.QuestionID(),
		forumController.GetQuestion)

	adminGroup := app.Group("/admin/forum",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("answer-questions"))

	adminGroup.Get("/open", forumValidator.QuestionList(), forumController.AdminGetOpenQuestions)
	adminGroup.Post("/question/:questionId/answer",
		forumValidator.QuestionID(),
		forumValidator.Answer(),
		forumController.AdminAnswerQuestion)
}
