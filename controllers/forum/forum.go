package forumController

import (
	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	courseModels "khanqah/models/course"
	forumModels "khanqah/models/forum"

	"github.com/gofiber/fiber/v2"
)

// AskQuestion submits a question to the forum
func AskQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Title    string `json:"title" validate:"required,min=5,max=200"`
		Body     string `json:"body" validate:"required,min=10"`
		CourseID *uint  `json:"courseId" validate:"omitempty,min=1"`
		IsPublic *bool  `json:"isPublic"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.CourseID != nil {
		var course courseModels.Course
		if err := database.Database.Db.
			Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).
			First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
	}

	question := forumModels.Question{
		UserID:   userId,
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Body:     reqData.Body,
		IsPublic: true,
	}
	if reqData.IsPublic != nil {
		question.IsPublic = *reqData.IsPublic
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question submitted successfully.", question)
}

// GetQuestions lists public answered questions, plus the caller's own
// regardless of state when authenticated
func GetQuestions(c *fiber.Ctx) error {
	userId, isAuthed := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedQuestionList").(*struct {
		Page     *int  `json:"page" validate:"required,min=1"`
		Limit    *int  `json:"limit" validate:"required,min=1,max=100"`
		CourseID *uint `json:"courseId" validate:"omitempty,min=1"`
		Mine     bool  `json:"mine"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db.Model(&forumModels.Question{}).Where("is_deleted = ?", false)

	if reqData.Mine {
		if !isAuthed {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Login required!", nil)
		}
		query = query.Where("user_id = ?", userId)
	} else if isAuthed {
		query = query.Where("(is_public = ? AND is_answered = ?) OR user_id = ?", true, true, userId)
	} else {
		query = query.Where("is_public = ? AND is_answered = ?", true, true)
	}

	if reqData.CourseID != nil {
		query = query.Where("course_id = ?", *reqData.CourseID)
	}

	var total int64
	query.Count(&total)

	var questions []forumModels.Question
	if err := query.Order("created_at desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	response := map[string]interface{}{
		"questions": questions,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", response)
}

// GetQuestion returns one question with its answers. Private or unanswered
// questions are visible only to their author and admins.
func GetQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	userId, isAuthed := c.Locals("userId").(uint)
	userRole, _ := c.Locals("userRole").(string)

	var question forumModels.Question
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", questionID, false).
		First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	isOwner := isAuthed && question.UserID == userId
	isAdmin := userRole == "ADMIN"
	if (!question.IsPublic || !question.IsAnswered) && !isOwner && !isAdmin {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	var answers []forumModels.Answer
	if err := database.Database.Db.
		Where("question_id = ? AND is_deleted = ?", question.ID, false).
		Order("created_at asc").
		Find(&answers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch answers!", nil)
	}

	response := map[string]interface{}{
		"question": question,
		"answers":  answers,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", response)
}

// AdminAnswerQuestion posts an answer and marks the question answered
func AdminAnswerQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}
	if admin.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	questionID := c.Locals("questionID").(int)

	reqData, ok := c.Locals("validatedAnswer").(*struct {
		Body string `json:"body" validate:"required,min=10"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var question forumModels.Question
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", questionID, false).
		First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	answer := forumModels.Answer{
		QuestionID: question.ID,
		UserID:     userId,
		Body:       reqData.Body,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&answer).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post answer!", nil)
	}
	if !question.IsAnswered {
		question.IsAnswered = true
		if err := tx.Save(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answer posted successfully.", answer)
}

// AdminGetOpenQuestions lists unanswered questions for review
func AdminGetOpenQuestions(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}
	if admin.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionList").(*struct {
		Page     *int  `json:"page" validate:"required,min=1"`
		Limit    *int  `json:"limit" validate:"required,min=1,max=100"`
		CourseID *uint `json:"courseId" validate:"omitempty,min=1"`
		Mine     bool  `json:"mine"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db.Model(&forumModels.Question{}).
		Where("is_answered = ? AND is_deleted = ?", false, false)
	if reqData.CourseID != nil {
		query = query.Where("course_id = ?", *reqData.CourseID)
	}

	var total int64
	query.Count(&total)

	var questions []forumModels.Question
	if err := query.Order("created_at asc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	response := map[string]interface{}{
		"questions": questions,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Open questions fetched successfully!", response)
}
