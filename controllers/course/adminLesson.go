package controllers

import (
	"log"

	"khanqah/database"
	"khanqah/middleware"
	courseModels "khanqah/models/course"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateLesson adds a lesson to a module. For VIDEO lessons without an
// explicit duration the video host is asked for one; failure there leaves
// the duration unset.
func AdminCreateLesson(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title           string         `json:"title"`
		Type            string         `json:"type"`
		DurationMinutes *int           `json:"duration_minutes"`
		IsFree          bool           `json:"is_free"`
		OrderIndex      *int           `json:"order_index"`
		VideoURL        string         `json:"video_url"`
		Body            string         `json:"body"`
		QuizData        datatypes.JSON `json:"quiz_data"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := courseModels.Lesson{
		ModuleID:        uint(moduleID),
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Type:            reqData.Type,
		DurationMinutes: reqData.DurationMinutes,
		IsFree:          reqData.IsFree,
		VideoURL:        reqData.VideoURL,
		Body:            reqData.Body,
		QuizData:        reqData.QuizData,
	}

	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", moduleID, false).Count(&count)
		lesson.OrderIndex = int(count) + 1
	}

	// Resolve the duration from the video host when not supplied
	if lesson.Type == courseModels.LessonVideo && lesson.DurationMinutes == nil && lesson.VideoURL != "" {
		if minutes, err := utils.FetchVideoDurationMinutes(lesson.VideoURL); err == nil {
			lesson.DurationMinutes = &minutes
		} else {
			log.Printf("Could not resolve video duration for %s: %v", lesson.VideoURL, err)
		}
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	// Keep enrollment totals in line with the new lesson count
	refreshEnrollmentTotals(uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates a lesson's fields
func AdminUpdateLesson(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title           string         `json:"title"`
		Type            string         `json:"type"`
		DurationMinutes *int           `json:"duration_minutes"`
		IsFree          *bool          `json:"is_free"`
		OrderIndex      *int           `json:"order_index"`
		VideoURL        string         `json:"video_url"`
		Body            string         `json:"body"`
		QuizData        datatypes.JSON `json:"quiz_data"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Type != "" {
		lesson.Type = reqData.Type
	}
	if reqData.DurationMinutes != nil {
		lesson.DurationMinutes = reqData.DurationMinutes
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.Body != "" {
		lesson.Body = reqData.Body
	}
	if len(reqData.QuizData) > 0 {
		lesson.QuizData = reqData.QuizData
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson
func AdminDeleteLesson(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	refreshEnrollmentTotals(lesson.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// refreshEnrollmentTotals recomputes progress for every enrollment of a
// course after its lesson set changed
func refreshEnrollmentTotals(courseID uint) {
	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&enrollments).Error; err != nil {
		log.Printf("Failed to fetch enrollments for course %d: %v", courseID, err)
		return
	}

	for _, enrollment := range enrollments {
		updateEnrollmentProgress(enrollment.UserID, courseID)
	}
}
