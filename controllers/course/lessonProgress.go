package controllers

import (
	"errors"
	"time"

	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	courseModels "khanqah/models/course"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetLesson returns a single lesson's content, gated by enrollment: free
// lessons are open to everyone, the rest need an active enrollment for the
// parent course.
func GetLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	userID, isAuthed := c.Locals("userId").(uint)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?",
		lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	enrollment := lookupEnrollment(userID, uint(courseID), isAuthed)

	if !utils.CanAccessLesson(lesson, enrollment) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course to access this lesson!", nil)
	}

	var progress *courseModels.LessonProgress
	if isAuthed {
		var row courseModels.LessonProgress
		if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?",
			userID, lesson.ID, false).First(&row).Error; err == nil {
			progress = &row
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":   lesson,
		"progress": progress,
	})
}

// UpdateLessonProgress upserts the caller's progress for one lesson and
// recomputes the enrollment summary. The update is idempotent: setting the
// same completion state twice leaves the stored state unchanged. Concurrent
// toggles resolve last-write-wins.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedLessonProgress").(*struct {
		IsCompleted     *bool `json:"is_completed"`
		WatchedDuration *int  `json:"watched_duration"`
		LastPosition    *int  `json:"last_position"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	// Progress on non-free lessons requires enrollment
	enrollment := lookupEnrollment(userID, lesson.CourseID, true)
	if !utils.CanAccessLesson(lesson, enrollment) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// Lazily create the progress row on first update
	var progress courseModels.LessonProgress
	err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		progress = courseModels.LessonProgress{
			UserID:   userID,
			LessonID: uint(lessonID),
			CourseID: lesson.CourseID,
		}
	}

	if reqData.IsCompleted != nil {
		progress.IsCompleted = *reqData.IsCompleted
	}
	if reqData.WatchedDuration != nil {
		progress.WatchedDuration = *reqData.WatchedDuration
	}
	if reqData.LastPosition != nil {
		progress.LastPosition = *reqData.LastPosition
	}

	if err := database.Database.Db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	if enrollment != nil {
		updateEnrollmentProgress(userID, lesson.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}

// GetCourseProgress returns the caller's progress summary for one course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	var lessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc, id asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	enrollment := lookupEnrollment(userID, uint(courseID), true)
	progressByLesson := lookupLessonProgress(userID, uint(courseID), lessons, true)

	lessonsByModule := make(map[uint][]courseModels.Lesson)
	for _, lesson := range lessons {
		lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], lesson)
	}

	moduleStates := make([]utils.ModuleState, 0, len(modules))
	for _, module := range modules {
		state := utils.ModuleState{Module: module}
		for _, lesson := range lessonsByModule[module.ID] {
			state.Lessons = append(state.Lessons, utils.LessonState{Lesson: lesson, Progress: progressByLesson[lesson.ID]})
		}
		moduleStates = append(moduleStates, state)
	}

	summary := utils.SummarizeCourse(moduleStates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"summary":    summary,
	})
}

// updateEnrollmentProgress recomputes an enrollment's counters and status
// from the stored progress rows. Runs after every lesson progress write.
func updateEnrollmentProgress(userID uint, courseID uint) {
	var totalLessons int64
	var completedLessons int64

	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLessons)
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND is_completed = ? AND is_deleted = ?", userID, courseID, true, false).
		Count(&completedLessons)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)
	enrollment.Progress = utils.ProgressPercent(int(completedLessons), int(totalLessons))

	if enrollment.Progress >= 100 && totalLessons > 0 {
		enrollment.Status = courseModels.StatusCompleted
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if enrollment.Progress > 0 {
		enrollment.Status = courseModels.StatusInProgress
		enrollment.CompletedAt = nil
	} else {
		enrollment.Status = courseModels.StatusEnrolled
		enrollment.CompletedAt = nil
	}

	database.Database.Db.Save(&enrollment)
}
