package controllers

import (
	"errors"
	"log"

	"khanqah/database"
	"khanqah/middleware"
	courseModels "khanqah/models/course"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LessonView is a lesson as shown on the course page. Content fields are
// stripped when the viewer cannot access the lesson.
type LessonView struct {
	courseModels.Lesson
	Progress *courseModels.LessonProgress `json:"progress"`
	IsLocked bool                         `json:"is_locked"`
}

// ModuleView is a module with its lessons prepared for the course page
type ModuleView struct {
	courseModels.Module
	Lessons []LessonView `json:"lessons"`
}

func GetAllCourses(c *fiber.Ctx) error {
	// Published courses are public; pagination comes from the validator
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	if !ok {
		var courses []courseModels.Course
		if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
			"courses": courses,
		})
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseBySlug assembles the full course page view model: the
// module/lesson outline, the viewer's enrollment (nil when anonymous or
// not enrolled), per-lesson progress, and the derived progress summary.
// Only a failed course fetch is fatal; enrollment and progress lookups
// degrade to absence so the outline always renders.
func GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)

	userID, isAuthed := c.Locals("userId").(uint)
	userRole, _ := c.Locals("userRole").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	// Unpublished courses are only visible to admins
	if !course.IsPublished && userRole != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course modules!", nil)
	}

	var lessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).
		Order("order_index asc, id asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course lessons!", nil)
	}

	enrollment := lookupEnrollment(userID, course.ID, isAuthed)
	progressByLesson := lookupLessonProgress(userID, course.ID, lessons, isAuthed)

	// Assemble per-module state for the aggregator and the response
	lessonsByModule := make(map[uint][]courseModels.Lesson)
	for _, lesson := range lessons {
		lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], lesson)
	}

	moduleStates := make([]utils.ModuleState, 0, len(modules))
	moduleViews := make([]ModuleView, 0, len(modules))
	for _, module := range modules {
		state := utils.ModuleState{Module: module}
		view := ModuleView{Module: module, Lessons: []LessonView{}}

		for _, lesson := range lessonsByModule[module.ID] {
			progress := progressByLesson[lesson.ID]
			state.Lessons = append(state.Lessons, utils.LessonState{Lesson: lesson, Progress: progress})

			lv := LessonView{Lesson: lesson, Progress: progress}
			if !utils.CanAccessLesson(lesson, enrollment) {
				lv.IsLocked = true
				lv.VideoURL = ""
				lv.Body = ""
				lv.QuizData = nil
			}
			view.Lessons = append(view.Lessons, lv)
		}

		moduleStates = append(moduleStates, state)
		moduleViews = append(moduleViews, view)
	}

	summary := utils.SummarizeCourse(moduleStates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     course,
		"modules":    moduleViews,
		"enrollment": enrollment,
		"summary":    summary,
	})
}

// lookupEnrollment returns the viewer's enrollment for a course, or nil.
// Not-enrolled and lookup failures both map to nil: the course page must
// render for anonymous and non-enrolled viewers.
func lookupEnrollment(userID, courseID uint, isAuthed bool) *courseModels.Enrollment {
	if !isAuthed {
		return nil
	}

	var enrollment courseModels.Enrollment
	err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Enrollment lookup failed for user %d course %d: %v", userID, courseID, err)
		}
		return nil
	}
	return &enrollment
}

// lookupLessonProgress fetches the viewer's progress rows for a lesson set
// in one batch and indexes them by lesson id. Failures degrade to an empty
// map ("not started"), never an error.
func lookupLessonProgress(userID, courseID uint, lessons []courseModels.Lesson, isAuthed bool) map[uint]*courseModels.LessonProgress {
	byLesson := make(map[uint]*courseModels.LessonProgress)
	if !isAuthed || len(lessons) == 0 {
		return byLesson
	}

	lessonIDs := make([]uint, 0, len(lessons))
	for _, lesson := range lessons {
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	var rows []courseModels.LessonProgress
	err := database.Database.Db.Where("user_id = ? AND course_id = ? AND lesson_id IN ? AND is_deleted = ?",
		userID, courseID, lessonIDs, false).Find(&rows).Error
	if err != nil {
		log.Printf("Lesson progress lookup failed for user %d course %d: %v", userID, courseID, err)
		return byLesson
	}

	for i := range rows {
		byLesson[rows[i].LessonID] = &rows[i]
	}
	return byLesson
}
