package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"khanqah/config"
	authController "khanqah/controllers/auth"
	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	courseModels "khanqah/models/course"
	courseRoutes "khanqah/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role, Password: "x", IsEmailVerified: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	require.NoError(t, authController.SeedPermissions(database.Database.Db, role, user.ID))

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func mins(n int) *int { return &n }

// seedCourse creates a published course with one module holding a free and
// a paid lesson, and returns them.
func seedCourse(t *testing.T) (courseModels.Course, courseModels.Lesson, courseModels.Lesson) {
	t.Helper()
	db := database.Database.Db

	course := courseModels.Course{
		Title:       "Tasawwuf Basics",
		Slug:        "tasawwuf-basics",
		Level:       "BEGINNER",
		Status:      "PUBLISHED",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Introduction", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	free := courseModels.Lesson{
		ModuleID:        module.ID,
		CourseID:        course.ID,
		Title:           "Welcome",
		Type:            courseModels.LessonVideo,
		DurationMinutes: mins(10),
		IsFree:          true,
		OrderIndex:      1,
		VideoURL:        "https://videos.example.com/welcome",
		IsPublished:     true,
	}
	require.NoError(t, db.Create(&free).Error)

	paid := courseModels.Lesson{
		ModuleID:        module.ID,
		CourseID:        course.ID,
		Title:           "The Path",
		Type:            courseModels.LessonVideo,
		DurationMinutes: mins(20),
		OrderIndex:      2,
		VideoURL:        "https://videos.example.com/the-path",
		IsPublished:     true,
	}
	require.NoError(t, db.Create(&paid).Error)

	return course, free, paid
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env
}

func TestEnrollTwiceReturnsConflict(t *testing.T) {
	app := setupApp(t)
	course, _, _ := seedCourse(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	enrollPath := fmt.Sprintf("/course/%d/enroll", course.ID)

	status, env := doRequest(t, app, http.MethodPost, enrollPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)

	var enrollment courseModels.Enrollment
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, courseModels.StatusEnrolled, enrollment.Status)
	assert.Equal(t, 2, enrollment.TotalLessons)
	assert.Equal(t, 0, enrollment.Progress)

	status, env = doRequest(t, app, http.MethodPost, enrollPath, token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Status)
}

func TestEnrollUnpublishedCourseNotFound(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	course := courseModels.Course{Title: "Draft Course", Slug: "draft-course", Status: "DRAFT"}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAnonymousCourseViewLocksPaidLessons(t *testing.T) {
	app := setupApp(t)
	course, free, paid := seedCourse(t)

	status, env := doRequest(t, app, http.MethodGet, "/course/"+course.Slug, "", nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Enrollment *courseModels.Enrollment `json:"enrollment"`
		Modules    []struct {
			Lessons []struct {
				ID       uint   `json:"ID"`
				VideoURL string `json:"video_url"`
				IsLocked bool   `json:"is_locked"`
			} `json:"lessons"`
		} `json:"modules"`
		Summary struct {
			TotalLessons     int `json:"total_lessons"`
			CompletedLessons int `json:"completed_lessons"`
			ProgressPercent  int `json:"progress_percent"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Nil(t, data.Enrollment)
	require.Len(t, data.Modules, 1)
	require.Len(t, data.Modules[0].Lessons, 2)

	for _, lesson := range data.Modules[0].Lessons {
		switch lesson.ID {
		case free.ID:
			assert.False(t, lesson.IsLocked)
			assert.NotEmpty(t, lesson.VideoURL)
		case paid.ID:
			assert.True(t, lesson.IsLocked)
			assert.Empty(t, lesson.VideoURL)
		default:
			t.Fatalf("unexpected lesson id %d", lesson.ID)
		}
	}

	assert.Equal(t, 2, data.Summary.TotalLessons)
	assert.Equal(t, 0, data.Summary.CompletedLessons)
	assert.Equal(t, 0, data.Summary.ProgressPercent)
}

func TestEnrolledCourseViewUnlocksLessons(t *testing.T) {
	app := setupApp(t)
	course, _, _ := seedCourse(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doRequest(t, app, http.MethodGet, "/course/"+course.Slug, token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Enrollment *courseModels.Enrollment `json:"enrollment"`
		Modules    []struct {
			Lessons []struct {
				IsLocked bool   `json:"is_locked"`
				VideoURL string `json:"video_url"`
			} `json:"lessons"`
		} `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	require.NotNil(t, data.Enrollment)
	require.Len(t, data.Modules, 1)
	for _, lesson := range data.Modules[0].Lessons {
		assert.False(t, lesson.IsLocked)
		assert.NotEmpty(t, lesson.VideoURL)
	}
}

func TestPaidLessonRequiresEnrollment(t *testing.T) {
	app := setupApp(t)
	course, free, paid := seedCourse(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	// Free lesson is open even without enrollment
	status, _ := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/course/%d/lesson/%d", course.ID, free.ID), token, nil)
	assert.Equal(t, http.StatusOK, status)

	// Paid lesson is gated
	status, _ = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/course/%d/lesson/%d", course.ID, paid.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Anonymous paid lesson access is also gated
	status, _ = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/course/%d/lesson/%d", course.ID, paid.ID), "", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProgressToggleRecomputesEnrollment(t *testing.T) {
	app := setupApp(t)
	course, free, paid := seedCourse(t)
	user, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	progressPath := func(lessonID uint) string {
		return fmt.Sprintf("/course/%d/lesson/%d/progress", course.ID, lessonID)
	}
	fetchEnrollment := func() courseModels.Enrollment {
		var enrollment courseModels.Enrollment
		require.NoError(t, database.Database.Db.
			Where("user_id = ? AND course_id = ?", user.ID, course.ID).
			First(&enrollment).Error)
		return enrollment
	}

	// One of two lessons done: 50%, IN_PROGRESS
	status, _ = doRequest(t, app, http.MethodPost, progressPath(free.ID), token,
		fiber.Map{"is_completed": true})
	require.Equal(t, http.StatusOK, status)

	enrollment := fetchEnrollment()
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, 1, enrollment.CompletedLessons)
	assert.Equal(t, courseModels.StatusInProgress, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)

	// Re-sending the same state is idempotent
	status, _ = doRequest(t, app, http.MethodPost, progressPath(free.ID), token,
		fiber.Map{"is_completed": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 50, fetchEnrollment().Progress)

	// All lessons done: 100%, COMPLETED with a completion time
	status, _ = doRequest(t, app, http.MethodPost, progressPath(paid.ID), token,
		fiber.Map{"is_completed": true})
	require.Equal(t, http.StatusOK, status)

	enrollment = fetchEnrollment()
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, courseModels.StatusCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	// Unchecking a lesson drops back to IN_PROGRESS and clears the time
	status, _ = doRequest(t, app, http.MethodPost, progressPath(paid.ID), token,
		fiber.Map{"is_completed": false})
	require.Equal(t, http.StatusOK, status)

	enrollment = fetchEnrollment()
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, courseModels.StatusInProgress, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestCourseProgressSummary(t *testing.T) {
	app := setupApp(t)
	course, free, _ := seedCourse(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/lesson/%d/progress", course.ID, free.ID), token,
		fiber.Map{"is_completed": true})
	require.Equal(t, http.StatusOK, status)

	status, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Summary struct {
			TotalLessons             int `json:"total_lessons"`
			CompletedLessons         int `json:"completed_lessons"`
			ProgressPercent          int `json:"progress_percent"`
			TotalDurationMinutes     int `json:"total_duration_minutes"`
			RemainingDurationMinutes int `json:"remaining_duration_minutes"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, 2, data.Summary.TotalLessons)
	assert.Equal(t, 1, data.Summary.CompletedLessons)
	assert.Equal(t, 50, data.Summary.ProgressPercent)
	assert.Equal(t, 30, data.Summary.TotalDurationMinutes)
	assert.Equal(t, 20, data.Summary.RemainingDurationMinutes)
}

func TestCertificateIssueAndVerify(t *testing.T) {
	app := setupApp(t)
	course, free, paid := seedCourse(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	for _, lessonID := range []uint{free.ID, paid.ID} {
		status, _ = doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/course/%d/lesson/%d/progress", course.ID, lessonID), token,
			fiber.Map{"is_completed": true})
		require.Equal(t, http.StatusOK, status)
	}

	status, env := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
	require.Equal(t, http.StatusCreated, status)

	var request courseModels.CertificateRequest
	require.NoError(t, json.Unmarshal(env.Data, &request))

	status, env = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/certificate/%d/approve", request.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	var certificate courseModels.Certificate
	require.NoError(t, json.Unmarshal(env.Data, &certificate))
	require.NotEmpty(t, certificate.CertificateNumber)
	assert.Equal(t, "/certificate/verify/"+certificate.CertificateNumber, certificate.CertificateURL)

	// the stored URL resolves anonymously
	status, env = doRequest(t, app, http.MethodGet, certificate.CertificateURL, "", nil)
	require.Equal(t, http.StatusOK, status)

	var verification struct {
		CertificateNumber string `json:"certificate_number"`
		HolderName        string `json:"holder_name"`
		CourseTitle       string `json:"course_title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verification))
	assert.Equal(t, certificate.CertificateNumber, verification.CertificateNumber)
	assert.Equal(t, "Ahmed", verification.HolderName)
	assert.Equal(t, course.Title, verification.CourseTitle)

	status, _ = doRequest(t, app, http.MethodGet, "/certificate/verify/KS-0000-UNKNOWN", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnpublishedCourseHiddenFromUsers(t *testing.T) {
	app := setupApp(t)

	course := courseModels.Course{Title: "Hidden", Slug: "hidden", Status: "DRAFT"}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	_, userToken := createUser(t, "Ahmed", "ahmed@example.com", "USER")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	status, _ := doRequest(t, app, http.MethodGet, "/course/hidden", userToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodGet, "/course/hidden", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminCreateCourseDuplicateTitleConflict(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	payload := fiber.Map{"title": "Aqeedah Essentials"}

	status, _ := doRequest(t, app, http.MethodPost, "/admin/course/create", adminToken, payload)
	require.Equal(t, http.StatusCreated, status)

	status, env := doRequest(t, app, http.MethodPost, "/admin/course/create", adminToken, payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Status)
}

func TestAdminCreateCourseUrduTitle(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	status, env := doRequest(t, app, http.MethodPost, "/admin/course/create", adminToken,
		fiber.Map{"title": "تصوف کی بنیادیں"})
	require.Equal(t, http.StatusCreated, status)

	var course courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	require.NotEmpty(t, course.Slug)

	// the generated slug resolves on the course page
	status, _ = doRequest(t, app, http.MethodGet, "/course/"+course.Slug, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// a second Urdu title gets its own slug instead of colliding
	status, _ = doRequest(t, app, http.MethodPost, "/admin/course/create", adminToken,
		fiber.Map{"title": "ذکر کی اہمیت"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestAdminCourseLifecycle(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")
	_, userToken := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	// Plain users cannot reach the back office
	status, _ := doRequest(t, app, http.MethodPost, "/admin/course/create", userToken,
		fiber.Map{"title": "New Course"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := doRequest(t, app, http.MethodPost, "/admin/course/create", adminToken,
		fiber.Map{"title": "Aqeedah Essentials", "level": "BEGINNER"})
	require.Equal(t, http.StatusCreated, status)

	var course courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, "aqeedah-essentials", course.Slug)
	assert.False(t, course.IsPublished)

	// Drafts are invisible on the public listing until published
	status, env = doRequest(t, app, http.MethodGet, "/course/list", "", nil)
	require.Equal(t, http.StatusOK, status)
	var listing struct {
		Courses []courseModels.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing.Courses)

	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/publish", course.ID), adminToken,
		fiber.Map{"publish": true})
	require.Equal(t, http.StatusOK, status)

	status, env = doRequest(t, app, http.MethodGet, "/course/list", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Courses, 1)
}
