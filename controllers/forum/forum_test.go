package forumController_test

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
	forumModels "khanqah/models/forum"
	forumRoutes "khanqah/routers/forumRoutes"

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

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	forumRoutes.SetupForumRoutes(app)
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

func askQuestion(t *testing.T, app *fiber.App, token, title, body string) forumModels.Question {
	t.Helper()

	status, env := doRequest(t, app, http.MethodPost, "/forum/question", token,
		fiber.Map{"title": title, "body": body})
	require.Equal(t, http.StatusCreated, status)

	var question forumModels.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))
	return question
}

type questionListing struct {
	Questions []forumModels.Question `json:"questions"`
}

func TestQuestionVisibility(t *testing.T) {
	app := setupApp(t)
	owner, ownerToken := askerWithToken(t)
	_, otherToken := createUser(t, "Imran", "imran@example.com", "USER")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	question := askQuestion(t, app, ownerToken, "What breaks wudu?", "I would like a detailed ruling please.")
	assert.Equal(t, owner.ID, question.UserID)
	assert.True(t, question.IsPublic)
	assert.False(t, question.IsAnswered)

	detailPath := fmt.Sprintf("/forum/question/%d", question.ID)

	// Unanswered questions are hidden from everyone but the owner and admins
	status, _ := doRequest(t, app, http.MethodGet, detailPath, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodGet, detailPath, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodGet, detailPath, ownerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodGet, detailPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// The anonymous feed shows nothing until an answer lands
	status, env := doRequest(t, app, http.MethodGet, "/forum/questions?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	var listing questionListing
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing.Questions)
}

func TestAnswerFlow(t *testing.T) {
	app := setupApp(t)
	_, ownerToken := askerWithToken(t)
	admin, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	question := askQuestion(t, app, ownerToken, "Is fasting while travelling required?", "I travel often for work and wonder about this.")

	// The open queue shows it
	status, env := doRequest(t, app, http.MethodGet, "/admin/forum/open?page=1&limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var listing questionListing
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Len(t, listing.Questions, 1)

	status, env = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/forum/question/%d/answer", question.ID), adminToken,
		fiber.Map{"body": "A traveller may shorten and defer, details follow."})
	require.Equal(t, http.StatusCreated, status)

	var answer forumModels.Answer
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.Equal(t, question.ID, answer.QuestionID)
	assert.Equal(t, admin.ID, answer.UserID)

	// Question is now marked answered and appears on the public feed
	var updated forumModels.Question
	require.NoError(t, database.Database.Db.First(&updated, question.ID).Error)
	assert.True(t, updated.IsAnswered)

	status, env = doRequest(t, app, http.MethodGet, "/forum/questions?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Questions, 1)

	// And it drops out of the open queue
	status, env = doRequest(t, app, http.MethodGet, "/admin/forum/open?page=1&limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing.Questions)

	// Detail view includes the answer
	status, env = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/forum/question/%d", question.ID), "", nil)
	require.Equal(t, http.StatusOK, status)

	var detail struct {
		Question forumModels.Question `json:"question"`
		Answers  []forumModels.Answer `json:"answers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Answers, 1)
	assert.Equal(t, answer.ID, detail.Answers[0].ID)
}

func TestMineFilterRequiresAuth(t *testing.T) {
	app := setupApp(t)
	_, token := askerWithToken(t)

	askQuestion(t, app, token, "A question of my own", "Asked only to exercise the mine filter.")

	status, _ := doRequest(t, app, http.MethodGet, "/forum/questions?page=1&limit=10&mine=true", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := doRequest(t, app, http.MethodGet, "/forum/questions?page=1&limit=10&mine=true", token, nil)
	require.Equal(t, http.StatusOK, status)
	var listing questionListing
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Questions, 1)
}

func TestAnswerRequiresPermission(t *testing.T) {
	app := setupApp(t)
	_, ownerToken := askerWithToken(t)

	question := askQuestion(t, app, ownerToken, "Can a regular user answer?", "This should not be allowed at all.")

	status, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/forum/question/%d/answer", question.ID), ownerToken,
		fiber.Map{"body": "Answering my own question here."})
	assert.Equal(t, http.StatusForbidden, status)
}

func askerWithToken(t *testing.T) (models.User, string) {
	t.Helper()
	return createUser(t, "Ahmed", "ahmed@example.com", "USER")
}
