package contentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"khanqah/config"
	authController "khanqah/controllers/auth"
	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	contentModels "khanqah/models/content"
	contentRoutes "khanqah/routers/contentRoutes"

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
	contentRoutes.SetupContentRoutes(app)
	contentRoutes.SetupAdminContentRoutes(app)
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

func TestArticlePublishLifecycle(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	status, env := doRequest(t, app, http.MethodPost, "/admin/article/create", adminToken,
		fiber.Map{"title": "On Patience", "body": "Patience is...", "excerpt": "A short note"})
	require.Equal(t, http.StatusCreated, status)

	var article contentModels.Article
	require.NoError(t, json.Unmarshal(env.Data, &article))
	assert.Equal(t, "on-patience", article.Slug)
	assert.Equal(t, contentModels.ArticleDraft, article.Status)

	// Re-using the title collides on the slug
	status, _ = doRequest(t, app, http.MethodPost, "/admin/article/create", adminToken,
		fiber.Map{"title": "On Patience", "body": "Another draft"})
	assert.Equal(t, http.StatusConflict, status)

	// Drafts stay off the public listing and slug route
	status, env = doRequest(t, app, http.MethodGet, "/articles/?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	var listing struct {
		Articles []contentModels.Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing.Articles)

	status, _ = doRequest(t, app, http.MethodGet, "/articles/on-patience", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Publishing with no date goes live immediately
	status, env = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/article/%d/publish", article.ID), adminToken, fiber.Map{})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &article))
	assert.Equal(t, contentModels.ArticlePublished, article.Status)
	require.NotNil(t, article.PublishedAt)

	status, env = doRequest(t, app, http.MethodGet, "/articles/on-patience", "", nil)
	require.Equal(t, http.StatusOK, status)

	status, env = doRequest(t, app, http.MethodGet, "/articles/?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Articles, 1)

	// Unpublishing puts it back in the drawer
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/article/%d/unpublish", article.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodGet, "/articles/on-patience", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestArticleScheduledPublish(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	status, env := doRequest(t, app, http.MethodPost, "/admin/article/create", adminToken,
		fiber.Map{"title": "Ramadan Reflections", "body": "..."})
	require.Equal(t, http.StatusCreated, status)

	var article contentModels.Article
	require.NoError(t, json.Unmarshal(env.Data, &article))

	publishAt := time.Now().Add(24 * time.Hour).UTC()
	status, env = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/article/%d/publish", article.ID), adminToken,
		fiber.Map{"publishAt": publishAt.Format(time.RFC3339)})
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, json.Unmarshal(env.Data, &article))
	assert.Equal(t, contentModels.ArticleScheduled, article.Status)
	require.NotNil(t, article.PublishAt)
	assert.Nil(t, article.PublishedAt)

	// Still invisible until the scheduler flips it
	status, _ = doRequest(t, app, http.MethodGet, "/articles/ramadan-reflections", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookmarkToggle(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	now := time.Now()
	article := contentModels.Article{
		Title: "On Gratitude", Slug: "on-gratitude", Body: "...",
		Status: contentModels.ArticlePublished, PublishedAt: &now,
	}
	require.NoError(t, database.Database.Db.Create(&article).Error)

	payload := fiber.Map{"targetType": "ARTICLE", "targetId": article.ID}

	var toggle struct {
		Bookmarked bool `json:"bookmarked"`
	}

	status, env := doRequest(t, app, http.MethodPost, "/bookmarks/", token, payload)
	require.Equal(t, http.StatusCreated, status)
	require.NoError(t, json.Unmarshal(env.Data, &toggle))
	assert.True(t, toggle.Bookmarked)

	status, env = doRequest(t, app, http.MethodGet, "/bookmarks/?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	var listing struct {
		Bookmarks []contentModels.Bookmark `json:"bookmarks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Bookmarks, 1)

	// Toggling again removes it
	status, env = doRequest(t, app, http.MethodPost, "/bookmarks/", token, payload)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &toggle))
	assert.False(t, toggle.Bookmarked)

	status, env = doRequest(t, app, http.MethodGet, "/bookmarks/?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing.Bookmarks)
}

func TestBookmarkMissingTarget(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	status, _ := doRequest(t, app, http.MethodPost, "/bookmarks/", token,
		fiber.Map{"targetType": "EBOOK", "targetId": 9999})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminContentRequiresPermission(t *testing.T) {
	app := setupApp(t)
	_, userToken := createUser(t, "Ahmed", "ahmed@example.com", "USER")

	status, _ := doRequest(t, app, http.MethodPost, "/admin/article/create", userToken,
		fiber.Map{"title": "Nope", "body": "..."})
	assert.Equal(t, http.StatusForbidden, status)
}
