package contentRoutes

import (
	contentController "khanqah/controllers/content"
	"khanqah/middleware"
	contentValidator "khanqah/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes sets up article, e-book and bookmark routes
func SetupContentRoutes(app *fiber.App) {
	articleGroup := app.Group("/articles")
	articleGroup.Get("/", contentValidator.ContentList(), contentController.GetAllArticles)
	articleGroup.Get("/:slug", contentValidator.ArticleSlug(), contentController.GetArticleBySlug)

	ebookGroup := app.Group("/ebooks")
	ebookGroup.Get("/", contentValidator.ContentList(), contentController.GetAllEbooks)
	ebookGroup.Get("/:slug", contentValidator.EbookSlug(), contentController.GetEbookBySlug)

	bookmarkGroup := app.Group("/bookmarks",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-bookmarks"))
	bookmarkGroup.Post("/", contentValidator.Bookmark(), contentController.ToggleBookmark)
	bookmarkGroup.Get("/", contentValidator.BookmarkList(), contentController.GetBookmarks)
}

// SetupAdminContentRoutes sets up the content back office
func SetupAdminContentRoutes(app *fiber.App) {
	articleGroup := app.Group("/admin/article",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-content"))

	articleGroup.Post("/create", contentValidator.CreateArticle(), contentController.AdminCreateArticle)
	articleGroup.Get("/list", contentValidator.ContentList(), contentController.AdminGetAllArticles)
	articleGroup.Put("/:articleId", contentValidator.ArticleID(), contentValidator.UpdateArticle(), contentController.AdminUpdateArticle)
	articleGroup.Post("/:articleId/publish", contentValidator.ArticleID(), contentValidator.PublishArticle(), contentController.AdminPublishArticle)
	articleGroup.Post("/:articleId/unpublish", contentValidator.ArticleID(), contentController.AdminUnpublishArticle)
	articleGroup.Delete("/:articleId", contentValidator.ArticleID(), contentController.AdminDeleteArticle)

	ebookGroup := app.Group("/admin/ebook",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-content"))

	ebookGroup.Post("/create", contentController.AdminCreateEbook)
	ebookGroup.Put("/:ebookId", contentValidator.EbookID(), contentValidator.UpdateEbook(), contentController.AdminUpdateEbook)
	ebookGroup.Delete("/:ebookId", contentValidator.EbookID(), contentController.AdminDeleteEbook)
}
