package courseRoutes

import (
	controllers "khanqah/controllers/course"
	"khanqah/middleware"
	validators "khanqah/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Listing and enrollment overviews come before the :slug route so the
	// static paths match first
	userGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Course detail is viewable anonymously, locked lessons are stripped
	userGroup.Get("/:slug", middleware.OptionalJWTMiddleware, validators.CourseSlug(), controllers.GetCourseBySlug)

	userGroup.Post("/:courseId/enroll",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("enroll-course"),
		validators.CourseID(),
		controllers.EnrollInCourse)

	userGroup.Get("/:courseId/progress",
		middleware.JWTMiddleware,
		validators.CourseID(),
		controllers.GetCourseProgress)

	userGroup.Post("/:courseId/certificate",
		middleware.JWTMiddleware,
		validators.CourseID(),
		controllers.RequestCertificate)

	userGroup.Get("/:courseId/lesson/:lessonId",
		middleware.OptionalJWTMiddleware,
		validators.CourseID(),
		validators.LessonID(),
		controllers.GetLesson)

	userGroup.Post("/:courseId/lesson/:lessonId/progress",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("track-progress"),
		validators.CourseID(),
		validators.LessonID(),
		validators.LessonProgress(),
		controllers.UpdateLessonProgress)

	// Public certificate verification, linked from issued certificates
	app.Get("/certificate/verify/:number",
		validators.CertificateNumber(),
		controllers.VerifyCertificate)
}
