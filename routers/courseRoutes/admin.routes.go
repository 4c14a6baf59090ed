package courseRoutes

import (
	controllers "khanqah/controllers/course"
	"khanqah/middleware"
	validators "khanqah/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-courses"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Put("/:courseId", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:courseId", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/:courseId", validators.CourseID(), controllers.AdminGetCourseDetails)
	adminGroup.Post("/:courseId/publish", validators.CourseID(), validators.PublishCourse(), controllers.AdminPublishCourse)

	// Module management
	adminGroup.Post("/:courseId/module", validators.CourseID(), validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Get("/:courseId/modules", validators.CourseID(), controllers.AdminListModules)
	adminGroup.Put("/:courseId/module/:moduleId", validators.CourseID(), validators.ModuleID(), validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:courseId/module/:moduleId", validators.CourseID(), validators.ModuleID(), controllers.AdminDeleteModule)

	// Lesson management
	adminGroup.Post("/:courseId/module/:moduleId/lesson", validators.CourseID(), validators.ModuleID(), validators.CreateLesson(), controllers.AdminCreateLesson)

	lessonGroup := app.Group("/admin/lesson",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-courses"))
	lessonGroup.Put("/:lessonId", validators.LessonID(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lessonId", validators.LessonID(), controllers.AdminDeleteLesson)

	// Enrollment and progress tracking
	adminGroup.Get("/:courseId/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)
	adminGroup.Get("/:courseId/completed", validators.CourseID(), controllers.AdminGetCompletedStudents)

	studentGroup := app.Group("/admin/student",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("view-dashboard"))
	studentGroup.Get("/:studentId/progress", validators.StudentID(), controllers.AdminGetStudentProgress)

	// Certificate management
	certsGroup := app.Group("/admin/certificates",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-certificates"))
	certsGroup.Get("/pending", controllers.AdminGetPendingCertificates)
	certsGroup.Get("/issued", controllers.AdminGetIssuedCertificates)

	certGroup := app.Group("/admin/certificate",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-certificates"))
	certGroup.Post("/:requestId/approve", validators.RequestID(), controllers.AdminApproveCertificate)
	certGroup.Post("/:requestId/reject", validators.RequestID(), validators.RejectCertificate(), controllers.AdminRejectCertificate)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("view-dashboard"))
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
