package controllers

import (
	"log"
	"time"

	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	contentModels "khanqah/models/content"
	courseModels "khanqah/models/course"
	forumModels "khanqah/models/forum"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminGetCourseEnrollments lists all enrollments of a course with user info
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var students []fiber.Map
	for _, enrollment := range enrollments {
		var user models.User
		if err := database.Database.Db.First(&user, enrollment.UserID).Error; err != nil {
			continue
		}

		students = append(students, fiber.Map{
			"user_id":           user.ID,
			"name":              user.Name,
			"email":             user.Email,
			"status":            enrollment.Status,
			"progress":          enrollment.Progress,
			"completed_lessons": enrollment.CompletedLessons,
			"total_lessons":     enrollment.TotalLessons,
			"enrolled_at":       enrollment.EnrolledAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": students,
	})
}

// AdminGetCompletedStudents lists students who finished a course
func AdminGetCompletedStudents(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("course_id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.StatusCompleted, false).
		Order("completed_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed students!", nil)
	}

	var students []fiber.Map
	for _, enrollment := range enrollments {
		var user models.User
		if err := database.Database.Db.First(&user, enrollment.UserID).Error; err != nil {
			continue
		}

		students = append(students, fiber.Map{
			"user_id":      user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"completed_at": enrollment.CompletedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed students fetched successfully!", fiber.Map{
		"students": students,
	})
}

// AdminGetStudentProgress shows one student's progress across all courses
func AdminGetStudentProgress(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", studentID, false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var courses []fiber.Map
	for _, enrollment := range enrollments {
		var course courseModels.Course
		if err := database.Database.Db.First(&course, enrollment.CourseID).Error; err != nil {
			continue
		}

		courses = append(courses, fiber.Map{
			"course_id":         course.ID,
			"title":             course.Title,
			"status":            enrollment.Status,
			"progress":          enrollment.Progress,
			"completed_lessons": enrollment.CompletedLessons,
			"total_lessons":     enrollment.TotalLessons,
		})
	}

	student.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": student,
		"courses": courses,
	})
}

// AdminGetPendingCertificates lists certificate requests awaiting review
func AdminGetPendingCertificates(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	var requests []courseModels.CertificateRequest
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", "PENDING", false).
		Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending certificate requests fetched successfully!", fiber.Map{
		"requests": requests,
	})
}

// AdminGetIssuedCertificates lists all issued certificates
func AdminGetIssuedCertificates(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
	})
}

// AdminApproveCertificate approves a request and issues the certificate
func AdminApproveCertificate(c *fiber.Ctx) error {
	admin := requireAdmin(c)
	if admin == nil {
		return nil
	}

	requestID := c.Locals("requestID").(int)

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", requestID, "PENDING", false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, request.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.First(&course, request.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	approvedAt := time.Now()
	request.Status = "APPROVED"
	request.ApprovedAt = &approvedAt
	request.ApprovedBy = &admin.ID

	certificateNumber := utils.GenerateCertificateNumber()
	certificate := courseModels.Certificate{
		UserID:            request.UserID,
		CourseID:          request.CourseID,
		CertificateNumber: certificateNumber,
		CertificateURL:    "/certificate/verify/" + certificateNumber,
		IssuedAt:          approvedAt,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Save(&request).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate request!", nil)
	}
	if err := tx.Create(&certificate).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}
	tx.Commit()

	go func(email, name, title, number string) {
		if err := utils.SendCertificateEmail(email, name, title, number); err != nil {
			log.Printf("Error sending certificate email: %v", err)
		}
	}(user.Email, user.Name, course.Title, certificate.CertificateNumber)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved and issued successfully!", certificate)
}

// AdminRejectCertificate rejects a pending request with a reason
func AdminRejectCertificate(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	requestID := c.Locals("requestID").(int)

	reqData, ok := c.Locals("validatedRejection").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", requestID, "PENDING", false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	request.Status = "REJECTED"
	request.RejectionReason = reqData.Reason

	if err := database.Database.Db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected.", request)
}

// AdminDashboardStats returns platform-wide counters plus this month's
// activity
func AdminDashboardStats(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	db := database.Database.Db

	var totalUsers, totalCourses, totalEnrollments, completedEnrollments int64
	var totalArticles, totalEbooks, openQuestions, pendingCertificates int64

	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = ?", courseModels.StatusCompleted, false).Count(&completedEnrollments)
	db.Model(&contentModels.Article{}).Where("status = ? AND is_deleted = ?", contentModels.ArticlePublished, false).Count(&totalArticles)
	db.Model(&contentModels.Ebook{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalEbooks)
	db.Model(&forumModels.Question{}).Where("is_answered = ? AND is_deleted = ?", false, false).Count(&openQuestions)
	db.Model(&courseModels.CertificateRequest{}).Where("status = ? AND is_deleted = ?", "PENDING", false).Count(&pendingCertificates)

	monthStart := now.BeginningOfMonth()
	var newUsersThisMonth, newEnrollmentsThisMonth int64
	db.Model(&models.User{}).Where("created_at >= ? AND is_deleted = ?", monthStart, false).Count(&newUsersThisMonth)
	db.Model(&courseModels.Enrollment{}).Where("created_at >= ? AND is_deleted = ?", monthStart, false).Count(&newEnrollmentsThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":                totalUsers,
		"total_courses":              totalCourses,
		"total_enrollments":          totalEnrollments,
		"completed_enrollments":      completedEnrollments,
		"total_articles":             totalArticles,
		"total_ebooks":               totalEbooks,
		"open_questions":             openQuestions,
		"pending_certificates":       pendingCertificates,
		"new_users_this_month":       newUsersThisMonth,
		"new_enrollments_this_month": newEnrollmentsThisMonth,
	})
}
