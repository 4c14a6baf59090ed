package controllers

import (
	"time"

	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	courseModels "khanqah/models/course"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate lets a student request a certificate once a course is
// fully completed
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	if enrollment.Status != courseModels.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the course before requesting a certificate!", nil)
	}

	// One open or approved request per enrollment
	var existing courseModels.CertificateRequest
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status IN ? AND is_deleted = ?",
		userID, courseID, []string{"PENDING", "APPROVED"}, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already requested for this course!", nil)
	}

	request := courseModels.CertificateRequest{
		UserID:       userID,
		CourseID:     uint(courseID),
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
		RequestedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate requested successfully!", request)
}

// VerifyCertificate resolves an issued certificate by its public number.
// This backs the verification link stored on the certificate itself, so it
// needs no authentication.
func VerifyCertificate(c *fiber.Ctx) error {
	number := c.Locals("certificateNumber").(string)

	var certificate courseModels.Certificate
	if err := database.Database.Db.Where("certificate_number = ? AND is_deleted = ?", number, false).
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var holder models.User
	database.Database.Db.First(&holder, certificate.UserID)

	var course courseModels.Course
	database.Database.Db.First(&course, certificate.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", fiber.Map{
		"certificate_number": certificate.CertificateNumber,
		"issued_at":          certificate.IssuedAt,
		"holder_name":        holder.Name,
		"course_title":       course.Title,
	})
}

// GetUserCertificates lists the caller's issued certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
	})
}
