package userController

import (
	"log"

	"khanqah/config"
	"khanqah/database"
	"khanqah/middleware"
	"khanqah/models"
	contentModels "khanqah/models/content"
	courseModels "khanqah/models/course"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""

	var activeEnrollments, completedCourses, bookmarks int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", userId, false).Count(&activeEnrollments)
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND status = ? AND is_deleted = ?", userId, courseModels.StatusCompleted, false).Count(&completedCourses)
	database.Database.Db.Model(&contentModels.Bookmark{}).
		Where("user_id = ? AND is_deleted = ?", userId, false).Count(&bookmarks)

	response := map[string]interface{}{
		"user": user,
		"stats": map[string]interface{}{
			"enrollments":       activeEnrollments,
			"completed_courses": completedCourses,
			"bookmarks":         bookmarks,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", response)
}

func UpdateProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedProfileUpdate").(*struct {
		Name    *string `json:"name" validate:"omitempty,min=3,max=100"`
		Bio     *string `json:"bio" validate:"omitempty,max=500"`
		City    *string `json:"city" validate:"omitempty,max=100"`
		Country *string `json:"country" validate:"omitempty,max=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != nil {
		user.Name = *reqData.Name
	}
	if reqData.Bio != nil {
		user.Bio = *reqData.Bio
	}
	if reqData.City != nil {
		user.City = *reqData.City
	}
	if reqData.Country != nil {
		user.Country = *reqData.Country
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Failed to update profile for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}

func UploadProfileImage(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	storedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Failed to save profile image for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	user.ProfileImage = utils.GetFileURL(storedPath)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile image updated successfully.", map[string]interface{}{
		"profile_image": user.ProfileImage,
	})
}
