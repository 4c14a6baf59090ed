package main

import (
	"log"

	"khanqah/config"
	"khanqah/database"
	authRoutes "khanqah/routers/authRoutes"
	contentRoutes "khanqah/routers/contentRoutes"
	courseRoutes "khanqah/routers/courseRoutes"
	forumRoutes "khanqah/routers/forumRoutes"
	userRoutes "khanqah/routers/userRoutes"
	"khanqah/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files (e-books, covers, avatars)
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	contentRoutes.SetupContentRoutes(app)
	contentRoutes.SetupAdminContentRoutes(app)
	forumRoutes.SetupForumRoutes(app)

	// Background publisher for scheduled articles
	scheduler := utils.StartPublishScheduler()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
