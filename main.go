package main

import (
	"log"

	"skillspring/config"
	"skillspring/database"
	authRoutes "skillspring/routers/authRoutes"
	categoryRoutes "skillspring/routers/categoryRoutes"
	courseRoutes "skillspring/routers/courseRoutes"
	reviewRoutes "skillspring/routers/reviewRoutes"
	superAdminRoutes "skillspring/routers/superAdmin"
	userRoutes "skillspring/routers/userRoutes"
	"skillspring/utils"

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

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)

	utils.StartAggregateScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
