package main

import (
	"os"

	"github.com/AbhishekDL36/LMS/internal/handler"
	"github.com/AbhishekDL36/LMS/internal/middleware"
	"github.com/AbhishekDL36/LMS/internal/repository/postgres"

	_ "github.com/AbhishekDL36/LMS/docs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title LMS API
// @version 1.0
// @description API for authentication, courses, lectures and admin statistics

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	godotenv.Load()
	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = handler.NewValidator()

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		panic("DATABASE_URL not set")
	}

	if err := postgres.RunMigrations(connString); err != nil {
		panic(err)
	}

	storage, err := postgres.NewConnection(connString)
	if err != nil {
		panic(err)
	}
	defer storage.Close()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.JWTAuth()
	handler.SetupAuthRoutes(e, storage, authMiddleware)
	handler.SetupTestRoutes(e, authMiddleware)
	handler.SetupRoleRoutes(e, storage, authMiddleware)
	handler.SetupCourseRoutes(e, storage, authMiddleware)
	handler.SetupLectureRoutes(e, storage, authMiddleware)
	handler.SetupAdminRoutes(e, storage, authMiddleware)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
