package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ytakahashi/todo-api/internal/auth"
	"github.com/ytakahashi/todo-api/internal/handlers"
	"github.com/ytakahashi/todo-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		log.Fatal("GOOGLE_CLOUD_PROJECT environment variable is required")
	}

	bucket := os.Getenv("ATTACHMENT_BUCKET")
	if bucket == "" {
		log.Fatal("ATTACHMENT_BUCKET environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	uploadTTL := 5 * time.Minute
	if raw := os.Getenv("UPLOAD_URL_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid UPLOAD_URL_TTL: %v", err)
		}
		uploadTTL = d
	}

	ctx := context.Background()

	itemStore, err := services.NewFirestoreStore(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create Firestore store: %v", err)
	}
	defer itemStore.Close()

	attachmentStore, err := services.NewStorageService(ctx, bucket, uploadTTL)
	if err != nil {
		log.Fatalf("Failed to create storage service: %v", err)
	}
	defer attachmentStore.Close()

	todoService := services.NewTodoService(itemStore, attachmentStore)
	todoHandler := handlers.NewTodoHandler(todoService)
	verifier := auth.NewJWTVerifier([]byte(jwtSecret))

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	todoHandler.Register(e, auth.Middleware(verifier))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
