package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"readit/internal/db"
	"readit/internal/router"
	"readit/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	gdb, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	images, err := services.NewImageStore(os.Getenv("IMAGE_DIR"))
	if err != nil {
		log.Fatalf("Failed to set up image store: %v", err)
	}

	r := gin.Default()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600, // one hour, then the user logs in again
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   os.Getenv("APP_ENV") == "production",
	})
	r.Use(sessions.Sessions("token", store))

	router.RegisterRoutes(r, gdb, images)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("readit server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
