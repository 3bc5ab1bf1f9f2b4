package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"foodshare-api/config"
	"foodshare-api/handlers"
	"foodshare-api/middleware"
	"foodshare-api/notify"
	"foodshare-api/routes"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Offer announcements go through the store-backed notifier
	handlers.Fanout = notify.NewStoreNotifier(config.DB)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "FoodShare Campus Food Rescue API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the FoodShare Food Rescue API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"student", "restaurant", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
