// Command evdp-api exposes the solve engine over HTTP, adapted from the
// teacher's cmd/api/main.go Gin wiring (CORS/Logger/ErrorHandler
// middleware stack, API route group, env-driven port/mode).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/api/handlers"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/api/middleware"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/progress"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	hub := progress.NewHub()
	solveHandler := handlers.NewSolveHandler(hub)
	progressHandler := handlers.NewProgressHandler(hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/ws/progress", progressHandler.Serve)

	api := router.Group("/api/v1")
	{
		api.POST("/solve", solveHandler.RunSolve)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting EV scheduling API on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
