package routes

import (
	"net/http"
	"time"

	"wayfarer/handlers"
	"wayfarer/middleware"
	"wayfarer/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational itinerary endpoints.
func RegisterAssistantRoutes(r *gin.Engine, assistantHandler *handlers.AssistantHandler) {
	api := r.Group("/api/assistant")
	{
		api.Use(middleware.RateLimitMiddleware())
		api.POST("/turn", assistantHandler.TurnHandler)
		api.GET("/session/:sessionId", assistantHandler.SessionSnapshotHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Wayfarer",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, assistantHandler *handlers.AssistantHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r, assistantHandler)
	RegisterHealthRoute(r)
}
