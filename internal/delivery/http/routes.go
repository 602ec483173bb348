package http

import (
	"github.com/gin-gonic/gin"
	"github.com/macrolens/foodscore/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		scores := v1.Group("/scores")
		{
			scores.GET("", handler.LatestScores)
			scores.GET("/search", handler.SearchScores)
			scores.POST("", handler.ScoreDocument)
		}
	}

	return router
}
