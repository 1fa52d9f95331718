package routes

import (
	"github.com/brendimo/spinwheel-backend/internal/config"
	"github.com/brendimo/spinwheel-backend/internal/handlers"
	"github.com/brendimo/spinwheel-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups the handlers wired into the router
type HandlerDependencies struct {
	SessionHandler *handlers.SessionHandler
	CatalogHandler *handlers.CatalogHandler
	AuthHandler    *handlers.AuthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Wheel flow
		sessions := public.Group("/sessions")
		{
			sessions.POST("", deps.SessionHandler.Submit)
			sessions.POST("/spin", deps.SessionHandler.Spin)
			sessions.POST("/claim", deps.SessionHandler.Claim)
		}

		public.GET("/history/:phone", deps.SessionHandler.History)
		public.GET("/catalog", deps.CatalogHandler.GetWheel)

		public.POST("/auth/login", deps.AuthHandler.Login)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)
		protected.PUT("/catalog/:id/weight", deps.CatalogHandler.UpdateWeight)
	}

	return router
}
