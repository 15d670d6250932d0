package router

import (
	"net/http"

	"user-account-service/internal/adapter/gin/handler"
	"user-account-service/internal/adapter/gin/middleware"
	"user-account-service/pkg/token"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	tokens *token.Manager,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-account-service",
		})
	})

	// Swagger UI and document. The document lives under /docs because gin
	// cannot mix a static route with the /swagger catch-all.
	router.StaticFile("/docs/users.swagger.json", "./api/swagger/users.swagger.json")
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/docs/users.swagger.json"),
	)))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		{
			// Login is the only anonymous user route
			users.POST("/authenticate", authHandler.Authenticate)

			protected := users.Group("", middleware.BearerAuth(tokens, log))
			{
				protected.POST("", userHandler.CreateUser)
				protected.GET("", userHandler.ListUsers)
				protected.GET("/:id", userHandler.GetUser)
				protected.PUT("/:id", userHandler.UpdateUser)
				protected.DELETE("/:id", userHandler.DeleteUser)
			}
		}
	}

	return router
}
