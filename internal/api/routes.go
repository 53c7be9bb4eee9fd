package api

import (
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trackingService service.TrackingService,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(trackingService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/demo", authHandler.StartDemo)
			// Conversion needs the demo token to know which identity converts.
			authGroup.POST("/convert", authMiddleware, authHandler.ConvertDemo)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			identity, err := identityFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
				return
			}
			c.JSON(http.StatusOK, identity)
		})

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.TrackWorkout)
			workoutGroup.GET("", workoutHandler.LoadHistory)
			workoutGroup.DELETE("/:id", workoutHandler.RemoveWorkout)
			workoutGroup.GET("/statistics", workoutHandler.GetStatistics)
			workoutGroup.GET("/export", workoutHandler.ExportHistory)
		}
	}
}
