package api

import (
	"net/http"

	"fitcoach/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the intent surface. Each route corresponds to one user
// action on one of the four views (dashboard, diet logger, workout logger,
// profile) plus onboarding.
func SetupRoutes(
	router *gin.Engine,
	coachService service.CoachService,
	backupService service.BackupService,
) {
	coachHandler := NewCoachHandler(coachService)
	backupHandler := NewBackupHandler(backupService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/onboarding", coachHandler.CompleteOnboarding)
		apiV1.GET("/state", coachHandler.GetState)
		apiV1.GET("/dashboard", coachHandler.GetDashboard)
		apiV1.POST("/plan/regenerate", coachHandler.RegeneratePlan)

		apiV1.POST("/meals/analyze", coachHandler.AnalyzeMeal)
		apiV1.POST("/meals", coachHandler.LogMeal)

		apiV1.POST("/workouts/analyze", coachHandler.AnalyzeWorkout)
		apiV1.POST("/workouts", coachHandler.LogWorkout)

		apiV1.PATCH("/profile", coachHandler.UpdateProfile)
		apiV1.PUT("/weight", coachHandler.UpdateWeight)

		apiV1.POST("/backup", backupHandler.Backup)
	}
}
