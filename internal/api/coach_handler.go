package api

import (
	"fmt"
	"net/http"

	"fitcoach/coach-app/internal/domain"
	"fitcoach/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler dispatches user intents to the coach service. It holds no
// state of its own beyond the service dependency.
type CoachHandler struct {
	coach service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coach service.CoachService) *CoachHandler {
	return &CoachHandler{coach: coach}
}

// --- Request Structs ---

type OnboardingRequest struct {
	Name               string        `json:"name" binding:"required"`
	Age                int           `json:"age" binding:"required,gt=0"`
	Height             float64       `json:"height" binding:"required,gt=0"`
	Weight             float64       `json:"weight" binding:"required,gt=0"`
	Gender             domain.Gender `json:"gender" binding:"required"`
	Goal               domain.Goal   `json:"goal" binding:"required"`
	BodyFat            float64       `json:"bodyFat"`
	WeeklyTrainingDays int           `json:"weeklyTrainingDays" binding:"required,min=1,max=7"`
	Injuries           string        `json:"injuries"`
}

type LogMealRequest struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	ImageURL string  `json:"imageUrl"`
}

type LogWorkoutRequest struct {
	Name      string            `json:"name"`
	Exercises []domain.Exercise `json:"exercises"`
	Duration  int               `json:"duration"`
	Feedback  string            `json:"feedback"`
}

type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

// --- Handler Methods ---

// CompleteOnboarding handles POST /onboarding. It blocks until the first plan
// resolves, so the client can render the main views immediately afterwards.
func (h *CoachHandler) CompleteOnboarding(c *gin.Context) {
	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	state, err := h.coach.CompleteOnboarding(c.Request.Context(), domain.UserProfile{
		Name:               req.Name,
		Age:                req.Age,
		Height:             req.Height,
		Weight:             req.Weight,
		Gender:             req.Gender,
		Goal:               req.Goal,
		BodyFat:            req.BodyFat,
		WeeklyTrainingDays: req.WeeklyTrainingDays,
		Injuries:           req.Injuries,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetState handles GET /state.
func (h *CoachHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.coach.State(c.Request.Context()))
}

// GetDashboard handles GET /dashboard.
func (h *CoachHandler) GetDashboard(c *gin.Context) {
	view, err := h.coach.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RegeneratePlan handles POST /plan/regenerate. When a generation is already
// in flight the request is acknowledged without starting a second one.
func (h *CoachHandler) RegeneratePlan(c *gin.Context) {
	plan, err := h.coach.RegenerateIfMissing(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if plan == nil {
		c.JSON(http.StatusAccepted, gin.H{"status": "generation already in progress"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// AnalyzeMeal handles POST /meals/analyze: free text in, macro draft and
// coaching feedback out. Nothing is logged until the draft is confirmed.
func (h *CoachHandler) AnalyzeMeal(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	analysis, err := h.coach.AnalyzeMeal(c.Request.Context(), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// LogMeal handles POST /meals: the confirm step after analysis.
func (h *CoachHandler) LogMeal(c *gin.Context) {
	var req LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	meal, err := h.coach.LogMeal(c.Request.Context(), domain.MealLog{
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// AnalyzeWorkout handles POST /workouts/analyze.
func (h *CoachHandler) AnalyzeWorkout(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	analysis, err := h.coach.AnalyzeWorkout(c.Request.Context(), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// LogWorkout handles POST /workouts. Sessions arrive already analyzed; they
// are recorded as completed.
func (h *CoachHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.coach.LogWorkout(c.Request.Context(), domain.WorkoutSession{
		Name:      req.Name,
		Exercises: req.Exercises,
		Completed: true,
		Duration:  req.Duration,
		Feedback:  req.Feedback,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// UpdateProfile handles PATCH /profile (shallow merge).
func (h *CoachHandler) UpdateProfile(c *gin.Context) {
	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.coach.UpdateProfile(c.Request.Context(), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateWeight handles PUT /weight: today's sample is replaced, not appended.
func (h *CoachHandler) UpdateWeight(c *gin.Context) {
	var req UpdateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	history, err := h.coach.UpdateWeight(c.Request.Context(), req.Weight)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weightHistory": history})
}
