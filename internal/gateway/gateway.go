package gateway

import (
	"context"

	"fitcoach/coach-app/internal/domain"
)

// MealDraft is the structured estimate for one free-text food entry. It is a
// draft, not a MealLog: the caller assigns identity when the user confirms.
type MealDraft struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// MealAnalysis is the gateway's answer for a food entry.
type MealAnalysis struct {
	Meal     MealDraft `json:"meal"`
	Feedback string    `json:"feedback"`
}

// WorkoutAnalysis is the gateway's answer for a free-text workout log.
type WorkoutAnalysis struct {
	WorkoutName string            `json:"workoutName"`
	Feedback    string            `json:"feedback"`
	Exercises   []domain.Exercise `json:"exercises"`
}

// PlanGenerator converts profile/log context into a structured plan or
// analysis. None of the methods return an error: on any internal failure
// (network, timeout, malformed response) they return the deterministic
// fallback values below, so callers never need an error branch for this
// collaborator.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile domain.UserProfile, logs domain.LogBook) domain.DailyPlan
	AnalyzeMeal(ctx context.Context, text string, profile domain.UserProfile, todayMeals []domain.MealLog, weightTrend []domain.WeightSample) MealAnalysis
	AnalyzeWorkout(ctx context.Context, text string, profile domain.UserProfile, recentSessions []domain.WorkoutSession) WorkoutAnalysis
}

// FallbackPlan is the fixed maintenance plan returned when plan generation
// fails. Tests assert on these exact values; do not tweak them casually.
func FallbackPlan(date string) domain.DailyPlan {
	return domain.DailyPlan{
		Date:         date,
		Reasoning:    "AI服务暂时不可用。这是为您准备的基础维护计划。",
		WorkoutName:  "全身恢复训练",
		WorkoutFocus: "综合体能",
		NutritionTarget: domain.MacroGoals{
			Calories: 2000,
			Protein:  150,
			Carbs:    200,
			Fats:     65,
		},
		Exercises: []domain.Exercise{
			{Name: "自重深蹲", Sets: 3, Reps: "12-15", Weight: 0, Completed: false},
			{Name: "俯卧撑", Sets: 3, Reps: "10-12", Weight: 0, Completed: false},
		},
	}
}

// FallbackMealAnalysis is the zero-macro draft returned when food analysis
// fails.
func FallbackMealAnalysis() MealAnalysis {
	return MealAnalysis{
		Meal:     MealDraft{Name: "未知食物"},
		Feedback: "无法分析该食物，请重试。",
	}
}

// FallbackWorkoutAnalysis is the empty extraction returned when workout
// analysis fails.
func FallbackWorkoutAnalysis() WorkoutAnalysis {
	return WorkoutAnalysis{
		WorkoutName: "未知训练",
		Feedback:    "无法解析训练内容，请重试。",
		Exercises:   []domain.Exercise{},
	}
}
