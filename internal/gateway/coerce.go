package gateway

import (
	"encoding/json"
	"errors"
	"strings"

	"fitcoach/coach-app/internal/domain"
)

// Partial-response defaults for workout analysis. These match what the
// coaching voice says when the model forgets a field.
const (
	defaultWorkoutName     = "训练"
	defaultWorkoutFeedback = "训练已记录。"
)

var errEmptyResponse = errors.New("empty model response")

// The model replies with JSON, but some backends wrap it in a markdown fence.
// extractJSON strips the fence so the decoder sees the raw object.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

// coercePlan parses a plan response. The model output is loosely typed, so
// every field has a defined substitution: a missing date becomes today,
// missing exercises become an empty list, and negative numbers are clamped.
// A response that is not a JSON object at all is an error; the caller then
// falls back to the fixed plan.
func coercePlan(text, today string) (domain.DailyPlan, error) {
	text = extractJSON(text)
	if text == "" {
		return domain.DailyPlan{}, errEmptyResponse
	}

	var plan domain.DailyPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return domain.DailyPlan{}, err
	}

	if plan.Date == "" {
		plan.Date = today
	}
	plan.NutritionTarget = clampMacros(plan.NutritionTarget)
	plan.Exercises = coerceExercises(plan.Exercises)
	return plan, nil
}

// coerceMealAnalysis parses a food analysis response. A response without a
// meal object is an error (full fallback); otherwise macros are clamped and
// missing numbers stay zero.
func coerceMealAnalysis(text string) (MealAnalysis, error) {
	text = extractJSON(text)
	if text == "" {
		return MealAnalysis{}, errEmptyResponse
	}

	var raw struct {
		Meal     *MealDraft `json:"meal"`
		Feedback string     `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return MealAnalysis{}, err
	}
	if raw.Meal == nil {
		return MealAnalysis{}, errors.New("meal object missing from response")
	}

	meal := *raw.Meal
	meal.Calories = clamp(meal.Calories)
	meal.Protein = clamp(meal.Protein)
	meal.Carbs = clamp(meal.Carbs)
	meal.Fats = clamp(meal.Fats)
	return MealAnalysis{Meal: meal, Feedback: raw.Feedback}, nil
}

// coerceWorkoutAnalysis parses a workout extraction. Missing name and
// feedback get the documented defaults; missing exercises become an empty
// list rather than nil.
func coerceWorkoutAnalysis(text string) (WorkoutAnalysis, error) {
	text = extractJSON(text)
	if text == "" {
		return WorkoutAnalysis{}, errEmptyResponse
	}

	var analysis WorkoutAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return WorkoutAnalysis{}, err
	}

	if analysis.WorkoutName == "" {
		analysis.WorkoutName = defaultWorkoutName
	}
	if analysis.Feedback == "" {
		analysis.Feedback = defaultWorkoutFeedback
	}
	analysis.Exercises = coerceExercises(analysis.Exercises)
	return analysis, nil
}

func coerceExercises(exercises []domain.Exercise) []domain.Exercise {
	if exercises == nil {
		return []domain.Exercise{}
	}
	for i := range exercises {
		exercises[i].Weight = clamp(exercises[i].Weight)
		if exercises[i].Sets < 0 {
			exercises[i].Sets = 0
		}
	}
	return exercises
}

func clampMacros(m domain.MacroGoals) domain.MacroGoals {
	m.Calories = clamp(m.Calories)
	m.Protein = clamp(m.Protein)
	m.Carbs = clamp(m.Carbs)
	m.Fats = clamp(m.Fats)
	return m
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
