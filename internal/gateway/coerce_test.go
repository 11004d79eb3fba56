package gateway

import (
	"testing"

	"fitcoach/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoercePlan_FullResponse(t *testing.T) {
	text := `{"date":"2025-06-01","reasoning":"体重稳定","workoutName":"腿部训练","workoutFocus":"下肢力量",
		"nutritionTarget":{"calories":2100,"protein":160,"carbs":210,"fats":60},
		"exercises":[{"name":"深蹲","sets":5,"reps":"5","weight":100,"completed":false}]}`

	plan, err := coercePlan(text, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", plan.Date)
	assert.Equal(t, "腿部训练", plan.WorkoutName)
	assert.Equal(t, 2100.0, plan.NutritionTarget.Calories)
	assert.Len(t, plan.Exercises, 1)
}

func TestCoercePlan_Substitutions(t *testing.T) {
	// Missing date falls back to today, missing exercises become an empty
	// list, negative macros clamp to zero.
	plan, err := coercePlan(`{"reasoning":"r","nutritionTarget":{"calories":-1}}`, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", plan.Date)
	assert.NotNil(t, plan.Exercises)
	assert.Empty(t, plan.Exercises)
	assert.Zero(t, plan.NutritionTarget.Calories)
}

func TestCoercePlan_MarkdownFence(t *testing.T) {
	plan, err := coercePlan("```json\n{\"date\":\"2025-06-01\"}\n```", "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", plan.Date)
}

func TestCoercePlan_Malformed(t *testing.T) {
	_, err := coercePlan("not json at all", "2025-06-02")
	assert.Error(t, err)

	_, err = coercePlan("", "2025-06-02")
	assert.Error(t, err)
}

func TestCoerceMealAnalysis(t *testing.T) {
	analysis, err := coerceMealAnalysis(`{"meal":{"name":"煮鸡蛋","calories":155,"protein":13,"carbs":1,"fats":-11},"feedback":"不错"}`)
	require.NoError(t, err)
	assert.Equal(t, "煮鸡蛋", analysis.Meal.Name)
	assert.Equal(t, 155.0, analysis.Meal.Calories)
	assert.Zero(t, analysis.Meal.Fats, "negative fats clamp to zero")
	assert.Equal(t, "不错", analysis.Feedback)
}

func TestCoerceMealAnalysis_MissingMealIsError(t *testing.T) {
	_, err := coerceMealAnalysis(`{"feedback":"只有反馈"}`)
	assert.Error(t, err)
}

func TestCoerceWorkoutAnalysis_Defaults(t *testing.T) {
	// The model forgot everything except the exercise list.
	analysis, err := coerceWorkoutAnalysis(`{"exercises":[{"name":"卧推","sets":3,"reps":"8","weight":80}]}`)
	require.NoError(t, err)
	assert.Equal(t, "训练", analysis.WorkoutName)
	assert.Equal(t, "训练已记录。", analysis.Feedback)
	assert.Len(t, analysis.Exercises, 1)
}

func TestCoerceWorkoutAnalysis_NilExercises(t *testing.T) {
	analysis, err := coerceWorkoutAnalysis(`{"workoutName":"胸肌训练","feedback":"强度不错"}`)
	require.NoError(t, err)
	assert.NotNil(t, analysis.Exercises)
	assert.Empty(t, analysis.Exercises)
}

func TestFallbackValues(t *testing.T) {
	plan := FallbackPlan("2025-06-01")
	assert.Equal(t, "2025-06-01", plan.Date)
	assert.Equal(t, "AI服务暂时不可用。这是为您准备的基础维护计划。", plan.Reasoning)
	assert.Equal(t, "全身恢复训练", plan.WorkoutName)
	assert.Equal(t, "综合体能", plan.WorkoutFocus)
	assert.Equal(t, domain.MacroGoals{Calories: 2000, Protein: 150, Carbs: 200, Fats: 65}, plan.NutritionTarget)
	require.Len(t, plan.Exercises, 2)
	assert.Equal(t, domain.Exercise{Name: "自重深蹲", Sets: 3, Reps: "12-15"}, plan.Exercises[0])
	assert.Equal(t, domain.Exercise{Name: "俯卧撑", Sets: 3, Reps: "10-12"}, plan.Exercises[1])

	meal := FallbackMealAnalysis()
	assert.Equal(t, MealDraft{Name: "未知食物"}, meal.Meal)
	assert.Equal(t, "无法分析该食物，请重试。", meal.Feedback)

	workout := FallbackWorkoutAnalysis()
	assert.Equal(t, "未知训练", workout.WorkoutName)
	assert.Equal(t, "无法解析训练内容，请重试。", workout.Feedback)
	assert.Empty(t, workout.Exercises)
}
