package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitcoach/coach-app/internal/config"
	"fitcoach/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubGateway(t *testing.T, handler http.HandlerFunc) PlanGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIGateway(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

// chatReply wraps content into the completion response shape the client
// expects.
func chatReply(t *testing.T, content string) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	})
	require.NoError(t, err)
	return data
}

func TestGeneratePlan_ParsesModelResponse(t *testing.T) {
	planJSON := `{"date":"2025-06-01","reasoning":"体重下降了0.5kg","workoutName":"胸肌训练","workoutFocus":"上肢推力",
		"nutritionTarget":{"calories":2200,"protein":170,"carbs":220,"fats":60},
		"exercises":[{"name":"卧推","sets":4,"reps":"8-10","weight":80,"completed":false}]}`

	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, planJSON))
	})

	plan := g.GeneratePlan(context.Background(), domain.UserProfile{Goal: domain.GoalCut}, domain.LogBook{})
	assert.Equal(t, "胸肌训练", plan.WorkoutName)
	assert.Equal(t, 2200.0, plan.NutritionTarget.Calories)
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, "卧推", plan.Exercises[0].Name)
}

func TestGeneratePlan_FallbackOnServerError(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	got := g.GeneratePlan(context.Background(), domain.UserProfile{}, domain.LogBook{})
	assert.Equal(t, FallbackPlan(got.Date), got)
	assert.Equal(t, domain.DayString(time.Now()), got.Date)

	// Fallback is deterministic across calls.
	again := g.GeneratePlan(context.Background(), domain.UserProfile{}, domain.LogBook{})
	assert.Equal(t, got, again)
}

func TestGeneratePlan_FallbackOnGarbageContent(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, "抱歉，我今天状态不佳。"))
	})

	got := g.GeneratePlan(context.Background(), domain.UserProfile{}, domain.LogBook{})
	assert.Equal(t, FallbackPlan(got.Date), got)
}

func TestAnalyzeMeal_FallbackOnServerError(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	got := g.AnalyzeMeal(context.Background(), "2个煮鸡蛋", domain.UserProfile{}, nil, nil)
	assert.Equal(t, FallbackMealAnalysis(), got)
}

func TestAnalyzeMeal_ParsesModelResponse(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, `{"meal":{"name":"煮鸡蛋","calories":155,"protein":13,"carbs":1,"fats":11},"feedback":"蛋白质不错"}`))
	})

	got := g.AnalyzeMeal(context.Background(), "2个煮鸡蛋", domain.UserProfile{Goal: domain.GoalCut}, nil, nil)
	assert.Equal(t, "煮鸡蛋", got.Meal.Name)
	assert.Equal(t, "蛋白质不错", got.Feedback)
}

func TestAnalyzeWorkout_FallbackOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	g := NewOpenAIGateway(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
		Timeout: 50 * time.Millisecond,
	})

	got := g.AnalyzeWorkout(context.Background(), "深蹲 100kg 5x5", domain.UserProfile{}, nil)
	assert.Equal(t, FallbackWorkoutAnalysis(), got)
}
