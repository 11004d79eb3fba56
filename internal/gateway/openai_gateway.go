package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fitcoach/coach-app/internal/config"
	"fitcoach/coach-app/internal/domain"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

const systemInstruction = "You are an expert personal trainer and nutritionist. Always speak in Simplified Chinese."

// openAIGateway implements PlanGenerator against an OpenAI-compatible chat
// completion API.
type openAIGateway struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGateway creates a gateway from the AI configuration. A custom base
// URL points the client at any OpenAI-compatible server (including a local
// one).
func NewOpenAIGateway(cfg config.AIConfig) PlanGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
		slog.Warn("AI model not configured, defaulting", "model", model)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	slog.Info("Initializing plan generation gateway", "model", model, "base_url", clientCfg.BaseURL)
	return &openAIGateway{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
	}
}

// GeneratePlan asks the model for today's workout and nutrition plan. Any
// failure yields the fixed fallback plan; the caller never sees an error.
func (g *openAIGateway) GeneratePlan(ctx context.Context, profile domain.UserProfile, logs domain.LogBook) domain.DailyPlan {
	today := domain.DayString(time.Now())

	prompt := fmt.Sprintf(`Act as an elite fitness coach (FitCoach AI).
User Profile: %s
Recent Logs (Meals, Workouts, Weight History): %s
Current Date: %s

Analyze the user's weight trend from the logs.
If weight is stalling on a cut, reduce calories slightly.
If weight is dropping too fast on a bulk, increase calories.

Generate a specific workout and nutrition plan for TODAY.

Respond with a single JSON object of this exact shape:
{"date": string, "reasoning": string, "workoutName": string, "workoutFocus": string, "nutritionTarget": {"calories": number, "protein": number, "carbs": number, "fats": number}, "exercises": [{"name": string, "sets": number, "reps": string, "weight": number, "completed": boolean}]}

IMPORTANT: Respond in Simplified Chinese (简体中文).
Provide a "reasoning" string explaining why you chose this plan based on their *specific* data changes (e.g. "你昨天的体重下降了0.5kg，所以我们要保持热量...").
The "workoutName", "workoutFocus", and exercise "name" should also be in Chinese.`,
		mustJSON(profile), mustJSON(logs), today)

	text, err := g.complete(ctx, prompt)
	if err != nil {
		slog.Error("plan generation failed, using fallback plan", "error", err)
		return FallbackPlan(today)
	}

	plan, err := coercePlan(text, today)
	if err != nil {
		slog.Error("plan response unparsable, using fallback plan", "error", err)
		return FallbackPlan(today)
	}
	return plan
}

// AnalyzeMeal estimates macros for a free-text food entry and produces short
// coaching feedback.
func (g *openAIGateway) AnalyzeMeal(ctx context.Context, text string, profile domain.UserProfile, todayMeals []domain.MealLog, weightTrend []domain.WeightSample) MealAnalysis {
	// The prompt only needs the recent trend, not the whole history.
	if len(weightTrend) > 5 {
		weightTrend = weightTrend[len(weightTrend)-5:]
	}

	prompt := fmt.Sprintf(`Analyze this food input: %q.

Context:
- Goal: %s
- Today's previous meals: %s
- Recent weight trend: %s

1. Estimate the macros for this specific entry.
2. Provide "feedback" (max 2 sentences) in Simplified Chinese (简体中文). Tell the user if they are overeating, what macro they are missing today, or if this fits their goal perfectly based on their weight trend and previous meals today.

Respond with a single JSON object of this exact shape:
{"meal": {"name": string, "calories": number, "protein": number, "carbs": number, "fats": number}, "feedback": string}`,
		text, profile.Goal, mustJSON(todayMeals), mustJSON(weightTrend))

	reply, err := g.complete(ctx, prompt)
	if err != nil {
		slog.Error("meal analysis failed, using fallback", "error", err)
		return FallbackMealAnalysis()
	}

	analysis, err := coerceMealAnalysis(reply)
	if err != nil {
		slog.Error("meal analysis response unparsable, using fallback", "error", err)
		return FallbackMealAnalysis()
	}
	return analysis
}

// AnalyzeWorkout extracts structured exercises from a free-text workout log
// and compares them against recent sessions.
func (g *openAIGateway) AnalyzeWorkout(ctx context.Context, text string, profile domain.UserProfile, recentSessions []domain.WorkoutSession) WorkoutAnalysis {
	// Last three sessions are enough context for volume comparisons.
	if len(recentSessions) > 3 {
		recentSessions = recentSessions[len(recentSessions)-3:]
	}

	prompt := fmt.Sprintf(`Analyze this workout log input: %q.

User Profile: %s
Recent Workout History: %s

Tasks:
1. Extract the exercises, sets, reps, and weight. If weight is not specified, put 0.
2. Identify the main focus/name of this workout (e.g. "胸肌训练", "腿部训练").
3. Provide "feedback" in Simplified Chinese.
   - Compare their weights/volume to previous sessions if matches exist.
   - Comment on their volume/intensity based on their profile goal (%s).
   - Keep it encouraging but analytical (max 3 sentences).

Respond with a single JSON object of this exact shape:
{"workoutName": string, "feedback": string, "exercises": [{"name": string, "sets": number, "reps": string, "weight": number, "completed": boolean}]}`,
		text, mustJSON(profile), mustJSON(recentSessions), profile.Goal)

	reply, err := g.complete(ctx, prompt)
	if err != nil {
		slog.Error("workout analysis failed, using fallback", "error", err)
		return FallbackWorkoutAnalysis()
	}

	analysis, err := coerceWorkoutAnalysis(reply)
	if err != nil {
		slog.Error("workout analysis response unparsable, using fallback", "error", err)
		return FallbackWorkoutAnalysis()
	}
	return analysis
}

// complete sends one chat completion request and returns the reply text.
func (g *openAIGateway) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	requestID := uuid.NewString()
	slog.Debug("sending completion request", "request_id", requestID, "model", g.model)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	slog.Debug("received completion response", "request_id", requestID,
		"finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}

// mustJSON is used for prompt context only; the inputs are our own domain
// values and always marshal.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
