package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() UserProfile {
	return UserProfile{
		Name:               "Alex",
		Age:                30,
		Height:             180,
		Weight:             80,
		Gender:             GenderMale,
		Goal:               GoalCut,
		WeeklyTrainingDays: 4,
		Injuries:           "None",
	}
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*UserProfile)
		wantField string
	}{
		{name: "valid", mutate: func(p *UserProfile) {}},
		{name: "empty name", mutate: func(p *UserProfile) { p.Name = "" }, wantField: "name"},
		{name: "zero age", mutate: func(p *UserProfile) { p.Age = 0 }, wantField: "age"},
		{name: "negative height", mutate: func(p *UserProfile) { p.Height = -1 }, wantField: "height"},
		{name: "zero weight", mutate: func(p *UserProfile) { p.Weight = 0 }, wantField: "weight"},
		{name: "unknown gender", mutate: func(p *UserProfile) { p.Gender = "robot" }, wantField: "gender"},
		{name: "unknown goal", mutate: func(p *UserProfile) { p.Goal = "hibernate" }, wantField: "goal"},
		{name: "zero training days", mutate: func(p *UserProfile) { p.WeeklyTrainingDays = 0 }, wantField: "weeklyTrainingDays"},
		{name: "eight training days", mutate: func(p *UserProfile) { p.WeeklyTrainingDays = 8 }, wantField: "weeklyTrainingDays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(&profile)
			err := profile.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestMealLog_Normalize_TolerantDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	meal := MealLog{Calories: -100, Protein: 20}
	meal.Normalize(now)

	assert.Equal(t, "1748781000000", meal.ID)
	assert.Equal(t, "2025-06-01T12:30:00Z", meal.Timestamp)
	assert.Equal(t, DefaultMealName, meal.Name)
	assert.Zero(t, meal.Calories, "negative calories clamp to zero")
	assert.Equal(t, 20.0, meal.Protein)
}

func TestMealLog_Normalize_KeepsProvidedIdentity(t *testing.T) {
	meal := MealLog{ID: "123", Timestamp: "2025-01-01T00:00:00Z", Name: "Oats"}
	meal.Normalize(time.Now())

	assert.Equal(t, "123", meal.ID)
	assert.Equal(t, "2025-01-01T00:00:00Z", meal.Timestamp)
	assert.Equal(t, "Oats", meal.Name)
}

func TestWorkoutSession_Normalize(t *testing.T) {
	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	session := WorkoutSession{
		Name:      "胸肌训练",
		Exercises: []Exercise{{Name: "卧推", Sets: -1, Reps: "5", Weight: -80}},
	}
	session.Normalize(now)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "2025-06-01T18:00:00Z", session.Date)
	assert.Zero(t, session.Exercises[0].Sets)
	assert.Zero(t, session.Exercises[0].Weight)
}

func TestWorkoutSession_Normalize_NilExercises(t *testing.T) {
	session := WorkoutSession{}
	session.Normalize(time.Now())
	assert.NotNil(t, session.Exercises)
	assert.Empty(t, session.Exercises)
}

func TestProfileUpdate_Apply_ShallowMerge(t *testing.T) {
	profile := validProfile()
	profile.Onboarded = true

	newWeight := 78.5
	newInjuries := "knee"
	update := ProfileUpdate{Weight: &newWeight, Injuries: &newInjuries}
	update.Apply(&profile)

	assert.Equal(t, 78.5, profile.Weight)
	assert.Equal(t, "knee", profile.Injuries)
	// Untouched fields survive, and the update cannot flip the gate.
	assert.Equal(t, "Alex", profile.Name)
	assert.Equal(t, GoalCut, profile.Goal)
	assert.True(t, profile.Onboarded)
}

func TestAppState_Clone_IsDeep(t *testing.T) {
	state := NewAppState()
	state.Profile = validProfile()
	state.Profile.Onboarded = true
	state.TodayPlan = &DailyPlan{
		Date:      "2025-06-01",
		Exercises: []Exercise{{Name: "深蹲", Sets: 3, Reps: "5"}},
	}
	state.Logs.Meals = append(state.Logs.Meals, MealLog{ID: "1", Name: "Oats"})
	state.Logs.Workouts = append(state.Logs.Workouts, WorkoutSession{
		ID:        "2",
		Exercises: []Exercise{{Name: "硬拉"}},
	})
	state.Logs.WeightHistory = append(state.Logs.WeightHistory, WeightSample{Date: "2025-06-01", Weight: 80})

	clone := state.Clone()
	require.Equal(t, state, clone)

	clone.Profile.Name = "Someone Else"
	clone.TodayPlan.Exercises[0].Completed = true
	clone.Logs.Meals[0].Name = "Pizza"
	clone.Logs.Workouts[0].Exercises[0].Name = "changed"
	clone.Logs.WeightHistory[0].Weight = 99

	assert.Equal(t, "Alex", state.Profile.Name)
	assert.False(t, state.TodayPlan.Exercises[0].Completed)
	assert.Equal(t, "Oats", state.Logs.Meals[0].Name)
	assert.Equal(t, "硬拉", state.Logs.Workouts[0].Exercises[0].Name)
	assert.Equal(t, 80.0, state.Logs.WeightHistory[0].Weight)
}

func TestNewAppState_Empty(t *testing.T) {
	state := NewAppState()
	assert.False(t, state.Profile.Onboarded)
	assert.Nil(t, state.TodayPlan)
	assert.Empty(t, state.Logs.Meals)
	assert.Empty(t, state.Logs.Workouts)
	assert.Empty(t, state.Logs.WeightHistory)
	assert.Equal(t, StateVersion, state.Version)
}
