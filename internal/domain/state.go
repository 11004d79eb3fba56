package domain

import "fmt"

// StateVersion is written into every persisted state blob. Loading does not
// gate on it; it exists so a future migration has something to key off.
const StateVersion = 1

// LogBook groups the append-only history sequences.
type LogBook struct {
	Meals         []MealLog        `bson:"meals" json:"meals"`
	Workouts      []WorkoutSession `bson:"workouts" json:"workouts"`
	WeightHistory []WeightSample   `bson:"weightHistory" json:"weightHistory"`
}

// AppState is the aggregate root: the single unit of persistence. Exactly one
// instance exists for the process lifetime, owned by the coach service.
type AppState struct {
	Version   int         `bson:"version" json:"version"`
	Profile   UserProfile `bson:"profile" json:"profile"`
	TodayPlan *DailyPlan  `bson:"todayPlan,omitempty" json:"todayPlan,omitempty"`
	Logs      LogBook     `bson:"logs" json:"logs"`
}

// NewAppState returns a fresh, unonboarded state with empty log sequences.
// This is also what a failed load falls open to.
func NewAppState() *AppState {
	return &AppState{
		Version: StateVersion,
		Profile: UserProfile{Onboarded: false},
		Logs: LogBook{
			Meals:         []MealLog{},
			Workouts:      []WorkoutSession{},
			WeightHistory: []WeightSample{},
		},
	}
}

// Clone returns a deep copy of the state. Readers get copies so no caller can
// mutate the owned instance behind the service's back.
func (s *AppState) Clone() *AppState {
	c := &AppState{
		Version: s.Version,
		Profile: s.Profile,
	}
	if s.TodayPlan != nil {
		plan := *s.TodayPlan
		plan.Exercises = append([]Exercise{}, s.TodayPlan.Exercises...)
		c.TodayPlan = &plan
	}
	c.Logs.Meals = append([]MealLog{}, s.Logs.Meals...)
	c.Logs.Workouts = make([]WorkoutSession, len(s.Logs.Workouts))
	for i, w := range s.Logs.Workouts {
		w.Exercises = append([]Exercise{}, w.Exercises...)
		c.Logs.Workouts[i] = w
	}
	c.Logs.WeightHistory = append([]WeightSample{}, s.Logs.WeightHistory...)
	return c
}

// ValidationError reports a domain field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Reason)
}
