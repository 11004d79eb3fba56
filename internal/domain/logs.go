package domain

import (
	"strconv"
	"time"
)

// DefaultMealName is substituted when an analyzed meal comes back without a
// usable name.
const DefaultMealName = "Unnamed Meal"

// MealLog is an immutable record of one eating event. Once appended to the
// log it is never mutated or removed.
type MealLog struct {
	ID        string  `bson:"id" json:"id"`
	Timestamp string  `bson:"timestamp" json:"timestamp"` // ISO-8601 instant
	Name      string  `bson:"name" json:"name"`
	Calories  float64 `bson:"calories" json:"calories"`
	Protein   float64 `bson:"protein" json:"protein"`
	Carbs     float64 `bson:"carbs" json:"carbs"`
	Fats      float64 `bson:"fats" json:"fats"`
	ImageURL  string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Normalize applies the tolerance policy: a missing name falls back to the
// placeholder and negative macro values are clamped to zero. Missing ID and
// timestamp are filled in from the given instant.
func (m *MealLog) Normalize(now time.Time) {
	if m.ID == "" {
		m.ID = NewLogID(now)
	}
	if m.Timestamp == "" {
		m.Timestamp = now.UTC().Format(time.RFC3339)
	}
	if m.Name == "" {
		m.Name = DefaultMealName
	}
	m.Calories = clampNonNegative(m.Calories)
	m.Protein = clampNonNegative(m.Protein)
	m.Carbs = clampNonNegative(m.Carbs)
	m.Fats = clampNonNegative(m.Fats)
}

// Exercise is a single movement within a workout or plan. Reps is a string
// because it may carry a range like "8-12".
type Exercise struct {
	Name      string  `bson:"name" json:"name"`
	Sets      int     `bson:"sets" json:"sets"`
	Reps      string  `bson:"reps" json:"reps"`
	Weight    float64 `bson:"weight" json:"weight"` // kg
	Completed bool    `bson:"completed" json:"completed"`
}

// WorkoutSession is an immutable record of one completed training session.
type WorkoutSession struct {
	ID        string     `bson:"id" json:"id"`
	Date      string     `bson:"date" json:"date"` // ISO-8601
	Name      string     `bson:"name" json:"name"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
	Completed bool       `bson:"completed" json:"completed"`
	Duration  int        `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Feedback  string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// Normalize fills missing identity fields and clamps exercise weights.
func (w *WorkoutSession) Normalize(now time.Time) {
	if w.ID == "" {
		w.ID = NewLogID(now)
	}
	if w.Date == "" {
		w.Date = now.UTC().Format(time.RFC3339)
	}
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}
	for i := range w.Exercises {
		w.Exercises[i].Weight = clampNonNegative(w.Exercises[i].Weight)
		if w.Exercises[i].Sets < 0 {
			w.Exercises[i].Sets = 0
		}
	}
}

// WeightSample is one calendar-day-keyed body-weight observation. The weight
// history holds at most one sample per day, sorted ascending by date.
type WeightSample struct {
	Date   string  `bson:"date" json:"date"` // YYYY-MM-DD
	Weight float64 `bson:"weight" json:"weight"`
}

// NewLogID derives a record id from the given instant (Unix milliseconds,
// decimal string).
func NewLogID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// DayString formats an instant as the calendar-day key used by weight history
// and daily plans.
func DayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
