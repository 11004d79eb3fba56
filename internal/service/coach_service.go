package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"fitcoach/coach-app/internal/domain"
	"fitcoach/coach-app/internal/gateway"
	"fitcoach/coach-app/internal/store"
)

// --- Error Definitions ---
var (
	ErrNotOnboarded     = errors.New("user has not completed onboarding")
	ErrAlreadyOnboarded = errors.New("onboarding has already been completed")
	ErrEmptyInput       = errors.New("input text must not be empty")
)

// DashboardView is the derived read model behind the summary screen: today's
// intake against the active plan.
type DashboardView struct {
	Profile      domain.UserProfile   `json:"profile"`
	Plan         *domain.DailyPlan    `json:"plan,omitempty"`
	TodayMeals   []domain.MealLog     `json:"todayMeals"`
	Consumed     domain.MacroGoals    `json:"consumed"`
	LatestWeight *domain.WeightSample `json:"latestWeight,omitempty"`
}

// CoachService is the single owner of the application state. Every mutation
// goes through it, is applied atomically, and is persisted before the call
// returns. Readers receive deep copies.
type CoachService interface {
	State(ctx context.Context) *domain.AppState
	Dashboard(ctx context.Context) (*DashboardView, error)
	CompleteOnboarding(ctx context.Context, profile domain.UserProfile) (*domain.AppState, error)
	RegenerateIfMissing(ctx context.Context) (*domain.DailyPlan, error)
	LogMeal(ctx context.Context, meal domain.MealLog) (*domain.MealLog, error)
	LogWorkout(ctx context.Context, session domain.WorkoutSession) (*domain.WorkoutSession, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error)
	UpdateWeight(ctx context.Context, weightKg float64) ([]domain.WeightSample, error)
	AnalyzeMeal(ctx context.Context, text string) (*gateway.MealAnalysis, error)
	AnalyzeWorkout(ctx context.Context, text string) (*gateway.WorkoutAnalysis, error)
}

// coachService implements the CoachService interface.
type coachService struct {
	mu    sync.Mutex
	state *domain.AppState
	store store.StateStore
	plans gateway.PlanGenerator
	now   func() time.Time

	// regenInFlight guards RegenerateIfMissing: a second trigger while a
	// generation is in flight must not start a second gateway call.
	regenInFlight bool
}

// NewCoachService loads prior state (or falls open to a fresh one) and
// returns the state owner. Load happens exactly once, here.
func NewCoachService(ctx context.Context, stateStore store.StateStore, plans gateway.PlanGenerator) (CoachService, error) {
	state, err := stateStore.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoState) {
			return nil, err
		}
		log.Println("No prior state found, starting fresh.")
		state = domain.NewAppState()
	}

	return &coachService{
		state: state,
		store: stateStore,
		plans: plans,
		now:   time.Now,
	}, nil
}

// State returns a deep-copy snapshot of the full application state.
func (s *coachService) State(ctx context.Context) *domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dashboard derives the summary view: today's meals, their macro totals
// against the plan target, and the latest weight sample.
func (s *coachService) Dashboard(ctx context.Context) (*DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Profile.Onboarded {
		return nil, ErrNotOnboarded
	}

	snapshot := s.state.Clone()
	view := &DashboardView{
		Profile:    snapshot.Profile,
		Plan:       snapshot.TodayPlan,
		TodayMeals: mealsForDay(snapshot.Logs.Meals, domain.DayString(s.now())),
	}
	for _, m := range view.TodayMeals {
		view.Consumed.Calories += m.Calories
		view.Consumed.Protein += m.Protein
		view.Consumed.Carbs += m.Carbs
		view.Consumed.Fats += m.Fats
	}
	if n := len(snapshot.Logs.WeightHistory); n > 0 {
		latest := snapshot.Logs.WeightHistory[n-1]
		view.LatestWeight = &latest
	}
	return view, nil
}

// CompleteOnboarding validates the submitted profile, forces the onboarded
// flag, generates the first plan with empty recent logs, and commits both in
// one transition. This is the only operation that blocks on plan generation
// before the main views become available.
func (s *coachService) CompleteOnboarding(ctx context.Context, profile domain.UserProfile) (*domain.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Profile.Onboarded {
		return nil, ErrAlreadyOnboarded
	}

	profile.Onboarded = true
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	plan := s.plans.GeneratePlan(ctx, profile, domain.LogBook{
		Meals:         []domain.MealLog{},
		Workouts:      []domain.WorkoutSession{},
		WeightHistory: []domain.WeightSample{},
	})

	s.state.Profile = profile
	s.state.TodayPlan = &plan
	if err := s.store.Save(ctx, s.state); err != nil {
		return nil, err
	}
	return s.state.Clone(), nil
}

// RegenerateIfMissing generates a plan when the user is onboarded and no plan
// exists, using the current logs as context. Re-entrant triggers while a
// generation is in flight return the current (absent) plan without a second
// gateway call.
func (s *coachService) RegenerateIfMissing(ctx context.Context) (*domain.DailyPlan, error) {
	s.mu.Lock()
	if !s.state.Profile.Onboarded {
		s.mu.Unlock()
		return nil, ErrNotOnboarded
	}
	if s.state.TodayPlan != nil {
		plan := *s.state.TodayPlan
		s.mu.Unlock()
		return &plan, nil
	}
	if s.regenInFlight {
		s.mu.Unlock()
		return nil, nil
	}
	s.regenInFlight = true
	profile := s.state.Profile
	logs := s.state.Clone().Logs
	s.mu.Unlock()

	// Gateway call happens outside the lock so logging operations issued
	// while the model thinks are not stalled behind it.
	plan := s.plans.GeneratePlan(ctx, profile, logs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.regenInFlight = false
	if s.state.TodayPlan == nil {
		s.state.TodayPlan = &plan
		if err := s.store.Save(ctx, s.state); err != nil {
			return nil, err
		}
	}
	result := *s.state.TodayPlan
	return &result, nil
}

// LogMeal appends one meal record. Tolerant defaults are applied first;
// records are never deduplicated, mutated or dropped afterwards.
func (s *coachService) LogMeal(ctx context.Context, meal domain.MealLog) (*domain.MealLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Profile.Onboarded {
		return nil, ErrNotOnboarded
	}

	meal.Normalize(s.now())
	s.state.Logs.Meals = append(s.state.Logs.Meals, meal)
	if err := s.store.Save(ctx, s.state); err != nil {
		return nil, err
	}
	return &meal, nil
}

// LogWorkout appends one workout session, symmetric to LogMeal.
func (s *coachService) LogWorkout(ctx context.Context, session domain.WorkoutSession) (*domain.WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Profile.Onboarded {
		return nil, ErrNotOnboarded
	}

	session.Normalize(s.now())
	s.state.Logs.Workouts = append(s.state.Logs.Workouts, session)
	if err := s.store.Save(ctx, s.state); err != nil {
		return nil, err
	}
	result := session
	return &result, nil
}

// UpdateProfile shallow-merges the given fields into the profile. It never
// touches the plan or the logs and never triggers regeneration.
func (s *coachService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Profile.Onboarded {
		return nil, ErrNotOnboarded
	}

	update.Apply(&s.state.Profile)
	if err := s.store.Save(ctx, s.state); err != nil {
		return nil, err
	}
	profile := s.state.Profile
	return &profile, nil
}

// UpdateWeight records today's body weight. Any existing sample for today is
// replaced, the history is kept sorted ascending by date, and the profile
// weight follows the new value. Both entities change in one transition.
func (s *coachService) UpdateWeight(ctx context.Context, weightKg float64) ([]domain.WeightSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Profile.Onboarded {
		return nil, ErrNotOnboarded
	}
	if weightKg <= 0 {
		return nil, &domain.ValidationError{Field: "weight", Reason: "must be positive (kg)"}
	}

	today := domain.DayString(s.now())
	history := s.state.Logs.WeightHistory[:0]
	for _, sample := range s.state.Logs.WeightHistory {
		if sample.Date != today {
			history = append(history, sample)
		}
	}
	history = append(history, domain.WeightSample{Date: today, Weight: weightKg})
	sort.Slice(history, func(i, j int) bool { return history[i].Date < history[j].Date })

	s.state.Logs.WeightHistory = history
	s.state.Profile.Weight = weightKg
	if err := s.store.Save(ctx, s.state); err != nil {
		return nil, err
	}
	return append([]domain.WeightSample{}, history...), nil
}

// AnalyzeMeal runs the food analysis flow against the current state context.
// It does not mutate state; logging happens when the user confirms the draft.
func (s *coachService) AnalyzeMeal(ctx context.Context, text string) (*gateway.MealAnalysis, error) {
	profile, todayMeals, weightTrend, err := s.analysisContext()
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyInput
	}

	analysis := s.plans.AnalyzeMeal(ctx, text, profile, todayMeals, weightTrend)
	return &analysis, nil
}

// AnalyzeWorkout runs the workout extraction flow against the current state
// context. Like AnalyzeMeal it is read-only.
func (s *coachService) AnalyzeWorkout(ctx context.Context, text string) (*gateway.WorkoutAnalysis, error) {
	s.mu.Lock()
	if !s.state.Profile.Onboarded {
		s.mu.Unlock()
		return nil, ErrNotOnboarded
	}
	profile := s.state.Profile
	sessions := s.state.Clone().Logs.Workouts
	s.mu.Unlock()

	if text == "" {
		return nil, ErrEmptyInput
	}

	analysis := s.plans.AnalyzeWorkout(ctx, text, profile, sessions)
	return &analysis, nil
}

// analysisContext snapshots the inputs the meal analysis prompt needs.
func (s *coachService) analysisContext() (domain.UserProfile, []domain.MealLog, []domain.WeightSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Profile.Onboarded {
		return domain.UserProfile{}, nil, nil, ErrNotOnboarded
	}
	snapshot := s.state.Clone()
	today := domain.DayString(s.now())
	return snapshot.Profile, mealsForDay(snapshot.Logs.Meals, today), snapshot.Logs.WeightHistory, nil
}

// mealsForDay filters meals whose timestamp falls on the given calendar day.
func mealsForDay(meals []domain.MealLog, day string) []domain.MealLog {
	result := []domain.MealLog{}
	for _, m := range meals {
		if len(m.Timestamp) >= len(day) && m.Timestamp[:len(day)] == day {
			result = append(result, m)
		}
	}
	return result
}
