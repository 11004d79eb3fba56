package domain

// Gender of the user, as captured during onboarding.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Goal is the user's current training objective.
type Goal string

const (
	GoalCut    Goal = "Lose Fat"
	GoalBulk   Goal = "Build Muscle"
	GoalRecomp Goal = "Recomposition"
)

// UserProfile holds the user's identity and targets. It is created once via
// onboarding and afterwards only changed through explicit profile updates.
type UserProfile struct {
	Name               string  `bson:"name" json:"name"`
	Age                int     `bson:"age" json:"age"`
	Height             float64 `bson:"height" json:"height"` // cm
	Weight             float64 `bson:"weight" json:"weight"` // kg
	Gender             Gender  `bson:"gender" json:"gender"`
	Goal               Goal    `bson:"goal" json:"goal"`
	BodyFat            float64 `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"` // percentage
	WeeklyTrainingDays int     `bson:"weeklyTrainingDays" json:"weeklyTrainingDays"`
	Injuries           string  `bson:"injuries" json:"injuries"`
	Onboarded          bool    `bson:"onboarded" json:"onboarded"`
}

// Validate checks the field-level constraints for a profile submitted via
// onboarding. The first offending field is reported as a ValidationError.
func (p UserProfile) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be a positive integer"}
	}
	if p.Height <= 0 {
		return &ValidationError{Field: "height", Reason: "must be positive (cm)"}
	}
	if p.Weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be positive (kg)"}
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return &ValidationError{Field: "gender", Reason: "must be one of Male, Female, Other"}
	}
	switch p.Goal {
	case GoalCut, GoalBulk, GoalRecomp:
	default:
		return &ValidationError{Field: "goal", Reason: "must be a known goal"}
	}
	if p.WeeklyTrainingDays < 1 || p.WeeklyTrainingDays > 7 {
		return &ValidationError{Field: "weeklyTrainingDays", Reason: "must be between 1 and 7"}
	}
	return nil
}

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched by Apply; this mirrors a shallow merge.
type ProfileUpdate struct {
	Name               *string  `json:"name,omitempty"`
	Age                *int     `json:"age,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	Gender             *Gender  `json:"gender,omitempty"`
	Goal               *Goal    `json:"goal,omitempty"`
	BodyFat            *float64 `json:"bodyFat,omitempty"`
	WeeklyTrainingDays *int     `json:"weeklyTrainingDays,omitempty"`
	Injuries           *string  `json:"injuries,omitempty"`
}

// Apply merges the set fields of the update into the profile. The Onboarded
// flag is deliberately not part of an update; it only flips during onboarding.
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}
	if u.BodyFat != nil {
		p.BodyFat = *u.BodyFat
	}
	if u.WeeklyTrainingDays != nil {
		p.WeeklyTrainingDays = *u.WeeklyTrainingDays
	}
	if u.Injuries != nil {
		p.Injuries = *u.Injuries
	}
}
