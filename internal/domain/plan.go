package domain

// MacroGoals is a daily nutrition target or total.
type MacroGoals struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
}

// DailyPlan is the active coaching plan for the current day. At most one
// exists in state at any time; it is produced wholesale by the plan gateway
// and never partially edited.
type DailyPlan struct {
	Date            string     `bson:"date" json:"date"`
	Reasoning       string     `bson:"reasoning" json:"reasoning"`
	NutritionTarget MacroGoals `bson:"nutritionTarget" json:"nutritionTarget"`
	WorkoutName     string     `bson:"workoutName" json:"workoutName"`
	WorkoutFocus    string     `bson:"workoutFocus" json:"workoutFocus"`
	Exercises       []Exercise `bson:"exercises" json:"exercises"`
}
