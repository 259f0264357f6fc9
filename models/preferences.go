package models

const (
	BudgetLow    = "Low"
	BudgetMedium = "Medium"
	BudgetLuxury = "Luxury"
)

const (
	TravelSolo   = "Solo"
	TravelCouple = "Couple"
	TravelFamily = "Family"
	TravelGroup  = "Group"
)

// TypeRestaurant marks restaurant entries in the destinations collection.
const TypeRestaurant = "restaurant"

// Preferences is what a user asks the generator for.
type Preferences struct {
	City            string           `json:"city"`
	Duration        int              `json:"duration"`
	Interests       []string         `json:"interests"`
	Budget          string           `json:"budget"`
	TravelersType   string           `json:"travelersType"`
	FoodPreferences *FoodPreferences `json:"foodPreferences,omitempty"`
}

// FoodPreferences holds snake_case cuisine and category codes.
type FoodPreferences struct {
	Cuisines   []string `json:"cuisines,omitempty" bson:"cuisines,omitempty"`
	Categories []string `json:"categories,omitempty" bson:"categories,omitempty"`
}

// HasAny reports whether any code was supplied.
func (f *FoodPreferences) HasAny() bool {
	return f != nil && (len(f.Cuisines) > 0 || len(f.Categories) > 0)
}
