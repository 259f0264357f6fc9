package planner

import (
	"fmt"

	"rihla/models"
)

// Placeholders synthesizes candidates for a city with no matching catalog data.
type Placeholders interface {
	Activities(city string) []models.Destination
	Hotels(city, budget string) []models.Hotel
	Restaurants(city, budget string) []models.Restaurant
}

// Fixed slot fillers used when no candidate is left to draw.
const (
	freeTimeActivity    = "Free time"
	freeTimeDescription = "Explore the city at your own pace."
	localDining         = "Local restaurant"
	localDiningDesc     = "Try a local restaurant near your hotel."
)

// DefaultPlaceholders produces deterministic stand-ins derived from city and budget.
type DefaultPlaceholders struct{}

func (DefaultPlaceholders) Activities(city string) []models.Destination {
	return []models.Destination{{
		Name:        fmt.Sprintf("Explore %s", city),
		Description: fmt.Sprintf("Discover the highlights of %s at your own pace.", city),
		City:        city,
		Category:    "General",
	}}
}

func (DefaultPlaceholders) Hotels(city, budget string) []models.Hotel {
	return []models.Hotel{{
		Name:        fmt.Sprintf("%s Central Hotel", city),
		Description: fmt.Sprintf("A well located hotel in %s matching a %s budget.", city, budgetLabel(budget)),
		City:        city,
		PriceRange:  placeholderPriceRange(budget),
	}}
}

var restaurantTemplates = []struct {
	name     string
	desc     string
	category string
}{
	{"%s Traditional Kitchen", "Classic local dishes from %s.", "Traditional"},
	{"%s Family Restaurant", "Relaxed family dining in %s.", "Family Restaurant"},
	{"%s Grill House", "Grilled meats and mezze in %s.", "Casual Dining"},
	{"%s Street Bites", "Popular street food stalls of %s.", "Street Food"},
	{"%s Corner Cafe", "Coffee, tea and light meals in %s.", "Cafe"},
}

func (DefaultPlaceholders) Restaurants(city, budget string) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(restaurantTemplates))
	for _, tpl := range restaurantTemplates {
		out = append(out, models.Restaurant{
			Name:        fmt.Sprintf(tpl.name, city),
			Description: fmt.Sprintf(tpl.desc, city),
			City:        city,
			Cuisine:     "Local",
			Category:    tpl.category,
			PriceRange:  placeholderPriceRange(budget),
		})
	}
	return out
}

func placeholderPriceRange(budget string) string {
	switch budget {
	case models.BudgetLow:
		return "$"
	case models.BudgetLuxury:
		return "$$$$"
	default:
		return "$$"
	}
}

func budgetLabel(budget string) string {
	if budget == "" {
		return "moderate"
	}
	return budget
}

// priceRanges maps a budget to the hotel price tiers it accepts; nil means no filter.
func priceRanges(budget string) []string {
	switch budget {
	case models.BudgetLow:
		return []string{"$", "$$"}
	case models.BudgetMedium:
		return []string{"$$", "$$$"}
	case models.BudgetLuxury:
		return []string{"$$$", "$$$$"}
	}
	return nil
}
