package planner

import (
	"fmt"
	"math/rand"
	"strings"

	"rihla/models"
	"rihla/prefs"
)

const slotDescLen = 160

// Synthesizer builds a plan locally from the candidates. It never fails.
type Synthesizer struct {
	mapper *prefs.Mapper
}

func NewSynthesizer(mapper *prefs.Mapper) *Synthesizer {
	return &Synthesizer{mapper: mapper}
}

// Synthesize assembles a day-by-day plan. Within a day activities and
// restaurants do not repeat; every day draws again from the full sets.
func (s *Synthesizer) Synthesize(rng *rand.Rand, p models.Preferences, c *Candidates) models.Plan {
	plan := models.Plan{
		Hotel: s.pickHotel(rng, p, c.Hotels),
		Days:  make([]models.DayPlan, 0, p.Duration),
	}
	restaurants := s.preferredRestaurants(p, c.Restaurants)

	for day := 1; day <= p.Duration; day++ {
		acts := rng.Perm(len(c.Activities))
		meals := rng.Perm(len(restaurants))

		plan.Days = append(plan.Days, models.DayPlan{
			Day:       day,
			Morning:   activityAt(c.Activities, acts, 0),
			Lunch:     mealAt(restaurants, meals, 0),
			Afternoon: activityAt(c.Activities, acts, 1),
			Dinner:    mealAt(restaurants, meals, 1),
			Notes:     dayNotes(day, p),
		})
	}
	return plan
}

func (s *Synthesizer) pickHotel(rng *rand.Rand, p models.Preferences, hotels []models.Hotel) models.Stay {
	if len(hotels) == 0 {
		return models.Stay{
			Place:       fmt.Sprintf("Hotel in %s", p.City),
			Description: fmt.Sprintf("Choose a centrally located hotel in %s that fits your budget.", p.City),
		}
	}
	h := hotels[rng.Intn(len(hotels))]
	return models.Stay{Place: h.Name, Description: describe(h.Description, "Your base for the stay.")}
}

// preferredRestaurants narrows to the requested cuisines, or keeps all of
// them when nothing matches.
func (s *Synthesizer) preferredRestaurants(p models.Preferences, all []models.Restaurant) []models.Restaurant {
	if !p.FoodPreferences.HasAny() {
		return all
	}
	wanted := s.mapper.Cuisines(p.FoodPreferences.Cuisines)
	if len(wanted) == 0 {
		return all
	}

	var out []models.Restaurant
	for _, r := range all {
		for _, w := range wanted {
			if strings.EqualFold(r.Cuisine, w) {
				out = append(out, r)
				break
			}
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

func activityAt(acts []models.Destination, perm []int, i int) models.Activity {
	if i >= len(perm) {
		return models.Activity{Activity: freeTimeActivity, Description: freeTimeDescription}
	}
	a := acts[perm[i]]
	return models.Activity{Activity: a.Name, Description: describe(a.Description, "Visit "+a.Name+".")}
}

func mealAt(rs []models.Restaurant, perm []int, i int) models.Meal {
	if i >= len(perm) {
		return models.Meal{Restaurant: localDining, Description: localDiningDesc}
	}
	r := rs[perm[i]]
	return models.Meal{Restaurant: r.Name, Description: describe(r.Description, "Enjoy a meal at "+r.Name+".")}
}

func describe(desc, fallback string) string {
	if strings.TrimSpace(desc) == "" {
		return fallback
	}
	return abbreviate(desc, slotDescLen)
}

func dayNotes(day int, p models.Preferences) string {
	focus := "local highlights"
	if len(p.Interests) > 0 {
		focus = strings.ToLower(p.Interests[0]) + " sights"
	}
	return fmt.Sprintf("Day %d in %s: take it easy and enjoy the %s.", day, p.City, focus)
}
