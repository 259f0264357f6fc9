package catalog

import (
	"fmt"
	"strings"

	"rihla/models"
	"rihla/prefs"

	"github.com/jaswdr/faker"
)

// ActivityCategories are the interest categories used for seeded destinations.
var ActivityCategories = []string{
	"Historical",
	"Cultural",
	"Nature",
	"Shopping",
	"Adventure",
	"Entertainment",
	"Religious",
}

var (
	priceTiers = []string{"$", "$$", "$$$", "$$$$"}
	amenities  = []string{"Pool", "Gym", "Spa", "Free WiFi", "Parking", "Airport Shuttle", "Restaurant"}
	landmarks  = []string{"Fort", "Museum", "Souq", "Park", "Gallery", "Tower", "Oasis", "Old Town", "Palace", "Market"}
)

// Counts sizes a fake catalog.
type Counts struct {
	Activities  int
	Hotels      int
	Restaurants int
}

// Fake builds a plausible catalog for city with vocabulary the selector understands.
func Fake(fake faker.Faker, city string, n Counts) ([]models.Destination, []models.Hotel, []models.Restaurant) {
	city = strings.TrimSpace(city)

	acts := make([]models.Destination, n.Activities)
	for i := range acts {
		category := fake.RandomStringElement(ActivityCategories)
		acts[i] = models.Destination{
			Name:        fmt.Sprintf("%s %s", fake.Person().LastName(), fake.RandomStringElement(landmarks)),
			Description: fake.Lorem().Sentence(12),
			City:        city,
			Category:    category,
			Cost:        fake.RandomStringElement(priceTiers),
			Tags:        []string{strings.ToLower(category)},
			Location:    fakeLocation(fake),
		}
	}

	hotels := make([]models.Hotel, n.Hotels)
	for i := range hotels {
		hotels[i] = models.Hotel{
			Name:        fmt.Sprintf("%s Hotel %s", fake.Company().Name(), city),
			Description: fake.Lorem().Sentence(10),
			City:        city,
			PriceRange:  fake.RandomStringElement(priceTiers),
			Amenities:   pickSome(fake, amenities, 3),
			Location:    fakeLocation(fake),
		}
	}

	restaurants := make([]models.Restaurant, n.Restaurants)
	for i := range restaurants {
		cuisine := fake.RandomStringElement(prefs.Cuisines)
		restaurants[i] = models.Restaurant{
			Name:        fmt.Sprintf("%s %s", fake.Person().FirstName(), fake.RandomStringElement([]string{"Kitchen", "Grill", "House", "Bistro", "Table"})),
			Description: fake.Lorem().Sentence(8),
			City:        city,
			Cuisine:     cuisine,
			Category:    fake.RandomStringElement(prefs.Categories),
			PriceRange:  fake.RandomStringElement(priceTiers),
			Location:    fakeLocation(fake),
		}
	}
	return acts, hotels, restaurants
}

func fakeLocation(fake faker.Faker) models.Coordinates {
	return models.Coordinates{
		Latitude:  fake.Address().Latitude(),
		Longitude: fake.Address().Longitude(),
	}
}

func pickSome(fake faker.Faker, from []string, max int) []string {
	n := fake.IntBetween(1, max)
	seen := map[string]bool{}
	var out []string
	for len(out) < n {
		v := fake.RandomStringElement(from)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
