package planner

import (
	"context"
	"fmt"
	"log"

	"rihla/catalog"
	"rihla/models"
	"rihla/prefs"

	"golang.org/x/sync/errgroup"
)

const (
	maxHotels      = 5
	maxRestaurants = 10
)

// Candidates are the catalog entries a plan may reference.
type Candidates struct {
	Activities  []models.Destination
	Hotels      []models.Hotel
	Restaurants []models.Restaurant
}

func (c *Candidates) Empty() bool {
	return len(c.Activities) == 0 && len(c.Hotels) == 0 && len(c.Restaurants) == 0
}

// Selector gathers candidates for a city from the catalog.
type Selector struct {
	store        catalog.Store
	mapper       *prefs.Mapper
	placeholders Placeholders
}

func NewSelector(store catalog.Store, mapper *prefs.Mapper, placeholders Placeholders) *Selector {
	if placeholders == nil {
		placeholders = DefaultPlaceholders{}
	}
	return &Selector{store: store, mapper: mapper, placeholders: placeholders}
}

// Select reads activities, hotels and restaurants concurrently. The three
// reads are independent and read-only.
func (s *Selector) Select(ctx context.Context, p models.Preferences) (*Candidates, error) {
	var c Candidates
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		c.Activities, err = s.activities(ctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		c.Hotels, err = s.hotels(ctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		c.Restaurants, err = s.restaurants(ctx, p)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Selector) activities(ctx context.Context, p models.Preferences) ([]models.Destination, error) {
	found, err := s.store.Activities(ctx, catalog.ActivityQuery{City: p.City, Categories: p.Interests})
	if err != nil {
		return nil, fmt.Errorf("activities: %w", err)
	}
	if len(found) > 0 {
		return found, nil
	}

	log.Printf("[planner] no %v activities in %s, widening to the whole city", p.Interests, p.City)
	found, err = s.store.Activities(ctx, catalog.ActivityQuery{City: p.City, ExcludeType: models.TypeRestaurant})
	if err != nil {
		return nil, fmt.Errorf("activities: %w", err)
	}
	if len(found) > 0 {
		return found, nil
	}
	return s.placeholders.Activities(p.City), nil
}

func (s *Selector) hotels(ctx context.Context, p models.Preferences) ([]models.Hotel, error) {
	all, err := s.store.Hotels(ctx, catalog.HotelQuery{City: p.City})
	if err != nil {
		return nil, fmt.Errorf("hotels: %w", err)
	}

	matching := all
	if tiers := priceRanges(p.Budget); tiers != nil {
		matching, err = s.store.Hotels(ctx, catalog.HotelQuery{City: p.City, PriceRanges: tiers})
		if err != nil {
			return nil, fmt.Errorf("hotels: %w", err)
		}
	}

	switch {
	case len(matching) > 0:
		return capped(matching, maxHotels), nil
	case len(all) > 0:
		return capped(all, maxHotels), nil
	}
	return s.placeholders.Hotels(p.City, p.Budget), nil
}

func (s *Selector) restaurants(ctx context.Context, p models.Preferences) ([]models.Restaurant, error) {
	q := catalog.RestaurantQuery{City: p.City, Limit: maxRestaurants}
	if p.FoodPreferences != nil {
		q.Cuisines = s.mapper.Cuisines(p.FoodPreferences.Cuisines)
		q.Categories = s.mapper.Categories(p.FoodPreferences.Categories)
	}

	found, err := s.store.Restaurants(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("restaurants: %w", err)
	}
	if len(found) > 0 {
		return capped(found, maxRestaurants), nil
	}
	return s.placeholders.Restaurants(p.City, p.Budget), nil
}

func capped[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
