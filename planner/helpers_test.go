package planner

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"rihla/catalog"
	"rihla/llm"
	"rihla/models"
	"rihla/prefs"
)

// memCatalog is an in-memory catalog.Store with the same matching rules as the Mongo filters.
type memCatalog struct {
	mu          sync.Mutex
	activities  []models.Destination
	hotels      []models.Hotel
	restaurants []models.Restaurant
	queries     []any
	err         error
}

func (m *memCatalog) record(q any) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
}

func (m *memCatalog) Activities(_ context.Context, q catalog.ActivityQuery) ([]models.Destination, error) {
	m.record(q)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Destination
	for _, a := range m.activities {
		if !strings.EqualFold(a.City, q.City) {
			continue
		}
		if len(q.Categories) > 0 && !containsFold(q.Categories, a.Category) {
			continue
		}
		if q.ExcludeType != "" && a.Type == q.ExcludeType {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memCatalog) Hotels(_ context.Context, q catalog.HotelQuery) ([]models.Hotel, error) {
	m.record(q)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Hotel
	for _, h := range m.hotels {
		if !strings.EqualFold(h.City, q.City) {
			continue
		}
		if len(q.PriceRanges) > 0 && !containsFold(q.PriceRanges, h.PriceRange) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (m *memCatalog) Restaurants(_ context.Context, q catalog.RestaurantQuery) ([]models.Restaurant, error) {
	m.record(q)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Restaurant
	for _, r := range m.restaurants {
		if !strings.EqualFold(r.City, q.City) {
			continue
		}
		if len(q.Cuisines) > 0 && !containsFold(q.Cuisines, r.Cuisine) {
			continue
		}
		if len(q.Categories) > 0 && !containsFold(q.Categories, r.Category) {
			continue
		}
		out = append(out, r)
		if q.Limit > 0 && int64(len(out)) == q.Limit {
			break
		}
	}
	return out, nil
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func riyadhCatalog() *memCatalog {
	return &memCatalog{
		activities: []models.Destination{
			{Name: "Masmak Fortress", City: "Riyadh", Category: "Historical", Description: "Clay and mud-brick fort at the heart of old Riyadh."},
			{Name: "Diriyah", City: "Riyadh", Category: "Historical", Description: "UNESCO listed birthplace of the first Saudi state."},
			{Name: "Murabba Palace", City: "Riyadh", Category: "Historical", Description: "Royal palace built by King Abdulaziz."},
			{Name: "Kingdom Centre Sky Bridge", City: "Riyadh", Category: "Modern", Description: "Skyline views from 300 metres."},
			{Name: "Najd Village", City: "Riyadh", Category: "Food", Type: models.TypeRestaurant},
			{Name: "Al Balad", City: "Jeddah", Category: "Historical"},
		},
		hotels: []models.Hotel{
			{Name: "Narcissus Hotel", City: "Riyadh", PriceRange: "$$$", Description: "Upscale tower hotel."},
			{Name: "Ibis Olaya", City: "Riyadh", PriceRange: "$", Description: "Budget rooms on Olaya street."},
			{Name: "Ritz-Carlton Riyadh", City: "Riyadh", PriceRange: "$$$$", Description: "Palatial luxury hotel."},
		},
		restaurants: []models.Restaurant{
			{Name: "Najd Village", City: "Riyadh", Cuisine: "Saudi", Category: "Traditional", PriceRange: "$$"},
			{Name: "Lusin", City: "Riyadh", Cuisine: "Middle Eastern", Category: "Fine Dining", PriceRange: "$$$"},
			{Name: "Myazu", City: "Riyadh", Cuisine: "Japanese", Category: "Fine Dining", PriceRange: "$$$$"},
			{Name: "Shawarma House", City: "Riyadh", Cuisine: "Middle Eastern", Category: "Street Food", PriceRange: "$"},
		},
	}
}

// stubClient returns a canned response or error.
type stubClient struct {
	mu    sync.Mutex
	out   string
	err   error
	calls int
	last  llm.Request
	block bool
}

func (s *stubClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.calls++
	s.last = req
	s.mu.Unlock()
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.out, s.err
}

// emptyPlaceholders disables placeholder synthesis.
type emptyPlaceholders struct{}

func (emptyPlaceholders) Activities(string) []models.Destination { return nil }
func (emptyPlaceholders) Hotels(string, string) []models.Hotel { return nil }
func (emptyPlaceholders) Restaurants(string, string) []models.Restaurant { return nil }

func seeded(seed int64) func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
}

func newTestGenerator(store catalog.Store, client llm.Client, opts ...Option) *Generator {
	mapper := prefs.NewMapper(prefs.DefaultAliases)
	opts = append([]Option{WithRand(seeded(7))}, opts...)
	return NewGenerator(NewSelector(store, mapper, nil), NewSynthesizer(mapper), client, opts...)
}

func riyadhPrefs() models.Preferences {
	return models.Preferences{
		City:          "Riyadh",
		Duration:      2,
		Interests:     []string{"Historical"},
		Budget:        models.BudgetMedium,
		TravelersType: models.TravelSolo,
	}
}
