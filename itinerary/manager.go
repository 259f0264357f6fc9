package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rihla/models"
	"rihla/mq"
	"rihla/planner"
	"rihla/utils"
)

var (
	ErrNotFound     = errors.New("itinerary not found")
	ErrForbidden    = errors.New("itinerary belongs to another user")
	ErrUnauthorized = errors.New("authentication required")
	ErrInvalidDays  = errors.New("days must match the itinerary duration and be numbered from 1")
)

// DefaultTTL is how long an anonymous itinerary lives before the sweep removes it.
const DefaultTTL = 24 * time.Hour

// persistTimeout bounds the write of a generated plan, independent of the
// request deadline the generation may already have used up.
const persistTimeout = 10 * time.Second

// Generator produces plans; *planner.Generator in production.
type Generator interface {
	Generate(ctx context.Context, p models.Preferences) (*planner.Result, error)
}

// Manager owns the itinerary lifecycle: create from a generated plan,
// save temporary copies, edit, delete.
type Manager struct {
	repo   Repository
	gen    Generator
	events mq.Emitter
	ttl    time.Duration
	now    func() time.Time
}

type ManagerOption func(*Manager)

// WithEvents publishes lifecycle events after each successful change.
func WithEvents(e mq.Emitter) ManagerOption {
	return func(m *Manager) { m.events = e }
}

func NewManager(repo Repository, gen Generator, ttl time.Duration, opts ...ManagerOption) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{repo: repo, gen: gen, events: mq.Nop{}, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Generate runs the planner and persists the result. userID may be empty.
func (m *Manager) Generate(ctx context.Context, p models.Preferences, userID string) (*models.Itinerary, error) {
	res, err := m.gen.Generate(ctx, p)
	if err != nil {
		return nil, err
	}
	return m.Persist(ctx, res, userID)
}

// Persist stores a generated plan. Without a user the record is temporary and expires.
// A fallback plan produced after the caller's deadline passed is still stored.
func (m *Manager) Persist(ctx context.Context, res *planner.Result, userID string) (*models.Itinerary, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	now := m.now().UTC()
	p := res.Preferences

	it := &models.Itinerary{
		ItineraryID:            utils.GetUUID(),
		UserID:                 userID,
		Name:                   defaultName(p),
		City:                   p.City,
		Duration:               p.Duration,
		Interests:              p.Interests,
		Budget:                 p.Budget,
		TravelersType:          p.TravelersType,
		FoodPreferences:        p.FoodPreferences,
		Days:                   res.Plan.Days,
		Hotel:                  res.Plan.Hotel,
		IsAIGenerated:          true,
		UsingFallbackGenerator: res.UsingFallback,
		CreatedAt:              now,
		LastUpdated:            now,
	}
	if userID == "" {
		expires := now.Add(m.ttl)
		it.IsTemporary = true
		it.ExpiresAt = &expires
	}

	if err := m.repo.Insert(ctx, it); err != nil {
		return nil, fmt.Errorf("persist itinerary: %w", err)
	}
	log.Printf("[itinerary] %s: PERSISTED %s (temporary=%t fallback=%t)", p.City, it.ItineraryID, it.IsTemporary, it.UsingFallbackGenerator)
	m.emit(ctx, mq.EventGenerated, it)
	return it, nil
}

// Get returns an itinerary the caller may read: any ownerless one, or their own.
func (m *Manager) Get(ctx context.Context, id, userID string) (*models.Itinerary, error) {
	it, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != "" && it.UserID != userID {
		return nil, ErrForbidden
	}
	return it, nil
}

func (m *Manager) List(ctx context.Context, userID string) ([]models.Itinerary, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return m.repo.FindByUser(ctx, userID)
}

// Save copies an itinerary into a new permanent record owned by the caller.
// The source is left in place; temporary ones are removed by the sweep.
func (m *Manager) Save(ctx context.Context, id, userID, name string) (*models.Itinerary, []models.Itinerary, error) {
	if userID == "" {
		return nil, nil, ErrUnauthorized
	}
	src, err := m.Get(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	now := m.now().UTC()
	saved := *src
	saved.ItineraryID = utils.GetUUID()
	saved.UserID = userID
	saved.IsTemporary = false
	saved.ExpiresAt = nil
	saved.CreatedAt = now
	saved.LastUpdated = now
	if name = strings.TrimSpace(name); name != "" {
		saved.Name = name
	}

	if err := m.repo.Insert(ctx, &saved); err != nil {
		return nil, nil, fmt.Errorf("save itinerary: %w", err)
	}

	m.emit(ctx, mq.EventSaved, &saved)

	all, err := m.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list itineraries: %w", err)
	}
	return &saved, all, nil
}

// Update changes name and/or days of an itinerary the caller owns.
func (m *Manager) Update(ctx context.Context, id, userID string, ch Changes) (*models.Itinerary, error) {
	it, err := m.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if ch.Days != nil && !daysMatch(ch.Days, it.Duration) {
		return nil, ErrInvalidDays
	}
	// a blank name keeps the current one, as in Save
	if ch.Name != nil {
		if name := strings.TrimSpace(*ch.Name); name != "" {
			ch.Name = &name
		} else {
			ch.Name = nil
		}
	}

	at := m.now().UTC()
	if err := m.repo.Update(ctx, id, ch, at); err != nil {
		return nil, err
	}

	if ch.Name != nil {
		it.Name = *ch.Name
	}
	if ch.Days != nil {
		it.Days = ch.Days
	}
	it.LastUpdated = at
	m.emit(ctx, mq.EventUpdated, it)
	return it, nil
}

func (m *Manager) Delete(ctx context.Context, id, userID string) error {
	it, err := m.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}
	m.emit(ctx, mq.EventDeleted, it)
	return nil
}

func (m *Manager) emit(ctx context.Context, kind string, it *models.Itinerary) {
	m.events.Emit(ctx, mq.Event{
		Type:        kind,
		ItineraryID: it.ItineraryID,
		UserID:      it.UserID,
		City:        it.City,
		Fallback:    it.UsingFallbackGenerator,
		At:          m.now().UTC(),
	})
}

func (m *Manager) owned(ctx context.Context, id, userID string) (*models.Itinerary, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	it, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != userID {
		return nil, ErrForbidden
	}
	return it, nil
}

func daysMatch(days []models.DayPlan, duration int) bool {
	if len(days) != duration {
		return false
	}
	for i, d := range days {
		if d.Day != i+1 {
			return false
		}
	}
	return true
}

func defaultName(p models.Preferences) string {
	return fmt.Sprintf("%d-Day Trip to %s", p.Duration, p.City)
}
