package itinerary

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"rihla/models"
	"rihla/mq"
	"rihla/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu   sync.Mutex
	byID map[string]models.Itinerary
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]models.Itinerary{}}
}

func (m *memRepo) Insert(_ context.Context, it *models.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[it.ItineraryID] = *it
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *memRepo) FindByUser(_ context.Context, userID string) ([]models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Itinerary{}
	for _, it := range m.byID {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, id string, ch Changes, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	if ch.Name != nil {
		it.Name = *ch.Name
	}
	if ch.Days != nil {
		it.Days = ch.Days
	}
	it.LastUpdated = at
	m.byID[id] = it
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, it := range m.byID {
		if it.IsTemporary && it.ExpiresAt != nil && it.ExpiresAt.Before(now) {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

type stubGenerator struct {
	fallback bool
	err      error
}

func (g stubGenerator) Generate(_ context.Context, p models.Preferences) (*planner.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	days := make([]models.DayPlan, p.Duration)
	for i := range days {
		days[i] = models.DayPlan{
			Day:       i + 1,
			Morning:   models.Activity{Activity: "Masmak Fortress"},
			Lunch:     models.Meal{Restaurant: "Najd Village"},
			Afternoon: models.Activity{Activity: "Diriyah"},
			Dinner:    models.Meal{Restaurant: "Al Romansiah"},
		}
	}
	return &planner.Result{
		Preferences:   p,
		Plan:          models.Plan{Hotel: models.Stay{Place: "Narcissus Hotel"}, Days: days},
		UsingFallback: g.fallback,
	}, nil
}

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestManager(repo Repository, gen Generator) *Manager {
	m := NewManager(repo, gen, 0)
	m.now = func() time.Time { return fixedNow }
	return m
}

func prefs() models.Preferences {
	return models.Preferences{
		City:          "Riyadh",
		Duration:      2,
		Interests:     []string{"Historical"},
		Budget:        models.BudgetMedium,
		TravelersType: models.TravelSolo,
	}
}

func TestGenerateAnonymousIsTemporary(t *testing.T) {
	repo := newMemRepo()
	m := newTestManager(repo, stubGenerator{fallback: true})

	it, err := m.Generate(context.Background(), prefs(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, it.ItineraryID)
	assert.Empty(t, it.UserID)
	assert.True(t, it.IsTemporary)
	require.NotNil(t, it.ExpiresAt)
	assert.Equal(t, fixedNow.Add(DefaultTTL), *it.ExpiresAt)
	assert.True(t, it.IsAIGenerated)
	assert.True(t, it.UsingFallbackGenerator)
	assert.Equal(t, "2-Day Trip to Riyadh", it.Name)
	assert.Len(t, it.Days, 2)

	stored, err := repo.FindByID(context.Background(), it.ItineraryID)
	require.NoError(t, err)
	assert.Equal(t, *it, *stored)
}

func TestGenerateAuthenticatedIsPermanent(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})

	it, err := m.Generate(context.Background(), prefs(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", it.UserID)
	assert.False(t, it.IsTemporary)
	assert.Nil(t, it.ExpiresAt)
	assert.False(t, it.UsingFallbackGenerator)
}

func TestGeneratePropagatesPlannerErrors(t *testing.T) {
	repo := newMemRepo()
	m := newTestManager(repo, stubGenerator{err: planner.ErrNoData})

	_, err := m.Generate(context.Background(), prefs(), "")
	require.ErrorIs(t, err, planner.ErrNoData)
	assert.Empty(t, repo.byID)
}

func TestSaveCopiesTemporaryItinerary(t *testing.T) {
	repo := newMemRepo()
	m := newTestManager(repo, stubGenerator{})
	ctx := context.Background()

	tmp, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)

	saved, all, err := m.Save(ctx, tmp.ItineraryID, "u1", "  Riyadh weekend ")
	require.NoError(t, err)

	assert.NotEqual(t, tmp.ItineraryID, saved.ItineraryID)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, "Riyadh weekend", saved.Name)
	assert.False(t, saved.IsTemporary)
	assert.Nil(t, saved.ExpiresAt)
	assert.Equal(t, tmp.Days, saved.Days)
	assert.Equal(t, tmp.Hotel, saved.Hotel)

	require.Len(t, all, 1)
	assert.Equal(t, saved.ItineraryID, all[0].ItineraryID)

	// the temporary source stays until it expires
	src, err := repo.FindByID(ctx, tmp.ItineraryID)
	require.NoError(t, err)
	assert.True(t, src.IsTemporary)
}

func TestSaveKeepsNameWhenBlank(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	tmp, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)
	saved, _, err := m.Save(ctx, tmp.ItineraryID, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, tmp.Name, saved.Name)
}

func TestSaveErrors(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	owned, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)

	_, _, err = m.Save(ctx, owned.ItineraryID, "", "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = m.Save(ctx, "missing", "u1", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = m.Save(ctx, owned.ItineraryID, "u2", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetVisibility(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	anon, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)
	owned, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)

	_, err = m.Get(ctx, anon.ItineraryID, "")
	assert.NoError(t, err)
	_, err = m.Get(ctx, anon.ItineraryID, "u2")
	assert.NoError(t, err)
	_, err = m.Get(ctx, owned.ItineraryID, "u1")
	assert.NoError(t, err)
	_, err = m.Get(ctx, owned.ItineraryID, "u2")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = m.Get(ctx, owned.ItineraryID, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListRequiresUser(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	_, err := m.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	all, err := m.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}

func TestUpdate(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	it, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)

	name := "Old town"
	days := []models.DayPlan{
		{Day: 1, Morning: models.Activity{Activity: "Diriyah"}},
		{Day: 2, Morning: models.Activity{Activity: "Murabba Palace"}},
	}
	later := fixedNow.Add(time.Hour)
	m.now = func() time.Time { return later }

	updated, err := m.Update(ctx, it.ItineraryID, "u1", Changes{Name: &name, Days: days})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, days, updated.Days)
	assert.Equal(t, later, updated.LastUpdated)
	assert.Equal(t, fixedNow, updated.CreatedAt)

	got, err := m.Get(ctx, it.ItineraryID, "u1")
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "Murabba Palace", got.Days[1].Morning.Activity)
}

func TestUpdateNameOnlyKeepsDays(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	it, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)
	name := "Renamed"
	updated, err := m.Update(ctx, it.ItineraryID, "u1", Changes{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, it.Days, updated.Days)
}

// deadlineRepo fails writes on a done context, as the Mongo driver does.
type deadlineRepo struct {
	*memRepo
}

func (r deadlineRepo) Insert(ctx context.Context, it *models.Itinerary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.memRepo.Insert(ctx, it)
}

func TestGeneratePersistsAfterRequestDeadline(t *testing.T) {
	repo := deadlineRepo{newMemRepo()}
	m := newTestManager(repo, stubGenerator{fallback: true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	it, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)
	assert.True(t, it.UsingFallbackGenerator)

	stored, err := repo.FindByID(context.Background(), it.ItineraryID)
	require.NoError(t, err)
	assert.Equal(t, it.ItineraryID, stored.ItineraryID)
}

func TestUpdateTrimsName(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	it, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)

	padded := "  Old Town walk  "
	updated, err := m.Update(ctx, it.ItineraryID, "u1", Changes{Name: &padded})
	require.NoError(t, err)
	assert.Equal(t, "Old Town walk", updated.Name)

	blank := "   "
	updated, err = m.Update(ctx, it.ItineraryID, "u1", Changes{Name: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Old Town walk", updated.Name)

	got, err := m.Get(ctx, it.ItineraryID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Old Town walk", got.Name)
}

func TestUpdateRejects(t *testing.T) {
	m := newTestManager(newMemRepo(), stubGenerator{})
	ctx := context.Background()

	it, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)
	anon, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)

	cases := []struct {
		name   string
		id     string
		userID string
		ch     Changes
		want   error
	}{
		{"anonymous", it.ItineraryID, "", Changes{}, ErrUnauthorized},
		{"other user", it.ItineraryID, "u2", Changes{}, ErrForbidden},
		{"temporary", anon.ItineraryID, "u1", Changes{}, ErrForbidden},
		{"missing", "nope", "u1", Changes{}, ErrNotFound},
		{"too few days", it.ItineraryID, "u1", Changes{Days: []models.DayPlan{{Day: 1}}}, ErrInvalidDays},
		{"misnumbered", it.ItineraryID, "u1", Changes{Days: []models.DayPlan{{Day: 2}, {Day: 1}}}, ErrInvalidDays},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Update(ctx, tc.id, tc.userID, tc.ch)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDelete(t *testing.T) {
	repo := newMemRepo()
	m := newTestManager(repo, stubGenerator{})
	ctx := context.Background()

	it, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)

	assert.ErrorIs(t, m.Delete(ctx, it.ItineraryID, "u2"), ErrForbidden)
	assert.ErrorIs(t, m.Delete(ctx, it.ItineraryID, ""), ErrUnauthorized)
	require.NoError(t, m.Delete(ctx, it.ItineraryID, "u1"))

	_, err = repo.FindByID(ctx, it.ItineraryID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, m.Delete(ctx, it.ItineraryID, "u1"), ErrNotFound)
}

func TestExpiredTemporaryItinerariesAreSwept(t *testing.T) {
	repo := newMemRepo()
	m := newTestManager(repo, stubGenerator{})
	ctx := context.Background()

	tmp, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)
	kept, err := m.Generate(ctx, prefs(), "u1")
	require.NoError(t, err)

	n, err := repo.DeleteExpired(ctx, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteExpired(ctx, fixedNow.Add(DefaultTTL+time.Second))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.FindByID(ctx, tmp.ItineraryID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByID(ctx, kept.ItineraryID)
	assert.NoError(t, err)
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []mq.Event
}

func (r *recordingEmitter) Emit(_ context.Context, ev mq.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func TestLifecycleEvents(t *testing.T) {
	rec := &recordingEmitter{}
	m := NewManager(newMemRepo(), stubGenerator{fallback: true}, 0, WithEvents(rec))
	m.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	tmp, err := m.Generate(ctx, prefs(), "")
	require.NoError(t, err)
	saved, _, err := m.Save(ctx, tmp.ItineraryID, "u1", "")
	require.NoError(t, err)
	name := "x"
	_, err = m.Update(ctx, saved.ItineraryID, "u1", Changes{Name: &name})
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, saved.ItineraryID, "u1"))

	// failures publish nothing
	_, err = m.Update(ctx, saved.ItineraryID, "u1", Changes{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)

	var kinds []string
	for _, ev := range rec.events {
		kinds = append(kinds, ev.Type)
	}
	assert.Equal(t, []string{mq.EventGenerated, mq.EventSaved, mq.EventUpdated, mq.EventDeleted}, kinds)
	assert.Equal(t, tmp.ItineraryID, rec.events[0].ItineraryID)
	assert.True(t, rec.events[0].Fallback)
	assert.Equal(t, "u1", rec.events[1].UserID)
	assert.Equal(t, "Riyadh", rec.events[3].City)
}
