// Package sweeper removes expired temporary itineraries on a fixed interval.
package sweeper

import (
	"context"
	"log"
	"sync"
	"time"

	"rihla/metrics"
)

// DefaultInterval matches the lifetime of a temporary itinerary.
const DefaultInterval = 24 * time.Hour

// maxLeaseTTL bounds how long a crashed holder can block other replicas.
const maxLeaseTTL = 10 * time.Minute

// Target deletes temporary records whose expiry is before now.
type Target interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Lease lets one replica claim a sweep round.
type Lease interface {
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}

type Option func(*Sweeper)

// WithLease makes each round conditional on acquiring the lease.
func WithLease(l Lease) Option {
	return func(s *Sweeper) { s.lease = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

type Sweeper struct {
	target   Target
	lease    Lease
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(target Target, interval time.Duration, opts ...Option) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Sweeper{target: target, interval: interval, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start sweeps once immediately and then every interval until Stop or ctx ends.
// Calling Start on a running sweeper does nothing.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx, s.done)
	log.Printf("[sweeper] started, interval %s", s.interval)
}

// Stop ends the loop and waits for an in-flight round to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	log.Println("[sweeper] stopped")
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.round(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.round(ctx)
		}
	}
}

func (s *Sweeper) round(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		log.Printf("[sweeper] sweep failed: %v", err)
	}
}

// RunOnce deletes everything expired as of now. With a lease configured the
// round is skipped while another replica is sweeping.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	if s.lease != nil {
		ok, err := s.lease.Acquire(ctx, s.leaseTTL())
		switch {
		case err != nil:
			// deletes are idempotent, so sweep anyway
			log.Printf("[sweeper] lease unavailable: %v", err)
		case !ok:
			log.Println("[sweeper] another replica is sweeping, round skipped")
			return 0, nil
		default:
			defer func() {
				if err := s.lease.Release(context.WithoutCancel(ctx)); err != nil {
					log.Printf("[sweeper] releasing lease: %v", err)
				}
			}()
		}
	}

	n, err := s.target.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.SweptItineraries.Add(float64(n))
		log.Printf("[sweeper] deleted %d expired itineraries", n)
	}
	return n, nil
}

func (s *Sweeper) leaseTTL() time.Duration {
	return min(s.interval/2, maxLeaseTTL)
}
