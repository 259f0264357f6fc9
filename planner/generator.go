// Package planner turns travel preferences into a day-by-day plan, asking the
// external generation service first and synthesizing locally when it fails.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"rihla/llm"
	"rihla/metrics"
	"rihla/models"
)

// Stage names a step of a generation request.
type Stage string

const (
	StageBuildingPrompt    Stage = "BUILDING_PROMPT"
	StageAwaitingExternal  Stage = "AWAITING_EXTERNAL"
	StageParsedOK          Stage = "PARSED_OK"
	StageExternalFailed    Stage = "EXTERNAL_FAILED"
	StageFallbackSynthesis Stage = "FALLBACK_SYNTHESIS"
	StageResultReady       Stage = "RESULT_READY"
)

const (
	DefaultTimeout     = 45 * time.Second
	DefaultMaxDuration = 30
)

// Result is a finished plan plus how it was produced.
type Result struct {
	Preferences   models.Preferences
	Plan          models.Plan
	UsingFallback bool
}

type Generator struct {
	selector    *Selector
	synth       *Synthesizer
	client      llm.Client
	timeout     time.Duration
	maxDuration int
	newRand     func() *rand.Rand
}

type Option func(*Generator)

// WithTimeout bounds the external call; expiry falls back to local synthesis.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithMaxDuration(days int) Option {
	return func(g *Generator) {
		if days > 0 {
			g.maxDuration = days
		}
	}
}

// WithRand sets the per-request random source of the local synthesizer.
func WithRand(newRand func() *rand.Rand) Option {
	return func(g *Generator) { g.newRand = newRand }
}

func NewGenerator(selector *Selector, synth *Synthesizer, client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		selector:    selector,
		synth:       synth,
		client:      client,
		timeout:     DefaultTimeout,
		maxDuration: DefaultMaxDuration,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = llm.Disabled{}
	}
	return g
}

// Generate produces a plan for the preferences. External failures never
// surface; only validation, no-data and catalog errors do.
func (g *Generator) Generate(ctx context.Context, p models.Preferences) (*Result, error) {
	p = normalize(p)
	if err := Validate(p, g.maxDuration); err != nil {
		return nil, err
	}
	start := time.Now()

	c, err := g.selector.Select(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	if c.Empty() {
		return nil, fmt.Errorf("%s: %w", p.City, ErrNoData)
	}

	trace(p.City, StageBuildingPrompt)
	req := BuildPrompt(p, c)

	res := &Result{Preferences: p}
	trace(p.City, StageAwaitingExternal)
	plan, reason, err := g.external(ctx, req, p.Duration, c)
	if err == nil {
		trace(p.City, StageParsedOK)
		res.Plan = *plan
	} else {
		log.Printf("[planner] %s: external generation failed (%s): %v", p.City, reason, err)
		metrics.ExternalFailures.WithLabelValues(reason).Inc()
		trace(p.City, StageExternalFailed)

		trace(p.City, StageFallbackSynthesis)
		res.Plan = g.synth.Synthesize(g.newRand(), p, c)
		res.UsingFallback = true
	}

	trace(p.City, StageResultReady)
	path := "external"
	if res.UsingFallback {
		path = "fallback"
	}
	metrics.Generations.WithLabelValues(path).Inc()
	metrics.GenerationSeconds.Observe(time.Since(start).Seconds())
	return res, nil
}

// external makes the single bounded call to the generation service. The
// returned reason labels the failure for metrics.
func (g *Generator) external(ctx context.Context, req llm.Request, duration int, c *Candidates) (*models.Plan, string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.Complete(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrDisabled):
			return nil, "disabled", err
		case errors.Is(err, context.DeadlineExceeded):
			return nil, "timeout", err
		}
		return nil, "transport", err
	}

	plan, err := ParsePlan(raw, duration, c)
	if err != nil {
		return nil, "invalid_response", err
	}
	return plan, "", nil
}

// Validate checks the required request fields.
func Validate(p models.Preferences, maxDuration int) error {
	var missing []string
	if p.City == "" {
		missing = append(missing, "city")
	}
	if p.Duration <= 0 {
		missing = append(missing, "duration")
	} else if maxDuration > 0 && p.Duration > maxDuration {
		missing = append(missing, fmt.Sprintf("duration (max %d)", maxDuration))
	}
	if len(p.Interests) == 0 {
		missing = append(missing, "interests")
	}
	if p.Budget == "" {
		missing = append(missing, "budget")
	}
	if p.TravelersType == "" {
		missing = append(missing, "travelersType")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func normalize(p models.Preferences) models.Preferences {
	p.City = strings.TrimSpace(p.City)
	p.Budget = strings.TrimSpace(p.Budget)
	p.TravelersType = strings.TrimSpace(p.TravelersType)

	interests := make([]string, 0, len(p.Interests))
	for _, i := range p.Interests {
		if i = strings.TrimSpace(i); i != "" {
			interests = append(interests, i)
		}
	}
	p.Interests = interests
	return p
}

func trace(city string, s Stage) {
	log.Printf("[planner] %s: %s", city, s)
}
