// Package llm talks to the external itinerary generation service.
package llm

import (
	"context"
	"errors"
)

// ErrDisabled is returned when no generation service is configured.
var ErrDisabled = errors.New("llm: generation service not configured")

// Request is a system + user chat exchange.
type Request struct {
	System string
	User   string
}

// Client returns the raw text completion for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Disabled always fails, which routes every generation to the local synthesizer.
type Disabled struct{}

func (Disabled) Complete(context.Context, Request) (string, error) {
	return "", ErrDisabled
}
