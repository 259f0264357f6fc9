package planner

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("invalid itinerary request")
	ErrNoData     = errors.New("no data for destination")
)

// ValidationError lists the request fields that are missing or out of range.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid itinerary request: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
