package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rihla/models"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const planSchemaURL = "https://rihla.schemas.local/plan.schema.json"

const planSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["hotel", "days"],
  "properties": {
    "hotel": {
      "type": "object",
      "required": ["place"],
      "properties": {
        "place": {"type": "string", "minLength": 1},
        "description": {"type": "string"}
      }
    },
    "days": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["day", "morning", "lunch", "afternoon", "dinner"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "morning": {"$ref": "#/$defs/activity"},
          "lunch": {"$ref": "#/$defs/meal"},
          "afternoon": {"$ref": "#/$defs/activity"},
          "dinner": {"$ref": "#/$defs/meal"},
          "notes": {"type": "string"}
        }
      }
    }
  },
  "$defs": {
    "activity": {
      "type": "object",
      "required": ["activity"],
      "properties": {
        "activity": {"type": "string", "minLength": 1},
        "description": {"type": "string"}
      }
    },
    "meal": {
      "type": "object",
      "required": ["restaurant"],
      "properties": {
        "restaurant": {"type": "string", "minLength": 1},
        "description": {"type": "string"}
      }
    }
  }
}`

var planSchema = jsonschema.MustCompileString(planSchemaURL, planSchemaJSON)

var errNoJSON = errors.New("response contains no JSON object")

// ParsePlan extracts the plan from a model response and checks it against the
// schema, the requested duration and the candidate names.
func ParsePlan(raw string, duration int, c *Candidates) (*models.Plan, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := planSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("response schema: %w", err)
	}

	var plan models.Plan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := checkPlan(&plan, duration, c); err != nil {
		return nil, err
	}
	return &plan, nil
}

func extractJSON(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return nil, errNoJSON
	}
	return []byte(s[start : end+1]), nil
}

func checkPlan(plan *models.Plan, duration int, c *Candidates) error {
	if len(plan.Days) != duration {
		return fmt.Errorf("expected %d days, got %d", duration, len(plan.Days))
	}

	hotels := nameSet(c.Hotels, func(h models.Hotel) string { return h.Name })
	activities := nameSet(c.Activities, func(d models.Destination) string { return d.Name })
	activities[freeTimeActivity] = true
	restaurants := nameSet(c.Restaurants, func(r models.Restaurant) string { return r.Name })
	restaurants[localDining] = true

	if !hotels[strings.TrimSpace(plan.Hotel.Place)] {
		return fmt.Errorf("unknown hotel %q", plan.Hotel.Place)
	}
	for i, d := range plan.Days {
		if d.Day != i+1 {
			return fmt.Errorf("day %d is numbered %d", i+1, d.Day)
		}
		for _, name := range []string{d.Morning.Activity, d.Afternoon.Activity} {
			if !activities[strings.TrimSpace(name)] {
				return fmt.Errorf("day %d: unknown activity %q", d.Day, name)
			}
		}
		for _, name := range []string{d.Lunch.Restaurant, d.Dinner.Restaurant} {
			if !restaurants[strings.TrimSpace(name)] {
				return fmt.Errorf("day %d: unknown restaurant %q", d.Day, name)
			}
		}
	}
	return nil
}

func nameSet[T any](items []T, name func(T) string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[strings.TrimSpace(name(it))] = true
	}
	return set
}
