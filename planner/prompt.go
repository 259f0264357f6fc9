package planner

import (
	"fmt"
	"strings"

	"rihla/llm"
	"rihla/models"
)

const (
	systemPrompt = "You are a travel planner. You answer with a single JSON object and nothing else."
	// candidate descriptions are cut to keep the prompt small
	promptDescLen = 100
)

const outputSchema = `{
  "hotel": {"place": "<exact hotel name>", "description": "<why it fits>"},
  "days": [
    {
      "day": 1,
      "morning": {"activity": "<exact activity name>", "description": "..."},
      "lunch": {"restaurant": "<exact restaurant name>", "description": "..."},
      "afternoon": {"activity": "<exact activity name>", "description": "..."},
      "dinner": {"restaurant": "<exact restaurant name>", "description": "..."},
      "notes": "..."
    }
  ]
}`

// BuildPrompt turns preferences and candidates into a generation request.
func BuildPrompt(p models.Preferences, c *Candidates) llm.Request {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-day itinerary for %s.\n", p.Duration, p.City)
	fmt.Fprintf(&b, "Interests: %s\n", joinOr(p.Interests, "general sightseeing"))
	fmt.Fprintf(&b, "Budget: %s\n", p.Budget)
	fmt.Fprintf(&b, "Travelers: %s\n", p.TravelersType)
	if p.FoodPreferences.HasAny() {
		fmt.Fprintf(&b, "Food preferences: cuisines %s; categories %s\n",
			joinOr(p.FoodPreferences.Cuisines, "any"), joinOr(p.FoodPreferences.Categories, "any"))
	}

	b.WriteString("\nAvailable activities:\n")
	for _, a := range c.Activities {
		fmt.Fprintf(&b, "- %s: %s\n", a.Name, abbreviate(a.Description, promptDescLen))
	}
	b.WriteString("\nAvailable restaurants:\n")
	for _, r := range c.Restaurants {
		fmt.Fprintf(&b, "- %s (%s, %s): %s\n", r.Name, r.Cuisine, r.PriceRange, abbreviate(r.Description, promptDescLen))
	}
	b.WriteString("\nAvailable hotels:\n")
	for _, h := range c.Hotels {
		fmt.Fprintf(&b, "- %s (%s): %s\n", h.Name, h.PriceRange, abbreviate(h.Description, promptDescLen))
	}

	b.WriteString("\nRules:\n")
	b.WriteString("1. Use only the exact names listed above for activities, restaurants and the hotel.\n")
	b.WriteString("2. Recommend exactly one hotel for the whole stay.\n")
	fmt.Fprintf(&b, "3. Provide exactly %d days numbered 1 to %d in order.\n", p.Duration, p.Duration)
	b.WriteString("4. Match the plan to the interests, the budget and the travelers.\n")
	b.WriteString("\nRespond with JSON in this format:\n")
	b.WriteString(outputSchema)

	return llm.Request{System: systemPrompt, User: b.String()}
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

func abbreviate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
