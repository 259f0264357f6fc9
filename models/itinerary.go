package models

import "time"

// Itinerary is a generated travel plan, temporary until saved by a user.
type Itinerary struct {
	ItineraryID     string           `json:"itineraryid" bson:"itineraryid"`
	UserID          string           `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name            string           `json:"name" bson:"name"`
	City            string           `json:"city" bson:"city"`
	Duration        int              `json:"duration" bson:"duration"`
	Interests       []string         `json:"interests" bson:"interests"`
	Budget          string           `json:"budget" bson:"budget"`
	TravelersType   string           `json:"travelersType" bson:"travelersType"`
	FoodPreferences *FoodPreferences `json:"foodPreferences,omitempty" bson:"foodPreferences,omitempty"`
	Days            []DayPlan        `json:"days" bson:"days"`
	Hotel           Stay             `json:"hotel" bson:"hotel"`

	IsAIGenerated          bool `json:"isAIGenerated" bson:"isAIGenerated"`
	UsingFallbackGenerator bool `json:"usingFallbackGenerator" bson:"usingFallbackGenerator"`
	IsTemporary            bool `json:"isTemporary" bson:"isTemporary"`
	// only set on temporary itineraries
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	LastUpdated time.Time  `json:"lastUpdated" bson:"lastUpdated"`
}

// Plan is the {hotel, days} body produced by either generator.
type Plan struct {
	Hotel Stay      `json:"hotel" bson:"hotel"`
	Days  []DayPlan `json:"days" bson:"days"`
}

type DayPlan struct {
	Day       int      `json:"day" bson:"day"`
	Morning   Activity `json:"morning" bson:"morning"`
	Lunch     Meal     `json:"lunch" bson:"lunch"`
	Afternoon Activity `json:"afternoon" bson:"afternoon"`
	Dinner    Meal     `json:"dinner" bson:"dinner"`
	Notes     string   `json:"notes" bson:"notes"`
}

type Activity struct {
	Activity    string `json:"activity" bson:"activity"`
	Description string `json:"description" bson:"description"`
}

type Meal struct {
	Restaurant  string `json:"restaurant" bson:"restaurant"`
	Description string `json:"description" bson:"description"`
}

// Stay is the single hotel recommendation of an itinerary.
type Stay struct {
	Place       string `json:"place" bson:"place"`
	Description string `json:"description" bson:"description"`
}
