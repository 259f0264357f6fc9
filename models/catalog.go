package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Destination is an attraction or activity. Restaurants may also live in the
// destinations collection with Type "restaurant".
type Destination struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	City        string             `json:"city" bson:"city"`
	Category    string             `json:"category" bson:"category"`
	Type        string             `json:"type,omitempty" bson:"type,omitempty"`
	Cost        string             `json:"cost,omitempty" bson:"cost,omitempty"`
	Tags        []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Location    Coordinates        `json:"location" bson:"location,omitempty"`
}

type Hotel struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	City        string             `json:"city" bson:"city"`
	PriceRange  string             `json:"priceRange" bson:"priceRange"`
	Amenities   []string           `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Location    Coordinates        `json:"location" bson:"location,omitempty"`
}

type Restaurant struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	City        string             `json:"city" bson:"city"`
	Cuisine     string             `json:"cuisine" bson:"cuisine"`
	Category    string             `json:"category" bson:"category"`
	PriceRange  string             `json:"priceRange" bson:"priceRange"`
	Location    Coordinates        `json:"location" bson:"location,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}
