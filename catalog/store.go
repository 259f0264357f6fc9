// Package catalog reads destinations, hotels and restaurants for itinerary
// generation. It never writes.
package catalog

import (
	"context"
	"strings"

	"rihla/db"
	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityQuery struct {
	City       string   `json:"city"`
	Categories []string `json:"categories,omitempty"`
	// ExcludeType drops entries of that type, e.g. restaurants.
	ExcludeType string `json:"excludeType,omitempty"`
	Limit       int64  `json:"limit,omitempty"`
}

type HotelQuery struct {
	City        string   `json:"city"`
	PriceRanges []string `json:"priceRanges,omitempty"`
	Limit       int64    `json:"limit,omitempty"`
}

type RestaurantQuery struct {
	City       string   `json:"city"`
	Cuisines   []string `json:"cuisines,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Limit      int64    `json:"limit,omitempty"`
}

// Store is the read side of the catalog.
type Store interface {
	Activities(ctx context.Context, q ActivityQuery) ([]models.Destination, error)
	Hotels(ctx context.Context, q HotelQuery) ([]models.Hotel, error)
	Restaurants(ctx context.Context, q RestaurantQuery) ([]models.Restaurant, error)
}

// MongoStore reads the three catalog collections.
type MongoStore struct {
	destinations *mongo.Collection
	hotels       *mongo.Collection
	restaurants  *mongo.Collection
}

func NewMongoStore(destinations, hotels, restaurants *mongo.Collection) *MongoStore {
	return &MongoStore{destinations: destinations, hotels: hotels, restaurants: restaurants}
}

func (s *MongoStore) Activities(ctx context.Context, q ActivityQuery) ([]models.Destination, error) {
	return findAll[models.Destination](ctx, s.destinations, activityFilter(q), q.Limit)
}

func (s *MongoStore) Hotels(ctx context.Context, q HotelQuery) ([]models.Hotel, error) {
	return findAll[models.Hotel](ctx, s.hotels, hotelFilter(q), q.Limit)
}

func (s *MongoStore) Restaurants(ctx context.Context, q RestaurantQuery) ([]models.Restaurant, error) {
	return findAll[models.Restaurant](ctx, s.restaurants, restaurantFilter(q), q.Limit)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, limit int64) ([]T, error) {
	opts := options.Find().SetCollation(db.CatalogCollation())
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// cityMatch is a plain equality; findAll's collation makes it case-insensitive
// and lets the city indexes serve it.
func cityMatch(city string) string {
	return strings.TrimSpace(city)
}

func activityFilter(q ActivityQuery) bson.M {
	filter := bson.M{"city": cityMatch(q.City)}
	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}
	if q.ExcludeType != "" {
		filter["type"] = bson.M{"$ne": q.ExcludeType}
	}
	return filter
}

func hotelFilter(q HotelQuery) bson.M {
	filter := bson.M{"city": cityMatch(q.City)}
	if len(q.PriceRanges) > 0 {
		filter["priceRange"] = bson.M{"$in": q.PriceRanges}
	}
	return filter
}

func restaurantFilter(q RestaurantQuery) bson.M {
	filter := bson.M{"city": cityMatch(q.City)}
	if len(q.Cuisines) > 0 {
		filter["cuisine"] = bson.M{"$in": q.Cuisines}
	}
	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}
	return filter
}
