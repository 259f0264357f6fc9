package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ItineraryColl   = "itineraries"
	DestinationColl = "destinations"
	HotelColl       = "hotels"
	RestaurantColl  = "restaurants"
)

// Store holds the client and every collection the service reads or writes.
type Store struct {
	Client                *mongo.Client
	ItineraryCollection   *mongo.Collection
	DestinationCollection *mongo.Collection
	HotelCollection       *mongo.Collection
	RestaurantCollection  *mongo.Collection
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	log.Printf("[db] connected to %s", dbName)
	return FromDatabase(client.Database(dbName)), nil
}

func FromDatabase(database *mongo.Database) *Store {
	return &Store{
		Client:                database.Client(),
		ItineraryCollection:   database.Collection(ItineraryColl),
		DestinationCollection: database.Collection(DestinationColl),
		HotelCollection:       database.Collection(HotelColl),
		RestaurantCollection:  database.Collection(RestaurantColl),
	}
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// EnsureIndexes creates the lookup indexes; existing ones are left alone.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for coll, models := range s.indexes() {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// CatalogCollation compares strings case-insensitively. Catalog queries and
// the catalog indexes must use the same collation for the indexes to apply.
func CatalogCollation() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}

func (s *Store) indexes() map[*mongo.Collection][]mongo.IndexModel {
	catalog := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetCollation(CatalogCollation())}
	}
	byCity := catalog(bson.D{{Key: "city", Value: 1}})
	return map[*mongo.Collection][]mongo.IndexModel{
		s.ItineraryCollection: {
			{Keys: bson.D{{Key: "itineraryid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "isTemporary", Value: 1}, {Key: "expiresAt", Value: 1}}},
		},
		s.DestinationCollection: {
			catalog(bson.D{{Key: "city", Value: 1}, {Key: "category", Value: 1}}),
		},
		s.HotelCollection: {
			byCity,
			catalog(bson.D{{Key: "city", Value: 1}, {Key: "priceRange", Value: 1}}),
		},
		s.RestaurantCollection: {
			byCity,
		},
	}
}
