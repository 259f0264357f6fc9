package itinerary

import (
	"context"
	"errors"
	"time"

	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Changes are the user editable fields of an itinerary. Nil fields are left alone.
type Changes struct {
	Name *string          `json:"name,omitempty"`
	Days []models.DayPlan `json:"days,omitempty"`
}

// Repository persists itineraries.
type Repository interface {
	Insert(ctx context.Context, it *models.Itinerary) error
	FindByID(ctx context.Context, id string) (*models.Itinerary, error)
	FindByUser(ctx context.Context, userID string) ([]models.Itinerary, error)
	Update(ctx context.Context, id string, ch Changes, at time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// MongoRepository stores itineraries in a single collection keyed by itineraryid.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Insert(ctx context.Context, it *models.Itinerary) error {
	_, err := r.coll.InsertOne(ctx, it)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.Itinerary, error) {
	var it models.Itinerary
	err := r.coll.FindOne(ctx, bson.M{"itineraryid": id}).Decode(&it)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *MongoRepository) FindByUser(ctx context.Context, userID string) ([]models.Itinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Itinerary
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Itinerary{}
	}
	return out, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, ch Changes, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"itineraryid": id}, bson.M{"$set": changeSet(ch, at)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"itineraryid": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes temporary itineraries whose expiry has passed.
// Only exact matches qualify, so concurrent runs are harmless.
func (r *MongoRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, expiredFilter(now))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func expiredFilter(now time.Time) bson.M {
	return bson.M{
		"isTemporary": true,
		"expiresAt":   bson.M{"$lt": now},
	}
}

func changeSet(ch Changes, at time.Time) bson.M {
	set := bson.M{"lastUpdated": at}
	if ch.Name != nil {
		set["name"] = *ch.Name
	}
	if ch.Days != nil {
		set["days"] = ch.Days
	}
	return set
}
