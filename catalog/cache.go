package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"rihla/models"

	"github.com/redis/go-redis/v9"
)

// Cached is a read-through Redis cache in front of another Store.
// Redis failures fall through to the underlying store.
type Cached struct {
	next Store
	rdb  redis.Cmdable
	ttl  time.Duration
}

func NewCached(next Store, rdb redis.Cmdable, ttl time.Duration) *Cached {
	return &Cached{next: next, rdb: rdb, ttl: ttl}
}

func (c *Cached) Activities(ctx context.Context, q ActivityQuery) ([]models.Destination, error) {
	return through(ctx, c, "catalog:activities:", q, func() ([]models.Destination, error) {
		return c.next.Activities(ctx, q)
	})
}

func (c *Cached) Hotels(ctx context.Context, q HotelQuery) ([]models.Hotel, error) {
	return through(ctx, c, "catalog:hotels:", q, func() ([]models.Hotel, error) {
		return c.next.Hotels(ctx, q)
	})
}

func (c *Cached) Restaurants(ctx context.Context, q RestaurantQuery) ([]models.Restaurant, error) {
	return through(ctx, c, "catalog:restaurants:", q, func() ([]models.Restaurant, error) {
		return c.next.Restaurants(ctx, q)
	})
}

func through[T any](ctx context.Context, c *Cached, prefix string, q any, load func() ([]T, error)) ([]T, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return load()
	}
	key := prefix + string(raw)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var out []T
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		log.Printf("[catalog] dropping unreadable cache entry %s", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[catalog] cache read failed: %v", err)
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("[catalog] cache write failed: %v", err)
	}
	return out, nil
}
