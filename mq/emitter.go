package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel carries itinerary lifecycle events.
const Channel = "itinerary-events"

const (
	EventGenerated = "generated"
	EventSaved     = "saved"
	EventUpdated   = "updated"
	EventDeleted   = "deleted"
)

// Event describes a change to one itinerary.
type Event struct {
	Type        string    `json:"type"`
	ItineraryID string    `json:"itineraryid"`
	UserID      string    `json:"user_id,omitempty"`
	City        string    `json:"city,omitempty"`
	Fallback    bool      `json:"fallback,omitempty"`
	At          time.Time `json:"at"`
}

// Emitter publishes events. Delivery is best effort.
type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Emit(context.Context, Event) {}

// RedisEmitter publishes events on a Redis pub/sub channel.
type RedisEmitter struct {
	rdb     redis.Cmdable
	channel string
}

func NewRedisEmitter(rdb redis.Cmdable) *RedisEmitter {
	return &RedisEmitter{rdb: rdb, channel: Channel}
}

func (e *RedisEmitter) Emit(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := e.rdb.Publish(ctx, e.channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s for %s: %v", ev.Type, ev.ItineraryID, err)
	}
}

// Listen decodes events from the channel and hands them to handle until ctx ends.
func Listen(ctx context.Context, rdb *redis.Client, handle func(Event)) error {
	sub := rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[Listen] Failed to parse event: %v", err)
				continue
			}
			handle(ev)
		}
	}
}
