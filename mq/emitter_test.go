package mq

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitAndListen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Event, 1)
	done := make(chan error, 1)
	go func() { done <- Listen(ctx, rdb, func(ev Event) { got <- ev }) }()

	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels(Channel)) == 1
	}, time.Second, 5*time.Millisecond)

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	NewRedisEmitter(rdb).Emit(ctx, Event{Type: EventSaved, ItineraryID: "it-1", UserID: "u1", At: at})

	select {
	case ev := <-got:
		assert.Equal(t, EventSaved, ev.Type)
		assert.Equal(t, "it-1", ev.ItineraryID)
		assert.Equal(t, "u1", ev.UserID)
		assert.True(t, at.Equal(ev.At))
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not stop")
	}
}

func TestEmitWithRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	// must not panic or block
	NewRedisEmitter(rdb).Emit(context.Background(), Event{Type: EventDeleted, ItineraryID: "it-1"})
	Nop{}.Emit(context.Background(), Event{})
}
