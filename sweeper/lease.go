package sweeper

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaseKey = "rihla:sweeper:lease"

// release deletes the key only while it still names this owner.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease claims a sweep round with SET NX. The holder releases it when
// the round ends; the TTL only bounds a holder that died mid-round.
type RedisLease struct {
	rdb   redis.Cmdable
	key   string
	owner string
}

func NewRedisLease(rdb redis.Cmdable) *RedisLease {
	host, _ := os.Hostname()
	return &RedisLease{rdb: rdb, key: leaseKey, owner: fmt.Sprintf("%s:%d", host, os.Getpid())}
}

func (l *RedisLease) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	if ttl < time.Second {
		ttl = time.Second
	}
	return l.rdb.SetNX(ctx, l.key, l.owner, ttl).Result()
}

func (l *RedisLease) Release(ctx context.Context) error {
	return release.Run(ctx, l.rdb, []string{l.key}, l.owner).Err()
}
