package cache

import (
	"context"
	"fmt"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	"auto-loan-contracts/pkg/token"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// KeyLock is a best-effort mutual exclusion per key, backed by SET NX PX.
type KeyLock struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewKeyLock(rdb *redis.Client, ttl time.Duration) *KeyLock {
	return &KeyLock{rdb: rdb, ttl: ttl, prefix: "lock:"}
}

// Lock acquires key or fails with ErrDuplicateSchedule when another holder has
// it. The returned func releases the lock and is safe to call once.
func (l *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	full := l.prefix + key
	owner := token.New()
	ok, err := l.rdb.SetNX(ctx, full, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", full, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is already being generated", apperr.ErrDuplicateSchedule, key)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{full}, owner).Err()
	}, nil
}
