package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultGuestAllowance is the number of free enhancements an
// unauthenticated client gets per UTC day.
const DefaultGuestAllowance = 5

// guestKeyTTL outlives the day the key belongs to so counters survive
// until well past their midnight reset, then get garbage-collected.
const guestKeyTTL = 48 * time.Hour

// GuestStore tracks guest usage in Redis. Keys are scoped to the UTC
// day, so the allowance resets at midnight without any sweeper; Redis
// expiry removes stale keys.
type GuestStore struct {
	rdb       *redis.Client
	allowance int
	now       func() time.Time
}

// NewGuestStore creates a guest store with the given daily allowance.
func NewGuestStore(rdb *redis.Client, allowance int) *GuestStore {
	if allowance <= 0 {
		allowance = DefaultGuestAllowance
	}
	return &GuestStore{rdb: rdb, allowance: allowance, now: time.Now}
}

// Check returns the guest's status without consuming quota.
func (s *GuestStore) Check(ctx context.Context, clientIP string) (Status, error) {
	used, err := s.rdb.Get(ctx, s.key(clientIP)).Int()
	if err != nil && err != redis.Nil {
		return Status{}, fmt.Errorf("failed to read guest usage: %w", err)
	}
	return guestStatus(used, s.allowance), nil
}

// Record consumes one unit and returns the post-decrement status. INCR
// and EXPIRE run in one pipeline so the counter update is atomic and the
// key always carries a TTL.
func (s *GuestStore) Record(ctx context.Context, clientIP string) (Status, error) {
	key := s.key(clientIP)

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, guestKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return Status{}, fmt.Errorf("failed to record guest usage: %w", err)
	}

	return guestStatus(int(incr.Val()), s.allowance), nil
}

func (s *GuestStore) key(clientIP string) string {
	return guestKey(clientIP, s.now().UTC())
}

// guestKey scopes a guest counter to one UTC day.
func guestKey(clientIP string, day time.Time) string {
	return fmt.Sprintf("guest_usage:%s:%s", day.Format("2006-01-02"), clientIP)
}

// guestStatus derives a Status from a used count. An exhausted guest is
// directed to sign in rather than to pay.
func guestStatus(used, allowance int) Status {
	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		CanMakeRequest:    remaining > 0,
		RemainingMessages: remaining,
		RequiresAuth:      remaining <= 0,
	}
}
