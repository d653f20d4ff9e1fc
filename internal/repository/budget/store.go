// Package budget persists token budget counters so a restart does not reset
// the daily and monthly spend.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/remedex/internal/db"
)

// Default counter retention. Each outlives its window so the tracker can
// still read yesterday's or last month's total around a reset.
const (
	DefaultDailyRetention   = 48 * time.Hour
	DefaultMonthlyRetention = 62 * 24 * time.Hour
)

// Window segments in budget keys ({prefix}budget:{provider}:{window}:{date}).
const (
	windowDaily   = "daily"
	windowMonthly = "monthly"
)

type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Option configures a Store.
type Option func(*Store)

// WithRetention overrides how long daily and monthly counters are kept.
// Non-positive values keep the defaults.
func WithRetention(daily, monthly time.Duration) Option {
	return func(s *Store) {
		if daily > 0 {
			s.daily = daily
		}
		if monthly > 0 {
			s.monthly = monthly
		}
	}
}

// Store keeps token counters as integers in the key-value store.
// Counters expire after their retention; the first write starts the clock.
type Store struct {
	kv      kv
	daily   time.Duration
	monthly time.Duration
}

// New creates a budget store on top of kv.
func New(s kv, opts ...Option) *Store {
	st := &Store{kv: s, daily: DefaultDailyRetention, monthly: DefaultMonthlyRetention}
	for _, o := range opts {
		o(st)
	}
	return st
}

// IncrBy adds val tokens to the counter and starts its retention if unset.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if err := s.kv.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}
	// NX: repeated writes must not push the expiry forward.
	if err := s.kv.Expire(ctx, key, s.retention(key), true); err != nil {
		return fmt.Errorf("budget expire %s: %w", key, err)
	}
	return nil
}

// Get reads a counter. A missing key is a zero spend.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	raw, err := s.kv.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget get %s: corrupt counter: %w", key, err)
	}
	return n, nil
}

// retention picks the TTL from the window segment of the key.
// Unknown layouts get the longer monthly retention.
func (s *Store) retention(key string) time.Duration {
	parts := strings.Split(key, ":")
	if len(parts) >= 2 && parts[len(parts)-2] == windowDaily {
		return s.daily
	}
	return s.monthly
}
