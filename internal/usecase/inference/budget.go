package inference

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/domain"
)

// BudgetAction defines behavior when the token budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore is the persistence interface for budget counters.
// Implementations must be idempotent (IncrBy can be called repeatedly).
type BudgetStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// quota is one rolling token allowance, either calendar day or calendar month (UTC).
type quota struct {
	name     string
	layout   string
	floor    func(time.Time) time.Time
	limit    int64
	used     int64
	requests int64
	start    time.Time
}

func newQuota(name, layout string, floor func(time.Time) time.Time, limit int64, now time.Time) quota {
	return quota{name: name, layout: layout, floor: floor, limit: limit, start: floor(now)}
}

// roll zeroes the counters once now falls in a later period.
func (q *quota) roll(now time.Time) {
	if p := q.floor(now); p.After(q.start) {
		q.used, q.requests, q.start = 0, 0, p
	}
}

func (q *quota) exceeded() bool { return q.limit > 0 && q.used >= q.limit }

// remaining is -1 when the quota is unlimited and never negative otherwise.
func (q *quota) remaining() int64 {
	if q.limit == 0 {
		return -1
	}
	return max(q.limit-q.used, 0)
}

// BudgetTracker enforces daily and monthly token quotas for one provider.
// Check reads memory only. Record updates memory, then writes the token delta
// through to the store. Request counters are process-local and not persisted.
type BudgetTracker struct {
	mu       sync.Mutex
	day      quota
	month    quota
	action   BudgetAction
	provider string
	now      func() time.Time
	store    BudgetStore
	logger   *zap.Logger
}

// NewBudgetTracker creates a budget tracker with the given limits. Zero limit means unlimited.
func NewBudgetTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger,
) *BudgetTracker {
	b := &BudgetTracker{
		action:   action,
		provider: provider,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
	b.setClock(b.now)
	b.day.limit, b.month.limit = dailyLimit, monthlyLimit
	return b
}

// setClock swaps the time source and re-anchors both quotas on it.
func (b *BudgetTracker) setClock(now func() time.Time) {
	t := now()
	b.now = now
	b.day = newQuota("daily", "2006-01-02", startOfDay, b.day.limit, t)
	b.month = newQuota("monthly", "2006-01", startOfMonth, b.month.limit, t)
}

// key is the store key holding q's token counter for the period containing t.
func (b *BudgetTracker) key(q *quota, t time.Time) string {
	return fmt.Sprintf("%sbudget:%s:%s:%s", domain.KeyPrefix, b.provider, q.name, t.Format(q.layout))
}

func (b *BudgetTracker) quotas() [2]*quota { return [2]*quota{&b.day, &b.month} }

// WithStore attaches a persistence store and loads the current period counters.
func (b *BudgetTracker) WithStore(ctx context.Context, store BudgetStore) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	now := b.now()
	for _, q := range b.quotas() {
		key := b.key(q, now)
		val, err := store.Get(ctx, key)
		if err != nil {
			b.logger.Warn("Failed to load token budget", zap.String("key", key), zap.Error(err))
			continue
		}
		q.used = val
	}
	b.logger.Info("Budget loaded from store",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.day.used),
		zap.Int64("monthly_used", b.month.used),
	)
	return b
}

// Check verifies the budget allows a new request. In-memory only (hot path).
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.roll()
	if !b.day.exceeded() && !b.month.exceeded() {
		return nil
	}
	if b.action == BudgetActionReject {
		return domain.ErrInferenceQuotaExceeded
	}

	b.logger.Warn("Token budget exceeded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.day.used),
		zap.Int64("daily_limit", b.day.limit),
		zap.Int64("monthly_used", b.month.used),
		zap.Int64("monthly_limit", b.month.limit),
	)
	return nil
}

// Record registers one billed request and its tokens.
func (b *BudgetTracker) Record(tokens int64) {
	b.mu.Lock()
	b.roll()
	now := b.now()
	var keys []string
	for _, q := range b.quotas() {
		q.used += tokens
		q.requests++
		keys = append(keys, b.key(q, now))
	}
	store := b.store
	b.mu.Unlock()

	if store == nil || tokens == 0 {
		return
	}

	// Detached from the caller: the answer is already billed.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := store.IncrBy(ctx, key, tokens); err != nil {
			b.logger.Warn("Failed to persist token budget", zap.String("key", key), zap.Error(err))
		}
	}
}

// read returns f applied to the given quota after rolling periods forward.
func (b *BudgetTracker) read(q *quota, f func(*quota) int64) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return f(q)
}

// RemainingDaily returns tokens left in the daily budget (-1 if unlimited).
func (b *BudgetTracker) RemainingDaily() int64 { return b.read(&b.day, (*quota).remaining) }

// RemainingMonthly returns tokens left in the monthly budget (-1 if unlimited).
func (b *BudgetTracker) RemainingMonthly() int64 { return b.read(&b.month, (*quota).remaining) }

// DailyLimit returns the daily token cap.
func (b *BudgetTracker) DailyLimit() int64 { return b.day.limit }

// MonthlyLimit returns the monthly token cap.
func (b *BudgetTracker) MonthlyLimit() int64 { return b.month.limit }

// DailyUsed returns tokens consumed today.
func (b *BudgetTracker) DailyUsed() int64 {
	return b.read(&b.day, func(q *quota) int64 { return q.used })
}

// MonthlyUsed returns tokens consumed this month.
func (b *BudgetTracker) MonthlyUsed() int64 {
	return b.read(&b.month, func(q *quota) int64 { return q.used })
}

// DailyRequests returns billed requests recorded today by this process.
func (b *BudgetTracker) DailyRequests() int64 {
	return b.read(&b.day, func(q *quota) int64 { return q.requests })
}

// MonthlyRequests returns billed requests recorded this month by this process.
func (b *BudgetTracker) MonthlyRequests() int64 {
	return b.read(&b.month, func(q *quota) int64 { return q.requests })
}

func (b *BudgetTracker) roll() {
	now := b.now()
	b.day.roll(now)
	b.month.roll(now)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
