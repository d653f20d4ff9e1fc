package inference

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/domain"
)

func TestBudgetTracker_RejectWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionReject, zap.NewNop())

	bt.Record(100)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrInferenceQuotaExceeded) {
		t.Fatalf("expected domain.ErrInferenceQuotaExceeded, got %v", err)
	}
}

func TestBudgetTracker_WarnWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionWarn, zap.NewNop())

	bt.Record(200)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
}

func TestBudgetTracker_MonthlyReject(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 500, BudgetActionReject, zap.NewNop())

	bt.Record(500)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrInferenceQuotaExceeded) {
		t.Fatalf("expected domain.ErrInferenceQuotaExceeded for monthly limit, got %v", err)
	}
}

func TestBudgetTracker_UnlimitedWhenZero(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionReject, zap.NewNop())

	bt.Record(999999999)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for unlimited budget, got %v", err)
	}
	if bt.RemainingDaily() != -1 || bt.RemainingMonthly() != -1 {
		t.Errorf("expected -1 remaining for unlimited, got %d/%d", bt.RemainingDaily(), bt.RemainingMonthly())
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	bt := NewBudgetTracker("test", 1000, 10000, BudgetActionWarn, zap.NewNop())

	bt.Record(300)

	if daily := bt.RemainingDaily(); daily != 700 {
		t.Errorf("expected daily remaining 700, got %d", daily)
	}
	if monthly := bt.RemainingMonthly(); monthly != 9700 {
		t.Errorf("expected monthly remaining 9700, got %d", monthly)
	}

	bt.Record(5000)
	if daily := bt.RemainingDaily(); daily != 0 {
		t.Errorf("expected daily remaining clamped to 0, got %d", daily)
	}
}

func TestBudgetTracker_CountsRequests(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionWarn, zap.NewNop())

	bt.Record(10)
	bt.Record(0)

	if bt.DailyRequests() != 2 || bt.MonthlyRequests() != 2 {
		t.Errorf("expected 2 requests, got %d/%d", bt.DailyRequests(), bt.MonthlyRequests())
	}
}

func TestBudgetTracker_DayRollover(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 1000, BudgetActionReject, zap.NewNop())
	day := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	bt.setClock(func() time.Time { return day })

	bt.Record(100)
	if err := bt.Check(context.Background()); err == nil {
		t.Fatal("expected daily limit to be hit")
	}

	day = day.Add(2 * time.Hour)
	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected daily counter reset after midnight, got %v", err)
	}
	if bt.DailyUsed() != 0 {
		t.Errorf("DailyUsed() = %d, want 0", bt.DailyUsed())
	}
	if bt.MonthlyUsed() != 100 {
		t.Errorf("MonthlyUsed() = %d, want 100", bt.MonthlyUsed())
	}
}

// --- Mock BudgetStore ---

type mockBudgetStore struct {
	mu     sync.Mutex
	data   map[string]int64
	getErr error
	setErr error
}

func newMockBudgetStore() *mockBudgetStore {
	return &mockBudgetStore{data: make(map[string]int64)}
}

func (m *mockBudgetStore) IncrBy(_ context.Context, key string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] += val
	return nil
}

func (m *mockBudgetStore) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.data[key], nil
}

func (m *mockBudgetStore) value(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// --- Persistence tests ---

func TestBudgetTracker_WithStore_LoadsValues(t *testing.T) {
	store := newMockBudgetStore()

	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionReject, zap.NewNop())
	store.data[bt.key(&bt.day, bt.day.start)] = 300
	store.data[bt.key(&bt.month, bt.month.start)] = 5000

	bt.WithStore(context.Background(), store)

	if bt.DailyUsed() != 300 {
		t.Errorf("expected daily_used=300, got %d", bt.DailyUsed())
	}
	if bt.MonthlyUsed() != 5000 {
		t.Errorf("expected monthly_used=5000, got %d", bt.MonthlyUsed())
	}
}

func TestBudgetTracker_Record_PersistsToStore(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 10000, 100000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	bt.Record(100)
	bt.Record(200)
	bt.Record(300)

	if bt.DailyUsed() != 600 {
		t.Errorf("expected daily_used=600, got %d", bt.DailyUsed())
	}
	if v := store.value(bt.key(&bt.day, bt.day.start)); v != 600 {
		t.Errorf("expected store daily=600, got %d", v)
	}
	if v := store.value(bt.key(&bt.month, bt.month.start)); v != 600 {
		t.Errorf("expected store monthly=600, got %d", v)
	}
}

func TestBudgetTracker_WithStore_LoadError(t *testing.T) {
	store := newMockBudgetStore()
	store.getErr = errors.New("connection refused")

	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionReject, zap.NewNop())
	bt.WithStore(context.Background(), store)

	if bt.DailyUsed() != 0 || bt.MonthlyUsed() != 0 {
		t.Errorf("expected zero usage on load error, got %d/%d", bt.DailyUsed(), bt.MonthlyUsed())
	}
}

func TestBudgetTracker_Record_StoreWriteError(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	store.mu.Lock()
	store.setErr = errors.New("write timeout")
	store.mu.Unlock()

	bt.Record(50)

	if bt.DailyUsed() != 50 {
		t.Errorf("expected daily_used=50 even with store error, got %d", bt.DailyUsed())
	}
}

func TestBudgetTracker_Keys(t *testing.T) {
	bt := NewBudgetTracker("groq", 0, 0, BudgetActionWarn, zap.NewNop())
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	if got := bt.key(&bt.day, at); got != "remedex:budget:groq:daily:2026-10-17" {
		t.Errorf("daily key = %q", got)
	}
	if got := bt.key(&bt.month, at); got != "remedex:budget:groq:monthly:2026-10" {
		t.Errorf("monthly key = %q", got)
	}
	if !strings.HasPrefix(bt.key(&bt.day, at), domain.KeyPrefix) {
		t.Error("budget keys must carry the shared key prefix")
	}
}

func TestBudgetTracker_MonthRollover(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 500, BudgetActionReject, zap.NewNop())
	at := time.Date(2026, 10, 31, 22, 0, 0, 0, time.UTC)
	bt.setClock(func() time.Time { return at })

	bt.Record(500)
	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrInferenceQuotaExceeded) {
		t.Fatalf("expected monthly limit to be hit, got %v", err)
	}

	at = at.Add(3 * time.Hour)
	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected monthly counter reset on the 1st, got %v", err)
	}
	if bt.MonthlyRequests() != 0 || bt.RemainingMonthly() != 500 {
		t.Errorf("after rollover requests=%d remaining=%d", bt.MonthlyRequests(), bt.RemainingMonthly())
	}
}
