package predcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/db"
	"github.com/kailas-cloud/remedex/internal/domain"
)

type mockInferer struct {
	result domain.InferenceResult
	err    error
	calls  int
	health error
}

func (m *mockInferer) Infer(_ context.Context, _, _ string) (domain.InferenceResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *mockInferer) HealthCheck(_ context.Context) error { return m.health }

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedInferer(t *testing.T, inner *mockInferer) (*CachedInferer, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	ci := New(inner, ms, "llama3-70b-8192", time.Hour, nil, zap.NewNop())
	return ci, ms
}
