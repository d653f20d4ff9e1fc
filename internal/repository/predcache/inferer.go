// Package predcache caches raw classifier answers in a key-value store.
package predcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/db"
	"github.com/kailas-cloud/remedex/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "pred_cache:"

// store is the consumer interface for the prediction cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedInferer caches inference answers keyed by model and prompts.
type CachedInferer struct {
	inner      domain.Inferer
	store      store
	model      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
// A non-positive ttl caches without expiry.
func New(
	inner domain.Inferer,
	s store,
	model string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedInferer {
	return &CachedInferer{
		inner:      inner,
		store:      s,
		model:      model,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Infer returns a cached answer or calls the inner inferer.
// Cache hit: zero tokens. Store failures are logged and never fail the call.
func (c *CachedInferer) Infer(ctx context.Context, system, user string) (domain.InferenceResult, error) {
	key := c.cacheKey(system, user)

	if text, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return domain.InferenceResult{Text: text}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Infer(ctx, system, user)
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("infer: %w", err)
	}

	if result.Text != "" {
		c.putToCache(ctx, key, result.Text)
	}
	return result, nil
}

// HealthCheck forwards to the inner inferer when it supports health checks.
func (c *CachedInferer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (c *CachedInferer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedInferer) cacheKey(system, user string) string {
	h := sha256.New()
	for _, part := range []string{c.model, system, user} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedInferer) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached prediction", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedInferer) putToCache(ctx context.Context, key, text string) {
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache prediction", zap.String("key", key), zap.Error(err))
	}
}
