// Package cache keeps short-lived copies of expensive dashboard aggregates.
package cache

import (
	"context"
	"time"
)

// MetricsCache stores JSON-serialisable values under a key for a TTL.
type MetricsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type NoopMetricsCache struct{}

func (NoopMetricsCache) Get(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

func (NoopMetricsCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}

func (NoopMetricsCache) Delete(_ context.Context, _ ...string) error {
	return nil
}
