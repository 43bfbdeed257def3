package parsecache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/db"
	"github.com/slaguerre91/people-search-homepage/internal/domain"
)

type mockParser struct {
	result domain.ParseResult
	err    error
	calls  int
}

func (m *mockParser) Parse(_ context.Context, _ string) (domain.ParseResult, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setFn        func(ctx context.Context, key string, value []byte) error
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedParser(t *testing.T, inner *mockParser) (*CachedParser, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cp := New(inner, ms, "people:", 0, nil, zap.NewNop())
	return cp, ms
}
