package review

import (
	"context"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonGetFn       func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonArrAppendFn func(ctx context.Context, key, path string, data []byte) error
	delFn           func(ctx context.Context, key string) error
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, nil
}

func (m *mockStore) JSONArrAppend(ctx context.Context, key, path string, data []byte) error {
	if m.jsonArrAppendFn != nil {
		return m.jsonArrAppendFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "people:")
	return repo, ms
}
