package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/slaguerre91/people-search-homepage/internal/db"
)

// JSONGet retrieves a JSON document by key and optional paths.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	args := make([]string, len(paths))
	copy(args, paths)

	cmd := s.b().Arbitrary("JSON.GET").Keys(key).Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}

// JSONArrAppend appends an element to the JSON array stored at key,
// creating an empty array first when the key does not exist.
// Both commands go out in a single DoMulti round-trip.
func (s *Store) JSONArrAppend(ctx context.Context, key, path string, data []byte) error {
	cmds := []rueidis.Completed{
		s.b().Arbitrary("JSON.SET").Keys(key).Args(path, "[]", "NX").Build(),
		s.b().Arbitrary("JSON.ARRAPPEND").Keys(key).Args(path, string(data)).Build(),
	}

	for _, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			// JSON.SET NX replies nil when the array already exists.
			if rueidis.IsRedisNil(err) {
				continue
			}
			return &db.Error{Op: db.OpJSONArrAppend, Err: err}
		}
	}
	return nil
}
