package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slaguerre91/people-search-homepage/internal/db"
	domreview "github.com/slaguerre91/people-search-homepage/internal/domain/review"
)

// store is the consumer interface for reviews (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONArrAppend(ctx context.Context, key, path string, data []byte) error
	Del(ctx context.Context, key string) error
}

// Repo stores reviews as an append-only JSON array per profile.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a review repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Add appends a review to the profile's review array.
func (r *Repo) Add(ctx context.Context, rv domreview.Review) error {
	key := r.reviewsKey(rv.ProfileID())

	data, err := json.Marshal(buildReviewDoc(rv))
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	if err := r.store.JSONArrAppend(ctx, key, "$", data); err != nil {
		return fmt.Errorf("append review %s: %w", key, err)
	}
	return nil
}

// ListByProfile returns all reviews for a profile in creation order.
// A profile with no reviews yields an empty slice.
func (r *Repo) ListByProfile(ctx context.Context, profileID string) ([]domreview.Review, error) {
	key := r.reviewsKey(profileID)

	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("json.get %s: %w", key, err)
	}

	return parseReviewArray(raw)
}

// DeleteByProfile removes the whole review array for a profile.
// Deleting a missing key is a no-op.
func (r *Repo) DeleteByProfile(ctx context.Context, profileID string) error {
	key := r.reviewsKey(profileID)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) reviewsKey(profileID string) string {
	return fmt.Sprintf("%sprofile:%s:reviews", r.keyPrefix, profileID)
}
