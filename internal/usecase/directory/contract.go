package directory

import (
	"context"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
)

// ProfileStore is the persistence contract for profiles and directory search.
type ProfileStore interface {
	Save(ctx context.Context, p profile.Profile) error
	Get(ctx context.Context, id string) (profile.Profile, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, canonicalKey string, limit int) ([]profile.Profile, int, error)
	Autocomplete(ctx context.Context, prefix string, limit int) ([]profile.Suggestion, error)
}

// ReviewStore is the persistence contract for reviews.
type ReviewStore interface {
	Add(ctx context.Context, rv review.Review) error
	ListByProfile(ctx context.Context, profileID string) ([]review.Review, error)
	DeleteByProfile(ctx context.Context, profileID string) error
}
