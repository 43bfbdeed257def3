// Package directory implements the local people directory: substring search
// and name autocomplete over the indexed store, plus profile and review
// management.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
)

const (
	defaultPageSize          = 50
	defaultAutocompleteLimit = 8
)

// Service handles directory search and profile/review management.
type Service struct {
	profiles          ProfileStore
	reviews           ReviewStore
	pageSize          int
	autocompleteLimit int
}

// New creates a directory service. pageSize bounds every directory listing;
// autocompleteLimit bounds suggestion responses.
func New(profiles ProfileStore, reviews ReviewStore, pageSize, autocompleteLimit int) *Service {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if autocompleteLimit <= 0 {
		autocompleteLimit = defaultAutocompleteLimit
	}
	return &Service{
		profiles:          profiles,
		reviews:           reviews,
		pageSize:          pageSize,
		autocompleteLimit: autocompleteLimit,
	}
}

// Search returns profiles matching the canonical key as a case-insensitive
// substring of name, company, role, or location, in creation order. An empty
// key lists the whole directory up to the page size. Storage failures wrap
// domain.ErrLocalSearch.
func (s *Service) Search(ctx context.Context, canonicalKey string) ([]profile.Profile, error) {
	profiles, _, err := s.profiles.Search(ctx, canonicalKey, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLocalSearch, err)
	}
	return profiles, nil
}

// Autocomplete returns suggestions for names starting with prefix.
// An empty prefix returns no suggestions without touching the store.
// limit <= 0 falls back to the configured default.
func (s *Service) Autocomplete(ctx context.Context, prefix string, limit int) ([]profile.Suggestion, error) {
	if prefix == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.autocompleteLimit
	}

	suggestions, err := s.profiles.Autocomplete(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLocalSearch, err)
	}
	return suggestions, nil
}

// GetProfile returns a profile with its reviews in creation order.
// A missing profile fails with domain.ErrProfileNotFound.
func (s *Service) GetProfile(ctx context.Context, id string) (profile.Profile, []review.Review, error) {
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return profile.Profile{}, nil, fmt.Errorf("get profile: %w", err)
	}

	reviews, err := s.reviews.ListByProfile(ctx, id)
	if err != nil {
		return profile.Profile{}, nil, fmt.Errorf("list reviews: %w", err)
	}
	return p, reviews, nil
}

// CreateProfile validates the fields, assigns an ID, and persists the
// profile. Validation failures wrap domain.ErrInvalidInput and precede any
// write; write failures wrap domain.ErrWriteFailure.
func (s *Service) CreateProfile(ctx context.Context, name, company, role, location, bio string) (profile.Profile, error) {
	p, err := profile.New(uuid.NewString(), name, company, role, location, bio, time.Now().UnixMilli())
	if err != nil {
		return profile.Profile{}, err
	}

	if err := s.profiles.Save(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %w", domain.ErrWriteFailure, err)
	}
	return p, nil
}

// DeleteProfile removes a profile and all its reviews. Reviews are removed
// before the profile hash. A missing profile fails with
// domain.ErrProfileNotFound.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if err := s.reviews.DeleteByProfile(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailure, err)
	}

	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrWriteFailure, err)
	}
	return nil
}

// AddReview validates the review, verifies the profile exists, and appends
// it. Validation runs before any store call; write failures wrap
// domain.ErrWriteFailure.
func (s *Service) AddReview(ctx context.Context, profileID, author string, rating int, comment string) (review.Review, error) {
	rv, err := review.New(uuid.NewString(), profileID, author, rating, comment, time.Now().UnixMilli())
	if err != nil {
		return review.Review{}, err
	}

	if _, err := s.profiles.Get(ctx, profileID); err != nil {
		return review.Review{}, fmt.Errorf("check profile: %w", err)
	}

	if err := s.reviews.Add(ctx, rv); err != nil {
		return review.Review{}, fmt.Errorf("%w: %w", domain.ErrWriteFailure, err)
	}
	return rv, nil
}
