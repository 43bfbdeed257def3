package peoplesearch

import (
	"context"
	"fmt"
	"time"
)

// CreateProfile adds a profile to the directory. The entry is searchable
// as soon as the call returns. Validation failures wrap ErrInvalidInput.
func (c *Client) CreateProfile(ctx context.Context, in ProfileInput) (_ Profile, err error) {
	start := time.Now()
	defer func() { c.obs.observe("profile.create", start, err) }()

	p, err := c.dirSvc.CreateProfile(ctx, in.Name, in.Company, in.Role, in.Location, in.Bio)
	if err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return fromInternalProfile(p), nil
}

// GetProfile fetches one profile and all of its reviews, newest first.
// A missing id wraps ErrProfileNotFound.
func (c *Client) GetProfile(ctx context.Context, id string) (_ Profile, _ []Review, err error) {
	start := time.Now()
	defer func() { c.obs.observe("profile.get", start, err) }()

	p, reviews, err := c.dirSvc.GetProfile(ctx, id)
	if err != nil {
		return Profile{}, nil, fmt.Errorf("get profile: %w", err)
	}
	return fromInternalProfile(p), fromInternalReviews(reviews), nil
}

// DeleteProfile removes a profile and its reviews.
func (c *Client) DeleteProfile(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("profile.delete", start, err) }()

	if err = c.dirSvc.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// AddReview attaches a review to a profile. Rating is an integer 1-5.
func (c *Client) AddReview(ctx context.Context, profileID string, in ReviewInput) (_ Review, err error) {
	start := time.Now()
	defer func() { c.obs.observe("review.add", start, err) }()

	rv, err := c.dirSvc.AddReview(ctx, profileID, in.Author, in.Rating, in.Comment)
	if err != nil {
		return Review{}, fmt.Errorf("add review: %w", err)
	}
	return fromInternalReview(rv), nil
}

// Autocomplete returns name suggestions for a prefix, alphabetical by name.
// limit <= 0 uses the configured default. For type-ahead input prefer an
// AutocompleteSession, which debounces and discards stale responses.
func (c *Client) Autocomplete(ctx context.Context, prefix string, limit int) (_ []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("autocomplete", start, err) }()

	ss, err := c.dirSvc.Autocomplete(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return fromInternalSuggestions(ss), nil
}
