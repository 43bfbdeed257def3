package review

import "github.com/slaguerre91/people-search-homepage/internal/domain"

// Field limits.
const (
	MaxAuthorLength  = 100
	MaxCommentLength = 1000
	MinRating        = 1
	MaxRating        = 5
)

// Review is a rating attached to a profile (immutable value object).
type Review struct {
	id        string
	profileID string
	author    string
	rating    int
	comment   string
	createdAt int64 // unix millis
}

// New validates and creates a Review.
// Author: required, max 100 chars. Rating: integer 1-5. Comment: required, max 1000 chars.
// Validation runs before any write call is issued.
func New(id, profileID, author string, rating int, comment string, createdAt int64) (Review, error) {
	if author == "" {
		return Review{}, domain.NewValidation("author", "is required")
	}
	if len(author) > MaxAuthorLength {
		return Review{}, domain.NewValidation("author", "too long (max 100)")
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, domain.NewValidation("rating", "must be between 1 and 5")
	}
	if comment == "" {
		return Review{}, domain.NewValidation("comment", "is required")
	}
	if len(comment) > MaxCommentLength {
		return Review{}, domain.NewValidation("comment", "too long (max 1000)")
	}

	return Review{
		id:        id,
		profileID: profileID,
		author:    author,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
	}, nil
}

// Reconstruct creates a Review without validation (storage hydration).
func Reconstruct(id, profileID, author string, rating int, comment string, createdAt int64) Review {
	return Review{
		id: id, profileID: profileID, author: author,
		rating: rating, comment: comment, createdAt: createdAt,
	}
}

// ID returns the review identifier.
func (r *Review) ID() string { return r.id }

// ProfileID returns the owning profile identifier.
func (r *Review) ProfileID() string { return r.profileID }

// Author returns the reviewer's name.
func (r *Review) Author() string { return r.author }

// Rating returns the 1-5 rating.
func (r *Review) Rating() int { return r.rating }

// Comment returns the review text.
func (r *Review) Comment() string { return r.comment }

// CreatedAt returns the creation time in unix millis.
func (r *Review) CreatedAt() int64 { return r.createdAt }
