package review

import (
	"encoding/json"
	"fmt"

	domreview "github.com/slaguerre91/people-search-homepage/internal/domain/review"
)

// reviewDoc is the JSON representation of a stored review.
type reviewDoc struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Created   int64  `json:"created"`
}

func buildReviewDoc(rv domreview.Review) reviewDoc {
	return reviewDoc{
		ID:        rv.ID(),
		ProfileID: rv.ProfileID(),
		Author:    rv.Author(),
		Rating:    rv.Rating(),
		Comment:   rv.Comment(),
		Created:   rv.CreatedAt(),
	}
}

// parseReviewArray decodes a JSON.GET "$" reply. The root path wraps the
// stored array in an outer single-element array.
func parseReviewArray(raw []byte) ([]domreview.Review, error) {
	var wrapped [][]reviewDoc
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unmarshal reviews: %w", err)
	}
	if len(wrapped) == 0 || len(wrapped[0]) == 0 {
		return nil, nil
	}

	reviews := make([]domreview.Review, 0, len(wrapped[0]))
	for _, doc := range wrapped[0] {
		reviews = append(reviews, domreview.Reconstruct(
			doc.ID, doc.ProfileID, doc.Author, doc.Rating, doc.Comment, doc.Created,
		))
	}
	return reviews, nil
}
