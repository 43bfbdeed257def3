package autocomplete

import (
	"context"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
)

// SuggestionFetcher returns directory suggestions for a name prefix.
type SuggestionFetcher interface {
	Autocomplete(ctx context.Context, prefix string, limit int) ([]profile.Suggestion, error)
}

// Observer receives coordinator output. Callbacks run with the coordinator's
// mutex held, so they must return quickly and never call back into it.
type Observer interface {
	AutocompleteUpdated(suggestions []profile.Suggestion)
	SuggestionSelected(sel profile.Suggestion)
}
