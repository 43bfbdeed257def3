package search

import (
	"context"
	"time"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
)

// LocalDirectory searches the profile directory by canonical key.
// An empty key lists the whole directory.
type LocalDirectory interface {
	Search(ctx context.Context, canonicalKey string) ([]profile.Profile, error)
}

// ExternalLookup runs one external people lookup over the raw query and
// returns ranked candidates plus the parsed display fragments.
type ExternalLookup interface {
	Search(ctx context.Context, raw string) (lookup.Result, error)
}

// Emitter observes orchestration lifecycle events. Calls are synchronous and
// happen in submit order; implementations must be safe for concurrent use.
type Emitter interface {
	SearchStarted(query string)
	SearchCompleted(localCount int, degraded bool, elapsed time.Duration)
	ExternalSearchStarted(query string)
	ExternalSearchCompleted(candidateCount int, failed bool, elapsed time.Duration)
}
