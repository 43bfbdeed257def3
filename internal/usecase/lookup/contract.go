package lookup

import (
	"context"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/usecase/parse"
)

// Parser extracts name and organization fragments from raw query text.
type Parser interface {
	Parse(ctx context.Context, raw string) parse.Result
}

// Provider fetches external people hits for a query.
type Provider interface {
	Lookup(ctx context.Context, q domain.LookupQuery) ([]domain.LookupHit, error)
}
