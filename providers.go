package peoplesearch

import "context"

// QueryParser splits a free-text query into name and company fragments.
// Consulted only when the built-in rule layer is not confident about its
// own split; plain "John Smith at Google" queries never reach it.
type QueryParser interface {
	Parse(ctx context.Context, query string) (ParsedFragments, error)
}

// ParsedFragments carries the extracted fragments and token usage.
type ParsedFragments struct {
	Name    string
	Company string
	Tokens  int
}

// LookupProvider fetches external people sightings for a query.
// Implementations talk to whatever source they like; results are scored
// and tiered against the parsed fragments before being returned.
type LookupProvider interface {
	Lookup(ctx context.Context, q LookupQuery) ([]LookupHit, error)
}

// LookupQuery describes one external lookup request. Name and Organization
// are the parsed fragments; Raw is the untouched query text.
type LookupQuery struct {
	Raw          string
	Name         string
	Organization string
	MaxResults   int
}

// LookupHit is one raw external result before scoring.
type LookupHit struct {
	Name     string
	Title    string
	Location string
	Snippet  string
	URL      string
}
