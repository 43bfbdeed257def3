package domain

import "context"

// PeopleLookup is the external people lookup contract between layers.
// Implementations fetch provider results for a query and return parsed hits.
type PeopleLookup interface {
	Lookup(ctx context.Context, q LookupQuery) ([]LookupHit, error)
}

// LookupQuery carries the inputs for one external lookup call.
// Name and Organization are the parsed fragments; either may be empty.
type LookupQuery struct {
	Raw          string
	Name         string
	Organization string
	MaxResults   int
}

// LookupHit is one parsed provider result before scoring.
// Title, Location, and Snippet are empty when absent. Direct marks a hit
// derived from a profile URL typed straight into the query.
type LookupHit struct {
	Name     string
	Title    string
	Location string
	Snippet  string
	URL      string
	Direct   bool
}
