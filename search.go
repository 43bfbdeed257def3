package peoplesearch

import (
	"context"
	"fmt"
	"time"
)

// Search runs one orchestrated search: the local directory first, then,
// when the directory comes up empty, the external source automatically.
// It never fails; a broken store degrades to zero local matches and a
// broken external source sets ExternalFailed.
func (c *Client) Search(ctx context.Context, query string) SearchOutcome {
	start := time.Now()
	defer func() { c.obs.observe("search", start, nil) }()

	out := c.searchSvc.Search(ctx, query)
	return fromInternalOutcome(out)
}

// SearchExternal triggers an external search directly, bypassing the local
// directory. Check errors with errors.Is against ErrExternalSearch and
// ErrRateLimited.
func (c *Client) SearchExternal(ctx context.Context, query string) (_ ExternalResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search.external", start, err) }()

	res, err := c.searchSvc.SearchExternal(ctx, query)
	if err != nil {
		return ExternalResult{}, fmt.Errorf("external search: %w", err)
	}
	return fromInternalLookupResult(res), nil
}

// ParseQuery reports how a query splits into name and company fragments
// without running a search. Useful for query preview UIs.
func (c *Client) ParseQuery(ctx context.Context, query string) ParsedQuery {
	start := time.Now()
	defer func() { c.obs.observe("parse", start, nil) }()

	res := c.parseSvc.Parse(ctx, query)
	return ParsedQuery{
		Name:      res.Parsed.Name(),
		Company:   res.Parsed.Organization(),
		Confident: res.Confident,
		Source:    res.Source,
	}
}
