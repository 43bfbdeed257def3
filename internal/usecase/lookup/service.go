// Package lookup runs the external people search: parse the query into
// fragments, fetch provider hits, score them against the fragments, and
// rank the resulting candidates.
package lookup

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/candidate"
)

// profileURLMarker detects a profile URL typed straight into the query.
// Such queries skip the parser entirely; the provider answers from the URL.
const profileURLMarker = "linkedin.com/in/"

const defaultMaxResults = 10

// Result is the outcome of one external lookup.
type Result struct {
	// Candidates are scored sightings, best match first.
	Candidates []candidate.Candidate
	// ParsedName and ParsedOrganization echo the fragments the lookup
	// searched with. For a direct profile URL the name is derived from
	// the URL slug and the organization is empty.
	ParsedName         string
	ParsedOrganization string
}

// Service coordinates query parsing, provider fetch, and scoring.
type Service struct {
	parser     Parser
	provider   Provider
	timeout    time.Duration
	maxResults int
	logger     *zap.Logger
}

// New creates a lookup service. timeout bounds each provider call (zero
// means no bound); maxResults caps the ranked candidate list.
func New(parser Parser, provider Provider, timeout time.Duration, maxResults int, logger *zap.Logger) *Service {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Service{
		parser:     parser,
		provider:   provider,
		timeout:    timeout,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Search parses the raw query, fetches external hits, and returns scored
// candidates ranked best first. Zero hits is a success with an empty
// candidate list; the parsed fragments are returned either way.
func (s *Service) Search(ctx context.Context, raw string) (Result, error) {
	var name, org string
	if !strings.Contains(raw, profileURLMarker) {
		parsed := s.parser.Parse(ctx, raw)
		name = parsed.Parsed.Name()
		org = parsed.Parsed.Organization()
	}

	lookupCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	hits, err := s.provider.Lookup(lookupCtx, domain.LookupQuery{
		Raw:          raw,
		Name:         name,
		Organization: org,
		MaxResults:   s.maxResults,
	})
	if err != nil {
		return Result{}, fmt.Errorf("provider lookup: %w", err)
	}

	// A direct hit carries the person's name in the URL itself; report
	// that instead of the (skipped) parse fragments.
	if len(hits) > 0 && hits[0].Direct {
		name = hits[0].Name
		org = ""
	}

	candidates := make([]candidate.Candidate, 0, len(hits))
	for _, hit := range hits {
		cand, err := candidate.New(hit.Name, hit.Title, hit.Location, hit.Snippet, hit.URL, scoreHit(hit, name, org))
		if err != nil {
			s.logger.Warn("Skipping malformed hit", zap.String("url", hit.URL), zap.Error(err))
			continue
		}
		candidates = append(candidates, cand)
	}

	// Stable sort keeps provider discovery order on equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore() > candidates[j].MatchScore()
	})

	if len(candidates) > s.maxResults {
		candidates = candidates[:s.maxResults]
	}

	s.logger.Debug("External lookup completed",
		zap.Int("hits", len(hits)),
		zap.Int("candidates", len(candidates)),
	)

	return Result{
		Candidates:         candidates,
		ParsedName:         name,
		ParsedOrganization: org,
	}, nil
}
