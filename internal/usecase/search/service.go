// Package search orchestrates one people search across the local directory
// and the external lookup source.
//
// A submit walks a fixed lifecycle: the local directory resolves first, then
// the external decision is made. An empty normalized query lists the whole
// directory and never reaches the external source. A query with local hits
// stops at the directory too; looking further is a manual affordance. Only a
// query the directory cannot answer auto-triggers the external lookup, once.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain/search/outcome"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/query"
	"github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
)

// Service coordinates the local directory and the external lookup source.
type Service struct {
	local    LocalDirectory
	external ExternalLookup
	emitter  Emitter
	logger   *zap.Logger
}

// New creates a search orchestrator. A nil emitter is replaced with a no-op.
func New(local LocalDirectory, external ExternalLookup, emitter Emitter, logger *zap.Logger) *Service {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &Service{local: local, external: external, emitter: emitter, logger: logger}
}

// Search runs one orchestrated submit. It never fails: a local store error
// degrades to zero local results and the pipeline continues, and an external
// failure is recorded on the outcome with the local results kept.
func (s *Service) Search(ctx context.Context, raw string) outcome.Outcome {
	start := time.Now()
	s.emitter.SearchStarted(raw)

	key := query.Normalize(raw)

	matches, err := s.local.Search(ctx, key)
	degraded := false
	if err != nil {
		s.logger.Warn("Local directory search failed, degrading to empty results",
			zap.String("query", raw),
			zap.Error(err))
		matches = nil
		degraded = true
	}
	out := outcome.NewLocal(matches, degraded)
	s.emitter.SearchCompleted(len(matches), degraded, time.Since(start))

	// An empty key lists the whole directory; the external source is for
	// finding people, not for browsing.
	if key == "" {
		return out
	}
	// Local hits satisfy the submit. The external source stays one manual
	// trigger away.
	if len(matches) > 0 {
		return out
	}

	res, err := s.runExternal(ctx, raw)
	if err != nil {
		s.logger.Warn("External lookup failed",
			zap.String("query", raw),
			zap.Error(err))
		return out.WithExternalFailure()
	}
	return out.WithExternal(res.Candidates, res.ParsedName, res.ParsedOrganization)
}

// SearchExternal re-issues the external lookup on demand, independent of any
// local state. Each call queries the source afresh; against an unchanged
// source it returns the same candidates.
func (s *Service) SearchExternal(ctx context.Context, raw string) (lookup.Result, error) {
	return s.runExternal(ctx, raw)
}

func (s *Service) runExternal(ctx context.Context, raw string) (lookup.Result, error) {
	start := time.Now()
	s.emitter.ExternalSearchStarted(raw)

	res, err := s.external.Search(ctx, raw)
	if err != nil {
		s.emitter.ExternalSearchCompleted(0, true, time.Since(start))
		return lookup.Result{}, err
	}
	s.emitter.ExternalSearchCompleted(len(res.Candidates), false, time.Since(start))
	return res, nil
}

type nopEmitter struct{}

func (nopEmitter) SearchStarted(string)                             {}
func (nopEmitter) SearchCompleted(int, bool, time.Duration)         {}
func (nopEmitter) ExternalSearchStarted(string)                     {}
func (nopEmitter) ExternalSearchCompleted(int, bool, time.Duration) {}
