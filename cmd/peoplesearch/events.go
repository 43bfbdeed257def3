package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/metrics"
	searchuc "github.com/slaguerre91/people-search-homepage/internal/usecase/search"
)

// searchEmitter feeds search lifecycle events into the log and the
// Prometheus search metrics. The orchestrator calls it synchronously, so
// every method must stay cheap.
type searchEmitter struct {
	logger *zap.Logger
}

func newSearchEmitter(logger *zap.Logger) *searchEmitter {
	return &searchEmitter{logger: logger}
}

var _ searchuc.Emitter = (*searchEmitter)(nil)

func (e *searchEmitter) SearchStarted(query string) {
	e.logger.Debug("search_started", zap.String("query", query))
}

func (e *searchEmitter) SearchCompleted(localCount int, degraded bool, elapsed time.Duration) {
	status := "ok"
	if degraded {
		status = "degraded"
	}
	metrics.SearchesTotal.WithLabelValues("local", status).Inc()
	metrics.SearchDuration.WithLabelValues("local").Observe(elapsed.Seconds())

	e.logger.Debug("search_completed",
		zap.Int("local_count", localCount),
		zap.Bool("degraded", degraded),
		zap.Duration("elapsed", elapsed),
	)
}

func (e *searchEmitter) ExternalSearchStarted(query string) {
	e.logger.Debug("external_search_started", zap.String("query", query))
}

func (e *searchEmitter) ExternalSearchCompleted(candidateCount int, failed bool, elapsed time.Duration) {
	status := "ok"
	if failed {
		status = "error"
	}
	metrics.SearchesTotal.WithLabelValues("external", status).Inc()
	metrics.SearchDuration.WithLabelValues("external").Observe(elapsed.Seconds())

	e.logger.Debug("external_search_completed",
		zap.Int("candidate_count", candidateCount),
		zap.Bool("failed", failed),
		zap.Duration("elapsed", elapsed),
	)
}
