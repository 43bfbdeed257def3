// Package autocomplete coordinates keystroke-driven suggestion fetching.
//
// Typing schedules a fetch after a debounce delay; a newer keystroke inside
// the delay cancels the pending fetch before it is ever issued. Each issued
// request carries a monotonically increasing token, and only the response
// matching the newest token renders; everything older is discarded on
// arrival. Clearing the input or selecting a suggestion invalidates all
// requests still in flight.
package autocomplete

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/metrics"
)

const defaultDebounce = 250 * time.Millisecond

// Coordinator owns the debounce timer and the sequence token counter. The
// counter is the only shared mutable state; the mutex guards it and the timer.
type Coordinator struct {
	fetch    SuggestionFetcher
	observer Observer
	debounce time.Duration
	limit    int
	logger   *zap.Logger

	mu      sync.Mutex
	seq     uint64
	pending *time.Timer
}

// New creates a coordinator. A non-positive debounce falls back to 250ms;
// limit is passed through to the fetcher.
func New(fetch SuggestionFetcher, observer Observer, debounce time.Duration, limit int, logger *zap.Logger) *Coordinator {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Coordinator{
		fetch:    fetch,
		observer: observer,
		debounce: debounce,
		limit:    limit,
		logger:   logger,
	}
}

// Input handles one keystroke. Blank input clears the suggestions
// immediately and invalidates in-flight responses; anything else schedules a
// fetch after the debounce delay, replacing a still-pending one. The
// keystroke's context bounds its request.
func (c *Coordinator) Input(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()

	if text == "" {
		c.seq++
		c.observer.AutocompleteUpdated(nil)
		metrics.AutocompleteResponsesTotal.WithLabelValues("cleared").Inc()
		return
	}
	c.pending = time.AfterFunc(c.debounce, func() { c.issue(ctx, text) })
}

// Select reports a chosen suggestion and invalidates outstanding requests.
// The caller moves straight to the profile view; no search runs.
func (c *Coordinator) Select(sel profile.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.seq++
	c.observer.SuggestionSelected(sel)
}

// Stop cancels any pending fetch and invalidates responses still in flight.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.seq++
}

func (c *Coordinator) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Coordinator) issue(ctx context.Context, text string) {
	c.mu.Lock()
	c.pending = nil
	c.seq++
	token := c.seq
	c.mu.Unlock()

	suggestions, err := c.fetch.Autocomplete(ctx, text, c.limit)
	if err != nil {
		c.logger.Warn("Autocomplete fetch failed",
			zap.String("prefix", text),
			zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		metrics.AutocompleteResponsesTotal.WithLabelValues("stale").Inc()
		return
	}
	c.observer.AutocompleteUpdated(suggestions)
	metrics.AutocompleteResponsesTotal.WithLabelValues("rendered").Inc()
}
