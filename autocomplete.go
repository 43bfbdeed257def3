package peoplesearch

import (
	"context"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	autocompleteuc "github.com/slaguerre91/people-search-homepage/internal/usecase/autocomplete"
)

// AutocompleteCallbacks receives session output. Callbacks run on the
// session's goroutine and must return quickly; nil callbacks are skipped.
type AutocompleteCallbacks struct {
	// OnUpdate delivers the current suggestion list. A nil slice means the
	// input was cleared.
	OnUpdate func([]Suggestion)
	// OnSelect reports the suggestion the user chose.
	OnSelect func(Suggestion)
}

// AutocompleteSession debounces keystrokes and discards out-of-order
// responses, so OnUpdate only ever sees suggestions for the newest input.
type AutocompleteSession struct {
	coord *autocompleteuc.Coordinator
}

// NewAutocompleteSession starts a type-ahead session using the client's
// debounce and limit settings. Call Stop when the input field goes away.
func (c *Client) NewAutocompleteSession(cb AutocompleteCallbacks) *AutocompleteSession {
	obs := &callbackObserver{cb: cb}
	return &AutocompleteSession{
		coord: autocompleteuc.New(c.dirSvc, obs, c.debounce, c.acLimit, zap.NewNop()),
	}
}

// Input handles one keystroke. Blank input clears the suggestions
// immediately; anything else fetches after the debounce delay.
func (s *AutocompleteSession) Input(ctx context.Context, text string) {
	s.coord.Input(ctx, text)
}

// Select reports a chosen suggestion and invalidates outstanding fetches.
func (s *AutocompleteSession) Select(sel Suggestion) {
	s.coord.Select(profile.NewSuggestion(sel.ID, sel.Name, sel.Company, sel.Role))
}

// Stop cancels any pending fetch and invalidates responses still in flight.
func (s *AutocompleteSession) Stop() {
	s.coord.Stop()
}

// callbackObserver forwards coordinator output to the public callbacks.
type callbackObserver struct {
	cb AutocompleteCallbacks
}

func (o *callbackObserver) AutocompleteUpdated(suggestions []profile.Suggestion) {
	if o.cb.OnUpdate == nil {
		return
	}
	if suggestions == nil {
		o.cb.OnUpdate(nil)
		return
	}
	o.cb.OnUpdate(fromInternalSuggestions(suggestions))
}

func (o *callbackObserver) SuggestionSelected(sel profile.Suggestion) {
	if o.cb.OnSelect == nil {
		return
	}
	o.cb.OnSelect(fromInternalSuggestion(sel))
}
