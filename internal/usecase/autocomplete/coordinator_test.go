package autocomplete

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type fetchReply struct {
	suggestions []profile.Suggestion
	err         error
}

type fetchCall struct {
	prefix string
	limit  int
	reply  chan fetchReply
}

// mockFetcher parks every call until the test replies, so tests control
// resolution order.
type mockFetcher struct {
	calls chan fetchCall
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{calls: make(chan fetchCall, 8)}
}

func (m *mockFetcher) Autocomplete(_ context.Context, prefix string, limit int) ([]profile.Suggestion, error) {
	call := fetchCall{prefix: prefix, limit: limit, reply: make(chan fetchReply, 1)}
	m.calls <- call
	r := <-call.reply
	return r.suggestions, r.err
}

type recordingObserver struct {
	mu         sync.Mutex
	updates    [][]profile.Suggestion
	selections []profile.Suggestion
}

func (r *recordingObserver) AutocompleteUpdated(s []profile.Suggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, s)
}

func (r *recordingObserver) SuggestionSelected(sel profile.Suggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selections = append(r.selections, sel)
}

func (r *recordingObserver) snapshotUpdates() [][]profile.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]profile.Suggestion(nil), r.updates...)
}

func (r *recordingObserver) snapshotSelections() []profile.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]profile.Suggestion(nil), r.selections...)
}

// --- Helpers ---

func waitCall(t *testing.T, f *mockFetcher) fetchCall {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch")
		return fetchCall{}
	}
}

func assertNoCall(t *testing.T, f *mockFetcher, within time.Duration) {
	t.Helper()
	select {
	case call := <-f.calls:
		t.Fatalf("unexpected fetch for %q", call.prefix)
	case <-time.After(within):
	}
}

func waitForUpdates(t *testing.T, obs *recordingObserver, n int) [][]profile.Suggestion {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := obs.snapshotUpdates(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d updates, got %d", n, len(obs.snapshotUpdates()))
	return nil
}

func suggestion(id, name string) profile.Suggestion {
	return profile.NewSuggestion(id, name, "Initech", "Engineer")
}

// --- Tests ---

func TestInput_FetchesAfterDebounce(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "ja")

	call := waitCall(t, fetcher)
	if call.prefix != "ja" || call.limit != 8 {
		t.Errorf("unexpected fetch: prefix=%q limit=%d", call.prefix, call.limit)
	}
	call.reply <- fetchReply{suggestions: []profile.Suggestion{suggestion("p1", "Jane Doe")}}

	updates := waitForUpdates(t, obs, 1)
	if len(updates[0]) != 1 || updates[0][0].Name() != "Jane Doe" {
		t.Errorf("unexpected rendered suggestions: %+v", updates[0])
	}
}

func TestInput_NewKeystrokeCancelsPending(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, 120*time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "j")
	time.Sleep(10 * time.Millisecond)
	c.Input(context.Background(), "ja")

	call := waitCall(t, fetcher)
	if call.prefix != "ja" {
		t.Fatalf("expected the pending fetch for %q to be canceled, got fetch for %q", "j", call.prefix)
	}
	call.reply <- fetchReply{}
	assertNoCall(t, fetcher, 150*time.Millisecond)
}

func TestStaleResponsesDiscarded(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, time.Millisecond, 8, zap.NewNop())
	staleBefore := testutil.ToFloat64(metrics.AutocompleteResponsesTotal.WithLabelValues("stale"))

	c.Input(context.Background(), "jan")
	r1 := waitCall(t, fetcher)
	c.Input(context.Background(), "jane")
	r2 := waitCall(t, fetcher)
	c.Input(context.Background(), "janet")
	r3 := waitCall(t, fetcher)

	r3.reply <- fetchReply{suggestions: []profile.Suggestion{suggestion("p3", "Janet Frame")}}
	updates := waitForUpdates(t, obs, 1)
	if updates[0][0].Name() != "Janet Frame" {
		t.Fatalf("expected the newest response to render, got %+v", updates[0])
	}

	r1.reply <- fetchReply{suggestions: []profile.Suggestion{suggestion("p1", "Jan Brett")}}
	r2.reply <- fetchReply{suggestions: []profile.Suggestion{suggestion("p2", "Jane Doe")}}
	time.Sleep(50 * time.Millisecond)

	if got := obs.snapshotUpdates(); len(got) != 1 {
		t.Errorf("stale responses rendered: %d updates", len(got))
	}
	staleAfter := testutil.ToFloat64(metrics.AutocompleteResponsesTotal.WithLabelValues("stale"))
	if staleAfter-staleBefore != 2 {
		t.Errorf("expected 2 stale responses counted, got %v", staleAfter-staleBefore)
	}
}

func TestInput_EmptyClearsImmediately(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, 100*time.Millisecond, 8, zap.NewNop())
	clearedBefore := testutil.ToFloat64(metrics.AutocompleteResponsesTotal.WithLabelValues("cleared"))

	c.Input(context.Background(), "ja")
	c.Input(context.Background(), "   ")

	updates := obs.snapshotUpdates()
	if len(updates) != 1 || len(updates[0]) != 0 {
		t.Fatalf("expected an immediate empty update, got %+v", updates)
	}
	assertNoCall(t, fetcher, 180*time.Millisecond)

	clearedAfter := testutil.ToFloat64(metrics.AutocompleteResponsesTotal.WithLabelValues("cleared"))
	if clearedAfter-clearedBefore != 1 {
		t.Errorf("expected 1 cleared response counted, got %v", clearedAfter-clearedBefore)
	}
}

func TestInput_EmptyInvalidatesInFlight(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "jan")
	call := waitCall(t, fetcher)
	c.Input(context.Background(), "")

	call.reply <- fetchReply{suggestions: []profile.Suggestion{suggestion("p1", "Jan Brett")}}
	time.Sleep(50 * time.Millisecond)

	updates := obs.snapshotUpdates()
	if len(updates) != 1 || len(updates[0]) != 0 {
		t.Errorf("expected only the clear to render, got %+v", updates)
	}
}

func TestSelect_ReportsAndInvalidates(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "jan")
	call := waitCall(t, fetcher)
	c.Select(suggestion("p1", "Jane Doe"))

	selections := obs.snapshotSelections()
	if len(selections) != 1 || selections[0].ID() != "p1" {
		t.Fatalf("expected selection reported, got %+v", selections)
	}

	call.reply <- fetchReply{suggestions: []profile.Suggestion{suggestion("p2", "Jan Brett")}}
	time.Sleep(50 * time.Millisecond)
	if got := obs.snapshotUpdates(); len(got) != 0 {
		t.Errorf("expected no renders after selection, got %+v", got)
	}
}

func TestSelect_CancelsPending(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, 120*time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "jan")
	c.Select(suggestion("p1", "Jane Doe"))

	assertNoCall(t, fetcher, 150*time.Millisecond)
	if len(obs.snapshotSelections()) != 1 {
		t.Error("expected selection reported")
	}
}

func TestInput_FetchErrorRendersNothing(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "jan")
	call := waitCall(t, fetcher)
	call.reply <- fetchReply{err: errors.New("connection refused")}
	time.Sleep(50 * time.Millisecond)

	if got := obs.snapshotUpdates(); len(got) != 0 {
		t.Errorf("expected no updates after a fetch error, got %+v", got)
	}
}

func TestStop_CancelsPending(t *testing.T) {
	fetcher := newMockFetcher()
	obs := &recordingObserver{}
	c := New(fetcher, obs, 120*time.Millisecond, 8, zap.NewNop())

	c.Input(context.Background(), "jan")
	c.Stop()

	assertNoCall(t, fetcher, 150*time.Millisecond)
}
