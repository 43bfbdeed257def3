package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
)

// --- Mocks ---

type mockProfileStore struct {
	saved        []profile.Profile
	getResult    profile.Profile
	searchResult []profile.Profile
	searchTotal  int
	suggestions  []profile.Suggestion

	saveErr   error
	getErr    error
	deleteErr error
	searchErr error
	acErr     error

	getCalls    int
	searchKey   string
	searchLimit int
	acCalls     int
	acPrefix    string
	acLimit     int

	ops *[]string
}

func (m *mockProfileStore) Save(_ context.Context, p profile.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, p)
	return nil
}

func (m *mockProfileStore) Get(_ context.Context, _ string) (profile.Profile, error) {
	m.getCalls++
	return m.getResult, m.getErr
}

func (m *mockProfileStore) Delete(_ context.Context, _ string) error {
	if m.ops != nil {
		*m.ops = append(*m.ops, "profile.delete")
	}
	return m.deleteErr
}

func (m *mockProfileStore) Search(_ context.Context, key string, limit int) ([]profile.Profile, int, error) {
	m.searchKey = key
	m.searchLimit = limit
	if m.searchErr != nil {
		return nil, 0, m.searchErr
	}
	return m.searchResult, m.searchTotal, nil
}

func (m *mockProfileStore) Autocomplete(_ context.Context, prefix string, limit int) ([]profile.Suggestion, error) {
	m.acCalls++
	m.acPrefix = prefix
	m.acLimit = limit
	return m.suggestions, m.acErr
}

type mockReviewStore struct {
	added       []review.Review
	listResult  []review.Review
	addErr      error
	listErr     error
	deleteErr   error
	deleteCalls int

	ops *[]string
}

func (m *mockReviewStore) Add(_ context.Context, rv review.Review) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, rv)
	return nil
}

func (m *mockReviewStore) ListByProfile(_ context.Context, _ string) ([]review.Review, error) {
	return m.listResult, m.listErr
}

func (m *mockReviewStore) DeleteByProfile(_ context.Context, _ string) error {
	m.deleteCalls++
	if m.ops != nil {
		*m.ops = append(*m.ops, "reviews.delete")
	}
	return m.deleteErr
}

func makeProfile(id, name string) profile.Profile {
	return profile.Reconstruct(id, name, "Initech", "Engineer", "Zurich", "", 1700000000000)
}

// --- Search tests ---

func TestSearch_ReturnsProfiles(t *testing.T) {
	ps := &mockProfileStore{
		searchResult: []profile.Profile{makeProfile("p1", "Jane Doe"), makeProfile("p2", "Jane Smith")},
		searchTotal:  2,
	}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	profiles, err := svc.Search(context.Background(), "jane")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if ps.searchKey != "jane" {
		t.Errorf("expected canonical key passed through, got %q", ps.searchKey)
	}
	if ps.searchLimit != defaultPageSize {
		t.Errorf("expected default page size %d, got %d", defaultPageSize, ps.searchLimit)
	}
}

func TestSearch_EmptyKeyListsAll(t *testing.T) {
	ps := &mockProfileStore{searchResult: []profile.Profile{makeProfile("p1", "Jane Doe")}}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	if _, err := svc.Search(context.Background(), ""); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ps.searchKey != "" {
		t.Errorf("expected empty key passed through, got %q", ps.searchKey)
	}
}

func TestSearch_UsesConfiguredPageSize(t *testing.T) {
	ps := &mockProfileStore{}
	svc := New(ps, &mockReviewStore{}, 25, 0)

	if _, err := svc.Search(context.Background(), "jane"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ps.searchLimit != 25 {
		t.Errorf("expected page size 25, got %d", ps.searchLimit)
	}
}

func TestSearch_StorageFailure(t *testing.T) {
	ps := &mockProfileStore{searchErr: errors.New("connection refused")}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	_, err := svc.Search(context.Background(), "jane")
	if !errors.Is(err, domain.ErrLocalSearch) {
		t.Fatalf("expected domain.ErrLocalSearch, got %v", err)
	}
}

// --- Autocomplete tests ---

func TestAutocomplete_EmptyPrefixSkipsStore(t *testing.T) {
	ps := &mockProfileStore{}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	suggestions, err := svc.Autocomplete(context.Background(), "", 5)
	if err != nil {
		t.Fatalf("Autocomplete failed: %v", err)
	}
	if suggestions != nil {
		t.Errorf("expected nil suggestions, got %v", suggestions)
	}
	if ps.acCalls != 0 {
		t.Errorf("expected no store call for empty prefix, got %d", ps.acCalls)
	}
}

func TestAutocomplete_DefaultLimit(t *testing.T) {
	ps := &mockProfileStore{}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	if _, err := svc.Autocomplete(context.Background(), "ja", 0); err != nil {
		t.Fatalf("Autocomplete failed: %v", err)
	}
	if ps.acLimit != defaultAutocompleteLimit {
		t.Errorf("expected default limit %d, got %d", defaultAutocompleteLimit, ps.acLimit)
	}
}

func TestAutocomplete_ExplicitLimit(t *testing.T) {
	ps := &mockProfileStore{suggestions: []profile.Suggestion{
		profile.NewSuggestion("p1", "Jane Doe", "Initech", "Engineer"),
	}}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	suggestions, err := svc.Autocomplete(context.Background(), "ja", 3)
	if err != nil {
		t.Fatalf("Autocomplete failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if ps.acPrefix != "ja" || ps.acLimit != 3 {
		t.Errorf("unexpected store call: prefix=%q limit=%d", ps.acPrefix, ps.acLimit)
	}
}

func TestAutocomplete_StorageFailure(t *testing.T) {
	ps := &mockProfileStore{acErr: errors.New("connection refused")}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	_, err := svc.Autocomplete(context.Background(), "ja", 5)
	if !errors.Is(err, domain.ErrLocalSearch) {
		t.Fatalf("expected domain.ErrLocalSearch, got %v", err)
	}
}

// --- Profile tests ---

func TestGetProfile_WithReviews(t *testing.T) {
	ps := &mockProfileStore{getResult: makeProfile("p1", "Jane Doe")}
	rs := &mockReviewStore{listResult: []review.Review{
		review.Reconstruct("r1", "p1", "Sam", 5, "Great colleague.", 1700000000000),
	}}
	svc := New(ps, rs, 0, 0)

	p, reviews, err := svc.GetProfile(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Name() != "Jane Doe" {
		t.Errorf("unexpected profile name %q", p.Name())
	}
	if len(reviews) != 1 || reviews[0].Author() != "Sam" {
		t.Errorf("unexpected reviews: %+v", reviews)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	ps := &mockProfileStore{getErr: domain.ErrProfileNotFound}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	_, _, err := svc.GetProfile(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected domain.ErrProfileNotFound, got %v", err)
	}
}

func TestGetProfile_ReviewListFailure(t *testing.T) {
	ps := &mockProfileStore{getResult: makeProfile("p1", "Jane Doe")}
	rs := &mockReviewStore{listErr: errors.New("connection refused")}
	svc := New(ps, rs, 0, 0)

	_, _, err := svc.GetProfile(context.Background(), "p1")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateProfile_Success(t *testing.T) {
	ps := &mockProfileStore{}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	p, err := svc.CreateProfile(context.Background(), "Jane Doe", "Initech", "Engineer", "Zurich", "Builds things.")
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if p.ID() == "" {
		t.Error("expected assigned ID")
	}
	if p.Name() != "Jane Doe" || p.Company() != "Initech" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.CreatedAt() == 0 {
		t.Error("expected creation timestamp")
	}
	if len(ps.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(ps.saved))
	}
}

func TestCreateProfile_ValidationBeforeWrite(t *testing.T) {
	ps := &mockProfileStore{}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	_, err := svc.CreateProfile(context.Background(), "", "Initech", "", "", "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected domain.ErrInvalidInput, got %v", err)
	}
	if len(ps.saved) != 0 {
		t.Errorf("expected no save on validation failure, got %d", len(ps.saved))
	}
}

func TestCreateProfile_WriteFailure(t *testing.T) {
	ps := &mockProfileStore{saveErr: errors.New("connection refused")}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	_, err := svc.CreateProfile(context.Background(), "Jane Doe", "", "", "", "")
	if !errors.Is(err, domain.ErrWriteFailure) {
		t.Fatalf("expected domain.ErrWriteFailure, got %v", err)
	}
}

func TestDeleteProfile_CascadeOrder(t *testing.T) {
	var ops []string
	ps := &mockProfileStore{ops: &ops}
	rs := &mockReviewStore{ops: &ops}
	svc := New(ps, rs, 0, 0)

	if err := svc.DeleteProfile(context.Background(), "p1"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	if len(ops) != 2 || ops[0] != "reviews.delete" || ops[1] != "profile.delete" {
		t.Fatalf("expected reviews deleted before profile, got %v", ops)
	}
}

func TestDeleteProfile_NotFound(t *testing.T) {
	ps := &mockProfileStore{deleteErr: domain.ErrProfileNotFound}
	svc := New(ps, &mockReviewStore{}, 0, 0)

	err := svc.DeleteProfile(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected domain.ErrProfileNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrWriteFailure) {
		t.Error("missing profile must not read as a write failure")
	}
}

func TestDeleteProfile_ReviewDeleteFailure(t *testing.T) {
	var ops []string
	ps := &mockProfileStore{ops: &ops}
	rs := &mockReviewStore{ops: &ops, deleteErr: errors.New("connection refused")}
	svc := New(ps, rs, 0, 0)

	err := svc.DeleteProfile(context.Background(), "p1")
	if !errors.Is(err, domain.ErrWriteFailure) {
		t.Fatalf("expected domain.ErrWriteFailure, got %v", err)
	}
	for _, op := range ops {
		if op == "profile.delete" {
			t.Error("profile must not be deleted when review cascade fails")
		}
	}
}

// --- Review tests ---

func TestAddReview_Success(t *testing.T) {
	ps := &mockProfileStore{getResult: makeProfile("p1", "Jane Doe")}
	rs := &mockReviewStore{}
	svc := New(ps, rs, 0, 0)

	rv, err := svc.AddReview(context.Background(), "p1", "Sam", 4, "Solid work.")
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if rv.ID() == "" {
		t.Error("expected assigned review ID")
	}
	if rv.ProfileID() != "p1" || rv.Author() != "Sam" || rv.Rating() != 4 {
		t.Errorf("unexpected review: %+v", rv)
	}
	if len(rs.added) != 1 {
		t.Fatalf("expected 1 appended review, got %d", len(rs.added))
	}
}

func TestAddReview_ValidationBeforeAnyCall(t *testing.T) {
	ps := &mockProfileStore{getResult: makeProfile("p1", "Jane Doe")}
	rs := &mockReviewStore{}
	svc := New(ps, rs, 0, 0)

	_, err := svc.AddReview(context.Background(), "p1", "", 4, "Solid work.")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected domain.ErrInvalidInput, got %v", err)
	}
	if ps.getCalls != 0 {
		t.Errorf("expected no profile check on validation failure, got %d", ps.getCalls)
	}
	if len(rs.added) != 0 {
		t.Errorf("expected no write on validation failure, got %d", len(rs.added))
	}
}

func TestAddReview_RatingBounds(t *testing.T) {
	svc := New(&mockProfileStore{getResult: makeProfile("p1", "Jane Doe")}, &mockReviewStore{}, 0, 0)

	for _, rating := range []int{0, 6} {
		if _, err := svc.AddReview(context.Background(), "p1", "Sam", rating, "Text."); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("rating %d: expected domain.ErrInvalidInput, got %v", rating, err)
		}
	}
}

func TestAddReview_MissingProfile(t *testing.T) {
	ps := &mockProfileStore{getErr: domain.ErrProfileNotFound}
	rs := &mockReviewStore{}
	svc := New(ps, rs, 0, 0)

	_, err := svc.AddReview(context.Background(), "missing", "Sam", 4, "Solid work.")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected domain.ErrProfileNotFound, got %v", err)
	}
	if len(rs.added) != 0 {
		t.Errorf("expected no write for missing profile, got %d", len(rs.added))
	}
}

func TestAddReview_WriteFailure(t *testing.T) {
	ps := &mockProfileStore{getResult: makeProfile("p1", "Jane Doe")}
	rs := &mockReviewStore{addErr: errors.New("connection refused")}
	svc := New(ps, rs, 0, 0)

	_, err := svc.AddReview(context.Background(), "p1", "Sam", 4, "Solid work.")
	if !errors.Is(err, domain.ErrWriteFailure) {
		t.Fatalf("expected domain.ErrWriteFailure, got %v", err)
	}
}
