package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/slaguerre91/people-search-homepage/internal/db"
	"github.com/slaguerre91/people-search-homepage/internal/domain"
	domprofile "github.com/slaguerre91/people-search-homepage/internal/domain/profile"
)

// --- Save ---

func TestSave_WritesHashFields(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var gotKey string
	var gotFields map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey = key
		gotFields = fields
		return nil
	}

	p := domprofile.Reconstruct("p-1", "Jane Doe", "Oracle", "DBA", "Austin, TX", "bio text", 1700000000000)
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "people:profile:p-1" {
		t.Errorf("unexpected key: %s", gotKey)
	}
	if gotFields["name"] != "Jane Doe" || gotFields["company"] != "Oracle" {
		t.Errorf("unexpected fields: %v", gotFields)
	}
	if gotFields["created"] != "1700000000000" {
		t.Errorf("unexpected created: %s", gotFields["created"])
	}
}

func TestSave_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error {
		return errors.New("OOM")
	}

	p := domprofile.Reconstruct("p-1", "Jane Doe", "", "", "", "", 0)
	if err := repo.Save(context.Background(), p); err == nil {
		t.Fatal("expected error")
	}
}

// --- Get ---

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "people:profile:p-1" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{
			"name":     "Jane Doe",
			"company":  "Oracle",
			"role":     "DBA",
			"location": "Austin, TX",
			"bio":      "bio text",
			"created":  "1700000000000",
		}, nil
	}

	p, err := repo.Get(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "p-1" || p.Name() != "Jane Doe" || p.Company() != "Oracle" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.CreatedAt() != 1700000000000 {
		t.Errorf("unexpected created: %d", p.CreatedAt())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)

	// HGETALL on a missing key returns an empty map.
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

// --- Delete ---

func TestDelete_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	deleted := false
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.delFn = func(_ context.Context, key string) error {
		if key != "people:profile:p-1" {
			t.Errorf("unexpected key: %s", key)
		}
		deleted = true
		return nil
	}

	if err := repo.Delete(context.Background(), "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected DEL call")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

// --- Search ---

func TestSearch_BuildsWildcardQuery(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.ListQuery
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{
				{Key: "people:profile:p-1", Fields: map[string]string{"name": "Oracle Smith"}},
			},
		}, nil
	}

	profiles, total, err := repo.Search(context.Background(), "oracle", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(profiles) != 1 {
		t.Fatalf("unexpected result: total=%d len=%d", total, len(profiles))
	}
	if profiles[0].ID() != "p-1" {
		t.Errorf("unexpected profile id: %s", profiles[0].ID())
	}

	if gotQuery.IndexName != "people:idx" {
		t.Errorf("unexpected index: %s", gotQuery.IndexName)
	}
	for _, field := range []string{"@name:{*oracle*}", "@company:{*oracle*}", "@role:{*oracle*}", "@location:{*oracle*}"} {
		if !strings.Contains(gotQuery.Query, field) {
			t.Errorf("query %q missing clause %q", gotQuery.Query, field)
		}
	}
	if gotQuery.SortBy != "created" || gotQuery.SortDesc {
		t.Errorf("expected SORTBY created ASC, got %s desc=%v", gotQuery.SortBy, gotQuery.SortDesc)
	}
	if gotQuery.Limit != 50 {
		t.Errorf("unexpected limit: %d", gotQuery.Limit)
	}
}

func TestSearch_EmptyKeyListsAll(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery string
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q.Query
		return &db.SearchResult{}, nil
	}

	_, _, err := repo.Search(context.Background(), "", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "*" {
		t.Errorf("expected * query, got %q", gotQuery)
	}
}

func TestSearch_EscapesSpecials(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery string
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q.Query
		return &db.SearchResult{}, nil
	}

	_, _, err := repo.Search(context.Background(), "jane d", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, `{*jane\ d*}`) {
		t.Errorf("expected escaped space in query, got %q", gotQuery)
	}
}

func TestSearch_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection refused")
	}

	_, _, err := repo.Search(context.Background(), "oracle", 50)
	if err == nil {
		t.Fatal("expected error")
	}
}

// --- Autocomplete ---

func TestAutocomplete_PrefixQuery(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.ListQuery
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "people:profile:p-1", Fields: map[string]string{"name": "Jane Doe", "company": "Oracle", "role": "DBA"}},
				{Key: "people:profile:p-2", Fields: map[string]string{"name": "Jane Smith"}},
			},
		}, nil
	}

	suggestions, err := repo.Autocomplete(context.Background(), "jane", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].ID() != "p-1" || suggestions[0].Name() != "Jane Doe" || suggestions[0].Company() != "Oracle" {
		t.Errorf("unexpected suggestion: %+v", suggestions[0])
	}

	if gotQuery.Query != "@name:{jane*}" {
		t.Errorf("unexpected query: %q", gotQuery.Query)
	}
	if gotQuery.Limit != 8 {
		t.Errorf("unexpected limit: %d", gotQuery.Limit)
	}
}

// --- Count ---

func TestCount(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchCountFn = func(_ context.Context, index, query string) (int, error) {
		if index != "people:idx" || query != "*" {
			t.Errorf("unexpected count args: %s %s", index, query)
		}
		return 42, nil
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
}

// --- Index lifecycle ---

func TestEnsureIndex_CreatesSchema(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotDef *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		gotDef = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDef.Name != "people:idx" {
		t.Errorf("unexpected index name: %s", gotDef.Name)
	}
	if len(gotDef.Prefixes) != 1 || gotDef.Prefixes[0] != "people:profile:" {
		t.Errorf("unexpected prefixes: %v", gotDef.Prefixes)
	}
	if len(gotDef.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(gotDef.Fields))
	}
	name := gotDef.Fields[0]
	if name.Name != "name" || name.Type != db.IndexFieldTag || !name.WithSuffixTrie {
		t.Errorf("unexpected name field: %+v", name)
	}
	created := gotDef.Fields[4]
	if created.Name != "created" || created.Type != db.IndexFieldNumeric || !created.Sortable {
		t.Errorf("unexpected created field: %+v", created)
	}
}

func TestEnsureIndex_AlreadyExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		return db.ErrIndexExists
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("existing index should not error: %v", err)
	}
}

func TestResetIndex_DropsThenCreates(t *testing.T) {
	repo, ms := newTestRepo(t)

	dropped := false
	ms.dropIndexFn = func(_ context.Context, name string) error {
		dropped = true
		return nil
	}
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		if !dropped {
			t.Error("expected drop before create")
		}
		return nil
	}

	if err := repo.ResetIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResetIndex_MissingIndexTolerated(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.dropIndexFn = func(_ context.Context, _ string) error {
		return db.ErrIndexNotFound
	}

	if err := repo.ResetIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndexReady(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(_ context.Context, name string) (bool, error) {
		if name != "people:idx" {
			t.Errorf("unexpected index name: %s", name)
		}
		return true, nil
	}

	ok, err := repo.IndexReady(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected ready")
	}
}
