package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slaguerre91/people-search-homepage/internal/db"
	"github.com/slaguerre91/people-search-homepage/internal/domain"
	domprofile "github.com/slaguerre91/people-search-homepage/internal/domain/profile"
)

// tagSeparator keeps whole field values as single tags. A comma is too
// common in organization names to serve as the separator.
const tagSeparator = "|"

// store is the consumer interface for profiles (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements profile persistence and directory search over hashes
// plus an FT index with suffix-trie TAG fields.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a profile repository. keyPrefix namespaces all keys
// (e.g. "people:" gives people:profile:<id> and index people:idx).
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Save persists a profile as a hash.
func (r *Repo) Save(ctx context.Context, p domprofile.Profile) error {
	key := r.profileKey(p.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(p)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a profile by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprofile.Profile, error) {
	key := r.profileKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domprofile.Profile{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	// HGETALL on a missing key returns an empty map, not an error.
	if len(m) == 0 {
		return domprofile.Profile{}, domain.ErrProfileNotFound
	}
	return parseHashFields(id, m), nil
}

// Delete removes a profile.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.profileKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProfileNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Search returns profiles whose name, company, role or location contains
// the canonical key as a substring, in creation order (oldest first).
// An empty key lists the whole directory. The second return value is the
// total match count before the limit was applied.
func (r *Repo) Search(ctx context.Context, canonicalKey string, limit int) ([]domprofile.Profile, int, error) {
	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    r.indexName(),
		Query:        buildDirectoryQuery(canonicalKey),
		Limit:        limit,
		SortBy:       fieldCreated,
		ReturnFields: profileReturnFields,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search profiles: %w", err)
	}
	if result == nil || result.Total == 0 {
		return nil, 0, nil
	}

	profiles := make([]domprofile.Profile, 0, len(result.Entries))
	for _, entry := range result.Entries {
		profiles = append(profiles, parseHashFields(r.extractID(entry.Key), entry.Fields))
	}
	return profiles, result.Total, nil
}

// Autocomplete returns suggestions for profiles whose name starts with prefix.
func (r *Repo) Autocomplete(ctx context.Context, prefix string, limit int) ([]domprofile.Suggestion, error) {
	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    r.indexName(),
		Query:        buildAutocompleteQuery(prefix),
		Limit:        limit,
		SortBy:       fieldCreated,
		ReturnFields: suggestionReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", prefix, err)
	}
	if result == nil || result.Total == 0 {
		return nil, nil
	}

	suggestions := make([]domprofile.Suggestion, 0, len(result.Entries))
	for _, entry := range result.Entries {
		suggestions = append(suggestions, domprofile.NewSuggestion(
			r.extractID(entry.Key),
			entry.Fields[fieldName],
			entry.Fields[fieldCompany],
			entry.Fields[fieldRole],
		))
	}
	return suggestions, nil
}

// Count returns the number of indexed profiles.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

// EnsureIndex creates the directory index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	err := r.store.CreateIndex(ctx, r.indexDefinition())
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// ResetIndex drops and recreates the directory index.
func (r *Repo) ResetIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.indexName(), err)
	}
	if err := r.store.CreateIndex(ctx, r.indexDefinition()); err != nil {
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// IndexReady reports whether the directory index exists.
func (r *Repo) IndexReady(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.indexName(), err)
	}
	return ok, nil
}

func (r *Repo) indexDefinition() *db.IndexDefinition {
	return db.NewIndex(r.indexName()).
		OnHash().
		Prefix(r.keyPrefix + "profile:").
		TagWithSuffixTrie(fieldName, tagSeparator).
		TagWithSuffixTrie(fieldCompany, tagSeparator).
		TagWithSuffixTrie(fieldRole, tagSeparator).
		TagWithSuffixTrie(fieldLocation, tagSeparator).
		NumericSortable(fieldCreated).
		MustBuild()
}

func (r *Repo) profileKey(id string) string {
	return fmt.Sprintf("%sprofile:%s", r.keyPrefix, id)
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "idx"
}

func (r *Repo) extractID(key string) string {
	return strings.TrimPrefix(key, r.keyPrefix+"profile:")
}

// buildDirectoryQuery translates a canonical search key into an FT query:
// an OR of per-field infix wildcard clauses. Empty key matches everything.
func buildDirectoryQuery(canonicalKey string) string {
	if canonicalKey == "" {
		return "*"
	}
	escaped := tagEscaper.Replace(canonicalKey)
	clauses := make([]string, 0, len(searchFields))
	for _, field := range searchFields {
		clauses = append(clauses, fmt.Sprintf("@%s:{*%s*}", field, escaped))
	}
	return "(" + strings.Join(clauses, " | ") + ")"
}

// buildAutocompleteQuery matches names starting with prefix.
func buildAutocompleteQuery(prefix string) string {
	return fmt.Sprintf("@%s:{%s*}", fieldName, tagEscaper.Replace(prefix))
}

// tagEscaper escapes FT.SEARCH specials inside TAG wildcard patterns so
// user input never alters query structure.
var tagEscaper = strings.NewReplacer(
	"\\", "\\\\",
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)
