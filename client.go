package peoplesearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/db"
	dbRedis "github.com/slaguerre91/people-search-homepage/internal/db/redis"
	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/outcome"
	profilerepo "github.com/slaguerre91/people-search-homepage/internal/repository/profile"
	reviewrepo "github.com/slaguerre91/people-search-homepage/internal/repository/review"
	lookupTransport "github.com/slaguerre91/people-search-homepage/internal/transport/lookup"
	openaiParse "github.com/slaguerre91/people-search-homepage/internal/transport/openai"
	directoryuc "github.com/slaguerre91/people-search-homepage/internal/usecase/directory"
	healthuc "github.com/slaguerre91/people-search-homepage/internal/usecase/health"
	lookupuc "github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
	parseuc "github.com/slaguerre91/people-search-homepage/internal/usecase/parse"
	searchuc "github.com/slaguerre91/people-search-homepage/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "people:"
	defaultParserModel      = "gpt-4o-mini"
	defaultLookupTimeout    = 10 * time.Second
	defaultLookupMax        = 20
)

// Private interfaces for test substitution.
type searchUseCase interface {
	Search(ctx context.Context, raw string) outcome.Outcome
	SearchExternal(ctx context.Context, raw string) (lookupuc.Result, error)
}

type directoryUseCase interface {
	Autocomplete(ctx context.Context, prefix string, limit int) ([]profile.Suggestion, error)
	GetProfile(ctx context.Context, id string) (profile.Profile, []review.Review, error)
	CreateProfile(ctx context.Context, name, company, role, location, bio string) (profile.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	AddReview(ctx context.Context, profileID, author string, rating int, comment string) (review.Review, error)
}

type parseUseCase interface {
	Parse(ctx context.Context, raw string) parseuc.Result
}

// Client is the embedded people-search entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	dirSvc    directoryUseCase
	parseSvc  parseUseCase
	healthSvc healthUseCase
	obs       *observer

	debounce time.Duration
	acLimit  int
}

// New creates a people-search Client and connects to the database.
// The provided context is used for the initial readiness check and
// index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("peoplesearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("peoplesearch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("peoplesearch: database not ready: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	obs, err := newObserver(logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(ctx, store, cfg, obs)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	nop := zap.NewNop()

	profileRepo := profilerepo.New(store, cfg.keyPrefix)
	if err := profileRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("peoplesearch: create directory index: %w", err)
	}
	reviewRepo := reviewrepo.New(store, cfg.keyPrefix)

	dirSvc := directoryuc.New(profileRepo, reviewRepo, cfg.pageSize, cfg.autocompleteLimit)

	// Parse fallback: rule layer alone unless an LLM parser is configured.
	var llm parseuc.QueryParser
	var parserHealth healthuc.ParserChecker
	switch {
	case cfg.parser != nil:
		llm = &parserAdapter{inner: cfg.parser}
	case cfg.openAIKey != "":
		model := cfg.openAIModel
		if model == "" {
			model = defaultParserModel
		}
		base := openaiParse.NewParser(&openaiParse.Config{
			APIKey:   cfg.openAIKey,
			Model:    model,
			Provider: "openai",
			Logger:   nop,
		})
		llm = base
		parserHealth = base
	}
	parseSvc := parseuc.New(llm, nop)

	// Lookup provider: noop (every external search fails) unless an
	// endpoint or a custom provider is configured.
	var provider lookupuc.Provider = &noopLookup{}
	switch {
	case cfg.lookupProvider != nil:
		provider = &lookupAdapter{inner: cfg.lookupProvider}
	case cfg.lookupBaseURL != "":
		provider = lookupTransport.NewClient(&lookupTransport.Config{
			BaseURL:        cfg.lookupBaseURL,
			RequestsPerSec: cfg.lookupRPS,
			Logger:         nop,
		})
	}
	lookupSvc := lookupuc.New(parseSvc, provider, defaultLookupTimeout, defaultLookupMax, nop)

	searchSvc := searchuc.New(dirSvc, lookupSvc, nil, nop)
	healthSvc := healthuc.New(store, profileRepo, parserHealth)

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		dirSvc:    dirSvc,
		parseSvc:  parseSvc,
		healthSvc: healthSvc,
		obs:       obs,
		debounce:  cfg.debounce,
		acLimit:   cfg.autocompleteLimit,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// parserAdapter wraps the public QueryParser to satisfy the internal
// parse fallback contract.
type parserAdapter struct {
	inner QueryParser
}

func (a *parserAdapter) Parse(ctx context.Context, raw string) (domain.ParseResult, error) {
	r, err := a.inner.Parse(ctx, raw)
	if err != nil {
		return domain.ParseResult{}, fmt.Errorf("parse: %w", err)
	}
	return domain.ParseResult{
		Name:         r.Name,
		Organization: r.Company,
		Source:       domain.ParseSourceLLM,
		TotalTokens:  r.Tokens,
	}, nil
}

// lookupAdapter wraps the public LookupProvider to satisfy the internal
// lookup contract.
type lookupAdapter struct {
	inner LookupProvider
}

func (a *lookupAdapter) Lookup(ctx context.Context, q domain.LookupQuery) ([]domain.LookupHit, error) {
	hits, err := a.inner.Lookup(ctx, LookupQuery{
		Raw:          q.Raw,
		Name:         q.Name,
		Organization: q.Organization,
		MaxResults:   q.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	out := make([]domain.LookupHit, len(hits))
	for i, h := range hits {
		out[i] = domain.LookupHit{
			Name:     h.Name,
			Title:    h.Title,
			Location: h.Location,
			Snippet:  h.Snippet,
			URL:      h.URL,
		}
	}
	return out, nil
}

// noopLookup fails every lookup (used when no provider is configured).
type noopLookup struct{}

func (noopLookup) Lookup(_ context.Context, _ domain.LookupQuery) ([]domain.LookupHit, error) {
	return nil, fmt.Errorf(
		"%w: no lookup provider configured (use WithLookup or WithLookupProvider)",
		domain.ErrExternalSearch,
	)
}
