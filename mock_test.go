package peoplesearch

import (
	"context"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/outcome"
	healthuc "github.com/slaguerre91/people-search-homepage/internal/usecase/health"
	lookupuc "github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
	parseuc "github.com/slaguerre91/people-search-homepage/internal/usecase/parse"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn         func(ctx context.Context, raw string) outcome.Outcome
	searchExternalFn func(ctx context.Context, raw string) (lookupuc.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, raw string) outcome.Outcome {
	return m.searchFn(ctx, raw)
}

func (m *mockSearchUC) SearchExternal(ctx context.Context, raw string) (lookupuc.Result, error) {
	return m.searchExternalFn(ctx, raw)
}

// --- directoryUseCase mock ---

type mockDirectoryUC struct {
	autocompleteFn func(ctx context.Context, prefix string, limit int) ([]profile.Suggestion, error)
	getFn          func(ctx context.Context, id string) (profile.Profile, []review.Review, error)
	createFn       func(ctx context.Context, name, company, role, location, bio string) (profile.Profile, error)
	deleteFn       func(ctx context.Context, id string) error
	addReviewFn    func(ctx context.Context, profileID, author string, rating int, comment string) (review.Review, error)
}

func (m *mockDirectoryUC) Autocomplete(
	ctx context.Context, prefix string, limit int,
) ([]profile.Suggestion, error) {
	return m.autocompleteFn(ctx, prefix, limit)
}

func (m *mockDirectoryUC) GetProfile(ctx context.Context, id string) (profile.Profile, []review.Review, error) {
	return m.getFn(ctx, id)
}

func (m *mockDirectoryUC) CreateProfile(
	ctx context.Context, name, company, role, location, bio string,
) (profile.Profile, error) {
	return m.createFn(ctx, name, company, role, location, bio)
}

func (m *mockDirectoryUC) DeleteProfile(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDirectoryUC) AddReview(
	ctx context.Context, profileID, author string, rating int, comment string,
) (review.Review, error) {
	return m.addReviewFn(ctx, profileID, author, rating, comment)
}

// --- parseUseCase mock ---

type mockParseUC struct {
	parseFn func(ctx context.Context, raw string) parseuc.Result
}

func (m *mockParseUC) Parse(ctx context.Context, raw string) parseuc.Result {
	return m.parseFn(ctx, raw)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- helpers ---

func testClient(
	searchSvc searchUseCase,
	dirSvc directoryUseCase,
	parseSvc parseUseCase,
	healthSvc healthUseCase,
) *Client {
	return &Client{
		searchSvc: searchSvc,
		dirSvc:    dirSvc,
		parseSvc:  parseSvc,
		healthSvc: healthSvc,
	}
}
