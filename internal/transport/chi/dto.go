package chi

import (
	"time"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/candidate"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/outcome"
	"github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
)

// errorCode is the machine-readable error class in the error envelope.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeProfileNotFound      errorCode = "profile_not_found"
	codeUnauthorized         errorCode = "unauthorized"
	codeWriteFailed          errorCode = "write_failed"
	codeLocalSearchFailed    errorCode = "local_search_failed"
	codeExternalSearchFailed errorCode = "external_search_failed"
	codeRateLimited          errorCode = "rate_limited"
	codeParseQuotaExceeded   errorCode = "parse_quota_exceeded"
	codeParseProviderError   errorCode = "parse_provider_error"
	codeInternalError        errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type profileSummaryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

type profileResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Company   string           `json:"company"`
	Role      string           `json:"role"`
	Location  string           `json:"location"`
	Bio       string           `json:"bio"`
	CreatedAt time.Time        `json:"created_at"`
	Reviews   []reviewResponse `json:"reviews"`
}

type createProfileRequest struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type addReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type suggestionResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// candidateResponse is one external sighting. Tier is omitted when the score
// carries no badge.
type candidateResponse struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Location   string `json:"location,omitempty"`
	Snippet    string `json:"snippet,omitempty"`
	URL        string `json:"url"`
	MatchScore int    `json:"match_score"`
	Tier       string `json:"tier,omitempty"`
}

type searchResponse struct {
	Query              string                   `json:"query"`
	LocalMatches       []profileSummaryResponse `json:"local_matches"`
	LocalDegraded      bool                     `json:"local_degraded"`
	ExternalAttempted  bool                     `json:"external_attempted"`
	ExternalFailed     bool                     `json:"external_failed"`
	ExternalCandidates []candidateResponse      `json:"external_candidates"`
	ParsedName         string                   `json:"parsed_name,omitempty"`
	ParsedCompany      string                   `json:"parsed_company,omitempty"`
}

type externalSearchRequest struct {
	Query string `json:"query"`
}

type externalSearchResponse struct {
	Query         string              `json:"query"`
	Candidates    []candidateResponse `json:"candidates"`
	ParsedName    string              `json:"parsed_name,omitempty"`
	ParsedCompany string              `json:"parsed_company,omitempty"`
}

type parseResponse struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	Confident bool   `json:"confident"`
	Source    string `json:"source"`
	RawQuery  string `json:"raw_query"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func profileSummaryToResponse(p profile.Profile) profileSummaryResponse {
	return profileSummaryResponse{
		ID:       p.ID(),
		Name:     p.Name(),
		Company:  p.Company(),
		Role:     p.Role(),
		Location: p.Location(),
	}
}

func profileToResponse(p profile.Profile, reviews []review.Review) profileResponse {
	rs := make([]reviewResponse, len(reviews))
	for i, rv := range reviews {
		rs[i] = reviewToResponse(rv)
	}
	return profileResponse{
		ID:        p.ID(),
		Name:      p.Name(),
		Company:   p.Company(),
		Role:      p.Role(),
		Location:  p.Location(),
		Bio:       p.Bio(),
		CreatedAt: time.UnixMilli(p.CreatedAt()).UTC(),
		Reviews:   rs,
	}
}

func reviewToResponse(rv review.Review) reviewResponse {
	return reviewResponse{
		ID:        rv.ID(),
		Author:    rv.Author(),
		Rating:    rv.Rating(),
		Comment:   rv.Comment(),
		CreatedAt: time.UnixMilli(rv.CreatedAt()).UTC(),
	}
}

func suggestionsToResponse(ss []profile.Suggestion) []suggestionResponse {
	out := make([]suggestionResponse, len(ss))
	for i := range ss {
		out[i] = suggestionResponse{
			ID:      ss[i].ID(),
			Name:    ss[i].Name(),
			Company: ss[i].Company(),
			Role:    ss[i].Role(),
		}
	}
	return out
}

func candidateToResponse(c candidate.Candidate) candidateResponse {
	return candidateResponse{
		Name:       c.Name(),
		Title:      c.Title(),
		Location:   c.Location(),
		Snippet:    c.Snippet(),
		URL:        c.URL(),
		MatchScore: c.MatchScore(),
		Tier:       string(c.Tier()),
	}
}

func candidatesToResponse(cs []candidate.Candidate) []candidateResponse {
	out := make([]candidateResponse, len(cs))
	for i := range cs {
		out[i] = candidateToResponse(cs[i])
	}
	return out
}

func outcomeToResponse(query string, out *outcome.Outcome) searchResponse {
	matches := make([]profileSummaryResponse, len(out.LocalMatches()))
	for i, p := range out.LocalMatches() {
		matches[i] = profileSummaryToResponse(p)
	}
	return searchResponse{
		Query:              query,
		LocalMatches:       matches,
		LocalDegraded:      out.LocalDegraded(),
		ExternalAttempted:  out.ExternalAttempted(),
		ExternalFailed:     out.ExternalFailed(),
		ExternalCandidates: candidatesToResponse(out.ExternalCandidates()),
		ParsedName:         out.ParsedName(),
		ParsedCompany:      out.ParsedCompany(),
	}
}

func lookupToResponse(query string, res lookup.Result) externalSearchResponse {
	return externalSearchResponse{
		Query:         query,
		Candidates:    candidatesToResponse(res.Candidates),
		ParsedName:    res.ParsedName,
		ParsedCompany: res.ParsedOrganization,
	}
}
