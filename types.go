package peoplesearch

import (
	"time"

	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/review"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/candidate"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/outcome"
	lookupuc "github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
)

// Tier is the confidence bucket for an external candidate.
type Tier string

// Confidence tier constants, ordered TierNone < TierLow < TierPartial < TierStrong.
// TierNone means no shared signal was found; no badge is shown.
const (
	TierNone    Tier = ""
	TierLow     Tier = "low"
	TierPartial Tier = "partial"
	TierStrong  Tier = "strong"
)

// Profile is a directory entry.
type Profile struct {
	ID        string
	Name      string
	Company   string
	Role      string
	Location  string
	Bio       string
	CreatedAt time.Time
}

// ProfileInput carries the fields for a new profile.
// Name is required (max 100 chars); Bio is capped at 500 chars.
type ProfileInput struct {
	Name     string
	Company  string
	Role     string
	Location string
	Bio      string
}

// Review is one review attached to a profile.
type Review struct {
	ID        string
	ProfileID string
	Author    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewInput carries the fields for a new review.
// Author and Comment are required; Rating is an integer 1-5.
type ReviewInput struct {
	Author  string
	Rating  int
	Comment string
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	ID      string
	Name    string
	Company string
	Role    string
}

// Candidate is one external sighting that may correspond to the queried person.
type Candidate struct {
	Name       string
	Title      string
	Location   string
	Snippet    string
	URL        string
	MatchScore int // 0-100
	Tier       Tier
}

// SearchOutcome is the result of one orchestrated search: the local
// directory matches plus, when the directory came up empty, the external
// candidates fetched automatically.
type SearchOutcome struct {
	LocalMatches       []Profile
	LocalDegraded      bool
	ExternalAttempted  bool
	ExternalFailed     bool
	ExternalCandidates []Candidate
	ParsedName         string
	ParsedCompany      string
}

// ExternalResult is the outcome of a manually triggered external search.
type ExternalResult struct {
	Candidates    []Candidate
	ParsedName    string
	ParsedCompany string
}

// ParsedQuery reports how a query splits into name and company fragments.
// Source is the layer that produced the split: "rule", "llm", or "cache".
type ParsedQuery struct {
	Name      string
	Company   string
	Confident bool
	Source    string
}

func fromInternalProfile(p profile.Profile) Profile {
	return Profile{
		ID:        p.ID(),
		Name:      p.Name(),
		Company:   p.Company(),
		Role:      p.Role(),
		Location:  p.Location(),
		Bio:       p.Bio(),
		CreatedAt: time.UnixMilli(p.CreatedAt()).UTC(),
	}
}

func fromInternalProfiles(ps []profile.Profile) []Profile {
	out := make([]Profile, len(ps))
	for i := range ps {
		out[i] = fromInternalProfile(ps[i])
	}
	return out
}

func fromInternalReview(rv review.Review) Review {
	return Review{
		ID:        rv.ID(),
		ProfileID: rv.ProfileID(),
		Author:    rv.Author(),
		Rating:    rv.Rating(),
		Comment:   rv.Comment(),
		CreatedAt: time.UnixMilli(rv.CreatedAt()).UTC(),
	}
}

func fromInternalReviews(rvs []review.Review) []Review {
	out := make([]Review, len(rvs))
	for i := range rvs {
		out[i] = fromInternalReview(rvs[i])
	}
	return out
}

func fromInternalSuggestion(s profile.Suggestion) Suggestion {
	return Suggestion{
		ID:      s.ID(),
		Name:    s.Name(),
		Company: s.Company(),
		Role:    s.Role(),
	}
}

func fromInternalSuggestions(ss []profile.Suggestion) []Suggestion {
	out := make([]Suggestion, len(ss))
	for i := range ss {
		out[i] = fromInternalSuggestion(ss[i])
	}
	return out
}

func fromInternalCandidate(c candidate.Candidate) Candidate {
	return Candidate{
		Name:       c.Name(),
		Title:      c.Title(),
		Location:   c.Location(),
		Snippet:    c.Snippet(),
		URL:        c.URL(),
		MatchScore: c.MatchScore(),
		Tier:       Tier(c.Tier()),
	}
}

func fromInternalCandidates(cs []candidate.Candidate) []Candidate {
	out := make([]Candidate, len(cs))
	for i := range cs {
		out[i] = fromInternalCandidate(cs[i])
	}
	return out
}

func fromInternalOutcome(out outcome.Outcome) SearchOutcome {
	return SearchOutcome{
		LocalMatches:       fromInternalProfiles(out.LocalMatches()),
		LocalDegraded:      out.LocalDegraded(),
		ExternalAttempted:  out.ExternalAttempted(),
		ExternalFailed:     out.ExternalFailed(),
		ExternalCandidates: fromInternalCandidates(out.ExternalCandidates()),
		ParsedName:         out.ParsedName(),
		ParsedCompany:      out.ParsedCompany(),
	}
}

func fromInternalLookupResult(res lookupuc.Result) ExternalResult {
	return ExternalResult{
		Candidates:    fromInternalCandidates(res.Candidates),
		ParsedName:    res.ParsedName,
		ParsedCompany: res.ParsedOrganization,
	}
}
