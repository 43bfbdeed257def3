// Package candidate holds externally sourced people sightings.
package candidate

import (
	"fmt"

	"github.com/slaguerre91/people-search-homepage/internal/domain/search/tier"
)

// Candidate is one external sighting that may correspond to the queried
// person (immutable value object). Produced fresh per lookup call, never
// cached across queries.
type Candidate struct {
	name       string
	title      string
	location   string
	snippet    string
	url        string
	matchScore int // 0-100
}

// New validates and creates a Candidate. Name and URL are required;
// title, location, and snippet are optional display metadata.
// The score is clamped into 0-100.
func New(name, title, location, snippet, url string, matchScore int) (Candidate, error) {
	if name == "" {
		return Candidate{}, fmt.Errorf("candidate name is required")
	}
	if url == "" {
		return Candidate{}, fmt.Errorf("candidate url is required")
	}
	return Candidate{
		name:       name,
		title:      title,
		location:   location,
		snippet:    snippet,
		url:        url,
		matchScore: clampScore(matchScore),
	}, nil
}

// WithScore returns a copy carrying the given score, clamped into 0-100.
// The rest of the candidate is unchanged.
func (c *Candidate) WithScore(score int) Candidate {
	out := *c
	out.matchScore = clampScore(score)
	return out
}

// Name returns the sighted person's name.
func (c *Candidate) Name() string { return c.name }

// Title returns the sighted job title, empty when absent.
func (c *Candidate) Title() string { return c.title }

// Location returns the sighted location, empty when absent.
func (c *Candidate) Location() string { return c.location }

// Snippet returns the source snippet, empty when absent.
func (c *Candidate) Snippet() string { return c.snippet }

// URL returns the source profile URL.
func (c *Candidate) URL() string { return c.url }

// MatchScore returns the confidence score in 0-100.
func (c *Candidate) MatchScore() int { return c.matchScore }

// Tier classifies the match score without altering it.
func (c *Candidate) Tier() tier.Tier { return tier.FromScore(c.matchScore) }

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
