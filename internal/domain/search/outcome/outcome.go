// Package outcome aggregates the result of one orchestrated search.
package outcome

import (
	"github.com/slaguerre91/people-search-homepage/internal/domain/profile"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/candidate"
)

// Outcome is the orchestrator's single return value: local matches,
// whether the external source was attempted, and its candidates.
// ExternalAttempted is true iff the fallback or manual-trigger policy fired;
// only the WithExternal* constructors set it.
type Outcome struct {
	localMatches       []profile.Profile
	localDegraded      bool
	externalAttempted  bool
	externalCandidates []candidate.Candidate
	externalFailed     bool
	parsedName         string
	parsedCompany      string
}

// NewLocal creates an outcome holding only local results.
// degraded marks that the local store failed and matches were zeroed.
func NewLocal(matches []profile.Profile, degraded bool) Outcome {
	return Outcome{localMatches: matches, localDegraded: degraded}
}

// WithExternal returns a copy with external candidates attached.
// The parsed fragments are optional display metadata from the lookup source.
func (o Outcome) WithExternal(candidates []candidate.Candidate, parsedName, parsedCompany string) Outcome {
	o.externalAttempted = true
	o.externalCandidates = candidates
	o.externalFailed = false
	o.parsedName = parsedName
	o.parsedCompany = parsedCompany
	return o
}

// WithExternalFailure returns a copy recording that the external source was
// attempted and failed: zero candidates, badges omitted, local results kept.
func (o Outcome) WithExternalFailure() Outcome {
	o.externalAttempted = true
	o.externalCandidates = nil
	o.externalFailed = true
	return o
}

// LocalMatches returns the local profile results in collaborator order.
func (o *Outcome) LocalMatches() []profile.Profile { return o.localMatches }

// LocalDegraded reports whether the local store failed and was degraded to
// zero results.
func (o *Outcome) LocalDegraded() bool { return o.localDegraded }

// ExternalAttempted reports whether the external source was queried.
func (o *Outcome) ExternalAttempted() bool { return o.externalAttempted }

// ExternalCandidates returns the scored external sightings, best first.
func (o *Outcome) ExternalCandidates() []candidate.Candidate { return o.externalCandidates }

// ExternalFailed reports a non-fatal external lookup failure.
func (o *Outcome) ExternalFailed() bool { return o.externalFailed }

// ParsedName returns the name fragment reported by the lookup source.
func (o *Outcome) ParsedName() string { return o.parsedName }

// ParsedCompany returns the organization fragment reported by the lookup source.
func (o *Outcome) ParsedCompany() string { return o.parsedCompany }
