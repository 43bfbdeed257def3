package lookup

import (
	"strings"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
)

// Scoring weights for external hits.
const (
	scoreDirect   = 100
	scoreNameBase = 50
	scorePerPart  = 15
	scoreOrgBonus = 25
)

// scoreHit computes the 0-100 match score for one hit against the parsed
// fragments. Any matched name part earns the base plus a per-part bonus,
// an organization sighting anywhere in the hit text adds a flat bonus,
// and a hit sharing no signal scores zero.
func scoreHit(hit domain.LookupHit, name, org string) int {
	if hit.Direct {
		return scoreDirect
	}

	score := 0

	if name != "" {
		hitName := strings.ToLower(hit.Name)
		matched := 0
		for _, part := range strings.Fields(strings.ToLower(name)) {
			if strings.Contains(hitName, part) {
				matched++
			}
		}
		if matched > 0 {
			score += scoreNameBase + matched*scorePerPart
		}
	}

	if org != "" {
		text := strings.ToLower(hit.Name + " " + hit.Title + " " + hit.Snippet)
		if strings.Contains(text, strings.ToLower(org)) {
			score += scoreOrgBonus
		}
	}

	if score > 100 {
		return 100
	}
	return score
}
