// Package tier buckets external match scores into confidence tiers.
package tier

// Tier is the confidence bucket for an external candidate.
type Tier string

// Confidence tier constants, ordered None < Low < Partial < Strong.
const (
	// None means no shared signal was found (score 0); no badge is shown.
	None    Tier = ""
	Low     Tier = "low"
	Partial Tier = "partial"
	Strong  Tier = "strong"
)

// Score thresholds.
const (
	strongMin  = 70
	partialMin = 50
)

// FromScore classifies a match score into a tier. Total over 0-100 and
// monotonic; the score itself is never altered.
func FromScore(score int) Tier {
	switch {
	case score >= strongMin:
		return Strong
	case score >= partialMin:
		return Partial
	case score > 0:
		return Low
	default:
		return None
	}
}

// rank orders tiers for comparisons.
func (t Tier) rank() int {
	switch t {
	case Strong:
		return 3
	case Partial:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether t is the same tier as other or a stronger one.
func (t Tier) AtLeast(other Tier) bool {
	return t.rank() >= other.rank()
}

// HasBadge reports whether the tier carries a visible badge.
func (t Tier) HasBadge() bool { return t != None }
