package profile

import "github.com/slaguerre91/people-search-homepage/internal/domain"

// Field length limits.
const (
	MaxNameLength = 100
	MaxBioLength  = 500
)

// Profile is the identity record aggregate (immutable value object).
type Profile struct {
	id        string
	name      string
	company   string
	role      string
	location  string
	bio       string
	createdAt int64 // unix millis
}

// New validates and creates a Profile.
// Name: required, max 100 chars. Bio: max 500 chars.
// The ID is assigned by the repository at creation time.
func New(id, name, company, role, location, bio string, createdAt int64) (Profile, error) {
	if name == "" {
		return Profile{}, domain.NewValidation("name", "is required")
	}
	if len(name) > MaxNameLength {
		return Profile{}, domain.NewValidation("name", "too long (max 100)")
	}
	if len(bio) > MaxBioLength {
		return Profile{}, domain.NewValidation("bio", "too long (max 500)")
	}

	return Profile{
		id:        id,
		name:      name,
		company:   company,
		role:      role,
		location:  location,
		bio:       bio,
		createdAt: createdAt,
	}, nil
}

// Reconstruct creates a Profile without validation (storage hydration).
func Reconstruct(id, name, company, role, location, bio string, createdAt int64) Profile {
	return Profile{
		id: id, name: name, company: company, role: role,
		location: location, bio: bio, createdAt: createdAt,
	}
}

// ID returns the opaque profile identifier.
func (p *Profile) ID() string { return p.id }

// Name returns the person's display name.
func (p *Profile) Name() string { return p.name }

// Company returns the current company, empty when unknown.
func (p *Profile) Company() string { return p.company }

// Role returns the job title, empty when unknown.
func (p *Profile) Role() string { return p.role }

// Location returns the location, empty when unknown.
func (p *Profile) Location() string { return p.location }

// Bio returns the free-form biography text.
func (p *Profile) Bio() string { return p.bio }

// CreatedAt returns the creation time in unix millis.
func (p *Profile) CreatedAt() int64 { return p.createdAt }

// Suggestion is the autocomplete display subset of a profile.
type Suggestion struct {
	id      string
	name    string
	company string
	role    string
}

// NewSuggestion creates a suggestion from display fields.
func NewSuggestion(id, name, company, role string) Suggestion {
	return Suggestion{id: id, name: name, company: company, role: role}
}

// SuggestionFromProfile projects a profile onto its suggestion subset.
func SuggestionFromProfile(p Profile) Suggestion {
	return Suggestion{id: p.id, name: p.name, company: p.company, role: p.role}
}

// ID returns the profile identifier behind the suggestion.
func (s *Suggestion) ID() string { return s.id }

// Name returns the display name.
func (s *Suggestion) Name() string { return s.name }

// Company returns the company display field.
func (s *Suggestion) Company() string { return s.company }

// Role returns the role display field.
func (s *Suggestion) Role() string { return s.role }
