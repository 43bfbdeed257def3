package profile

import (
	"strconv"

	domprofile "github.com/slaguerre91/people-search-homepage/internal/domain/profile"
)

// Hash field names, shared with the FT index schema.
const (
	fieldName     = "name"
	fieldCompany  = "company"
	fieldRole     = "role"
	fieldLocation = "location"
	fieldBio      = "bio"
	fieldCreated  = "created"
)

// searchFields are the directory-search match targets.
var searchFields = []string{fieldName, fieldCompany, fieldRole, fieldLocation}

var (
	profileReturnFields    = []string{fieldName, fieldCompany, fieldRole, fieldLocation, fieldBio, fieldCreated}
	suggestionReturnFields = []string{fieldName, fieldCompany, fieldRole}
)

// buildHashFields converts a domain Profile into a flat map[string]string for HSET.
func buildHashFields(p domprofile.Profile) map[string]string {
	return map[string]string{
		fieldName:     p.Name(),
		fieldCompany:  p.Company(),
		fieldRole:     p.Role(),
		fieldLocation: p.Location(),
		fieldBio:      p.Bio(),
		fieldCreated:  strconv.FormatInt(p.CreatedAt(), 10),
	}
}

// parseHashFields converts a flat hash map back into a domain Profile.
func parseHashFields(id string, m map[string]string) domprofile.Profile {
	created, _ := strconv.ParseInt(m[fieldCreated], 10, 64)
	return domprofile.Reconstruct(
		id,
		m[fieldName],
		m[fieldCompany],
		m[fieldRole],
		m[fieldLocation],
		m[fieldBio],
		created,
	)
}
