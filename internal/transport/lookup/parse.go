package lookup

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
)

const (
	maxSnippetLen  = 200
	maxLocationLen = 50

	// fallbackName labels hits whose titles carry no usable person name.
	fallbackName = "LinkedIn Member"
)

// providerResult mirrors one entry of the provider's JSON response.
type providerResult struct {
	Title string `json:"title"`
	Href  string `json:"href"`
	Body  string `json:"body"`
}

// parseHit converts one provider result into a lookup hit.
// Results that are not profile pages are rejected.
func parseHit(r providerResult) (domain.LookupHit, bool) {
	if !strings.Contains(r.Href, "linkedin.com/in/") {
		return domain.LookupHit{}, false
	}

	name, jobTitle := splitTitle(r.Title)

	return domain.LookupHit{
		Name:     name,
		Title:    jobTitle,
		Location: extractLocation(r.Body),
		Snippet:  truncate(r.Body, maxSnippetLen),
		URL:      r.Href,
	}, true
}

// splitTitle parses provider titles of the form "Name - Title | LinkedIn"
// or "Name | LinkedIn" into a person name and an optional job title.
func splitTitle(title string) (name, jobTitle string) {
	name = title

	if before, after, found := strings.Cut(title, " - "); found {
		name = strings.TrimSpace(before)
		if job := strings.TrimSpace(stripSuffix(after)); job != "" && !strings.EqualFold(job, "linkedin") {
			jobTitle = job
		}
	} else if before, _, found := strings.Cut(title, " | "); found {
		name = strings.TrimSpace(before)
	}

	name = strings.TrimSpace(stripSuffix(name))
	if name == "" || strings.EqualFold(name, "linkedin") {
		name = fallbackName
	}
	return name, jobTitle
}

func stripSuffix(s string) string {
	s = strings.ReplaceAll(s, " | LinkedIn", "")
	return strings.ReplaceAll(s, "| LinkedIn", "")
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Location:\s*([^·•\n]+)`),
	regexp.MustCompile(`(?i)(?:based in|located in|from)\s+([^·•\n.]+)`),
}

// extractLocation pulls a location phrase out of a result snippet.
func extractLocation(snippet string) string {
	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(snippet); m != nil {
			return truncate(strings.TrimSpace(m[1]), maxLocationLen)
		}
	}
	return ""
}

var profileSlugRe = regexp.MustCompile(`linkedin\.com/in/([^/?]+)`)

// directHit recognizes a profile URL typed straight into the query and
// derives a display name from its slug.
func directHit(raw string) (domain.LookupHit, bool) {
	if !strings.Contains(raw, "linkedin.com/in/") {
		return domain.LookupHit{}, false
	}

	m := profileSlugRe.FindStringSubmatch(raw)
	if m == nil {
		return domain.LookupHit{}, false
	}
	slug := m[1]

	name := nameFromSlug(slug)
	if name == "" {
		name = fallbackName
	}

	u := raw
	if !strings.HasPrefix(u, "http") {
		u = "https://www.linkedin.com/in/" + slug
	}

	return domain.LookupHit{
		Name:    name,
		URL:     u,
		Snippet: "Direct URL - profile details available on LinkedIn",
		Direct:  true,
	}, true
}

// nameFromSlug converts "jonathan-n-laguerre-8a9b12f34" to "Jonathan N
// Laguerre". Long alphanumeric tokens carrying digits are ID suffixes,
// not name parts.
func nameFromSlug(slug string) string {
	var parts []string
	for _, part := range strings.Split(slug, "-") {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) > 6 && isAlnum(part) && hasDigit(part) {
			continue
		}
		parts = append(parts, capitalize(part))
	}
	return strings.Join(parts, " ")
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
