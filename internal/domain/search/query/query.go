// Package query normalizes raw search text and splits it into candidate
// name and organization fragments.
package query

import (
	"strings"
	"unicode"
)

// knownOrganizations is the fixed set of organization tokens the rule parser
// recognizes as a trailing company qualifier.
var knownOrganizations = map[string]bool{
	"google": true, "microsoft": true, "amazon": true, "apple": true,
	"meta": true, "facebook": true, "netflix": true, "tesla": true,
	"oracle": true, "ibm": true, "intel": true, "nvidia": true,
	"salesforce": true, "adobe": true, "uber": true, "airbnb": true,
	"linkedin": true, "twitter": true, "stripe": true, "spotify": true,
	"snap": true, "dropbox": true, "slack": true, "zoom": true,
	"shopify": true, "square": true, "palantir": true, "databricks": true,
	"snowflake": true, "openai": true, "anthropic": true, "spacex": true,
	"cisco": true, "dell": true, "sap": true, "vmware": true,
}

// connectors split "Name <connector> Company" forms. Matched case-insensitively.
var connectors = []string{" at ", " from ", " @ "}

// Normalize returns the canonical search key: trimmed, case-folded text.
// An empty canonical key is a valid distinct case meaning "list all".
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Parsed holds the name and organization fragments extracted from a query.
type Parsed struct {
	name         string
	organization string
}

// NewParsed creates a Parsed from already-extracted fragments.
func NewParsed(name, organization string) Parsed {
	return Parsed{name: name, organization: organization}
}

// Name returns the candidate name fragment, empty when absent.
func (p *Parsed) Name() string { return p.name }

// Organization returns the candidate organization fragment, empty when absent.
func (p *Parsed) Organization() string { return p.organization }

// HasOrganization reports whether an organization fragment was extracted.
func (p *Parsed) HasOrganization() bool { return p.organization != "" }

// IsEmpty reports whether no fragment was extracted at all.
func (p *Parsed) IsEmpty() bool { return p.name == "" && p.organization == "" }

// Parse splits a raw query into name/organization fragments using rules.
// It never fails: an unparseable query degrades to name = whole query,
// organization absent. The second return value reports rule confidence;
// callers may consult a smarter parser when it is false.
//
// Rules, in priority order:
//  1. "Name, Company" comma form.
//  2. "Name at|from|@ Company" connector form.
//  3. Trailing token from the known-organization set.
//  4. Word count: 1 word is a bare name (or a known organization), 2 words
//     are a full name, 3+ words with a capitalized tail are a guessed
//     name + organization split.
func Parse(raw string) (Parsed, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Parsed{}, true
	}

	if name, org, ok := splitComma(text); ok {
		return newFragments(name, org), true
	}

	if name, org, ok := splitConnector(text); ok {
		return newFragments(name, org), true
	}

	words := strings.Fields(text)
	switch len(words) {
	case 1:
		if isKnownOrganization(words[0]) {
			return newFragments("", words[0]), true
		}
		return newFragments(text, ""), false
	case 2:
		if isKnownOrganization(words[1]) {
			return newFragments(words[0], words[1]), true
		}
		return newFragments(text, ""), true
	default:
		last := words[len(words)-1]
		rest := strings.Join(words[:len(words)-1], " ")
		if isKnownOrganization(last) {
			return newFragments(rest, last), true
		}
		if startsUpper(last) {
			// Capitalized tail is a guess, not a rule hit.
			return newFragments(rest, last), false
		}
		return newFragments(text, ""), false
	}
}

// newFragments builds a Parsed, dropping a bare "linkedin" organization
// (it names the network, not an employer).
func newFragments(name, org string) Parsed {
	if strings.EqualFold(org, "linkedin") {
		org = ""
	}
	return Parsed{name: strings.TrimSpace(name), organization: strings.TrimSpace(org)}
}

func splitComma(text string) (name, org string, ok bool) {
	before, after, found := strings.Cut(text, ",")
	if !found || strings.TrimSpace(before) == "" || strings.TrimSpace(after) == "" {
		return "", "", false
	}
	return before, after, true
}

func splitConnector(text string) (name, org string, ok bool) {
	lower := strings.ToLower(text)
	for _, c := range connectors {
		idx := strings.Index(lower, c)
		if idx <= 0 {
			continue
		}
		name = text[:idx]
		org = text[idx+len(c):]
		if strings.TrimSpace(name) == "" || strings.TrimSpace(org) == "" {
			continue
		}
		return name, org, true
	}
	return "", "", false
}

func isKnownOrganization(word string) bool {
	return knownOrganizations[strings.ToLower(word)]
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
