// Package parse turns raw people-search text into name and organization
// fragments. Rules run first; an LLM parser is consulted only for queries
// the rules cannot split with confidence.
package parse

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/domain/search/query"
)

// QueryParser is the fallback parser consulted for ambiguous queries.
type QueryParser interface {
	Parse(ctx context.Context, raw string) (domain.ParseResult, error)
}

// Result is the outcome of parsing one search query.
type Result struct {
	// Parsed holds the extracted fragments, possibly empty.
	Parsed query.Parsed
	// Confident reports the rule parser's confidence in its split.
	Confident bool
	// Source is the layer that produced the fragments: rule, llm, or cache.
	Source string
	// Tokens is the LLM token count consumed; zero for rule and cache results.
	Tokens int
}

// Service extracts name and organization fragments from raw query text.
type Service struct {
	llm    QueryParser
	logger *zap.Logger
}

// New creates a parse service. A nil llm disables the fallback and the rule
// parser alone serves every query.
func New(llm QueryParser, logger *zap.Logger) *Service {
	return &Service{llm: llm, logger: logger}
}

// Parse splits raw query text into fragments. It never fails: every error on
// the LLM path, including a rejected token budget, degrades to the rule result.
func (s *Service) Parse(ctx context.Context, raw string) Result {
	text := strings.TrimSpace(raw)
	parsed, confident := query.Parse(text)

	out := Result{Parsed: parsed, Confident: confident, Source: domain.ParseSourceRule}
	if confident || s.llm == nil {
		return out
	}

	llmRes, err := s.llm.Parse(ctx, text)
	if err != nil {
		s.logger.Warn("LLM parse failed, using rule result",
			zap.String("query", text),
			zap.Error(err))
		return out
	}

	name, org := cleanFragments(llmRes.Name, llmRes.Organization)
	if name == "" && org == "" {
		return out
	}

	out.Parsed = query.NewParsed(name, org)
	out.Source = llmRes.Source
	if out.Source == "" {
		out.Source = domain.ParseSourceLLM
	}
	out.Tokens = llmRes.TotalTokens
	return out
}

// cleanFragments trims both fragments and drops an organization that names
// the network itself rather than an employer.
func cleanFragments(name, org string) (string, string) {
	name = strings.TrimSpace(name)
	org = strings.TrimSpace(org)
	if lower := strings.ToLower(org); lower == "linkedin" || lower == "linked in" {
		org = ""
	}
	return name, org
}
