package domain

import "context"

// QueryParser is the shared query parsing contract between layers.
// Implementations extract a candidate name and organization from a raw query.
type QueryParser interface {
	Parse(ctx context.Context, raw string) (ParseResult, error)
}

// HealthChecker verifies parse provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Parse sources, reported by the parse debug endpoint.
const (
	ParseSourceRule  = "rule"
	ParseSourceLLM   = "llm"
	ParseSourceCache = "cache"
)

// ParseResult carries the extracted fragments and token usage through the
// decorator chain. Source is stamped by the layer that produced the result.
type ParseResult struct {
	Name         string
	Organization string
	Source       string
	PromptTokens int
	TotalTokens  int
}
