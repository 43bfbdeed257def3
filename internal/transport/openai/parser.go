package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	"github.com/slaguerre91/people-search-homepage/internal/metrics"
)

// parseSystemPrompt instructs the model to split a people-search query into
// a person name and a company. The JSON response format guarantees a parseable
// payload; empty strings mean "absent".
const parseSystemPrompt = `You extract structured fields from a people-search query.
Given the query, respond with JSON: {"name": "...", "company": "..."}.
"name" is the person being searched for, "company" is their employer.
Use an empty string for a field that is not present in the query.`

// Parser is a query parser using the OpenAI-compatible chat completions API.
type Parser struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the parse provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewParser creates an OpenAI-compatible query parse provider.
func NewParser(cfg *Config) *Parser {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Parser{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// parsedFields mirrors the JSON document the model is asked to produce.
type parsedFields struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

// Parse implements domain.QueryParser. Returns the extracted fragments and
// token usage with transport-level metrics.
func (p *Parser) Parse(ctx context.Context, raw string) (domain.ParseResult, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parseSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: raw},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens: 60,
	}

	start := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ParseRequestsTotal.WithLabelValues(p.provider, p.model, "error").Inc()
		metrics.ParseErrorsTotal.WithLabelValues(p.provider, p.model, "api_error").Inc()
		return domain.ParseResult{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ParseRequestsTotal.WithLabelValues(p.provider, p.model, "error").Inc()
		metrics.ParseErrorsTotal.WithLabelValues(p.provider, p.model, "empty_response").Inc()
		return domain.ParseResult{}, fmt.Errorf("empty completion response: %w", domain.ErrParseProviderError)
	}

	var fields parsedFields
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &fields); err != nil {
		metrics.ParseRequestsTotal.WithLabelValues(p.provider, p.model, "error").Inc()
		metrics.ParseErrorsTotal.WithLabelValues(p.provider, p.model, "malformed_response").Inc()
		return domain.ParseResult{}, fmt.Errorf("malformed completion payload: %w", domain.ErrParseProviderError)
	}

	// Record success metrics
	metrics.ParseRequestsTotal.WithLabelValues(p.provider, p.model, "success").Inc()
	metrics.ParseRequestDuration.WithLabelValues(p.provider, p.model).Observe(duration.Seconds())

	totalTokens := resp.Usage.TotalTokens
	promptTokens := resp.Usage.PromptTokens
	if totalTokens > 0 {
		metrics.ParseTokensTotal.WithLabelValues(p.provider, p.model, "prompt").Add(float64(promptTokens))
		metrics.ParseTokensTotal.WithLabelValues(p.provider, p.model, "total").Add(float64(totalTokens))
	}

	return domain.ParseResult{
		Name:         strings.TrimSpace(fields.Name),
		Organization: strings.TrimSpace(fields.Company),
		Source:       domain.ParseSourceLLM,
		PromptTokens: promptTokens,
		TotalTokens:  totalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (p *Parser) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response with
// the sentinel that drives the HTTP mapping: 429 → ErrRateLimited, everything
// else → ErrParseProviderError.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("parse request failed: %w", domain.ErrParseProviderError)
}

func statusError(status int, detail string) error {
	wrap := domain.ErrParseProviderError
	if status == http.StatusTooManyRequests {
		wrap = domain.ErrRateLimited
	}
	return fmt.Errorf("parse API error %d: %s: %w", status, detail, wrap)
}
