// Package lookup implements the external people lookup provider client,
// an HTTP JSON search endpoint returning candidate profile pages.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retried provider calls. Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

const (
	defaultMaxResults = 10
	maxRetries        = 1
)

// Client queries the lookup provider with rate limiting and retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Config holds the lookup provider settings.
type Config struct {
	BaseURL        string
	RequestsPerSec float64
	Logger         *zap.Logger
}

// NewClient creates a lookup provider client.
func NewClient(cfg *Config) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     cfg.Logger,
	}
}

var _ domain.PeopleLookup = (*Client)(nil)

// Lookup implements domain.PeopleLookup. A profile URL typed straight into
// the query short-circuits to a single direct hit without any provider call.
// Otherwise query variants run in order, most specific first; result URLs are
// deduplicated and collection stops at twice the requested maximum.
func (c *Client) Lookup(ctx context.Context, q domain.LookupQuery) ([]domain.LookupHit, error) {
	raw := strings.TrimSpace(q.Raw)

	if hit, ok := directHit(raw); ok {
		return []domain.LookupHit{hit}, nil
	}

	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	var (
		hits      []domain.LookupHit
		lastErr   error
		succeeded bool
	)
	seen := make(map[string]struct{})

	for _, variant := range queryVariants(raw, q.Name, q.Organization) {
		results, err := c.search(ctx, variant, maxResults)
		if err != nil {
			if errors.Is(err, domain.ErrRateLimited) {
				return nil, err
			}
			lastErr = err
			c.logger.Warn("Lookup variant failed", zap.String("query", variant), zap.Error(err))
			continue
		}
		succeeded = true

		for _, r := range results {
			if r.Href == "" {
				continue
			}
			if _, dup := seen[r.Href]; dup {
				continue
			}
			seen[r.Href] = struct{}{}

			if hit, ok := parseHit(r); ok {
				hits = append(hits, hit)
				if len(hits) >= maxResults*2 {
					break
				}
			}
		}

		if len(hits) >= maxResults*2 {
			break
		}
	}

	if !succeeded && lastErr != nil {
		return nil, lastErr
	}
	return hits, nil
}

// search runs one provider call: GET {base}/search?q=...&max_results=N.
func (c *Client) search(ctx context.Context, query string, maxResults int) ([]providerResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %v: %w", err, domain.ErrExternalSearch)
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&max_results=%d",
		c.baseURL, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %v: %w", err, domain.ErrExternalSearch)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("provider status %d: %w", resp.StatusCode, domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider status %d: %w", resp.StatusCode, domain.ErrExternalSearch)
	}

	var results []providerResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode provider response: %v: %w", err, domain.ErrExternalSearch)
	}
	return results, nil
}

// doWithRetry executes the request and retries once on 429/5xx with
// exponential backoff. The body is drained and closed before each retry.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryableStatus(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		backoff := time.Duration(1<<attempt) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

var linkedinWordRe = regexp.MustCompile(`(?i)\blinkedin\b`)

// queryVariants builds provider queries from the parsed fragments, most
// specific first, deduplicated preserving order. The bare word "linkedin"
// is stripped from the raw fallback so it is not doubled.
func queryVariants(raw, name, org string) []string {
	var variants []string

	if name != "" && org != "" {
		variants = append(variants, fmt.Sprintf("%q %s site:linkedin.com/in", name, org))
	}
	if name != "" {
		variants = append(variants, fmt.Sprintf("%q site:linkedin.com/in", name))
	}
	if name != "" && org != "" {
		variants = append(variants, fmt.Sprintf("%s %s linkedin", name, org))
	}

	if cleaned := strings.Join(strings.Fields(linkedinWordRe.ReplaceAllString(raw, "")), " "); cleaned != "" {
		variants = append(variants, cleaned+" linkedin")
	}

	return dedupe(variants)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
