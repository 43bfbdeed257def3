package peoplesearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	keyPrefix         string
	pageSize          int
	autocompleteLimit int
	debounce          time.Duration

	openAIKey   string
	openAIModel string
	parser      QueryParser

	lookupBaseURL  string
	lookupRPS      float64
	lookupProvider LookupProvider

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis sets the Redis connection. The address is required; password may
// be empty for unauthenticated instances.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces every stored key. Defaults to "people:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithPageSize caps the number of local matches a search returns.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithAutocompleteLimit caps suggestion counts for autocomplete calls and
// sessions.
func WithAutocompleteLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.autocompleteLimit = n
	})
}

// WithDebounce sets the quiet period an autocomplete session waits after a
// keystroke before fetching suggestions.
func WithDebounce(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.debounce = d
	})
}

// WithOpenAI enables the LLM parse fallback using the OpenAI API. The model
// may be empty to use the default.
func WithOpenAI(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIModel = model
	})
}

// WithParser installs a custom parse fallback instead of OpenAI. It is
// consulted only when the rule layer is not confident.
func WithParser(p QueryParser) Option {
	return optionFunc(func(c *clientConfig) {
		c.parser = p
	})
}

// WithLookup points external search at a people-lookup HTTP endpoint.
func WithLookup(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.lookupBaseURL = baseURL
	})
}

// WithLookupRate caps outbound lookup requests per second. Zero means no
// client-side limit.
func WithLookupRate(rps float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.lookupRPS = rps
	})
}

// WithLookupProvider installs a custom external search provider instead of
// the HTTP client.
func WithLookupProvider(p LookupProvider) Option {
	return optionFunc(func(c *clientConfig) {
		c.lookupProvider = p
	})
}

// WithLogger sets the logger for client operations. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics with the given registerer.
// Without it no metrics are collected.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
