package parsecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/db"
	"github.com/slaguerre91/people-search-homepage/internal/domain"
)

// store is the consumer interface for the parse cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedParser caches LLM parse results in a key-value store.
type CachedParser struct {
	inner      domain.QueryParser
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. keyPrefix namespaces cache keys
// (e.g. "people:" gives people:parse:<sha256>). ttl <= 0 caches forever.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.QueryParser,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedParser {
	return &CachedParser{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// cachedResult is the stored JSON shape. Token counts are intentionally
// absent: a cache hit consumes no provider tokens.
type cachedResult struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// Parse returns a cached result or calls the inner parser.
// Cache hit: zero token counts (no real tokens consumed).
// Cache miss: full ParseResult from inner, stored for next time.
func (c *CachedParser) Parse(ctx context.Context, raw string) (domain.ParseResult, error) {
	key := c.cacheKey(raw)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	result, err := c.inner.Parse(ctx, raw)
	if err != nil {
		return domain.ParseResult{}, fmt.Errorf("parse query: %w", err)
	}

	c.putToCache(ctx, key, result)
	return result, nil
}

func (c *CachedParser) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedParser) cacheKey(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return c.keyPrefix + "parse:" + hex.EncodeToString(h[:])
}

func (c *CachedParser) getFromCache(ctx context.Context, key string) (domain.ParseResult, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached parse result", zap.String("key", key), zap.Error(err))
		}
		return domain.ParseResult{}, false
	}
	if len(data) == 0 {
		return domain.ParseResult{}, false
	}

	var stored cachedResult
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Warn("Failed to parse cached result", zap.String("key", key), zap.Error(err))
		return domain.ParseResult{}, false
	}

	return domain.ParseResult{
		Name:         stored.Name,
		Organization: stored.Organization,
		Source:       domain.ParseSourceCache,
	}, true
}

func (c *CachedParser) putToCache(ctx context.Context, key string, result domain.ParseResult) {
	data, err := json.Marshal(cachedResult{Name: result.Name, Organization: result.Organization})
	if err != nil {
		c.logger.Warn("Failed to marshal parse result", zap.String("key", key), zap.Error(err))
		return
	}

	if c.ttl > 0 {
		err = c.store.SetWithTTL(ctx, key, data, c.ttl)
	} else {
		err = c.store.Set(ctx, key, data)
	}
	if err != nil {
		c.logger.Warn("Failed to cache parse result", zap.String("key", key), zap.Error(err))
	}
}
