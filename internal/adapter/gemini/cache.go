package gemini

import (
	"context"
	"math"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"github.com/couchcryptid/groundwater-forecast-service/internal/observability"
	"github.com/golang/groupcache/lru"
)

// Generator is the call the cache decorates.
type Generator interface {
	Generate(ctx context.Context, p domain.Prompt) (string, error)
}

// CachedGenerator wraps a Generator with an in-memory LRU cache keyed by the
// prompt. Only responses that parse into a complete report are cached, so a
// bad payload is always retried against the remote service.
type CachedGenerator struct {
	inner   Generator
	metrics *observability.Metrics

	mu    sync.Mutex
	cache *lru.Cache
}

// NewCachedGenerator creates a cache decorator holding up to maxEntries
// responses.
func NewCachedGenerator(inner Generator, maxEntries int, metrics *observability.Metrics) *CachedGenerator {
	return &CachedGenerator{
		inner:   inner,
		metrics: metrics,
		cache:   lru.New(maxEntries),
	}
}

func (c *CachedGenerator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	key := promptKey(p)
	if text, ok := c.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return text, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	text, err := c.inner.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	if _, perr := domain.ParseReport(text, domain.PredictionRequest{}); perr == nil {
		c.put(key, text)
	}
	return text, nil
}

// Len returns the number of cached responses.
func (c *CachedGenerator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

func (c *CachedGenerator) get(key uint64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (c *CachedGenerator) put(key uint64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, text)
}

// promptKey hashes every prompt input that affects the response.
func promptKey(p domain.Prompt) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(p.SystemInstruction)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatUint(uint64(math.Float32bits(p.Temperature)), 16))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(p.Text)
	return d.Sum64()
}
