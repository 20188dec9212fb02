package application

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// CachingOracle remembers verdicts by fixture content so unchanged fixtures
// skip the inner oracle on later runs. Rejections are cached too; the
// unavailable state is not.
type CachingOracle struct {
	inner domain.Oracle
	cache *domain.OracleCache
	hits  int
}

func NewCachingOracle(inner domain.Oracle, cache *domain.OracleCache) *CachingOracle {
	if cache == nil {
		cache = &domain.OracleCache{}
	}
	return &CachingOracle{inner: inner, cache: cache}
}

func (c *CachingOracle) Name() string { return c.inner.Name() }

func (c *CachingOracle) Available() (bool, string) { return c.inner.Available() }

// Cache returns the underlying cache so the caller can persist it.
func (c *CachingOracle) Cache() *domain.OracleCache { return c.cache }

// Hits reports how many lookups were served from the cache.
func (c *CachingOracle) Hits() int { return c.hits }

func (c *CachingOracle) Inspect(ctx context.Context, path string) (domain.OracleSummary, error) {
	digest, err := fileDigest(path)
	if err != nil {
		return c.inner.Inspect(ctx, path)
	}

	name := c.inner.Name()
	if e, ok := c.cache.Lookup(name, digest); ok {
		c.hits++
		if e.Summary != nil {
			return *e.Summary, nil
		}
		return domain.OracleSummary{}, &domain.OracleRejection{Oracle: name, Message: e.Rejection}
	}

	summary, err := c.inner.Inspect(ctx, path)
	if err == nil {
		s := summary
		c.cache.Store(name, digest, domain.CachedOracleEntry{Summary: &s})
		return summary, nil
	}

	var rej *domain.OracleRejection
	if errors.As(err, &rej) {
		c.cache.Store(name, digest, domain.CachedOracleEntry{Rejection: rej.Message})
	}
	return summary, err
}

func fileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
