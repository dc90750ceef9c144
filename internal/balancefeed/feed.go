// Package balancefeed supplies authoritative opening/closing balances
// keyed by ISO date. The feed is optional: absence of a date's entry is
// not an error, and a failed lookup degrades that single date to
// carry-forward reconstruction.
package balancefeed

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// DayBalance is one authoritative balance record.
type DayBalance struct {
	Date        string // "2006-01-02"
	OpeningCash decimal.Decimal
	ClosingCash decimal.Decimal
	OpeningBank decimal.Decimal
	ClosingBank decimal.Decimal
}

// Source looks up the authoritative balance for a date. ok is false
// when the source has no record for that date.
type Source interface {
	Lookup(ctx context.Context, date string) (DayBalance, bool, error)
}

// MapSource is an in-memory Source, used directly for small feeds and
// as the backing store for the CSV source.
type MapSource map[string]DayBalance

// Lookup implements Source.
func (m MapSource) Lookup(_ context.Context, date string) (DayBalance, bool, error) {
	b, ok := m[date]
	return b, ok, nil
}

// Cache memoizes lookups from a slower Source, keyed by date. Hits and
// definitive misses are cached; errors are not, so a transient failure
// can succeed on a later run. Safe for concurrent callers.
type Cache struct {
	src Source

	mu     sync.Mutex
	hits   map[string]DayBalance
	misses map[string]bool
}

// NewCache wraps src with a memoizing cache.
func NewCache(src Source) *Cache {
	return &Cache{
		src:    src,
		hits:   make(map[string]DayBalance),
		misses: make(map[string]bool),
	}
}

// Lookup implements Source.
func (c *Cache) Lookup(ctx context.Context, date string) (DayBalance, bool, error) {
	c.mu.Lock()
	if b, ok := c.hits[date]; ok {
		c.mu.Unlock()
		return b, true, nil
	}
	if c.misses[date] {
		c.mu.Unlock()
		return DayBalance{}, false, nil
	}
	c.mu.Unlock()

	b, ok, err := c.src.Lookup(ctx, date)
	if err != nil {
		return DayBalance{}, false, err
	}

	c.mu.Lock()
	if ok {
		c.hits[date] = b
	} else {
		c.misses[date] = true
	}
	c.mu.Unlock()
	return b, ok, nil
}
