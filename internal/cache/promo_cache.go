package cache

import (
	"sync"
	"time"

	"github.com/belvieshop/checkout-service/internal/domain"
)

type entry struct {
	promo   *domain.PromoCode
	expires time.Time
}

// PromoCache is a small in-process TTL cache for promo codes, keyed by the
// normalized (uppercased) code. Only the read path uses it; usage counting
// always hits the store.
type PromoCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	store map[string]entry
}

func NewPromoCache(ttl time.Duration) *PromoCache {
	return &PromoCache{
		ttl:   ttl,
		store: make(map[string]entry),
	}
}

func (c *PromoCache) Get(code string) (*domain.PromoCode, bool) {
	c.mu.RLock()
	e, ok := c.store[code]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.promo, true
}

func (c *PromoCache) Set(code string, promo *domain.PromoCode) {
	c.mu.Lock()
	c.store[code] = entry{promo: promo, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops a single code, e.g. after an admin edit.
func (c *PromoCache) Invalidate(code string) {
	c.mu.Lock()
	delete(c.store, code)
	c.mu.Unlock()
}
