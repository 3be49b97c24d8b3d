package rules

import (
	"sync"

	"github.com/jonathan/placement-prep/internal/types"
)

// Cache holds normalized rule bundles keyed by domain.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*types.DomainRules
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*types.DomainRules)}
}

// Get returns the cached rules for a domain
func (c *Cache) Get(domain string) (*types.DomainRules, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rules, ok := c.entries[domain]
	return rules, ok
}

// Put stores rules for a domain, replacing any previous entry
func (c *Cache) Put(domain string, rules *types.DomainRules) {
	c.mu.Lock()
	c.entries[domain] = rules
	c.mu.Unlock()
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*types.DomainRules)
	c.mu.Unlock()
}

// Len returns the number of cached domains
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
