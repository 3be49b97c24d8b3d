package rules

import (
	"context"

	"github.com/jonathan/placement-prep/internal/types"
)

var defaultLoader = NewLoader()

// LoadRules loads rules for a domain with the package-level loader
func LoadRules(ctx context.Context, domain string) (*types.DomainRules, error) {
	return defaultLoader.LoadRules(ctx, domain)
}

// ClearCache clears the package-level loader's cache. Useful for testing.
func ClearCache() {
	defaultLoader.ClearCache()
}

// Default returns the package-level loader
func Default() *Loader {
	return defaultLoader
}
