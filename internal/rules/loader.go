// Package rules loads, validates, normalizes and caches domain rule bundles.
// Bundles ship embedded in the binary and can be overridden per domain from a directory of JSON or YAML files.
package rules

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jonathan/placement-prep/internal/schemas"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/placement-prep/internal/types"
)

//go:embed bundles/*
var bundleFiles embed.FS

var bundleExtensions = []string{".json", ".yaml", ".yml"}

// Loader resolves DomainRules for a domain.
// A Loader is safe for concurrent use; all loads share its Cache.
type Loader struct {
	dir       string
	bundles   fs.FS
	cache     *Cache
	detectors []ShapeDetector
	logger    *slog.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithDir sets a directory whose <domain>.rules.{json,yaml,yml} files take precedence over embedded bundles
func WithDir(dir string) Option {
	return func(l *Loader) { l.dir = dir }
}

// WithBundles replaces the embedded bundle filesystem. Files must live under bundles/.
func WithBundles(fsys fs.FS) Option {
	return func(l *Loader) { l.bundles = fsys }
}

// WithCache shares a cache between loaders
func WithCache(c *Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// WithShapeDetectors replaces the ordered list of shape detectors
func WithShapeDetectors(detectors ...ShapeDetector) Option {
	return func(l *Loader) { l.detectors = detectors }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader reading embedded bundles with the default shape detectors
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		bundles:   bundleFiles,
		cache:     NewCache(),
		detectors: DefaultShapeDetectors(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cache returns the loader's cache
func (l *Loader) Cache() *Cache {
	return l.cache
}

// ClearCache drops every cached bundle so the next load re-reads its source
func (l *Loader) ClearCache() {
	l.cache.Clear()
}

// LoadRules returns the normalized rules for a domain, loading and caching them on first use
func (l *Loader) LoadRules(ctx context.Context, domain string) (*types.DomainRules, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	domain = strings.ToLower(strings.TrimSpace(domain))
	if !IsKnownDomain(domain) {
		return nil, &UnknownDomainError{Domain: domain}
	}

	if rules, ok := l.cache.Get(domain); ok {
		return rules, nil
	}

	data, source, err := l.readBundle(domain)
	if err != nil {
		return nil, err
	}

	rules, err := l.decode(domain, source, data)
	if err != nil {
		return nil, err
	}

	l.cache.Put(domain, rules)
	l.logger.Debug("loaded rule bundle", "domain", domain, "source", source)
	return rules, nil
}

// Preload loads the given domains concurrently (all available domains when none are given)
func (l *Loader) Preload(ctx context.Context, domains ...string) error {
	if len(domains) == 0 {
		domains = AvailableDomains()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, domain := range domains {
		g.Go(func() error {
			_, err := l.LoadRules(gctx, domain)
			return err
		})
	}
	return g.Wait()
}

// readBundle returns the raw bundle bytes converted to JSON, and a description of where they came from
func (l *Loader) readBundle(domain string) ([]byte, string, error) {
	if l.dir != "" {
		for _, ext := range bundleExtensions {
			p := filepath.Join(l.dir, domain+".rules"+ext)
			data, err := os.ReadFile(p)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, p, &LoadError{Domain: domain, Source: p, Message: "failed to read file", Cause: err}
			}
			return l.toJSON(domain, p, ext, data)
		}
	}

	if l.bundles != nil {
		for _, ext := range bundleExtensions {
			p := path.Join("bundles", domain+".rules"+ext)
			data, err := fs.ReadFile(l.bundles, p)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, p, &LoadError{Domain: domain, Source: p, Message: "failed to read embedded bundle", Cause: err}
			}
			return l.toJSON(domain, "embedded:"+p, ext, data)
		}
	}

	return nil, "", &UnknownDomainError{Domain: domain}
}

func (l *Loader) toJSON(domain, source, ext string, data []byte) ([]byte, string, error) {
	if ext == ".json" {
		return data, source, nil
	}
	converted, err := yamlToJSON(data)
	if err != nil {
		return nil, source, &LoadError{Domain: domain, Source: source, Message: "invalid YAML", Cause: err}
	}
	return converted, source, nil
}

func (l *Loader) decode(domain, source string, data []byte) (*types.DomainRules, error) {
	if err := schemas.ValidateDocument(schemas.RuleBundle, data); err != nil {
		return nil, &LoadError{Domain: domain, Source: source, Message: "bundle does not match rule_bundle schema", Cause: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Domain: domain, Source: source, Message: "invalid JSON", Cause: err}
	}

	for _, detector := range l.detectors {
		raw, ok, err := detector.Detect(domain, doc)
		if err != nil {
			return nil, &LoadError{Domain: domain, Source: source, Message: fmt.Sprintf("%s shape", detector.Name()), Cause: err}
		}
		if !ok {
			continue
		}

		rules, err := Finalize(domain, raw)
		if err != nil {
			return nil, &LoadError{Domain: domain, Source: source, Message: "invalid rules", Cause: err}
		}
		l.logger.Debug("detected bundle shape", "domain", domain, "shape", detector.Name())
		return rules, nil
	}

	return nil, &LoadError{Domain: domain, Source: source, Message: "unrecognized bundle shape"}
}

// yamlToJSON decodes YAML and re-encodes it as JSON
func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(jsonCompatible(v))
}

// jsonCompatible converts YAML maps with non-string keys into string-keyed maps
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			t[k] = jsonCompatible(item)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []interface{}:
		for i, item := range t {
			t[i] = jsonCompatible(item)
		}
		return t
	default:
		return v
	}
}
