// Package assets maps document asset names to their fingerprinted URLs.
//
// A build step writes a JSON manifest from source names to hashed names:
//
//	{
//	  "app.js": "app.a1b2c3d4.js",
//	  "site.css": "site.e5f6a7b8.css"
//	}
//
// A Resolver joins the resolved name with a URL prefix. Names missing from
// the manifest, and absolute URLs, pass through unchanged.
//
//	m, _ := assets.Load("dist/assets.json")
//	r := assets.NewResolver(m, "/static/")
//	r.URL("app.js") // "/static/app.a1b2c3d4.js"
package assets

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/vango-dev/isoview/internal/errors"
)

// Manifest maps source asset names to fingerprinted names.
// It is safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// Load reads a JSON manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E125").WithDetail(path).Wrap(err)
	}
	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.New("E125").WithDetailf("%s: %v", path, err).Wrap(err)
	}
	return &Manifest{entries: entries}, nil
}

// Lookup returns the fingerprinted name of source.
func (m *Manifest) Lookup(source string) (string, bool) {
	if m == nil {
		return "", false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[source]
	return v, ok
}

// Set adds or replaces an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Resolver turns asset names into URLs.
type Resolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver. A nil manifest resolves every name to
// prefix+name, which keeps development and production URLs aligned.
func NewResolver(m *Manifest, prefix string) *Resolver {
	return &Resolver{manifest: m, prefix: prefix}
}

// URL resolves one asset name.
func (r *Resolver) URL(source string) string {
	if isAbsoluteURL(source) {
		return source
	}
	name := strings.TrimPrefix(source, "/")
	if resolved, ok := r.manifest.Lookup(name); ok {
		name = resolved
	}
	if r.prefix == "" {
		return "/" + name
	}
	return strings.TrimSuffix(r.prefix, "/") + "/" + name
}

// URLs resolves every name in order.
func (r *Resolver) URLs(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = r.URL(s)
	}
	return out
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "//") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:")
}
