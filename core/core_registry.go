// core_registry.go
// Central registry that maps string aliases → Extractor factories.
// Backends register themselves via an init() side‑effect so that applications
// can simply import the backend package for self‑registration.

package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ----------------------------------------------------------------------------
// Extractor abstraction
// ----------------------------------------------------------------------------

// Extractor turns a PDF into paragraph‑level text elements, ordered by page and
// then by the engine's block order. A failure on any page fails the whole call;
// no partial results are returned. Backends are expected to be stateless.

type Extractor interface {
	Extract(ctx context.Context, in io.Reader, opts ...Option) ([]TextElement, error)
}

// ----------------------------------------------------------------------------
// Registry implementation
// ----------------------------------------------------------------------------

var (
	mu       sync.RWMutex
	registry = make(map[string]func() Extractor)
)

// ErrNotFound is returned when an Extractor alias is unknown.
var ErrNotFound = errors.New("paragraph: extractor not found")

// Register installs a factory under the given alias. It panics on duplicates.
// Backends should call Register from an init() function:
//
//	func init() { core.Register("mupdf", NewExtractor) }
func Register(alias string, factory func() Extractor) {
	mu.Lock()
	defer mu.Unlock()
	if alias == "" {
		panic("paragraph: empty alias in Register")
	}
	if factory == nil {
		panic(fmt.Sprintf("paragraph: nil factory for alias %q", alias))
	}
	if _, dup := registry[alias]; dup {
		panic(fmt.Sprintf("paragraph: duplicate registration for alias %q", alias))
	}
	registry[alias] = factory
}

// Get returns a fresh Extractor from the registry or an error if missing.
func Get(alias string) (Extractor, error) {
	mu.RLock()
	factory, ok := registry[alias]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, alias)
	}
	return factory(), nil
}

// Must is like Get but panics when the alias is missing.
func Must(alias string) Extractor {
	e, err := Get(alias)
	if err != nil {
		panic(err)
	}
	return e
}

// Aliases lists the registered aliases in sorted order.
func Aliases() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for a := range registry {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
