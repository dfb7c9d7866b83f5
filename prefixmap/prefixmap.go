package prefixmap

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/metric"
	"github.com/c360/prefixmap/term"
)

// Entry is one prefix declaration
type Entry struct {
	Prefix    string
	Namespace term.Term
}

// Option configures a PrefixMap
type Option func(*PrefixMap)

// WithLogger sets the logger used for stream operations
func WithLogger(logger *slog.Logger) Option {
	return func(p *PrefixMap) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics enables lookup and stream metrics
func WithMetrics(m *metric.Metrics) Option {
	return func(p *PrefixMap) {
		p.metrics = m
	}
}

// PrefixMap maps prefix labels to namespace terms, keeping insertion order
type PrefixMap struct {
	factory term.Factory
	logger  *slog.Logger
	metrics *metric.Metrics

	mu      sync.RWMutex
	order   []string
	entries map[string]term.Term
}

// New creates a PrefixMap that builds result terms with factory. Entries are
// applied in order, later duplicates overwriting earlier ones.
func New(factory term.Factory, entries []Entry, opts ...Option) (*PrefixMap, error) {
	if factory == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingFactory, "PrefixMap", "New", "factory validation")
	}

	p := &PrefixMap{
		factory: factory,
		logger:  slog.Default(),
		entries: make(map[string]term.Term, len(entries)),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, e := range entries {
		p.set(e.Prefix, e.Namespace)
	}

	return p, nil
}

// Factory returns the factory result terms are built with
func (p *PrefixMap) Factory() term.Factory {
	return p.factory
}

// Get returns the namespace registered for prefix
func (p *PrefixMap) Get(prefix string) (term.Term, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ns, ok := p.entries[prefix]
	return ns, ok
}

// Has reports whether prefix is registered
func (p *PrefixMap) Has(prefix string) bool {
	_, ok := p.Get(prefix)
	return ok
}

// Set registers namespace for prefix. Overwriting keeps the prefix's
// original position. A nil namespace is ignored.
func (p *PrefixMap) Set(prefix string, namespace term.Term) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set(prefix, namespace)
}

func (p *PrefixMap) set(prefix string, namespace term.Term) {
	if namespace == nil {
		return
	}
	if _, exists := p.entries[prefix]; !exists {
		p.order = append(p.order, prefix)
	}
	p.entries[prefix] = namespace
}

// Delete removes prefix and reports whether it was registered
func (p *PrefixMap) Delete(prefix string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[prefix]; !exists {
		return false
	}
	delete(p.entries, prefix)
	for i, label := range p.order {
		if label == prefix {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// Size returns the number of registered prefixes
func (p *PrefixMap) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Entries returns a snapshot of all entries in insertion order
func (p *PrefixMap) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entries := make([]Entry, 0, len(p.order))
	for _, prefix := range p.order {
		entries = append(entries, Entry{Prefix: prefix, Namespace: p.entries[prefix]})
	}
	return entries
}

// Prefixes returns the registered labels in insertion order
func (p *PrefixMap) Prefixes() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.order...)
}

// All iterates over a snapshot of the entries in insertion order
func (p *PrefixMap) All() iter.Seq2[string, term.Term] {
	entries := p.Entries()
	return func(yield func(string, term.Term) bool) {
		for _, e := range entries {
			if !yield(e.Prefix, e.Namespace) {
				return
			}
		}
	}
}

// Clone returns an independent copy sharing the factory and the (immutable)
// namespace terms
func (p *PrefixMap) Clone() *PrefixMap {
	return p.cloneWith(p.factory)
}

func (p *PrefixMap) cloneWith(factory term.Factory) *PrefixMap {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clone := &PrefixMap{
		factory: factory,
		logger:  p.logger,
		metrics: p.metrics,
		order:   append([]string(nil), p.order...),
		entries: make(map[string]term.Term, len(p.entries)),
	}
	for prefix, ns := range p.entries {
		clone.entries[prefix] = ns
	}
	return clone
}
