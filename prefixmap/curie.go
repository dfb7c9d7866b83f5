package prefixmap

import (
	"strings"

	"github.com/c360/prefixmap/metric"
	"github.com/c360/prefixmap/term"
)

// Resolve expands a CURIE such as "ex:test" into a named node built from the
// registered namespace. It returns nil when the value has no ':' or the
// label before the first ':' is not registered. Absolute IRIs are not
// special-cased: "http://..." only resolves if "http" is a registered label.
func (p *PrefixMap) Resolve(t term.Term) term.Term {
	if t == nil {
		return nil
	}

	value := t.Value()
	idx := strings.IndexByte(value, ':')
	if idx < 0 {
		p.metrics.RecordLookup(metric.OperationResolve, false)
		return nil
	}

	ns, ok := p.Get(value[:idx])
	p.metrics.RecordLookup(metric.OperationResolve, ok)
	if !ok {
		return nil
	}

	return p.factory.NamedNode(ns.Value() + value[idx+1:])
}

// Shrink compacts an IRI into a CURIE using the longest registered
// namespace that prefixes its value. Equal-length matches go to the prefix
// registered first. It returns nil for a nil term or when nothing matches.
func (p *PrefixMap) Shrink(t term.Term) term.Term {
	if t == nil {
		return nil
	}

	value := t.Value()

	p.mu.RLock()
	bestPrefix, bestNamespace, found := "", "", false
	for _, prefix := range p.order {
		ns := p.entries[prefix].Value()
		if !strings.HasPrefix(value, ns) {
			continue
		}
		if !found || len(ns) > len(bestNamespace) {
			bestPrefix, bestNamespace, found = prefix, ns, true
		}
	}
	p.mu.RUnlock()

	p.metrics.RecordLookup(metric.OperationShrink, found)
	if !found {
		return nil
	}

	return p.factory.NamedNode(bestPrefix + ":" + value[len(bestNamespace):])
}
