package vocabulary

import (
	"sync"

	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/term"
)

// Vocabulary is a namespace with its conventional prefix label
type Vocabulary struct {
	Prefix    string
	Namespace string
	Title     string
	Reference string
}

// Option is a functional option for configuring vocabulary registration.
type Option func(*Vocabulary)

// WithTitle sets the human-readable name of the vocabulary.
func WithTitle(title string) Option {
	return func(v *Vocabulary) {
		v.Title = title
	}
}

// WithReference sets the URL of the vocabulary's specification.
func WithReference(url string) Option {
	return func(v *Vocabulary) {
		v.Reference = url
	}
}

// Global vocabulary registry
var (
	registryMu sync.RWMutex
	order      []string
	registry   = make(map[string]Vocabulary)
)

func init() {
	registerStandard()
}

func registerStandard() {
	Register("rdf", RDF, WithTitle("RDF Concepts"), WithReference("https://www.w3.org/TR/rdf11-concepts/"))
	Register("rdfs", RDFS, WithTitle("RDF Schema"), WithReference("https://www.w3.org/TR/rdf-schema/"))
	Register("owl", OWL, WithTitle("Web Ontology Language"), WithReference("https://www.w3.org/TR/owl2-overview/"))
	Register("xsd", XSD, WithTitle("XML Schema Datatypes"), WithReference("https://www.w3.org/TR/xmlschema11-2/"))
	Register("skos", SKOS, WithTitle("Simple Knowledge Organization System"), WithReference("https://www.w3.org/TR/skos-reference/"))
	Register("dcterms", DCTerms, WithTitle("DCMI Metadata Terms"), WithReference("https://www.dublincore.org/specifications/dublin-core/dcmi-terms/"))
	Register("schema", Schema, WithTitle("Schema.org"), WithReference("https://schema.org/"))
	Register("foaf", FOAF, WithTitle("Friend of a Friend"), WithReference("http://xmlns.com/foaf/spec/"))
	Register("prov", PROV, WithTitle("Provenance Ontology"), WithReference("https://www.w3.org/TR/prov-o/"))
	Register("sosa", SOSA, WithTitle("Sensor, Observation, Sample, and Actuator"), WithReference("https://www.w3.org/TR/vocab-ssn/"))
	Register("ssn", SSN, WithTitle("Semantic Sensor Network"), WithReference("https://www.w3.org/TR/vocab-ssn/"))
}

// Register adds a vocabulary to the global registry. Re-registering a prefix
// replaces its namespace but keeps its position.
func Register(prefix, namespace string, opts ...Option) {
	v := Vocabulary{Prefix: prefix, Namespace: namespace}
	for _, opt := range opts {
		opt(&v)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[prefix]; !exists {
		order = append(order, prefix)
	}
	registry[prefix] = v
}

// Lookup returns the vocabulary registered for prefix
func Lookup(prefix string) (Vocabulary, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	v, ok := registry[prefix]
	return v, ok
}

// List returns all registered vocabularies in registration order
func List() []Vocabulary {
	registryMu.RLock()
	defer registryMu.RUnlock()

	list := make([]Vocabulary, 0, len(order))
	for _, prefix := range order {
		list = append(list, registry[prefix])
	}
	return list
}

// Entries returns the registered vocabularies as prefix map entries, with
// namespaces built by factory
func Entries(factory term.Factory) []prefixmap.Entry {
	list := List()
	entries := make([]prefixmap.Entry, 0, len(list))
	for _, v := range list {
		entries = append(entries, prefixmap.Entry{
			Prefix:    v.Prefix,
			Namespace: factory.NamedNode(v.Namespace),
		})
	}
	return entries
}

// ResetRegistry restores the registry to the standard vocabularies.
// This is primarily useful for testing.
func ResetRegistry() {
	registryMu.Lock()
	order = nil
	registry = make(map[string]Vocabulary)
	registryMu.Unlock()

	registerStandard()
}
