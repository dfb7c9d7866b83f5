package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/term"
)

func TestStandardVocabularies(t *testing.T) {
	ResetRegistry()

	tests := []struct {
		prefix    string
		namespace string
	}{
		{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
		{"rdfs", "http://www.w3.org/2000/01/rdf-schema#"},
		{"owl", "http://www.w3.org/2002/07/owl#"},
		{"xsd", "http://www.w3.org/2001/XMLSchema#"},
		{"skos", "http://www.w3.org/2004/02/skos/core#"},
		{"dcterms", "http://purl.org/dc/terms/"},
		{"schema", "http://schema.org/"},
		{"foaf", "http://xmlns.com/foaf/0.1/"},
		{"prov", "http://www.w3.org/ns/prov#"},
		{"sosa", "http://www.w3.org/ns/sosa/"},
		{"ssn", "http://www.w3.org/ns/ssn/"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			v, ok := Lookup(tt.prefix)
			require.True(t, ok)
			assert.Equal(t, tt.namespace, v.Namespace)
			assert.NotEmpty(t, v.Title)
			assert.NotEmpty(t, v.Reference)
		})
	}

	list := List()
	require.Len(t, list, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.prefix, list[i].Prefix)
	}
}

func TestRegister(t *testing.T) {
	ResetRegistry()
	t.Cleanup(ResetRegistry)

	Register("ex", "http://example.org/", WithTitle("Example"))
	v, ok := Lookup("ex")
	require.True(t, ok)
	assert.Equal(t, "Example", v.Title)

	list := List()
	assert.Equal(t, "ex", list[len(list)-1].Prefix)

	// override keeps position
	Register("rdf", "urn:rdf:")
	list = List()
	assert.Equal(t, "rdf", list[0].Prefix)
	assert.Equal(t, "urn:rdf:", list[0].Namespace)

	_, ok = Lookup("missing")
	assert.False(t, ok)
}

func TestEntries_SeedPrefixMap(t *testing.T) {
	ResetRegistry()
	factory := term.NewDataFactory()

	prefixes, err := prefixmap.New(factory, Entries(factory))
	require.NoError(t, err)

	shrunk := prefixes.Shrink(factory.NamedNode(RdfType))
	require.NotNil(t, shrunk)
	assert.Equal(t, "rdf:type", shrunk.Value())

	shrunk = prefixes.Shrink(factory.NamedNode(SosaObserves))
	require.NotNil(t, shrunk)
	assert.Equal(t, "sosa:observes", shrunk.Value())

	resolved := prefixes.Resolve(factory.NamedNode("skos:prefLabel"))
	require.NotNil(t, resolved)
	assert.Equal(t, SkosPrefLabel, resolved.Value())
}
