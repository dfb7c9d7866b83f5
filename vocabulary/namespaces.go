package vocabulary

// Namespace IRIs of the standard vocabularies
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
// - Schema.org: https://schema.org/
// - PROV-O: https://www.w3.org/TR/prov-o/
// - SOSA/SSN: https://www.w3.org/TR/vocab-ssn/
const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	OWL     = "http://www.w3.org/2002/07/owl#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
	SKOS    = "http://www.w3.org/2004/02/skos/core#"
	DCTerms = "http://purl.org/dc/terms/"
	Schema  = "http://schema.org/"
	FOAF    = "http://xmlns.com/foaf/0.1/"
	PROV    = "http://www.w3.org/ns/prov#"

	// SOSA and SSN are useful for IoT and robotics data
	SOSA = "http://www.w3.org/ns/sosa/"
	SSN  = "http://www.w3.org/ns/ssn/"
)

// Frequently shrunk terms, kept for examples and tests
const (
	RdfType       = RDF + "type"
	RdfsLabel     = RDFS + "label"
	OwlSameAs     = OWL + "sameAs"
	SkosPrefLabel = SKOS + "prefLabel"
	DcTitle       = DCTerms + "title"
	SchemaName    = Schema + "name"
	FoafName      = FOAF + "name"
	SosaObserves  = SOSA + "observes"
)
