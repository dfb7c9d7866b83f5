// Package vocabulary provides the well-known RDF vocabularies and their
// conventional prefix labels.
//
// The package keeps a registry of vocabularies in the order they were
// registered. The W3C and community vocabularies used across semantic web
// tooling are registered at package initialization:
//
//	rdf      http://www.w3.org/1999/02/22-rdf-syntax-ns#
//	rdfs     http://www.w3.org/2000/01/rdf-schema#
//	owl      http://www.w3.org/2002/07/owl#
//	xsd      http://www.w3.org/2001/XMLSchema#
//	skos     http://www.w3.org/2004/02/skos/core#
//	dcterms  http://purl.org/dc/terms/
//	schema   http://schema.org/
//	foaf     http://xmlns.com/foaf/0.1/
//	prov     http://www.w3.org/ns/prov#
//	sosa     http://www.w3.org/ns/sosa/
//	ssn      http://www.w3.org/ns/ssn/
//
// Applications may register their own vocabularies during init:
//
//	func init() {
//		vocabulary.Register("ex", "http://example.org/",
//			vocabulary.WithTitle("Example vocabulary"))
//	}
//
// Entries converts the registry into prefix map entries so a registry can be
// seeded with the standard prefixes:
//
//	prefixes, err := prefixmap.New(factory, vocabulary.Entries(factory))
package vocabulary
