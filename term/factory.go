package term

// Datatype IRIs used for literals
const (
	XSDString     = "http://www.w3.org/2001/XMLSchema#string"
	RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// DataFactory is the default Factory
type DataFactory struct{}

// NewDataFactory returns the default factory
func NewDataFactory() *DataFactory {
	return &DataFactory{}
}

// NamedNode creates an IRI term
func (DataFactory) NamedNode(value string) Term {
	return NamedNode{value: value}
}

// BlankNode creates a blank node with the given label
func (DataFactory) BlankNode(id string) Term {
	return BlankNode{id: id}
}

// Literal creates a literal. A non-empty language forces rdf:langString;
// an empty datatype defaults to xsd:string.
func (DataFactory) Literal(value, language, datatype string) Term {
	switch {
	case language != "":
		datatype = RDFLangString
	case datatype == "":
		datatype = XSDString
	}
	return Literal{value: value, language: language, datatype: NamedNode{value: datatype}}
}
