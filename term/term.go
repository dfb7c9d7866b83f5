// Package term provides the RDF term model consumed by the prefix registry.
//
// Terms are immutable values identified by their kind and lexical value. The
// registry never inspects a term beyond Value and TermType; new terms are
// always built through a Factory so callers can substitute their own term
// implementation.
package term

// Type identifies the kind of an RDF term
type Type int

// Term kinds, named after the RDF/JS termType values
const (
	TypeNamedNode Type = iota
	TypeBlankNode
	TypeLiteral
	TypeVariable
	TypeDefaultGraph
)

// String returns the RDF/JS termType name
func (t Type) String() string {
	switch t {
	case TypeNamedNode:
		return "NamedNode"
	case TypeBlankNode:
		return "BlankNode"
	case TypeLiteral:
		return "Literal"
	case TypeVariable:
		return "Variable"
	case TypeDefaultGraph:
		return "DefaultGraph"
	default:
		return "unknown"
	}
}

// ParseType maps an RDF/JS termType name back to a Type.
func ParseType(name string) (Type, bool) {
	switch name {
	case "NamedNode":
		return TypeNamedNode, true
	case "BlankNode":
		return TypeBlankNode, true
	case "Literal":
		return TypeLiteral, true
	case "Variable":
		return TypeVariable, true
	case "DefaultGraph":
		return TypeDefaultGraph, true
	default:
		return 0, false
	}
}

// Term is an RDF term
type Term interface {
	TermType() Type
	Value() string
	Equals(other Term) bool
}

// Factory constructs terms. The registry needs nothing more than named nodes.
type Factory interface {
	NamedNode(value string) Term
}

// NamedNode is an IRI term
type NamedNode struct {
	value string
}

// TermType returns TypeNamedNode
func (n NamedNode) TermType() Type { return TypeNamedNode }

// Value returns the IRI
func (n NamedNode) Value() string { return n.value }

// Equals reports whether other is a named node with the same IRI
func (n NamedNode) Equals(other Term) bool {
	return sameKindAndValue(n, other)
}

// String returns the IRI in angle brackets
func (n NamedNode) String() string { return "<" + n.value + ">" }

// BlankNode is a document-local identifier
type BlankNode struct {
	id string
}

// TermType returns TypeBlankNode
func (b BlankNode) TermType() Type { return TypeBlankNode }

// Value returns the blank node label
func (b BlankNode) Value() string { return b.id }

// Equals reports whether other is a blank node with the same label
func (b BlankNode) Equals(other Term) bool {
	return sameKindAndValue(b, other)
}

// String returns the blank node in N-Triples form
func (b BlankNode) String() string { return "_:" + b.id }

// Literal is a lexical value with an optional language tag and a datatype
type Literal struct {
	value    string
	language string
	datatype NamedNode
}

// TermType returns TypeLiteral
func (l Literal) TermType() Type { return TypeLiteral }

// Value returns the lexical form
func (l Literal) Value() string { return l.value }

// Language returns the language tag, empty when there is none
func (l Literal) Language() string { return l.language }

// Datatype returns the datatype IRI
func (l Literal) Datatype() NamedNode { return l.datatype }

// Equals compares lexical form, language and datatype
func (l Literal) Equals(other Term) bool {
	o, ok := other.(Literal)
	if !ok {
		return false
	}
	return l.value == o.value && l.language == o.language && l.datatype.value == o.datatype.value
}

func sameKindAndValue(a, b Term) bool {
	if b == nil {
		return false
	}
	return a.TermType() == b.TermType() && a.Value() == b.Value()
}
