package term

import (
	"fmt"

	"github.com/c360/prefixmap/errors"
)

// Wire is the JSON shape of an identifier term on the event transports
type Wire struct {
	TermType string `json:"termType"`
	Value    string `json:"value"`
}

// BlankNodeFactory is implemented by factories that can build blank nodes
type BlankNodeFactory interface {
	BlankNode(id string) Term
}

// ToWire converts t to its wire shape
func ToWire(t Term) Wire {
	return Wire{TermType: t.TermType().String(), Value: t.Value()}
}

// FromWire rebuilds an identifier term with f. Only named and blank nodes
// are accepted.
func FromWire(f Factory, w Wire) (Term, error) {
	kind, ok := ParseType(w.TermType)
	if !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: unknown termType %q", errors.ErrInvalidData, w.TermType),
			"term", "FromWire", "termType lookup")
	}

	switch kind {
	case TypeNamedNode:
		return f.NamedNode(w.Value), nil
	case TypeBlankNode:
		bf, ok := f.(BlankNodeFactory)
		if !ok {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: factory cannot build blank nodes", errors.ErrInvalidData),
				"term", "FromWire", "blank node construction")
		}
		// wrappers such as an environment may expose BlankNode without
		// being able to build one
		t := bf.BlankNode(w.Value)
		if t == nil {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: factory cannot build blank nodes", errors.ErrInvalidData),
				"term", "FromWire", "blank node construction")
		}
		return t, nil
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s is not an identifier term", errors.ErrInvalidData, kind),
			"term", "FromWire", "termType check")
	}
}
