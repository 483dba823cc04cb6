package rdf

import (
	"errors"
	"fmt"
)

// Triple is a single subject-predicate-object statement.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// NewTriple validates the positions of each term and returns the triple.
// Subjects must be IRIs or blank nodes, and the predicate must be non-empty.
func NewTriple(subject Term, predicate IRI, object Term) (Triple, error) {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	if err := t.Validate(); err != nil {
		return Triple{}, err
	}
	return t, nil
}

// Validate checks term positions.
func (t Triple) Validate() error {
	if t.Subject == nil {
		return errors.New("triple subject is required")
	}
	if t.Subject.Kind() == KindLiteral {
		return fmt.Errorf("triple subject cannot be a literal: %s", t.Subject)
	}
	if t.Predicate.IsEmpty() {
		return errors.New("triple predicate is required")
	}
	if t.Object == nil {
		return errors.New("triple object is required")
	}
	return nil
}

// String returns the N-Triples statement without the trailing newline.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}
