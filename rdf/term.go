// Package rdf defines the terms and triples that resource attributes are
// bound to.
//
// Terms render in N-Triples syntax through String, which is also the syntax
// used inside SPARQL Update bodies:
//
//	IRI("")                                   -> <>
//	IRI("http://purl.org/dc/terms/title")     -> <http://purl.org/dc/terms/title>
//	BlankNode("b0")                           -> _:b0
//	Literal{Value: "bar"}                     -> "bar"
//	Literal{Value: "bar", Lang: "en"}         -> "bar"@en
//	Literal{Value: "1", Datatype: XSDInteger} -> "1"^^<http://www.w3.org/2001/XMLSchema#integer>
//
// All term types are comparable, so triples can be used as map keys.
package rdf

import (
	"strings"
)

// TermKind classifies a term.
type TermKind int

const (
	// KindIRI is an absolute or empty-relative IRI.
	KindIRI TermKind = iota
	// KindBlankNode is a graph-local blank node.
	KindBlankNode
	// KindLiteral is a literal with optional language tag or datatype.
	KindLiteral
)

// String returns the kind name.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlankNode:
		return "blank_node"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is a node in a triple.
type Term interface {
	// Kind reports what sort of term this is.
	Kind() TermKind
	// String returns the N-Triples encoding of the term.
	String() string

	isTerm()
}

// Well-known datatype IRIs.
const (
	XSDString     IRI = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger    IRI = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDecimal    IRI = "http://www.w3.org/2001/XMLSchema#decimal"
	XSDDouble     IRI = "http://www.w3.org/2001/XMLSchema#double"
	XSDBoolean    IRI = "http://www.w3.org/2001/XMLSchema#boolean"
	XSDDateTime   IRI = "http://www.w3.org/2001/XMLSchema#dateTime"
	RDFLangString IRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// IRI is an IRI reference. The empty IRI is the relative reference to the
// resource itself and renders as <>.
type IRI string

// Kind implements Term.
func (IRI) Kind() TermKind { return KindIRI }

// String implements Term.
func (i IRI) String() string { return "<" + string(i) + ">" }

// IsEmpty reports whether this is the empty relative reference.
func (i IRI) IsEmpty() bool { return i == "" }

func (IRI) isTerm() {}

// BlankNode is a blank node identified by a graph-local label.
type BlankNode string

// Kind implements Term.
func (BlankNode) Kind() TermKind { return KindBlankNode }

// String implements Term.
func (b BlankNode) String() string { return "_:" + string(b) }

func (BlankNode) isTerm() {}

// Literal is a scalar value. At most one of Lang and Datatype is set.
type Literal struct {
	Value    string
	Lang     string
	Datatype IRI
}

// Kind implements Term.
func (Literal) Kind() TermKind { return KindLiteral }

// String implements Term.
func (l Literal) String() string {
	var sb strings.Builder
	sb.Grow(len(l.Value) + 2)
	sb.WriteByte('"')
	sb.WriteString(escapeString(l.Value))
	sb.WriteByte('"')
	switch {
	case l.Lang != "":
		sb.WriteByte('@')
		sb.WriteString(l.Lang)
	case l.Datatype != "":
		sb.WriteString("^^")
		sb.WriteString(l.Datatype.String())
	}
	return sb.String()
}

func (Literal) isTerm() {}

var literalEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

// escapeString escapes the characters N-Triples requires inside a quoted
// literal. Everything else, including non-ASCII text, is written as is.
func escapeString(s string) string {
	return literalEscaper.Replace(s)
}
