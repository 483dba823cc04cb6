package rdf

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MalformedLiteralError is returned when a value cannot be written as a
// literal. Literal construction never truncates or transcodes input.
type MalformedLiteralError struct {
	Value  string
	Reason string
}

func (e *MalformedLiteralError) Error() string {
	return fmt.Sprintf("malformed literal %q: %s", e.Value, e.Reason)
}

// langTagPattern matches the BCP 47 shape accepted by N-Triples LANGTAG.
var langTagPattern = regexp.MustCompile(`^[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*$`)

// NewLiteral returns a plain literal. The value must be valid UTF-8.
func NewLiteral(value string) (Literal, error) {
	if !utf8.ValidString(value) {
		return Literal{}, &MalformedLiteralError{Value: value, Reason: "invalid UTF-8"}
	}
	return Literal{Value: value}, nil
}

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(value, lang string) (Literal, error) {
	l, err := NewLiteral(value)
	if err != nil {
		return Literal{}, err
	}
	if !langTagPattern.MatchString(lang) {
		return Literal{}, &MalformedLiteralError{Value: value, Reason: fmt.Sprintf("invalid language tag %q", lang)}
	}
	l.Lang = lang
	return l, nil
}

// NewTypedLiteral returns a literal with an explicit datatype.
func NewTypedLiteral(value string, datatype IRI) (Literal, error) {
	l, err := NewLiteral(value)
	if err != nil {
		return Literal{}, err
	}
	if datatype.IsEmpty() {
		return Literal{}, &MalformedLiteralError{Value: value, Reason: "empty datatype"}
	}
	if datatype == RDFLangString {
		return Literal{}, &MalformedLiteralError{Value: value, Reason: "rdf:langString requires a language tag"}
	}
	l.Datatype = datatype
	return l, nil
}
