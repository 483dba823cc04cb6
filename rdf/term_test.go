package rdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermString(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"empty iri", IRI(""), "<>"},
		{"absolute iri", IRI("http://purl.org/dc/terms/title"), "<http://purl.org/dc/terms/title>"},
		{"blank node", BlankNode("b0"), "_:b0"},
		{"plain literal", Literal{Value: "bar"}, `"bar"`},
		{"empty literal", Literal{}, `""`},
		{"lang literal", Literal{Value: "bar", Lang: "en"}, `"bar"@en`},
		{"typed literal", Literal{Value: "1", Datatype: XSDInteger}, `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"escapes", Literal{Value: "a\"b\\c\nd\te\r"}, `"a\"b\\c\nd\te\r"`},
		{"non ascii kept", Literal{Value: "\n’ "}, "\"\\n’ \""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestLiteralEquality(t *testing.T) {
	plain := Literal{Value: "foo"}
	tagged := Literal{Value: "foo", Lang: "en"}
	typed := Literal{Value: "foo", Datatype: XSDString}

	assert.NotEqual(t, Term(plain), Term(tagged))
	assert.NotEqual(t, Term(plain), Term(typed))
	assert.Equal(t, Term(plain), Term(Literal{Value: "foo"}))

	set := map[Triple]bool{}
	set[Triple{Subject: IRI(""), Predicate: "p", Object: plain}] = true
	set[Triple{Subject: IRI(""), Predicate: "p", Object: Literal{Value: "foo"}}] = true
	set[Triple{Subject: IRI(""), Predicate: "p", Object: tagged}] = true
	assert.Len(t, set, 2)
}

func TestNewLiteral(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		l, err := NewLiteral("")
		require.NoError(t, err)
		assert.Equal(t, `""`, l.String())
	})

	t.Run("invalid utf8", func(t *testing.T) {
		_, err := NewLiteral("bad \xff byte")
		var mle *MalformedLiteralError
		require.True(t, errors.As(err, &mle))
		assert.Equal(t, "invalid UTF-8", mle.Reason)
	})

	t.Run("lang tag", func(t *testing.T) {
		l, err := NewLangLiteral("colour", "en-GB")
		require.NoError(t, err)
		assert.Equal(t, `"colour"@en-GB`, l.String())

		_, err = NewLangLiteral("colour", "en GB")
		assert.Error(t, err)
	})

	t.Run("datatype", func(t *testing.T) {
		l, err := NewTypedLiteral("true", XSDBoolean)
		require.NoError(t, err)
		assert.Equal(t, XSDBoolean, l.Datatype)

		_, err = NewTypedLiteral("x", "")
		assert.Error(t, err)

		_, err = NewTypedLiteral("x", RDFLangString)
		assert.Error(t, err)
	})
}

func TestTripleValidate(t *testing.T) {
	_, err := NewTriple(IRI(""), "http://purl.org/dc/terms/title", Literal{Value: "bar"})
	require.NoError(t, err)

	_, err = NewTriple(Literal{Value: "x"}, "http://purl.org/dc/terms/title", Literal{Value: "bar"})
	assert.Error(t, err)

	_, err = NewTriple(IRI(""), "", Literal{Value: "bar"})
	assert.Error(t, err)

	_, err = NewTriple(nil, "p", IRI("o"))
	assert.Error(t, err)

	tr := Triple{Subject: IRI("s"), Predicate: "p", Object: Literal{Value: "o"}}
	assert.Equal(t, `<s> <p> "o" .`, tr.String())
}
