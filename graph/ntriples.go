package graph

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/c360studio/semdelta/rdf"
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// replacementChar is substituted for byte sequences that are not valid UTF-8.
const replacementChar = "\uFFFD"

// Parse reads N-Triples content into a new graph.
//
// Reading is lenient about encoding: stored content written by older
// clients may contain bytes that are not valid UTF-8, and those are
// replaced with U+FFFD instead of failing the load. Syntax errors are
// still reported. Literals keep their lexical form and datatype exactly as
// stored. N-Quads graph labels are ignored.
func Parse(data []byte, opts ...Option) (*Graph, error) {
	g := New(opts...)
	if err := ParseInto(g, data); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseInto reads N-Triples content and inserts the statements into g.
func ParseInto(g *Graph, data []byte) error {
	clean := bytes.ToValidUTF8(data, []byte(replacementChar))
	reader := nquads.NewReader(bytes.NewReader(clean), true)
	for n := 1; ; n++ {
		q, err := reader.ReadQuad()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse n-triples statement %d: %w", n, err)
		}
		t, err := fromQuad(q)
		if err != nil {
			return fmt.Errorf("convert n-triples statement %d: %w", n, err)
		}
		g.Insert(t)
	}
}

// Dump serialises the graph as N-Triples, one statement per line, in
// insertion order.
func Dump(g *Graph) []byte {
	var buf bytes.Buffer
	for t := range g.Triples() {
		buf.WriteString(t.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func fromQuad(q quad.Quad) (rdf.Triple, error) {
	subject, err := fromValue(q.Subject)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("subject: %w", err)
	}
	predicate, ok := q.Predicate.(quad.IRI)
	if !ok {
		return rdf.Triple{}, fmt.Errorf("predicate must be an IRI, got %T", q.Predicate)
	}
	object, err := fromValue(q.Object)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("object: %w", err)
	}
	return rdf.NewTriple(subject, rdf.IRI(predicate), object)
}

func fromValue(v quad.Value) (rdf.Term, error) {
	switch v := v.(type) {
	case quad.IRI:
		return rdf.IRI(v), nil
	case quad.BNode:
		return rdf.BlankNode(v), nil
	case quad.String:
		return rdf.Literal{Value: string(v)}, nil
	case quad.LangString:
		return rdf.Literal{Value: string(v.Value), Lang: v.Lang}, nil
	case quad.TypedString:
		return rdf.Literal{Value: string(v.Value), Datatype: rdf.IRI(v.Type)}, nil
	case nil:
		return nil, errors.New("missing term")
	default:
		return nil, fmt.Errorf("unsupported term type %T", v)
	}
}
