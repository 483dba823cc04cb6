// Package export serialises resource graphs for inspection.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semdelta/graph"
	"github.com/c360studio/semdelta/rdf"
	"github.com/c360studio/semdelta/vocabulary/fedora"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// Exporter serialises graphs with a set of namespace prefixes.
type Exporter struct {
	prefixes map[string]string
}

// NewExporter creates an exporter with the default prefixes.
func NewExporter() *Exporter {
	return &Exporter{prefixes: defaultPrefixes()}
}

// defaultPrefixes returns the namespace prefixes used for compact output.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"dc":     fedora.DcNamespace,
		"rels":   fedora.RelsExtNamespace,
		"fedora": fedora.ModelNamespace,
	}
}

// SetPrefix sets a namespace prefix.
func (e *Exporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// Export serializes g to the specified format.
func (e *Exporter) Export(g *graph.Graph, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(g), nil
	case FormatNTriples:
		return string(graph.Dump(g)), nil
	case FormatJSONLD:
		return e.toJSONLD(g)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// subjectGroup holds the triples of one subject in graph order.
type subjectGroup struct {
	subject rdf.Term
	triples []rdf.Triple
}

func groupBySubject(g *graph.Graph) []subjectGroup {
	var groups []subjectGroup
	index := make(map[rdf.Term]int)
	for t := range g.Triples() {
		i, ok := index[t.Subject]
		if !ok {
			i = len(groups)
			index[t.Subject] = i
			groups = append(groups, subjectGroup{subject: t.Subject})
		}
		groups[i].triples = append(groups[i].triples, t)
	}
	return groups
}

// toTurtle serializes to Turtle format.
func (e *Exporter) toTurtle(g *graph.Graph) string {
	var sb strings.Builder

	// Sort prefixes for consistent output
	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, e.prefixes[prefix])
	}

	for _, group := range groupBySubject(g) {
		sb.WriteString("\n")
		sb.WriteString(group.subject.String())
		sb.WriteString("\n")
		for i, t := range group.triples {
			sb.WriteString("    ")
			sb.WriteString(e.compact(t.Predicate))
			sb.WriteString(" ")
			sb.WriteString(e.turtleObject(t.Object))
			if i < len(group.triples)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
	}

	return sb.String()
}

func (e *Exporter) turtleObject(o rdf.Term) string {
	switch v := o.(type) {
	case rdf.IRI:
		return e.compact(v)
	case rdf.Literal:
		if v.Lang == "" && v.Datatype != "" && v.Datatype != rdf.XSDString {
			plain := rdf.Literal{Value: v.Value}
			return plain.String() + "^^" + e.compact(v.Datatype)
		}
		return v.String()
	default:
		return o.String()
	}
}

// compact writes an IRI as prefix:local when a prefix matches and the
// local part needs no escaping.
func (e *Exporter) compact(iri rdf.IRI) string {
	best := ""
	for prefix, ns := range e.prefixes {
		local, ok := strings.CutPrefix(string(iri), ns)
		if !ok || !isLocalName(local) {
			continue
		}
		if best == "" || len(ns) > len(e.prefixes[best]) || (len(ns) == len(e.prefixes[best]) && prefix < best) {
			best = prefix
		}
	}
	if best == "" {
		return iri.String()
	}
	return best + ":" + strings.TrimPrefix(string(iri), e.prefixes[best])
}

func isLocalName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		case r == '-' && i > 0:
		default:
			return false
		}
	}
	return true
}
