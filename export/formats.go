package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c360studio/semdelta/graph"
	"github.com/c360studio/semdelta/rdf"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for name, info := range FormatRegistry {
		if s == string(name) || s == info.Extension || "."+s == info.Extension {
			return name, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+1)
	m["@id"] = n.ID
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// toJSONLD serializes to expanded JSON-LD with one node per subject.
func (e *Exporter) toJSONLD(g *graph.Graph) (string, error) {
	doc := JSONLDDocument{
		Context: make(map[string]any, len(e.prefixes)),
		Graph:   make([]JSONLDNode, 0),
	}
	for k, v := range e.prefixes {
		doc.Context[k] = v
	}

	for _, group := range groupBySubject(g) {
		node := JSONLDNode{
			ID:         nodeID(group.subject),
			Properties: make(map[string]any),
		}
		for _, t := range group.triples {
			key := string(t.Predicate)
			values, _ := node.Properties[key].([]any)
			node.Properties[key] = append(values, jsonLDValue(t.Object))
		}
		doc.Graph = append(doc.Graph, node)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(data), nil
}

func nodeID(t rdf.Term) string {
	switch v := t.(type) {
	case rdf.IRI:
		return string(v)
	default:
		return t.String()
	}
}

func jsonLDValue(o rdf.Term) map[string]string {
	switch v := o.(type) {
	case rdf.IRI:
		return map[string]string{"@id": string(v)}
	case rdf.BlankNode:
		return map[string]string{"@id": v.String()}
	case rdf.Literal:
		m := map[string]string{"@value": v.Value}
		switch {
		case v.Lang != "":
			m["@language"] = v.Lang
		case v.Datatype != "":
			m["@type"] = string(v.Datatype)
		}
		return m
	default:
		return map[string]string{"@value": o.String()}
	}
}
