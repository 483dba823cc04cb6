package export_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/c360studio/semdelta/export"
	"github.com/c360studio/semdelta/graph"
)

const bookContent = `<http://localhost:8983/fedora/rest/test/book1> <http://purl.org/dc/terms/title> "Auth \"quoted\"" .
<http://localhost:8983/fedora/rest/test/book1> <http://fedora.info/definitions/v4/rels-ext#hasConstituent> <http://localhost:8983/fedora/rest/test/lib1> .
<http://localhost:8983/fedora/rest/test/book1> <http://example.org/terms/pages> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
<http://localhost:8983/fedora/rest/test/lib1> <http://purl.org/dc/terms/title> "Bibliothek"@de .
`

func bookGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Parse([]byte(bookContent))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return g
}

func TestExportTurtle(t *testing.T) {
	output, err := export.NewExporter().Export(bookGraph(t), export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := []string{
		"@prefix dc: <http://purl.org/dc/terms/> .\n",
		"@prefix rels: <http://fedora.info/definitions/v4/rels-ext#> .\n",
		"<http://localhost:8983/fedora/rest/test/book1>\n    dc:title \"Auth \\\"quoted\\\"\" ;\n",
		"    rels:hasConstituent <http://localhost:8983/fedora/rest/test/lib1> ;\n",
		"    <http://example.org/terms/pages> \"42\"^^xsd:integer .\n",
		"<http://localhost:8983/fedora/rest/test/lib1>\n    dc:title \"Bibliothek\"@de .\n",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("Turtle output missing %q\n%s", w, output)
		}
	}

	// Prefix declarations are sorted
	if strings.Index(output, "@prefix dc:") > strings.Index(output, "@prefix rels:") {
		t.Error("prefixes should be sorted")
	}
}

func TestExportTurtleCustomPrefix(t *testing.T) {
	exporter := export.NewExporter()
	exporter.SetPrefix("ex", "http://example.org/terms/")

	output, err := exporter.Export(bookGraph(t), export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(output, "    ex:pages \"42\"^^xsd:integer .\n") {
		t.Errorf("expected custom prefix to be used:\n%s", output)
	}
}

func TestExportTurtleLocalNames(t *testing.T) {
	g, err := graph.Parse([]byte(`<http://example.org/a> <http://purl.org/dc/terms/-x> "1" .
<http://example.org/a> <http://purl.org/dc/terms/is-part> "2" .
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	output, err := export.NewExporter().Export(g, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(output, "dc:-x") {
		t.Errorf("local name starting with '-' must not be compacted:\n%s", output)
	}
	if !strings.Contains(output, "<http://purl.org/dc/terms/-x> \"1\"") {
		t.Errorf("expected full IRI for '-x':\n%s", output)
	}
	if !strings.Contains(output, "dc:is-part \"2\"") {
		t.Errorf("expected compacted dc:is-part:\n%s", output)
	}
}

func TestExportNTriples(t *testing.T) {
	output, err := export.NewExporter().Export(bookGraph(t), export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if output != bookContent {
		t.Errorf("N-Triples output should round trip:\n%s", output)
	}
}

func TestExportJSONLD(t *testing.T) {
	output, err := export.NewExporter().Export(bookGraph(t), export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc struct {
		Context map[string]string           `json:"@context"`
		Graph   []map[string]json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Context["dc"] != "http://purl.org/dc/terms/" {
		t.Errorf("expected dc prefix in context, got %v", doc.Context)
	}
	if len(doc.Graph) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Graph))
	}

	var pages []map[string]string
	if err := json.Unmarshal(doc.Graph[0]["http://example.org/terms/pages"], &pages); err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(pages) != 1 || pages[0]["@value"] != "42" || pages[0]["@type"] != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Errorf("unexpected pages value %v", pages)
	}

	var title []map[string]string
	if err := json.Unmarshal(doc.Graph[1]["http://purl.org/dc/terms/title"], &title); err != nil {
		t.Fatalf("title: %v", err)
	}
	if len(title) != 1 || title[0]["@language"] != "de" {
		t.Errorf("unexpected title value %v", title)
	}

	var library []map[string]string
	if err := json.Unmarshal(doc.Graph[0]["http://fedora.info/definitions/v4/rels-ext#hasConstituent"], &library); err != nil {
		t.Fatalf("library: %v", err)
	}
	if len(library) != 1 || library[0]["@id"] != "http://localhost:8983/fedora/rest/test/lib1" {
		t.Errorf("unexpected reference value %v", library)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := export.NewExporter().Export(graph.New(), export.Format("rdfxml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]export.Format{
		"turtle":   export.FormatTurtle,
		".ttl":     export.FormatTurtle,
		"nt":       export.FormatNTriples,
		"NTriples": export.FormatNTriples,
		"jsonld":   export.FormatJSONLD,
	}
	for in, want := range tests {
		got, err := export.ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := export.ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}

	info, ok := export.GetFormatInfo(export.FormatTurtle)
	if !ok || info.MIMEType != "text/turtle" {
		t.Errorf("unexpected format info %+v", info)
	}
}
