// Package sparql renders change sets as SPARQL Update instructions for the
// repository's update endpoint.
//
// The layout is fixed and byte-for-byte reproducible:
//
//	DELETE { <s> <p1> ?change . }
//	  WHERE { <s> <p1> ?change . } ;
//	DELETE { <s> <p2> ?change . }
//	  WHERE { <s> <p2> ?change . } ;
//	INSERT {
//	<s> <p1> <o> .
//	<s> <p2> "literal" .
//	}
//	 WHERE { }
//
// One DELETE/WHERE pair is written per change, then a single INSERT holding
// every insertion triple, closed by an empty WHERE. Note the space after the
// INSERT brace and the absence of a trailing newline.
package sparql

import (
	"strings"

	"github.com/c360studio/semdelta/changeset"
	"github.com/c360studio/semdelta/rdf"
)

// changeVariable is the object variable used in deletion patterns.
const changeVariable = "?change"

// Render returns the update instruction for the changes, in order. An empty
// list yields an INSERT with no body.
func Render(changes []changeset.Change) string {
	var sb strings.Builder
	for _, c := range changes {
		writeDelete(&sb, c.Delete)
	}

	sb.WriteString("INSERT { \n")
	for _, c := range changes {
		for _, t := range c.Insert {
			writeTriple(&sb, t)
		}
	}
	sb.WriteString("}\n WHERE { }")
	return sb.String()
}

func writeDelete(sb *strings.Builder, p changeset.Pattern) {
	pattern := patternString(p)
	sb.WriteString("DELETE { ")
	sb.WriteString(pattern)
	sb.WriteString(" }\n  WHERE { ")
	sb.WriteString(pattern)
	sb.WriteString(" } ;\n")
}

func patternString(p changeset.Pattern) string {
	return subjectString(p.Subject) + " " + p.Predicate.String() + " " + changeVariable + " ."
}

func writeTriple(sb *strings.Builder, t rdf.Triple) {
	sb.WriteString(subjectString(t.Subject))
	sb.WriteByte(' ')
	sb.WriteString(t.Predicate.String())
	sb.WriteByte(' ')
	sb.WriteString(t.Object.String())
	sb.WriteString(" .\n")
}

// subjectString renders a missing subject as the resource itself.
func subjectString(s rdf.Term) string {
	if s == nil {
		return rdf.IRI("").String()
	}
	return s.String()
}
