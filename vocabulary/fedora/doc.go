// Package fedora provides vocabulary predicates for repository-managed
// resources: the rels-ext relationship predicates, the Fedora model
// predicate, and the Dublin Core descriptive terms.
//
// # Semstreams Integration
//
// Predicates use three-level dotted notation (fedora.category.property) and
// are registered in init() with vocabulary.Register(). Each registration
// carries the standard IRI via vocabulary.WithIRI(), which is what class
// schemas resolve to when rendering triples.
//
// # Usage
//
// Import the package for its side effect and refer to predicates by
// constant in a schema:
//
//	import "github.com/c360studio/semdelta/vocabulary/fedora"
//
//	schema := model.NewSchema("Book",
//	    model.Prop("library_id", fedora.RelsHasConstituent, model.Reference(), model.Single()),
//	    model.Prop("title", fedora.DcTitle),
//	)
package fedora
