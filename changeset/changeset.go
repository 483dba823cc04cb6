// Package changeset computes the per-predicate deletions and insertions
// needed to push locally changed attributes of a resource to its remote
// graph.
//
// Every changed attribute produces one Change. Its deletion pattern clears
// all existing values for the (subject, predicate) pair, and its insertions
// hold the attribute's current values. Updates therefore replace the whole
// value set of a predicate instead of diffing individual values.
//
// Changes are built fresh for each update and hold no references back into
// the resource, so they can be rendered after the resource moves on.
package changeset

import (
	"fmt"
	"iter"

	"github.com/c360studio/semdelta/rdf"
)

// Mapping describes how an attribute is stored in the graph.
type Mapping struct {
	// Predicate is the absolute IRI the attribute is stored under.
	Predicate rdf.IRI

	// Lang is attached to literal values when set.
	Lang string

	// Datatype is attached to literal values when set and Lang is empty.
	Datatype rdf.IRI

	// Reference marks attributes whose string values are identifiers of
	// other managed resources.
	Reference bool
}

// PredicateResolver maps attribute names to their graph mapping.
type PredicateResolver interface {
	ResolvePredicate(attribute string) (Mapping, bool)
}

// ValueReader returns the current in-memory values of an attribute.
// Single-valued attributes return a one-element slice, and nil entries mean
// "no value in this slot".
type ValueReader interface {
	Values(attribute string) []any
}

// ResourceIdentity names the resource being updated and resolves the
// identifiers of resources it refers to.
type ResourceIdentity interface {
	// SubjectURI returns the resource URI, or the empty IRI when the
	// resource has not been persisted yet.
	SubjectURI() rdf.IRI

	// ReferenceURI resolves the identifier of another managed resource to
	// its absolute URI.
	ReferenceURI(id string) (rdf.IRI, error)
}

// GraphReader is the read side of the resource's triple graph.
type GraphReader interface {
	Match(subject rdf.Term, predicate rdf.IRI, object rdf.Term) iter.Seq[rdf.Triple]
}

// Identified is implemented by values that are themselves managed resources.
// An empty IRI with a nil error means there is no resource in the slot.
type Identified interface {
	URI() (rdf.IRI, error)
}

// Pattern is a deletion pattern whose object position is a variable.
type Pattern struct {
	Subject   rdf.Term
	Predicate rdf.IRI
}

// Change groups the deletion and insertions for one changed attribute.
type Change struct {
	// Attribute is the changed attribute name.
	Attribute string

	// Predicate is the IRI the attribute maps to.
	Predicate rdf.IRI

	// Delete clears every existing value of Predicate on the subject.
	Delete Pattern

	// Insert holds the attribute's current values, in value order.
	Insert []rdf.Triple

	// Removed lists the triples the local graph held for the pattern when
	// the change was built. It is empty when no graph was supplied.
	Removed []rdf.Triple
}

// UnmappedAttributeError reports a changed attribute with no predicate. It is
// a configuration error and is never retried.
type UnmappedAttributeError struct {
	Attribute string
}

func (e *UnmappedAttributeError) Error() string {
	return fmt.Sprintf("attribute %q has no registered predicate", e.Attribute)
}

// ChangeSet builds Changes for one resource.
type ChangeSet struct {
	identity ResourceIdentity
	resolver PredicateResolver
	reader   ValueReader
	graph    GraphReader
}

// Option configures a ChangeSet.
type Option func(*ChangeSet)

// WithGraph supplies the resource's current graph so Changes can report the
// triples their deletion pattern removes.
func WithGraph(g GraphReader) Option {
	return func(cs *ChangeSet) {
		cs.graph = g
	}
}

// New creates a ChangeSet over the given collaborators.
func New(identity ResourceIdentity, resolver PredicateResolver, reader ValueReader, opts ...Option) *ChangeSet {
	cs := &ChangeSet{
		identity: identity,
		resolver: resolver,
		reader:   reader,
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// Build returns one Change per changed attribute, in first-seen order.
// Duplicate names are dropped. Two attributes that share a predicate still
// produce two Changes.
//
// Any error aborts the whole build and no Changes are returned.
func (cs *ChangeSet) Build(changed []string) ([]Change, error) {
	names := Dedupe(changed)
	subject := cs.identity.SubjectURI()

	changes := make([]Change, 0, len(names))
	for _, name := range names {
		mapping, ok := cs.resolver.ResolvePredicate(name)
		if !ok || mapping.Predicate.IsEmpty() {
			return nil, &UnmappedAttributeError{Attribute: name}
		}

		change := Change{
			Attribute: name,
			Predicate: mapping.Predicate,
			Delete:    Pattern{Subject: subject, Predicate: mapping.Predicate},
		}

		for _, value := range cs.reader.Values(name) {
			object, err := cs.object(mapping, value)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", name, err)
			}
			if object == nil {
				continue
			}
			change.Insert = append(change.Insert, rdf.Triple{
				Subject:   subject,
				Predicate: mapping.Predicate,
				Object:    object,
			})
		}

		if cs.graph != nil {
			for t := range cs.graph.Match(subject, mapping.Predicate, nil) {
				change.Removed = append(change.Removed, t)
			}
		}

		changes = append(changes, change)
	}
	return changes, nil
}

// Dedupe drops repeated names, keeping first-seen order.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
