// Package graph provides the in-memory triple graph a resource keeps as its
// view of the remote repository, plus the codec and transport used to load
// it and to ship updates for it.
//
// A Graph is a set: inserting a triple that is already present is a no-op.
// Triples are indexed by (subject, predicate) so the deletion patterns used
// by change sets resolve with a single lookup. Iteration follows insertion
// order, which keeps serialised output reproducible.
//
// A Graph is not safe for concurrent mutation. Callers that share one across
// goroutines must serialise writes and must not mutate it while a Match
// sequence is being consumed.
package graph

import (
	"iter"

	"github.com/c360studio/semdelta/rdf"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type indexKey struct {
	subject   rdf.Term
	predicate rdf.IRI
}

type objectSet = orderedmap.OrderedMap[rdf.Term, struct{}]

// Graph is an indexed set of triples.
type Graph struct {
	index   *orderedmap.OrderedMap[indexKey, *objectSet]
	size    int
	journal *Journal
}

// Option configures a Graph.
type Option func(*Graph)

// WithJournal records every effective insert and delete in a Journal.
func WithJournal() Option {
	return func(g *Graph) {
		g.journal = &Journal{}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		index: orderedmap.New[indexKey, *objectSet](),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return g.size
}

// Journal returns the change log, or nil if the graph was created without
// WithJournal.
func (g *Graph) Journal() *Journal {
	return g.journal
}

// Insert adds triples to the graph and returns how many were new.
// Triples with a nil subject or object or an empty predicate are skipped.
func (g *Graph) Insert(triples ...rdf.Triple) int {
	added := 0
	for _, t := range triples {
		if t.Validate() != nil {
			continue
		}
		k := indexKey{subject: t.Subject, predicate: t.Predicate}
		objects, ok := g.index.Get(k)
		if !ok {
			objects = orderedmap.New[rdf.Term, struct{}]()
			g.index.Set(k, objects)
		}
		if _, present := objects.Set(t.Object, struct{}{}); present {
			continue
		}
		g.size++
		added++
		g.journal.record(Add, t)
	}
	return added
}

// Contains reports whether the exact triple is in the graph.
func (g *Graph) Contains(t rdf.Triple) bool {
	objects, ok := g.index.Get(indexKey{subject: t.Subject, predicate: t.Predicate})
	if !ok {
		return false
	}
	_, ok = objects.Get(t.Object)
	return ok
}

// Delete removes one triple and reports whether it was present.
func (g *Graph) Delete(t rdf.Triple) bool {
	k := indexKey{subject: t.Subject, predicate: t.Predicate}
	objects, ok := g.index.Get(k)
	if !ok {
		return false
	}
	if _, present := objects.Delete(t.Object); !present {
		return false
	}
	if objects.Len() == 0 {
		g.index.Delete(k)
	}
	g.size--
	g.journal.record(Delete, t)
	return true
}

// DeletePattern removes every triple matching the pattern and returns the
// number removed. Wildcards follow the same rules as Match.
func (g *Graph) DeletePattern(subject rdf.Term, predicate rdf.IRI, object rdf.Term) int {
	// Collect first: Match is lazy and reads the index being modified.
	var doomed []rdf.Triple
	for t := range g.Match(subject, predicate, object) {
		doomed = append(doomed, t)
	}
	for _, t := range doomed {
		g.Delete(t)
	}
	return len(doomed)
}

// Match returns the triples matching the pattern. A nil subject, an empty
// predicate or a nil object matches anything in that position. An empty
// result is not an error.
func (g *Graph) Match(subject rdf.Term, predicate rdf.IRI, object rdf.Term) iter.Seq[rdf.Triple] {
	return func(yield func(rdf.Triple) bool) {
		if subject != nil && predicate != "" {
			objects, ok := g.index.Get(indexKey{subject: subject, predicate: predicate})
			if !ok {
				return
			}
			yieldObjects(subject, predicate, objects, object, yield)
			return
		}

		for pair := g.index.Oldest(); pair != nil; pair = pair.Next() {
			k := pair.Key
			if subject != nil && k.subject != subject {
				continue
			}
			if predicate != "" && k.predicate != predicate {
				continue
			}
			if !yieldObjects(k.subject, k.predicate, pair.Value, object, yield) {
				return
			}
		}
	}
}

// yieldObjects emits the triples for one index entry and reports whether
// the consumer wants more.
func yieldObjects(subject rdf.Term, predicate rdf.IRI, objects *objectSet, object rdf.Term, yield func(rdf.Triple) bool) bool {
	if object != nil {
		if _, ok := objects.Get(object); ok {
			return yield(rdf.Triple{Subject: subject, Predicate: predicate, Object: object})
		}
		return true
	}
	for o := objects.Oldest(); o != nil; o = o.Next() {
		if !yield(rdf.Triple{Subject: subject, Predicate: predicate, Object: o.Key}) {
			return false
		}
	}
	return true
}

// Objects returns the objects of every triple with the given subject and
// predicate, in insertion order.
func (g *Graph) Objects(subject rdf.Term, predicate rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for t := range g.Match(subject, predicate, nil) {
		out = append(out, t.Object)
	}
	return out
}

// Triples returns every triple in the graph.
func (g *Graph) Triples() iter.Seq[rdf.Triple] {
	return g.Match(nil, "", nil)
}

// Clone returns a copy of the graph without its journal.
func (g *Graph) Clone() *Graph {
	c := New()
	for t := range g.Triples() {
		c.Insert(t)
	}
	return c
}
