// Package resource holds the in-memory state of one managed resource: its
// attribute values, which of them changed since the last save, and the
// triple graph last persisted for it.
//
// A Resource is not safe for concurrent use.
package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/c360studio/semdelta/changeset"
	"github.com/c360studio/semdelta/graph"
	"github.com/c360studio/semdelta/model"
	"github.com/c360studio/semdelta/rdf"
	"github.com/c360studio/semdelta/storage"
)

// ContentSource returns the persisted N-Triples content of a resource.
// storage.ContentStore satisfies it.
type ContentSource interface {
	Get(ctx context.Context, id string) ([]byte, error)
}

// Resource is one record of a schema class.
type Resource struct {
	schema    *model.Schema
	namespace Namespace
	id        string
	persisted bool

	values  map[string][]any
	changed []string

	content ContentSource
	graph   *graph.Graph
}

// Option configures a Resource.
type Option func(*Resource)

// WithID assigns the identifier the resource will be stored under.
func WithID(id string) Option {
	return func(r *Resource) { r.id = id }
}

// WithContent supplies the accessor the graph is lazily loaded from.
func WithContent(src ContentSource) Option {
	return func(r *Resource) { r.content = src }
}

// New creates a resource that has not been persisted yet. Its subject
// renders as the relative IRI <> until MarkPersisted is called.
func New(schema *model.Schema, ns Namespace, opts ...Option) *Resource {
	r := &Resource{
		schema:    schema,
		namespace: ns,
		values:    make(map[string][]any),
		graph:     graph.New(graph.WithJournal()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open returns a handle on a persisted resource. Nothing is read until the
// graph or its values are needed.
func Open(schema *model.Schema, ns Namespace, id string, content ContentSource) (*Resource, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if _, err := ns.URI(id); err != nil {
		return nil, err
	}
	return &Resource{
		schema:    schema,
		namespace: ns,
		id:        id,
		persisted: true,
		values:    make(map[string][]any),
		content:   content,
	}, nil
}

// Schema returns the class schema.
func (r *Resource) Schema() *model.Schema { return r.schema }

// ID returns the identifier, which may be empty for a new resource.
func (r *Resource) ID() string { return r.id }

// Persisted reports whether the resource exists remotely.
func (r *Resource) Persisted() bool { return r.persisted }

// SubjectURI implements changeset.ResourceIdentity. New resources return
// the empty IRI.
func (r *Resource) SubjectURI() rdf.IRI {
	if !r.persisted {
		return ""
	}
	uri, err := r.namespace.URI(r.id)
	if err != nil {
		return ""
	}
	return uri
}

// URI implements changeset.Identified so resources can be assigned to
// reference attributes of other resources. The URI is known as soon as an
// identifier is assigned, before the resource is saved. A nil resource has
// no URI and no error.
func (r *Resource) URI() (rdf.IRI, error) {
	if r == nil {
		return "", nil
	}
	return r.namespace.URI(r.id)
}

// ReferenceURI implements changeset.ResourceIdentity.
func (r *Resource) ReferenceURI(id string) (rdf.IRI, error) {
	return r.namespace.URI(id)
}

// Set replaces the values of an attribute and marks it changed.
func (r *Resource) Set(attribute string, values ...any) error {
	p, ok := r.schema.Property(attribute)
	if !ok {
		return fmt.Errorf("class %s has no attribute %q", r.schema.Class(), attribute)
	}
	if !p.Multivalue && len(values) > 1 {
		return fmt.Errorf("attribute %q is single-valued, got %d values", attribute, len(values))
	}
	r.values[attribute] = slices.Clone(values)
	r.markChanged(attribute)
	return nil
}

// Clear empties an attribute and marks it changed. Triples for the
// attribute are dropped from the graph if it is loaded.
func (r *Resource) Clear(attribute string) error {
	m, ok := r.schema.ResolvePredicate(attribute)
	if !ok {
		return fmt.Errorf("class %s has no attribute %q", r.schema.Class(), attribute)
	}
	delete(r.values, attribute)
	r.markChanged(attribute)
	if r.graph != nil {
		r.graph.DeletePattern(r.SubjectURI(), m.Predicate, nil)
	}
	return nil
}

// Get returns a copy of an attribute's values.
func (r *Resource) Get(attribute string) []any {
	return slices.Clone(r.values[attribute])
}

// First returns the first value of an attribute, or nil.
func (r *Resource) First(attribute string) any {
	if v := r.values[attribute]; len(v) > 0 {
		return v[0]
	}
	return nil
}

// Values implements changeset.ValueReader.
func (r *Resource) Values(attribute string) []any {
	p, ok := r.schema.Property(attribute)
	if !ok {
		return nil
	}
	if !p.Multivalue {
		return []any{r.First(attribute)}
	}
	return r.Get(attribute)
}

func (r *Resource) markChanged(attribute string) {
	if !slices.Contains(r.changed, attribute) {
		r.changed = append(r.changed, attribute)
	}
}

// Changed returns the changed attribute names in the order they were
// first changed.
func (r *Resource) Changed() []string {
	return slices.Clone(r.changed)
}

// ContentChanged reports whether any attribute changed. It never loads
// persisted content.
func (r *Resource) ContentChanged() bool {
	return len(r.changed) > 0
}

// ClearChanged forgets the changed attributes.
func (r *Resource) ClearChanged() {
	r.changed = nil
}

// Graph returns the resource graph, loading persisted content on first
// use. Missing content yields an empty graph.
func (r *Resource) Graph(ctx context.Context) (*graph.Graph, error) {
	if r.graph != nil {
		return r.graph, nil
	}
	g := graph.New(graph.WithJournal())
	if r.content != nil && r.persisted {
		data, err := r.content.Get(ctx, r.id)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("load content of %s: %w", r.id, err)
		default:
			if err := graph.ParseInto(g, data); err != nil {
				return nil, fmt.Errorf("load content of %s: %w", r.id, err)
			}
		}
	}
	r.graph = g
	return g, nil
}

// Reload reads every schema attribute from the graph, replacing the
// in-memory values and forgetting pending changes.
func (r *Resource) Reload(ctx context.Context) error {
	g, err := r.Graph(ctx)
	if err != nil {
		return err
	}
	subject := r.SubjectURI()
	values := make(map[string][]any)
	for _, name := range r.schema.Fields() {
		m, ok := r.schema.ResolvePredicate(name)
		if !ok {
			continue
		}
		for _, object := range g.Objects(subject, m.Predicate) {
			values[name] = append(values[name], r.value(m, object))
		}
	}
	r.values = values
	r.changed = nil
	return nil
}

// value turns a graph object back into an attribute value. Plain literals
// become strings and references inside the namespace become identifiers.
func (r *Resource) value(m changeset.Mapping, object rdf.Term) any {
	switch o := object.(type) {
	case rdf.Literal:
		if o.Lang == "" && (o.Datatype == "" || o.Datatype == rdf.XSDString) {
			return o.Value
		}
		if m.Lang != "" && o.Lang == m.Lang {
			return o.Value
		}
		if m.Datatype != "" && o.Datatype == m.Datatype {
			return o.Value
		}
		return o
	case rdf.IRI:
		if m.Reference {
			if id, ok := r.namespace.ID(o); ok {
				return id
			}
		}
		return o
	default:
		return object
	}
}

// Build computes the change set for the changed attributes against the
// current graph.
func (r *Resource) Build(ctx context.Context) ([]changeset.Change, error) {
	g, err := r.Graph(ctx)
	if err != nil {
		return nil, err
	}
	return changeset.New(r, r.schema, r, changeset.WithGraph(g)).Build(r.changed)
}

// Apply brings the local graph in line with changes that were accepted
// remotely. The graph journal is reset first, so afterwards it holds
// exactly the effective mutations of this call.
func (r *Resource) Apply(ctx context.Context, changes []changeset.Change) error {
	g, err := r.Graph(ctx)
	if err != nil {
		return err
	}
	g.Journal().Reset()
	for _, c := range changes {
		g.DeletePattern(c.Delete.Subject, c.Delete.Predicate, nil)
		g.Insert(c.Insert...)
	}
	return nil
}

// MarkPersisted records that a new resource was created under id. Graph
// statements about the relative subject are moved to the resource URI.
func (r *Resource) MarkPersisted(id string) error {
	if id == "" {
		id = r.id
	}
	uri, err := r.namespace.URI(id)
	if err != nil {
		return err
	}
	r.id = id
	r.persisted = true
	if r.graph == nil {
		return nil
	}

	var relative []rdf.Triple
	for t := range r.graph.Match(rdf.IRI(""), "", nil) {
		relative = append(relative, t)
	}
	for _, t := range relative {
		r.graph.Delete(t)
		t.Subject = uri
		r.graph.Insert(t)
	}
	return nil
}
