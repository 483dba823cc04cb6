// Package updater saves managed resources: it turns the changed attributes
// of a resource into a SPARQL update, publishes it, and on success brings
// the local graph and persisted content in line with the remote state.
package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/c360studio/semdelta/changeset"
	"github.com/c360studio/semdelta/graph"
	"github.com/c360studio/semdelta/rdf"
	"github.com/c360studio/semdelta/resource"
	"github.com/c360studio/semdelta/sparql"
	"github.com/c360studio/semdelta/storage"
)

// Sink receives rendered updates. *graph.Publisher satisfies it.
type Sink interface {
	Publish(ctx context.Context, subject rdf.IRI, predicates []rdf.IRI, update string) (graph.UpdateMessage, error)
}

// Result describes a completed save.
type Result struct {
	// MessageID is the ID of the published update, empty when nothing was
	// saved.
	MessageID string
	Update    string
	Changes   int
}

// Updater saves resources through a Sink.
type Updater struct {
	sink    Sink
	store   storage.ContentStore
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures an Updater.
type Option func(*Updater)

// WithStore persists the re-serialised graph after each save.
func WithStore(store storage.ContentStore) Option {
	return func(u *Updater) { u.store = store }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Updater) { u.logger = logger }
}

// WithMetrics records saves on m.
func WithMetrics(m *Metrics) Option {
	return func(u *Updater) { u.metrics = m }
}

// New creates an Updater.
func New(sink Sink, opts ...Option) *Updater {
	u := &Updater{sink: sink}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}
	return u
}

// Preview renders the update Save would publish without sending it.
func (u *Updater) Preview(ctx context.Context, r *resource.Resource) (string, error) {
	changes, err := r.Build(ctx)
	if err != nil {
		return "", err
	}
	return sparql.Render(changes), nil
}

// Save publishes the changed attributes of r. It does nothing when no
// attribute changed. On failure r keeps its changed set so the save can be
// retried.
func (u *Updater) Save(ctx context.Context, r *resource.Resource) (Result, error) {
	if !r.ContentChanged() {
		u.logger.Debug("Nothing to save", "class", r.Schema().Class(), "id", r.ID())
		return Result{}, nil
	}

	changes, err := r.Build(ctx)
	if err != nil {
		u.metrics.failed(buildFailure(err))
		return Result{}, fmt.Errorf("build change set: %w", err)
	}

	update := sparql.Render(changes)
	predicates := make([]rdf.IRI, 0, len(changes))
	for _, c := range changes {
		predicates = append(predicates, c.Predicate)
	}

	if u.sink == nil {
		u.metrics.failed(FailurePublish)
		return Result{}, graph.ErrNoPublisher
	}
	msg, err := u.sink.Publish(ctx, r.SubjectURI(), predicates, update)
	if err != nil {
		u.metrics.failed(FailurePublish)
		return Result{}, err
	}
	u.metrics.published(len(changes))

	removed, inserted := 0, 0
	for _, c := range changes {
		removed += len(c.Removed)
		inserted += len(c.Insert)
	}
	u.logger.Info("Published update",
		"class", r.Schema().Class(),
		"subject", string(r.SubjectURI()),
		"message_id", msg.ID,
		"changes", len(changes),
		"removed", removed,
		"inserted", inserted)

	if err := r.Apply(ctx, changes); err != nil {
		return Result{}, fmt.Errorf("apply changes locally: %w", err)
	}
	u.logApplied(ctx, r)

	if !r.Persisted() {
		if r.ID() == "" {
			u.logger.Warn("New resource has no identifier, local content not persisted",
				"class", r.Schema().Class())
			r.ClearChanged()
			return Result{MessageID: msg.ID, Update: update, Changes: len(changes)}, nil
		}
		if err := r.MarkPersisted(r.ID()); err != nil {
			return Result{}, err
		}
	}

	if err := u.persist(ctx, r); err != nil {
		u.metrics.failed(FailurePersist)
		return Result{}, err
	}

	r.ClearChanged()
	return Result{MessageID: msg.ID, Update: update, Changes: len(changes)}, nil
}

// logApplied reports the effective local graph mutations of the last Apply.
func (u *Updater) logApplied(ctx context.Context, r *resource.Resource) {
	g, err := r.Graph(ctx)
	if err != nil {
		return
	}
	added, deleted := 0, 0
	for _, d := range g.Journal().Deltas() {
		switch d.Action {
		case graph.Add:
			added++
		case graph.Delete:
			deleted++
		}
	}
	u.logger.Debug("Applied update locally", "id", r.ID(), "added", added, "deleted", deleted)
}

func (u *Updater) persist(ctx context.Context, r *resource.Resource) error {
	if u.store == nil {
		return nil
	}
	g, err := r.Graph(ctx)
	if err != nil {
		return err
	}
	if err := u.store.Put(ctx, r.ID(), graph.Dump(g)); err != nil {
		return fmt.Errorf("persist content of %s: %w", r.ID(), err)
	}
	u.logger.Debug("Persisted content", "id", r.ID(), "triples", g.Len())
	return nil
}

func buildFailure(err error) string {
	var unmapped *changeset.UnmappedAttributeError
	var malformed *rdf.MalformedLiteralError
	switch {
	case errors.As(err, &unmapped):
		return FailureUnmapped
	case errors.As(err, &malformed):
		return FailureLiteral
	default:
		return FailureBuild
	}
}
