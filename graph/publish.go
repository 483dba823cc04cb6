package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/semdelta/rdf"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

// UpdateSubject is the subject SPARQL updates are published on.
const UpdateSubject = "graph.update.sparql"

// ErrNoPublisher is returned when publishing is not configured.
var ErrNoPublisher = errors.New("no stream publisher configured")

// UpdateMessage is the message format for a published update.
type UpdateMessage struct {
	ID string `json:"id"`

	// Subject is the resource URI, empty for a resource that does not
	// exist yet.
	Subject string `json:"subject"`

	// Predicates lists the predicates the update replaces, in change order.
	Predicates []string `json:"predicates"`

	// Update is the SPARQL Update request body.
	Update    string    `json:"update"`
	CreatedAt time.Time `json:"created_at"`
}

// StreamPublisher is the publishing side of JetStream.
type StreamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher sends updates to a JetStream subject.
type Publisher struct {
	js      StreamPublisher
	subject string
	now     func() time.Time
}

// NewPublisher creates a Publisher. An empty subject uses UpdateSubject.
func NewPublisher(js StreamPublisher, subject string) *Publisher {
	if subject == "" {
		subject = UpdateSubject
	}
	return &Publisher{js: js, subject: subject, now: time.Now}
}

// Subject returns the subject updates are published on.
func (p *Publisher) Subject() string {
	return p.subject
}

// Publish sends one update and returns the message that was acknowledged.
func (p *Publisher) Publish(ctx context.Context, subject rdf.IRI, predicates []rdf.IRI, update string) (UpdateMessage, error) {
	if p == nil || p.js == nil {
		return UpdateMessage{}, ErrNoPublisher
	}

	msg := UpdateMessage{
		ID:         uuid.NewString(),
		Subject:    string(subject),
		Predicates: make([]string, 0, len(predicates)),
		Update:     update,
		CreatedAt:  p.now().UTC(),
	}
	for _, pred := range predicates {
		msg.Predicates = append(msg.Predicates, string(pred))
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return UpdateMessage{}, fmt.Errorf("marshal update message: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.subject, data, jetstream.WithMsgID(msg.ID)); err != nil {
		return UpdateMessage{}, fmt.Errorf("publish update for %s: %w", subject, err)
	}
	return msg, nil
}
