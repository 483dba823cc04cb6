package graph

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/c360studio/semdelta/rdf"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStream struct {
	subject string
	data    []byte
	err     error
}

func (r *recordingStream) Publish(_ context.Context, subject string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.subject = subject
	r.data = data
	return &jetstream.PubAck{Stream: "GRAPH", Sequence: 1}, nil
}

func TestPublisherPublish(t *testing.T) {
	stream := &recordingStream{}
	p := NewPublisher(stream, "")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	update := "INSERT { \n<> <http://purl.org/dc/terms/title> \"bar\" .\n}\n WHERE { }"
	msg, err := p.Publish(context.Background(), "", []rdf.IRI{"http://purl.org/dc/terms/title"}, update)
	require.NoError(t, err)

	assert.Equal(t, UpdateSubject, stream.subject)
	_, err = uuid.Parse(msg.ID)
	assert.NoError(t, err)

	var got UpdateMessage
	require.NoError(t, json.Unmarshal(stream.data, &got))
	assert.Equal(t, msg, got)
	assert.Equal(t, "", got.Subject)
	assert.Equal(t, []string{"http://purl.org/dc/terms/title"}, got.Predicates)
	assert.Equal(t, update, got.Update)
	assert.Equal(t, fixed, got.CreatedAt)
}

func TestPublisherCustomSubject(t *testing.T) {
	stream := &recordingStream{}
	p := NewPublisher(stream, "repo.updates")
	assert.Equal(t, "repo.updates", p.Subject())

	_, err := p.Publish(context.Background(), "http://localhost:8983/fedora/rest/test/book1", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "repo.updates", stream.subject)
}

func TestPublisherErrors(t *testing.T) {
	var nilPublisher *Publisher
	_, err := nilPublisher.Publish(context.Background(), "", nil, "")
	assert.ErrorIs(t, err, ErrNoPublisher)

	_, err = NewPublisher(nil, "").Publish(context.Background(), "", nil, "")
	assert.ErrorIs(t, err, ErrNoPublisher)

	stream := &recordingStream{err: errors.New("no responders")}
	_, err = NewPublisher(stream, "").Publish(context.Background(), "", nil, "")
	assert.ErrorContains(t, err, "no responders")
}
