package graph

import "github.com/c360studio/semdelta/rdf"

// Action is the kind of mutation a Delta records.
type Action int

const (
	// Add records an inserted triple.
	Add Action = iota
	// Delete records a removed triple.
	Delete
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Add:
		return "add"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Delta is one journal entry.
type Delta struct {
	Action Action
	Triple rdf.Triple
}

// Journal is an append-only log of effective graph mutations.
type Journal struct {
	deltas []Delta
}

func (j *Journal) record(action Action, t rdf.Triple) {
	if j == nil {
		return
	}
	j.deltas = append(j.deltas, Delta{Action: action, Triple: t})
}

// Deltas returns a copy of the recorded entries, oldest first.
func (j *Journal) Deltas() []Delta {
	if j == nil {
		return nil
	}
	out := make([]Delta, len(j.deltas))
	copy(out, j.deltas)
	return out
}

// Reset drops all recorded entries.
func (j *Journal) Reset() {
	if j == nil {
		return
	}
	j.deltas = j.deltas[:0]
}
