// Package events provides the append-only, bounded record of structured
// turn events. Entries are insertion-ordered and never mutated after
// logging; when capacity is reached the oldest entry is evicted.
package events

import (
	"github.com/talgya/wildgrid/internal/creature"
	"github.com/talgya/wildgrid/internal/grid"
)

// Type tags the event kind.
type Type string

const (
	TypeMove     Type = "move"
	TypeDrink    Type = "drink"
	TypeEat      Type = "eat"
	TypeDeath    Type = "death"
	TypeBirth    Type = "birth"
	TypeMutation Type = "mutation"
)

// Event is one structured occurrence in a turn. Only the fields relevant
// to the type are populated.
type Event struct {
	Turn     int         `json:"turn"`
	Type     Type        `json:"type"`
	Creature creature.ID `json:"creature_id"`
	Species  grid.Kind   `json:"species"`

	// Movement: positions plus a physiological snapshot at the move.
	From grid.Position `json:"from,omitempty"`
	To   grid.Position `json:"to,omitempty"`

	Energy int `json:"energy"`
	Hunger int `json:"hunger"`
	Thirst int `json:"thirst"`

	// Consumption: need level before and after, at Pos.
	Before int           `json:"before,omitempty"`
	After  int           `json:"after,omitempty"`
	Pos    grid.Position `json:"pos,omitempty"`

	// Death.
	Cause string `json:"cause,omitempty"`

	// Birth.
	ParentA creature.ID `json:"parent_a,omitempty"`
	ParentB creature.ID `json:"parent_b,omitempty"`

	// Mutation activation.
	Mutation creature.Mutation `json:"mutation,omitempty"`
}

// DefaultCapacity bounds the logger for long-running simulations.
const DefaultCapacity = 5000

// Logger is the bounded append-only event record.
type Logger struct {
	entries  []Event
	capacity int
}

// NewLogger creates a logger retaining at most capacity entries. A
// non-positive capacity falls back to DefaultCapacity.
func NewLogger(capacity int) *Logger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Logger{
		entries:  make([]Event, 0, capacity),
		capacity: capacity,
	}
}

// Log appends an event, evicting the oldest entry when full. Overflow is
// never an error.
func (l *Logger) Log(e Event) {
	if len(l.entries) >= l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
}

// Entries returns all retained events in insertion order. The returned
// slice is a copy; logged events are never mutated.
func (l *Logger) Entries() []Event {
	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesByType returns the retained events of one type, in order.
func (l *Logger) EntriesByType(t Type) []Event {
	var out []Event
	for _, e := range l.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events are currently retained.
func (l *Logger) Count() int {
	return len(l.entries)
}

// Reset discards all retained events.
func (l *Logger) Reset() {
	l.entries = l.entries[:0]
}
