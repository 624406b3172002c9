package events

import (
	"testing"

	"github.com/talgya/wildgrid/internal/grid"
)

func TestLogPreservesInsertionOrder(t *testing.T) {
	l := NewLogger(10)
	for i := 1; i <= 5; i++ {
		l.Log(Event{Turn: i, Type: TypeMove})
	}

	entries := l.Entries()
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	for i, e := range entries {
		if e.Turn != i+1 {
			t.Errorf("entry %d has turn %d, want %d", i, e.Turn, i+1)
		}
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	l := NewLogger(3)
	for i := 1; i <= 5; i++ {
		l.Log(Event{Turn: i, Type: TypeMove})
	}

	if l.Count() != 3 {
		t.Fatalf("count = %d, want 3", l.Count())
	}
	entries := l.Entries()
	if entries[0].Turn != 3 || entries[2].Turn != 5 {
		t.Errorf("retained turns %d..%d, want 3..5", entries[0].Turn, entries[2].Turn)
	}
}

func TestEntriesByType(t *testing.T) {
	l := NewLogger(10)
	l.Log(Event{Turn: 1, Type: TypeMove})
	l.Log(Event{Turn: 1, Type: TypeDeath, Cause: "starvation"})
	l.Log(Event{Turn: 2, Type: TypeMove})
	l.Log(Event{Turn: 2, Type: TypeBirth})

	moves := l.EntriesByType(TypeMove)
	if len(moves) != 2 {
		t.Fatalf("got %d move events, want 2", len(moves))
	}
	deaths := l.EntriesByType(TypeDeath)
	if len(deaths) != 1 || deaths[0].Cause != "starvation" {
		t.Fatalf("death events = %+v", deaths)
	}
	if got := l.EntriesByType(TypeMutation); len(got) != 0 {
		t.Fatalf("got %d mutation events, want 0", len(got))
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := NewLogger(10)
	l.Log(Event{Turn: 1, Type: TypeMove, From: grid.Position{Row: 1, Col: 1}})

	entries := l.Entries()
	entries[0].Turn = 99

	if l.Entries()[0].Turn != 1 {
		t.Fatal("mutating the returned slice changed the logged event")
	}
}

func TestReset(t *testing.T) {
	l := NewLogger(10)
	l.Log(Event{Turn: 1, Type: TypeMove})
	l.Reset()

	if l.Count() != 0 {
		t.Fatalf("count after reset = %d, want 0", l.Count())
	}
}
