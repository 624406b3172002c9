package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/wildgrid/internal/sim"
)

func TestNilWriterIsSafe(t *testing.T) {
	w, err := NewWriter("", "run-1")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if w != nil {
		t.Fatal("empty base dir should disable output")
	}
	if err := w.WriteTurnLog(nil); err != nil {
		t.Errorf("nil writer WriteTurnLog: %v", err)
	}
	if err := w.WriteSummary(sim.Stats{}, 0, false); err != nil {
		t.Errorf("nil writer WriteSummary: %v", err)
	}
}

func TestWriteTurnLogCSV(t *testing.T) {
	base := t.TempDir()
	w, err := NewWriter(base, "run-abc")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	records := []sim.TurnRecord{
		{Turn: 1, Predators: 3, Prey: 8, Scavengers: 1, Occupancy: 0.12},
		{Turn: 2, Predators: 3, Prey: 7, Scavengers: 1, Occupancy: 0.11},
	}
	if err := w.WriteTurnLog(records); err != nil {
		t.Fatalf("WriteTurnLog: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "run-abc", "turn_log.csv"))
	if err != nil {
		t.Fatalf("reading turn_log.csv: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "turn") || !strings.Contains(content, "predators") {
		t.Errorf("csv header missing: %q", content)
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Errorf("csv has %d lines, want header + 2 rows", len(lines))
	}
}

func TestWriteSummaryIncludesExtinctionTurn(t *testing.T) {
	base := t.TempDir()
	w, err := NewWriter(base, "run-x")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	stats := sim.Stats{
		Turn:      77,
		Predators: sim.SpeciesCount{Total: 4},
	}
	if err := w.WriteSummary(stats, 77, true); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "run-x", "summary.txt"))
	if err != nil {
		t.Fatalf("reading summary.txt: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "extinction_turn: 77") {
		t.Errorf("summary missing extinction turn: %q", content)
	}
	if !strings.Contains(content, "outcome: predators") {
		t.Errorf("summary missing outcome: %q", content)
	}
}
