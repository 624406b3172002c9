package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/wildgrid/internal/creature"
	"github.com/talgya/wildgrid/internal/grid"
	"github.com/talgya/wildgrid/internal/sim"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateRunAssignsID(t *testing.T) {
	db := testDB(t)

	a, err := db.CreateRun(42)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	b, err := db.CreateRun(42)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if a == "" || a == b {
		t.Fatalf("run ids not unique: %q, %q", a, b)
	}
}

func TestTurnLogRoundTrip(t *testing.T) {
	db := testDB(t)
	runID, err := db.CreateRun(7)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	records := []sim.TurnRecord{
		{Turn: 1, Predators: 10, Prey: 20, Scavengers: 5, Occupancy: 0.35},
		{Turn: 2, Predators: 10, Prey: 19, Scavengers: 5, Occupancy: 0.34},
		{Turn: 3, Predators: 9, Prey: 19, Scavengers: 5, Occupancy: 0.33},
	}
	for _, r := range records {
		if err := db.AppendTurn(runID, r); err != nil {
			t.Fatalf("AppendTurn %d: %v", r.Turn, err)
		}
	}

	got, err := db.TurnLog(runID)
	if err != nil {
		t.Fatalf("TurnLog: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Turn != records[i].Turn || got[i].Prey != records[i].Prey {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestTurnLogIsolatedPerRun(t *testing.T) {
	db := testDB(t)
	runA, _ := db.CreateRun(1)
	runB, _ := db.CreateRun(2)

	db.AppendTurn(runA, sim.TurnRecord{Turn: 1, Prey: 5})
	db.AppendTurn(runB, sim.TurnRecord{Turn: 1, Prey: 9})

	got, err := db.TurnLog(runA)
	if err != nil {
		t.Fatalf("TurnLog: %v", err)
	}
	if len(got) != 1 || got[0].Prey != 5 {
		t.Fatalf("run A log = %+v", got)
	}
}

func TestFinishRun(t *testing.T) {
	db := testDB(t)
	runID, _ := db.CreateRun(7)

	if err := db.FinishRun(runID, 120, sim.OutcomePreyWin, 120, true); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	var outcome string
	var extTurn *int
	row := db.conn.QueryRow(`SELECT outcome, extinction_turn FROM runs WHERE id = ?`, runID)
	if err := row.Scan(&outcome, &extTurn); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if outcome != string(sim.OutcomePreyWin) {
		t.Errorf("outcome = %q", outcome)
	}
	if extTurn == nil || *extTurn != 120 {
		t.Errorf("extinction_turn = %v, want 120", extTurn)
	}
}

func TestFinishRunWithoutExtinction(t *testing.T) {
	db := testDB(t)
	runID, _ := db.CreateRun(7)

	if err := db.FinishRun(runID, 500, sim.OutcomeOngoing, 0, false); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	var extTurn *int
	row := db.conn.QueryRow(`SELECT extinction_turn FROM runs WHERE id = ?`, runID)
	if err := row.Scan(&extTurn); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if extTurn != nil {
		t.Errorf("extinction_turn = %v, want NULL", *extTurn)
	}
}

func TestSaveCensus(t *testing.T) {
	db := testDB(t)
	runID, _ := db.CreateRun(7)

	creatures := []*creature.Creature{
		{ID: 1, Species: grid.KindPredator, Sex: creature.SexMale,
			Pos: grid.Position{Row: 2, Col: 3}, Energy: 40, Age: 12},
		{ID: 2, Species: grid.KindPrey, Sex: creature.SexFemale,
			Pos: grid.Position{Row: 5, Col: 5}, Energy: 30, Age: 8,
			Mutation: creature.MutationEnhancedStrength},
	}
	if err := db.SaveCensus(runID, creatures); err != nil {
		t.Fatalf("SaveCensus: %v", err)
	}

	var count int
	if err := db.conn.Get(&count, `SELECT COUNT(*) FROM census WHERE run_id = ?`, runID); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("census rows = %d, want 2", count)
	}

	var mutation string
	row := db.conn.QueryRow(`SELECT mutation FROM census WHERE run_id = ? AND creature_id = 2`, runID)
	if err := row.Scan(&mutation); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if mutation != "enhanced_strength" {
		t.Errorf("mutation = %q", mutation)
	}
}
