// Package persistence provides SQLite-based storage for simulation runs:
// run metadata, the per-turn log, and the final creature census.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/wildgrid/internal/creature"
	"github.com/talgya/wildgrid/internal/sim"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		outcome TEXT,
		extinction_turn INTEGER,
		final_turn INTEGER
	);

	CREATE TABLE IF NOT EXISTS turn_log (
		run_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		predators INTEGER NOT NULL,
		prey INTEGER NOT NULL,
		scavengers INTEGER NOT NULL,
		occupancy REAL NOT NULL,
		PRIMARY KEY (run_id, turn)
	);

	CREATE TABLE IF NOT EXISTS census (
		run_id TEXT NOT NULL,
		creature_id INTEGER NOT NULL,
		species TEXT NOT NULL,
		sex TEXT NOT NULL,
		row INTEGER NOT NULL,
		col INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		hunger INTEGER NOT NULL,
		thirst INTEGER NOT NULL,
		age INTEGER NOT NULL,
		mutation TEXT NOT NULL,
		PRIMARY KEY (run_id, creature_id)
	);

	CREATE INDEX IF NOT EXISTS idx_turn_log_run ON turn_log(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun registers a new simulation run and returns its identifier.
func (db *DB) CreateRun(seed int64) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)`,
		id, seed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// AppendTurn writes one turn-log record for the run.
func (db *DB) AppendTurn(runID string, r sim.TurnRecord) error {
	_, err := db.conn.Exec(
		`INSERT INTO turn_log (run_id, turn, predators, prey, scavengers, occupancy)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, r.Turn, r.Predators, r.Prey, r.Scavengers, r.Occupancy,
	)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", r.Turn, err)
	}
	return nil
}

// FinishRun records the run outcome: the final turn, the winner
// classification, and the extinction turn when one occurred.
func (db *DB) FinishRun(runID string, finalTurn int, outcome sim.Outcome, extinctionTurn int, extinct bool) error {
	var extTurn any
	if extinct {
		extTurn = extinctionTurn
	}
	_, err := db.conn.Exec(
		`UPDATE runs SET finished_at = ?, outcome = ?, extinction_turn = ?, final_turn = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), string(outcome), extTurn, finalTurn, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// SaveCensus writes the final creature population for the run.
func (db *DB) SaveCensus(runID string, creatures []*creature.Creature) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO census
		(run_id, creature_id, species, sex, row, col, energy, hunger, thirst, age, mutation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range creatures {
		_, err := stmt.Exec(
			runID, c.ID, c.Species.String(), c.Sex.String(),
			c.Pos.Row, c.Pos.Col, c.Energy, c.Hunger, c.Thirst,
			c.Age, c.Mutation.String(),
		)
		if err != nil {
			return fmt.Errorf("insert creature %d: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// TurnLog reads back the stored turn records of a run, in turn order.
func (db *DB) TurnLog(runID string) ([]sim.TurnRecord, error) {
	rows, err := db.conn.Queryx(
		`SELECT turn, predators, prey, scavengers, occupancy
		 FROM turn_log WHERE run_id = ? ORDER BY turn`, runID)
	if err != nil {
		return nil, fmt.Errorf("query turn log: %w", err)
	}
	defer rows.Close()

	var out []sim.TurnRecord
	for rows.Next() {
		var r sim.TurnRecord
		if err := rows.Scan(&r.Turn, &r.Predators, &r.Prey, &r.Scavengers, &r.Occupancy); err != nil {
			return nil, fmt.Errorf("scan turn record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
