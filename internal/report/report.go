// Package report writes the per-run output directory: the turn log as
// CSV and the effective configuration for reproducibility.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/talgya/wildgrid/internal/config"
	"github.com/talgya/wildgrid/internal/sim"
)

// Writer owns one run's output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory for a run. Returns nil if base
// is empty (report output disabled); a nil Writer is safe to use.
func NewWriter(base, runID string) (*Writer, error) {
	if base == "" {
		return nil, nil
	}
	dir := filepath.Join(base, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the run's output directory.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// WriteConfig saves the effective configuration as YAML.
func (w *Writer) WriteConfig(cfg *config.Config) error {
	if w == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(w.dir, "config.yaml"))
}

// WriteTurnLog writes the complete turn log as CSV.
func (w *Writer) WriteTurnLog(records []sim.TurnRecord) error {
	if w == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(w.dir, "turn_log.csv"))
	if err != nil {
		return fmt.Errorf("creating turn_log.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("writing turn_log.csv: %w", err)
	}
	return nil
}

// WriteSummary appends the final outcome line, including the extinction
// turn when one occurred.
func (w *Writer) WriteSummary(stats sim.Stats, extinctionTurn int, extinct bool) error {
	if w == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(w.dir, "summary.txt"))
	if err != nil {
		return fmt.Errorf("creating summary.txt: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "final_turn: %d\n", stats.Turn)
	fmt.Fprintf(f, "outcome: %s\n", stats.Winner())
	if extinct {
		fmt.Fprintf(f, "extinction_turn: %d\n", extinctionTurn)
	}
	fmt.Fprintf(f, "predators: %d\nprey: %d\nscavengers: %d\n",
		stats.Predators.Total, stats.Prey.Total, stats.Scavengers.Total)
	fmt.Fprintf(f, "water_consumed: %d\nfood_consumed: %d\n",
		stats.WaterConsumed, stats.FoodConsumed)
	return nil
}
