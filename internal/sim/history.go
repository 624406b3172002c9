package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TurnRecord is one row of the turn log, appended after every committed
// turn. The csv tags drive the report export.
type TurnRecord struct {
	Turn       int     `csv:"turn" json:"turn"`
	Predators  int     `csv:"predators" json:"predators"`
	Prey       int     `csv:"prey" json:"prey"`
	Scavengers int     `csv:"scavengers" json:"scavengers"`
	Occupancy  float64 `csv:"occupancy" json:"occupancy"`

	// Energy distribution across all living creatures at turn end.
	EnergyMean float64 `csv:"energy_mean" json:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10" json:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50" json:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90" json:"energy_p90"`
}

// energySummary computes the mean and the 10th/50th/90th percentiles of a
// population's energy values. All zeros for an empty population.
func energySummary(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// History retains the most recent turn records, oldest evicted first.
type History struct {
	records  []TurnRecord
	capacity int
}

// NewHistory creates a history bounded to capacity records.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 10000
	}
	return &History{capacity: capacity}
}

// Append adds a record, evicting the oldest when full.
func (h *History) Append(r TurnRecord) {
	if len(h.records) >= h.capacity {
		copy(h.records, h.records[1:])
		h.records = h.records[:len(h.records)-1]
	}
	h.records = append(h.records, r)
}

// Records returns a copy of the retained records in turn order.
func (h *History) Records() []TurnRecord {
	out := make([]TurnRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of retained records.
func (h *History) Len() int {
	return len(h.records)
}

// Reset discards all records.
func (h *History) Reset() {
	h.records = h.records[:0]
}
