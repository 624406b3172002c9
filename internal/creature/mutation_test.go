package creature

import (
	"testing"

	"github.com/talgya/wildgrid/internal/entropy"
)

func TestMutationMultipliers(t *testing.T) {
	tests := []struct {
		m    Mutation
		want float64
	}{
		{MutationNone, 1.0},
		{MutationEfficientMetabolism, 1.3},
		{MutationEnhancedStrength, 1.5},
		{MutationThermalResistance, 1.4},
	}
	for _, tt := range tests {
		if got := tt.m.Multiplier(); got != tt.want {
			t.Errorf("%s multiplier = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestMetabolicRate(t *testing.T) {
	tests := []struct {
		name string
		base int
		m    Mutation
		want int
	}{
		{"no mutation", 2, MutationNone, 2},
		{"efficient metabolism slows accumulation", 2, MutationEfficientMetabolism, 1},
		{"strength does not affect metabolism", 2, MutationEnhancedStrength, 2},
		{"rate never drops below one", 1, MutationEfficientMetabolism, 1},
		{"larger base", 10, MutationEfficientMetabolism, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetabolicRate(tt.base, tt.m); got != tt.want {
				t.Errorf("MetabolicRate(%d, %s) = %d, want %d", tt.base, tt.m, got, tt.want)
			}
		})
	}
}

func TestFeedingGain(t *testing.T) {
	tests := []struct {
		name string
		base int
		m    Mutation
		want int
	}{
		{"no mutation", 30, MutationNone, 30},
		{"enhanced strength bonus", 30, MutationEnhancedStrength, 45},
		{"thermal resistance bonus", 30, MutationThermalResistance, 42},
		{"efficient metabolism has no feeding bonus", 30, MutationEfficientMetabolism, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FeedingGain(tt.base, tt.m); got != tt.want {
				t.Errorf("FeedingGain(%d, %s) = %d, want %d", tt.base, tt.m, got, tt.want)
			}
		})
	}
}

func TestRandomMutationDeterministicWithSeed(t *testing.T) {
	a := entropy.NewSource(99)
	b := entropy.NewSource(99)
	for i := 0; i < 20; i++ {
		ma, mb := RandomMutation(a), RandomMutation(b)
		if ma != mb {
			t.Fatalf("draw %d: %s != %s with identical seeds", i, ma, mb)
		}
		if ma == MutationNone {
			t.Fatal("RandomMutation must never return None")
		}
	}
}
