package creature

import "github.com/talgya/wildgrid/internal/entropy"

// Mutation is a heritable trait modifier. A creature carries at most one,
// assigned at most once, immutable thereafter.
type Mutation uint8

const (
	MutationNone Mutation = iota
	MutationEfficientMetabolism
	MutationEnhancedStrength
	MutationThermalResistance
)

// String returns the mutation name for logs and events.
func (m Mutation) String() string {
	switch m {
	case MutationEfficientMetabolism:
		return "efficient_metabolism"
	case MutationEnhancedStrength:
		return "enhanced_strength"
	case MutationThermalResistance:
		return "thermal_resistance"
	}
	return "none"
}

// Multiplier returns the trait strength factor for the mutation.
// How the factor is applied depends on the mutation:
//   - EfficientMetabolism slows hunger/thirst accumulation by 1/multiplier.
//   - EnhancedStrength scales energy gained from food.
//   - ThermalResistance is a general resource-efficiency bonus.
func (m Mutation) Multiplier() float64 {
	switch m {
	case MutationEfficientMetabolism:
		return 1.3
	case MutationEnhancedStrength:
		return 1.5
	case MutationThermalResistance:
		return 1.4
	}
	return 1.0
}

// assignableMutations lists the non-None types eligible for random
// assignment, in a fixed order so seeded runs reproduce.
var assignableMutations = []Mutation{
	MutationEfficientMetabolism,
	MutationEnhancedStrength,
	MutationThermalResistance,
}

// RandomMutation picks one of the non-None mutation types uniformly.
func RandomMutation(rng *entropy.Source) Mutation {
	return assignableMutations[rng.Intn(len(assignableMutations))]
}

// MetabolicRate converts a base hunger/thirst increment into the
// mutation-adjusted rate. EfficientMetabolism divides the rate by its
// multiplier; the result never drops below 1 so every creature still ages.
func MetabolicRate(base int, m Mutation) int {
	if m != MutationEfficientMetabolism {
		return base
	}
	adjusted := int(float64(base) / m.Multiplier())
	if adjusted < 1 {
		adjusted = 1
	}
	return adjusted
}

// FeedingGain converts a base nutrition amount into the mutation-adjusted
// energy gain. EnhancedStrength scales food energy by its multiplier;
// ThermalResistance applies its factor as a general efficiency bonus.
func FeedingGain(base int, m Mutation) int {
	switch m {
	case MutationEnhancedStrength, MutationThermalResistance:
		return int(float64(base) * m.Multiplier())
	}
	return base
}
