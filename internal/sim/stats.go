package sim

// SpeciesCount breaks a population down by sex.
type SpeciesCount struct {
	Total   int `json:"total"`
	Males   int `json:"males"`
	Females int `json:"females"`
}

// Stats is the per-turn statistics snapshot.
type Stats struct {
	Turn       int          `json:"turn"`
	Predators  SpeciesCount `json:"predators"`
	Prey       SpeciesCount `json:"prey"`
	Scavengers SpeciesCount `json:"scavengers"`
	Corpses    int          `json:"corpses"`
	Mutated    int          `json:"mutated"`

	// Cumulative resource consumption since initialization.
	WaterConsumed int `json:"water_consumed"`
	FoodConsumed  int `json:"food_consumed"`
}

// Outcome classifies the simulation result from population counts alone.
type Outcome string

const (
	OutcomeOngoing      Outcome = "ongoing"
	OutcomePredatorsWin Outcome = "predators"
	OutcomePreyWin      Outcome = "prey"
	OutcomeMutualLoss   Outcome = "none"
)

// Winner derives the extinction classification. Predators "win" when the
// prey die out and vice versa; both at zero is a mutual loss.
func (s Stats) Winner() Outcome {
	switch {
	case s.Predators.Total == 0 && s.Prey.Total == 0:
		return OutcomeMutualLoss
	case s.Prey.Total == 0:
		return OutcomePredatorsWin
	case s.Predators.Total == 0:
		return OutcomePreyWin
	}
	return OutcomeOngoing
}
