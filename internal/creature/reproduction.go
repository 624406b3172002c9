package creature

import (
	"github.com/talgya/wildgrid/internal/entropy"
	"github.com/talgya/wildgrid/internal/grid"
)

// MateReason reports why two creatures cannot mate. ReasonOK means they
// can. The checks run in a fixed order so a failing pair always yields
// the same single reason.
type MateReason uint8

const (
	ReasonOK MateReason = iota
	ReasonSameSex
	ReasonDifferentSpecies
	ReasonImmature
	ReasonOnCooldown
	ReasonInsufficientEnergy
)

// String returns the reason name for logs.
func (r MateReason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonSameSex:
		return "same_sex"
	case ReasonDifferentSpecies:
		return "different_species"
	case ReasonImmature:
		return "immature"
	case ReasonOnCooldown:
		return "on_cooldown"
	case ReasonInsufficientEnergy:
		return "insufficient_energy"
	}
	return "unknown"
}

// ReproductionRules holds the mating eligibility parameters.
type ReproductionRules struct {
	MaturityAge    int
	CooldownTurns  int
	MinEnergy      int
	MaxEnergy      int     // Offspring energy cap
	InitialEnergy  int     // Offspring starting energy
	MutationChance float64 // Per-birth mutation probability (when enabled)
}

// ReproductionManager evaluates mating eligibility and creates offspring.
type ReproductionManager struct {
	rules   ReproductionRules
	spawner *Spawner
	rng     *entropy.Source
}

// NewReproductionManager wires the mating rules to the shared spawner and
// random source.
func NewReproductionManager(rules ReproductionRules, spawner *Spawner, rng *entropy.Source) *ReproductionManager {
	return &ReproductionManager{rules: rules, spawner: spawner, rng: rng}
}

// CanMate checks every mating precondition in order: opposite sex, same
// species, both mature, both off cooldown, both with enough energy. The
// first failing check determines the returned reason.
func (m *ReproductionManager) CanMate(a, b *Creature) MateReason {
	if a.Sex == b.Sex {
		return ReasonSameSex
	}
	if a.Species != b.Species {
		return ReasonDifferentSpecies
	}
	if !a.Mature(m.rules.MaturityAge) || !b.Mature(m.rules.MaturityAge) {
		return ReasonImmature
	}
	if a.MatingCooldown > 0 || b.MatingCooldown > 0 {
		return ReasonOnCooldown
	}
	if a.Energy < m.rules.MinEnergy || b.Energy < m.rules.MinEnergy {
		return ReasonInsufficientEnergy
	}
	return ReasonOK
}

// Reproduce creates offspring at the given empty cell and applies the
// mating cost to both parents: energy halved, cooldown started. The
// offspring gets a random sex and, when mutations are enabled and the
// per-birth chance fires, a random mutation. Callers must have verified
// CanMate and that the offspring cell is empty.
func (m *ReproductionManager) Reproduce(a, b *Creature, offspringPos grid.Position, mutationsEnabled bool) *Creature {
	a.Energy /= 2
	b.Energy /= 2
	a.MatingCooldown = m.rules.CooldownTurns
	b.MatingCooldown = m.rules.CooldownTurns

	energy := m.rules.InitialEnergy
	if m.rules.MaxEnergy > 0 && energy > m.rules.MaxEnergy {
		energy = m.rules.MaxEnergy
	}
	child := m.spawner.Spawn(a.Species, offspringPos, energy)
	if mutationsEnabled && m.rng.Chance(m.rules.MutationChance) {
		child.Mutation = RandomMutation(m.rng)
	}
	return child
}
