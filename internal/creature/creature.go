// Package creature provides the creature data model, the mutation system,
// corpse lifecycle, and reproduction rules.
package creature

import (
	"github.com/talgya/wildgrid/internal/grid"
)

// ID is a unique identifier for a creature. IDs are assigned in creation
// order and never reused, which also fixes the per-turn iteration order.
type ID uint64

// Sex represents biological sex for the mating rules.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// String returns the sex name for logs.
func (s Sex) String() string {
	if s == SexFemale {
		return "female"
	}
	return "male"
}

// Creature is a single simulated organism. Identity fields (ID, Species,
// Sex) never change after creation; Mutation never changes once set to a
// non-None value.
type Creature struct {
	ID      ID            `json:"id"`
	Species grid.Kind     `json:"species"` // KindPredator, KindPrey, or KindScavenger
	Sex     Sex           `json:"sex"`
	Pos     grid.Position `json:"pos"`

	Energy int `json:"energy"` // Non-negative; death at 0
	Hunger int `json:"hunger"` // 0 (sated) to 100
	Thirst int `json:"thirst"` // 0 (sated) to 100

	Age            int `json:"age"`             // Turns alive
	MatingCooldown int `json:"mating_cooldown"` // Mating allowed only at 0
	StarvingTurns  int `json:"starving_turns"`  // Consecutive turns at maximal hunger

	Mutation Mutation `json:"mutation"`
	Alive    bool     `json:"alive"`
}

// Mature reports whether the creature has reached mating age.
func (c *Creature) Mature(maturityAge int) bool {
	return c.Age >= maturityAge
}

// AddEnergy raises energy, clamped to the cap.
func (c *Creature) AddEnergy(amount, max int) {
	c.Energy += amount
	if c.Energy > max {
		c.Energy = max
	}
}

// DrainEnergy lowers energy, clamped at zero.
func (c *Creature) DrainEnergy(amount int) {
	c.Energy -= amount
	if c.Energy < 0 {
		c.Energy = 0
	}
}

// RelieveHunger lowers hunger, clamped at zero, and resets the
// starvation counter.
func (c *Creature) RelieveHunger(amount int) {
	c.Hunger -= amount
	if c.Hunger < 0 {
		c.Hunger = 0
	}
	c.StarvingTurns = 0
}

// RelieveThirst lowers thirst, clamped at zero.
func (c *Creature) RelieveThirst(amount int) {
	c.Thirst -= amount
	if c.Thirst < 0 {
		c.Thirst = 0
	}
}
