package creature

import "github.com/talgya/wildgrid/internal/grid"

// Corpse is the remains of a dead creature, consumable by scavengers
// until its decay countdown expires. Created exactly once per death, at
// the creature's last position.
type Corpse struct {
	OriginID ID            `json:"origin_id"`
	Species  grid.Kind     `json:"species"`
	Sex      Sex           `json:"sex"`
	Pos      grid.Position `json:"pos"`

	DecayLeft int  `json:"decay_left"`
	Nutrition int  `json:"nutrition"` // Strictly positive until consumed or decayed
	Consumed  bool `json:"consumed"`
}

// CorpseNutrition holds the species-dependent nutritional values fixed at
// corpse creation. Predator corpses yield more than prey corpses.
type CorpseNutrition struct {
	Predator  int
	Prey      int
	Scavenger int
}

// NewCorpse creates a corpse from a dead creature.
func NewCorpse(c *Creature, decayTurns int, nutrition CorpseNutrition) *Corpse {
	value := nutrition.Prey
	switch c.Species {
	case grid.KindPredator:
		value = nutrition.Predator
	case grid.KindScavenger:
		value = nutrition.Scavenger
	}
	return &Corpse{
		OriginID:  c.ID,
		Species:   c.Species,
		Sex:       c.Sex,
		Pos:       c.Pos,
		DecayLeft: decayTurns,
		Nutrition: value,
	}
}

// Decay advances the countdown by one turn and reports whether the corpse
// is fully decayed. A decayed corpse yields no nutrition.
func (c *Corpse) Decay() bool {
	if c.Consumed {
		return true
	}
	c.DecayLeft--
	if c.DecayLeft <= 0 {
		c.Nutrition = 0
		return true
	}
	return false
}

// Consume transfers the corpse's nutrition to the caller and marks the
// corpse decayed. Consuming twice yields zero: the flag makes the
// operation idempotent.
func (c *Corpse) Consume() int {
	if c.Consumed || c.DecayLeft <= 0 {
		return 0
	}
	value := c.Nutrition
	c.Nutrition = 0
	c.Consumed = true
	c.DecayLeft = 0
	return value
}
