// The per-creature behavior chain. Each turn the engine tries the
// policies in order; the first that handles the creature ends its turn.
// Modeling the chain as an ordered list of named functions keeps the
// priorities testable and reorderable without touching engine control
// flow.

package sim

import (
	"github.com/talgya/wildgrid/internal/creature"
	"github.com/talgya/wildgrid/internal/grid"
)

// policy is one named behavior rule. run returns true when it handled
// the creature's turn.
type policy struct {
	name string
	run  func(e *Engine, c *creature.Creature) bool
}

// defaultPolicies returns the priority chain:
//
//	P1 critical thirst:   drink before anything else
//	P2 critical hunger:   eat before fleeing or hunting
//	P3 species behavior:  scavenge / flee / hunt
//	P4 opportunistic:     top up water or food early
//	P5 wander:            never stand still
func defaultPolicies() []policy {
	return []policy{
		{name: "critical_thirst", run: policyCriticalThirst},
		{name: "critical_hunger", run: policyCriticalHunger},
		{name: "species_behavior", run: policySpeciesBehavior},
		{name: "opportunistic", run: policyOpportunistic},
		{name: "wander", run: policyWander},
	}
}

func policyCriticalThirst(e *Engine, c *creature.Creature) bool {
	if c.Thirst < e.cfg.Thresholds.Critical {
		return false
	}
	return e.seekAndStep(c, grid.KindWater, e.cfg.Pathfinding.ResourceRadius, false)
}

func policyCriticalHunger(e *Engine, c *creature.Creature) bool {
	if c.Hunger < e.cfg.Thresholds.Critical {
		return false
	}
	return e.seekFood(c)
}

// policySpeciesBehavior runs the unconditional role behavior: scavengers
// above their hunger threshold head for the nearest corpse, prey flee any
// predator in detection range, predators hunt the nearest prey in search
// range.
func policySpeciesBehavior(e *Engine, c *creature.Creature) bool {
	switch c.Species {
	case grid.KindScavenger:
		if c.Hunger < e.cfg.Thresholds.Scavenge {
			return false
		}
		return e.seekAndStep(c, grid.KindCorpse, e.cfg.Pathfinding.ScavengerRadius, false)
	case grid.KindPrey:
		return e.seekAndStep(c, grid.KindPredator, e.cfg.Pathfinding.PreyRadius, true)
	case grid.KindPredator:
		return e.seekAndStep(c, grid.KindPrey, e.cfg.Pathfinding.PredatorRadius, false)
	}
	return false
}

func policyOpportunistic(e *Engine, c *creature.Creature) bool {
	threshold := e.cfg.Thresholds.Opportunistic
	if c.Thirst >= threshold && c.Thirst >= c.Hunger {
		if e.seekAndStep(c, grid.KindWater, e.cfg.Pathfinding.ResourceRadius, false) {
			return true
		}
	}
	if c.Hunger >= threshold {
		return e.seekFood(c)
	}
	return false
}

// policyWander moves to a random empty adjacent cell. It always reports
// handled, even when a boxed-in creature has to stay put, so no creature
// ever falls off the end of the chain.
func policyWander(e *Engine, c *creature.Creature) bool {
	free := e.world.EmptyNeighbors(c.Pos)
	if len(free) > 0 {
		e.applyStep(c, free[e.rng.Intn(len(free))])
	}
	return true
}

// foodKindFor maps a species to what it eats: predators hunt prey,
// scavengers seek corpses, prey graze plants.
func foodKindFor(species grid.Kind) grid.Kind {
	switch species {
	case grid.KindPredator:
		return grid.KindPrey
	case grid.KindScavenger:
		return grid.KindCorpse
	}
	return grid.KindPlant
}

// foodRadiusFor returns the search radius a species uses for food.
func (e *Engine) foodRadiusFor(species grid.Kind) int {
	switch species {
	case grid.KindPredator:
		return e.cfg.Pathfinding.PredatorRadius
	case grid.KindScavenger:
		return e.cfg.Pathfinding.ScavengerRadius
	}
	return e.cfg.Pathfinding.ResourceRadius
}

// seekFood pathfinds toward the creature's food kind. Scavengers with no
// corpse in range fall back to grazing.
func (e *Engine) seekFood(c *creature.Creature) bool {
	if e.seekAndStep(c, foodKindFor(c.Species), e.foodRadiusFor(c.Species), false) {
		return true
	}
	if c.Species == grid.KindScavenger {
		return e.seekAndStep(c, grid.KindPlant, e.cfg.Pathfinding.ResourceRadius, false)
	}
	return false
}
