// Package sim provides the turn-based simulation engine. One Engine
// instance exclusively owns the grid and the creature/corpse registries;
// external consumers see only committed snapshots and callbacks.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/talgya/wildgrid/internal/config"
	"github.com/talgya/wildgrid/internal/creature"
	"github.com/talgya/wildgrid/internal/entropy"
	"github.com/talgya/wildgrid/internal/events"
	"github.com/talgya/wildgrid/internal/grid"
)

var (
	// ErrNotInitialized is returned by ExecuteTurn before Initialize.
	ErrNotInitialized = errors.New("sim: engine not initialized")
	// ErrEnded is returned by ExecuteTurn after the simulation has ended.
	ErrEnded = errors.New("sim: simulation has ended")
)

// TurnResult is what one committed turn produced.
type TurnResult struct {
	Turn   int            `json:"turn"`
	Events []events.Event `json:"events"`
	Stats  Stats          `json:"stats"`
}

// Engine orchestrates the simulation. All exported methods are safe to
// call from a concurrent observer (the HTTP server); a turn fully
// commits before any snapshot reflects it.
type Engine struct {
	mu  sync.Mutex
	cfg *config.Config
	rng *entropy.Source

	world     *grid.Grid
	creatures map[creature.ID]*creature.Creature
	byPos     map[grid.Position]creature.ID
	corpses   map[grid.Position]*creature.Corpse

	spawner *creature.Spawner
	repro   *creature.ReproductionManager
	log     *events.Logger
	history *History

	policies   []policy
	turnEvents []events.Event

	stats          Stats
	turn           int
	waterConsumed  int
	foodConsumed   int
	initialized    bool
	ended          bool
	extinct        bool
	extinctionTurn int

	onGrid  []func([][]grid.Kind)
	onStats []func(Stats)
	onEnd   []func(Stats)
}

// New creates an engine from a configuration and a seeded random source.
// Initialize must be called before the first turn.
func New(cfg *config.Config, rng *entropy.Source) *Engine {
	return &Engine{
		cfg:      cfg,
		rng:      rng,
		policies: defaultPolicies(),
		log:      events.NewLogger(events.DefaultCapacity),
		history:  NewHistory(cfg.Run.TurnCap + 1),
	}
}

// Initialize validates the configuration, builds the grid, seeds the
// resource cells, and places the scenario populations. It returns the
// initial grid snapshot. A configuration error here is fatal; ExecuteTurn
// never fails once initialization succeeds.
func (e *Engine) Initialize() ([][]grid.Kind, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e.resetLocked()
	size := e.cfg.Grid.Size
	e.world = grid.New(size)
	e.spawner = creature.NewSpawner(e.rng)
	e.repro = creature.NewReproductionManager(creature.ReproductionRules{
		MaturityAge:    e.cfg.Reproduction.MaturityAge,
		CooldownTurns:  e.cfg.Reproduction.CooldownTurns,
		MinEnergy:      e.cfg.Reproduction.MinEnergy,
		MaxEnergy:      e.cfg.Metabolism.MaxEnergy,
		InitialEnergy:  e.cfg.Metabolism.InitialEnergy,
		MutationChance: e.cfg.Mutation.PerTurnChance,
	}, e.spawner, e.rng)

	cells := size * size
	e.seedTerrain(grid.KindWater, int(float64(cells)*e.cfg.Grid.WaterFraction))
	e.seedTerrain(grid.KindPlant, int(float64(cells)*e.cfg.Grid.PlantFraction))

	e.seedPopulation(grid.KindPredator, int(float64(cells)*e.cfg.Scenario.PredatorPercent))
	e.seedPopulation(grid.KindPrey, int(float64(cells)*e.cfg.Scenario.PreyPercent))
	if e.cfg.Extensions.ThirdSpecies {
		e.seedPopulation(grid.KindScavenger, int(float64(cells)*e.cfg.Scenario.ScavengerPercent))
	}

	e.recomputeStats()
	e.initialized = true

	slog.Info("simulation initialized",
		"grid_size", size,
		"predators", e.stats.Predators.Total,
		"prey", e.stats.Prey.Total,
		"scavengers", e.stats.Scavengers.Total,
		"mutated", e.stats.Mutated,
		"turn_cap", e.cfg.Run.TurnCap,
	)
	return e.world.Snapshot(), nil
}

// seedTerrain scatters n resource cells over random empty positions.
func (e *Engine) seedTerrain(k grid.Kind, n int) {
	empty := e.emptyPositions()
	e.rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })
	if n > len(empty) {
		n = len(empty)
	}
	for _, p := range empty[:n] {
		e.world.Set(p, k)
	}
}

// seedPopulation spawns n creatures of a species at random empty
// positions, applying the initial-population mutation chance.
func (e *Engine) seedPopulation(species grid.Kind, n int) {
	empty := e.emptyPositions()
	e.rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })
	if n > len(empty) {
		n = len(empty)
	}
	for _, p := range empty[:n] {
		c := e.spawner.Spawn(species, p, e.cfg.Metabolism.InitialEnergy)
		if e.cfg.Extensions.Mutations && e.rng.Chance(e.cfg.Mutation.InitialChance) {
			c.Mutation = creature.RandomMutation(e.rng)
			e.emit(events.Event{
				Type:     events.TypeMutation,
				Creature: c.ID,
				Species:  c.Species,
				Mutation: c.Mutation,
				Pos:      c.Pos,
			})
		}
		e.addCreature(c)
	}
}

func (e *Engine) emptyPositions() []grid.Position {
	size := e.world.Size()
	var out []grid.Position
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			p := grid.Position{Row: r, Col: c}
			if e.world.IsEmpty(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// ExecuteTurn advances the simulation by one turn: metabolic aging, the
// death check, the priority policy chain, reproduction, corpse decay,
// stats, and termination. Creatures act in ascending-ID order, so the
// schedule is deterministic and free of scan-position bias.
func (e *Engine) ExecuteTurn() (TurnResult, error) {
	e.mu.Lock()

	if !e.initialized {
		e.mu.Unlock()
		return TurnResult{}, ErrNotInitialized
	}
	if e.ended {
		e.mu.Unlock()
		return TurnResult{}, ErrEnded
	}

	e.turn++
	e.turnEvents = e.turnEvents[:0]

	for _, id := range e.liveIDs() {
		c, ok := e.creatures[id]
		if !ok || !c.Alive {
			continue // Killed earlier this turn
		}

		e.age(c)
		if e.checkDeath(c) {
			continue
		}

		for _, p := range e.policies {
			if p.run(e, c) {
				break
			}
		}

		if c.Alive {
			e.tryReproduce(c)
		}
	}

	e.decayCorpses()
	e.regrowPlants()
	e.recomputeStats()
	e.history.Append(e.turnRecord())

	if e.stats.Predators.Total == 0 || e.stats.Prey.Total == 0 {
		e.ended = true
		e.extinct = true
		e.extinctionTurn = e.turn
		slog.Info("extinction reached", "turn", e.turn, "winner", e.stats.Winner())
	} else if e.turn >= e.cfg.Run.TurnCap {
		e.ended = true
		slog.Info("turn cap reached", "turn", e.turn)
	}

	result := TurnResult{
		Turn:   e.turn,
		Events: append([]events.Event(nil), e.turnEvents...),
		Stats:  e.stats,
	}
	gridSnap := e.world.Snapshot()
	stats := e.stats
	ended := e.ended
	onGrid := append(([]func([][]grid.Kind))(nil), e.onGrid...)
	onStats := append(([]func(Stats))(nil), e.onStats...)
	onEnd := append(([]func(Stats))(nil), e.onEnd...)
	e.mu.Unlock()

	// Callbacks run outside the lock: a committed turn is already
	// visible, and a callback may call back into the engine.
	for _, fn := range onGrid {
		fn(gridSnap)
	}
	for _, fn := range onStats {
		fn(stats)
	}
	if ended {
		for _, fn := range onEnd {
			fn(stats)
		}
	}
	return result, nil
}

// liveIDs returns the IDs of all living creatures in ascending order.
// Creatures born during the turn have higher IDs and first act next turn.
func (e *Engine) liveIDs() []creature.ID {
	ids := make([]creature.ID, 0, len(e.creatures))
	for id := range e.creatures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// age applies one turn of metabolism: hunger and thirst rise at the
// mutation-adjusted rate, the mating cooldown ticks down, the age counter
// advances, and energy drains faster when needs are maximal. Creatures
// still unmutated may pick up a mutation at the per-turn chance.
func (e *Engine) age(c *creature.Creature) {
	c.Hunger += creature.MetabolicRate(e.cfg.Metabolism.HungerRate, c.Mutation)
	if c.Hunger >= 100 {
		c.Hunger = 100
		c.StarvingTurns++
	}
	c.Thirst += creature.MetabolicRate(e.cfg.Metabolism.ThirstRate, c.Mutation)
	if c.Thirst > 100 {
		c.Thirst = 100
	}
	if c.MatingCooldown > 0 {
		c.MatingCooldown--
	}
	c.Age++

	drain := 1
	if c.Hunger >= 100 {
		drain++
	}
	if c.Thirst >= 100 {
		drain++
	}
	c.DrainEnergy(drain)

	if e.cfg.Extensions.Mutations && c.Mutation == creature.MutationNone &&
		e.rng.Chance(e.cfg.Mutation.PerTurnChance) {
		c.Mutation = creature.RandomMutation(e.rng)
		e.emit(events.Event{
			Turn:     e.turn,
			Type:     events.TypeMutation,
			Creature: c.ID,
			Species:  c.Species,
			Mutation: c.Mutation,
			Pos:      c.Pos,
		})
	}
}

// checkDeath converts a creature that ran out of energy or starved for
// too long into a corpse at its last position. Exactly one corpse per
// death.
func (e *Engine) checkDeath(c *creature.Creature) bool {
	var cause string
	switch {
	case c.Energy <= 0:
		cause = "exhaustion"
	case c.StarvingTurns > e.cfg.Metabolism.StarvationTurns:
		cause = "starvation"
	default:
		return false
	}
	e.kill(c, cause, true)
	return true
}

// kill removes a creature from the registries. When leaveCorpse is set
// the cell becomes a corpse; a creature eaten by a predator leaves
// nothing behind.
func (e *Engine) kill(c *creature.Creature, cause string, leaveCorpse bool) {
	c.Alive = false
	delete(e.creatures, c.ID)
	delete(e.byPos, c.Pos)

	if leaveCorpse {
		e.world.Set(c.Pos, grid.KindCorpse)
		e.corpses[c.Pos] = creature.NewCorpse(c, e.cfg.Corpse.DecayTurns, creature.CorpseNutrition{
			Predator:  e.cfg.Corpse.PredatorNutrition,
			Prey:      e.cfg.Corpse.PreyNutrition,
			Scavenger: e.cfg.Corpse.ScavengerNutrition,
		})
	} else {
		e.world.Set(c.Pos, grid.KindEmpty)
	}

	e.emit(events.Event{
		Turn:     e.turn,
		Type:     events.TypeDeath,
		Creature: c.ID,
		Species:  c.Species,
		Pos:      c.Pos,
		Cause:    cause,
		Energy:   c.Energy,
		Hunger:   c.Hunger,
		Thirst:   c.Thirst,
	})
}

// seekAndStep runs pathfinding for the creature and applies the result.
// Returns false when no target of the kind is in range, letting the
// caller fall through to the next policy.
func (e *Engine) seekAndStep(c *creature.Creature, target grid.Kind, radius int, fleeing bool) bool {
	step, ok := grid.FindNextMove(e.world, c.Pos, target, radius, fleeing)
	if !ok {
		return false
	}
	e.applyStep(c, step)
	return true
}

// applyStep executes a single movement step, interpreting what occupies
// the destination: stepping onto water drinks, onto a plant grazes, onto
// prey (as a predator) kills and eats, onto a corpse (as a scavenger)
// consumes it. Any step farther than one cell is rejected outright.
func (e *Engine) applyStep(c *creature.Creature, step grid.Position) {
	if grid.ChebyshevDist(c.Pos, step) > 1 || step == c.Pos {
		return
	}

	switch e.world.Kind(step) {
	case grid.KindEmpty:
		e.moveCreature(c, step)

	case grid.KindWater:
		before := c.Thirst
		c.RelieveThirst(e.cfg.Metabolism.DrinkThirstRelief)
		e.waterConsumed++
		e.emit(events.Event{
			Turn:     e.turn,
			Type:     events.TypeDrink,
			Creature: c.ID,
			Species:  c.Species,
			Pos:      step,
			Before:   before,
			After:    c.Thirst,
			Energy:   c.Energy,
		})

	case grid.KindPlant:
		before := c.Hunger
		c.RelieveHunger(e.cfg.Metabolism.EatHungerRelief)
		c.AddEnergy(creature.FeedingGain(e.cfg.Metabolism.PlantNutrition, c.Mutation), e.cfg.Metabolism.MaxEnergy)
		e.foodConsumed++
		e.world.Set(step, grid.KindEmpty)
		e.moveCreature(c, step)
		e.emit(events.Event{
			Turn:     e.turn,
			Type:     events.TypeEat,
			Creature: c.ID,
			Species:  c.Species,
			Pos:      step,
			Before:   before,
			After:    c.Hunger,
			Energy:   c.Energy,
		})

	case grid.KindPrey:
		if c.Species != grid.KindPredator {
			return
		}
		preyID, ok := e.byPos[step]
		if !ok {
			return
		}
		prey := e.creatures[preyID]
		e.kill(prey, "eaten", false)
		before := c.Hunger
		c.RelieveHunger(e.cfg.Metabolism.EatHungerRelief)
		c.AddEnergy(creature.FeedingGain(e.cfg.Metabolism.PreyNutrition, c.Mutation), e.cfg.Metabolism.MaxEnergy)
		e.foodConsumed++
		e.moveCreature(c, step)
		e.emit(events.Event{
			Turn:     e.turn,
			Type:     events.TypeEat,
			Creature: c.ID,
			Species:  c.Species,
			Pos:      step,
			Before:   before,
			After:    c.Hunger,
			Energy:   c.Energy,
		})

	case grid.KindCorpse:
		if c.Species != grid.KindScavenger {
			return
		}
		corpse, ok := e.corpses[step]
		if !ok {
			return
		}
		value := corpse.Consume()
		delete(e.corpses, step)
		e.world.Set(step, grid.KindEmpty)
		before := c.Hunger
		c.RelieveHunger(e.cfg.Metabolism.EatHungerRelief)
		c.AddEnergy(creature.FeedingGain(value, c.Mutation), e.cfg.Metabolism.MaxEnergy)
		e.foodConsumed++
		e.moveCreature(c, step)
		e.emit(events.Event{
			Turn:     e.turn,
			Type:     events.TypeEat,
			Creature: c.ID,
			Species:  c.Species,
			Pos:      step,
			Before:   before,
			After:    c.Hunger,
			Energy:   c.Energy,
		})
	}
}

// moveCreature relocates a creature to an empty cell and logs the move
// with a physiological snapshot.
func (e *Engine) moveCreature(c *creature.Creature, to grid.Position) {
	from := c.Pos
	e.world.Set(from, grid.KindEmpty)
	e.world.Set(to, c.Species)
	delete(e.byPos, from)
	e.byPos[to] = c.ID
	c.Pos = to

	e.emit(events.Event{
		Turn:     e.turn,
		Type:     events.TypeMove,
		Creature: c.ID,
		Species:  c.Species,
		From:     from,
		To:       to,
		Energy:   c.Energy,
		Hunger:   c.Hunger,
		Thirst:   c.Thirst,
	})
}

// tryReproduce mates the creature with the first eligible adjacent
// partner, placing the offspring in an empty cell adjacent to either
// parent. Ineligibility is silent: no event is logged on failure.
func (e *Engine) tryReproduce(c *creature.Creature) {
	for _, n := range e.world.Neighbors(c.Pos) {
		partnerID, ok := e.byPos[n]
		if !ok {
			continue
		}
		partner := e.creatures[partnerID]
		if partner == nil || e.repro.CanMate(c, partner) != creature.ReasonOK {
			continue
		}

		spot, ok := e.offspringCell(c.Pos, partner.Pos)
		if !ok {
			return // Nowhere to put a newborn
		}

		child := e.repro.Reproduce(c, partner, spot, e.cfg.Extensions.Mutations)
		e.addCreature(child)
		e.emit(events.Event{
			Turn:     e.turn,
			Type:     events.TypeBirth,
			Creature: child.ID,
			Species:  child.Species,
			Pos:      child.Pos,
			ParentA:  c.ID,
			ParentB:  partner.ID,
		})
		if child.Mutation != creature.MutationNone {
			e.emit(events.Event{
				Turn:     e.turn,
				Type:     events.TypeMutation,
				Creature: child.ID,
				Species:  child.Species,
				Mutation: child.Mutation,
				Pos:      child.Pos,
			})
		}
		return // One mating per creature per turn
	}
}

// offspringCell finds an empty cell adjacent to either parent.
func (e *Engine) offspringCell(a, b grid.Position) (grid.Position, bool) {
	if free := e.world.EmptyNeighbors(a); len(free) > 0 {
		return free[0], true
	}
	if free := e.world.EmptyNeighbors(b); len(free) > 0 {
		return free[0], true
	}
	return grid.Position{}, false
}

// decayCorpses advances every corpse's countdown and removes the fully
// decayed ones. Runs once per turn.
func (e *Engine) decayCorpses() {
	for pos, corpse := range e.corpses {
		if corpse.Decay() {
			delete(e.corpses, pos)
			e.world.Set(pos, grid.KindEmpty)
		}
	}
}

// regrowPlants occasionally sprouts a new plant so grazing food does not
// permanently run out.
func (e *Engine) regrowPlants() {
	if !e.rng.Chance(e.cfg.Grid.PlantRegrowth) {
		return
	}
	empty := e.emptyPositions()
	if len(empty) == 0 {
		return
	}
	e.world.Set(empty[e.rng.Intn(len(empty))], grid.KindPlant)
}

func (e *Engine) addCreature(c *creature.Creature) {
	e.creatures[c.ID] = c
	e.byPos[c.Pos] = c.ID
	e.world.Set(c.Pos, c.Species)
}

func (e *Engine) emit(ev events.Event) {
	e.log.Log(ev)
	e.turnEvents = append(e.turnEvents, ev)
}

func (e *Engine) recomputeStats() {
	s := Stats{
		Turn:          e.turn,
		Corpses:       len(e.corpses),
		WaterConsumed: e.waterConsumed,
		FoodConsumed:  e.foodConsumed,
	}
	for _, c := range e.creatures {
		var sc *SpeciesCount
		switch c.Species {
		case grid.KindPredator:
			sc = &s.Predators
		case grid.KindPrey:
			sc = &s.Prey
		case grid.KindScavenger:
			sc = &s.Scavengers
		default:
			continue
		}
		sc.Total++
		if c.Sex == creature.SexFemale {
			sc.Females++
		} else {
			sc.Males++
		}
		if c.Mutation != creature.MutationNone {
			s.Mutated++
		}
	}
	e.stats = s
}

func (e *Engine) turnRecord() TurnRecord {
	energies := make([]float64, 0, len(e.creatures))
	for _, c := range e.creatures {
		energies = append(energies, float64(c.Energy))
	}
	mean, p10, p50, p90 := energySummary(energies)

	return TurnRecord{
		Turn:       e.turn,
		Predators:  e.stats.Predators.Total,
		Prey:       e.stats.Prey.Total,
		Scavengers: e.stats.Scavengers.Total,
		Occupancy:  e.world.Occupancy(),
		EnergyMean: mean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,
	}
}

// resetLocked restores the pre-initialization empty state. Caller holds
// the lock.
func (e *Engine) resetLocked() {
	e.world = nil
	e.creatures = make(map[creature.ID]*creature.Creature)
	e.byPos = make(map[grid.Position]creature.ID)
	e.corpses = make(map[grid.Position]*creature.Corpse)
	e.turn = 0
	e.waterConsumed = 0
	e.foodConsumed = 0
	e.stats = Stats{}
	e.initialized = false
	e.ended = false
	e.extinct = false
	e.extinctionTurn = 0
	e.log.Reset()
	e.history.Reset()
	e.turnEvents = nil
}

// Reset returns the engine to the pre-initialization empty state.
// Registered callbacks survive a reset.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Grid returns a read-only snapshot of the cell matrix.
func (e *Engine) Grid() [][]grid.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.world == nil {
		return nil
	}
	return e.world.Snapshot()
}

// Stats returns the statistics of the last committed turn.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Turn returns the last committed turn number.
func (e *Engine) Turn() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turn
}

// Ended reports whether the simulation has terminated, by extinction or
// by reaching the turn cap.
func (e *Engine) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ended
}

// IsExtinct reports whether a population has died out.
func (e *Engine) IsExtinct() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.extinct
}

// ExtinctionTurn returns the turn extinction was detected, if any.
func (e *Engine) ExtinctionTurn() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.extinct {
		return 0, false
	}
	return e.extinctionTurn, true
}

// Creatures returns copies of all living creatures in ascending-ID
// order. The copies are detached: mutating them does not touch engine
// state.
func (e *Engine) Creatures() []*creature.Creature {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*creature.Creature, 0, len(e.creatures))
	for _, id := range e.liveIDs() {
		c := *e.creatures[id]
		out = append(out, &c)
	}
	return out
}

// Events returns the retained event log in insertion order.
func (e *Engine) Events() []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Entries()
}

// EventsByType returns the retained events of one type.
func (e *Engine) EventsByType(t events.Type) []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.EntriesByType(t)
}

// History returns the turn log, one record per committed turn.
func (e *Engine) History() []TurnRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Records()
}

// OnGridUpdate registers a callback fired with the grid snapshot after
// each committed turn.
func (e *Engine) OnGridUpdate(fn func([][]grid.Kind)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onGrid = append(e.onGrid, fn)
}

// OnStatsUpdate registers a callback fired with the stats after each
// committed turn.
func (e *Engine) OnStatsUpdate(fn func(Stats)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStats = append(e.onStats, fn)
}

// OnSimulationEnd registers a callback fired once when the simulation
// terminates.
func (e *Engine) OnSimulationEnd(fn func(Stats)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEnd = append(e.onEnd, fn)
}
