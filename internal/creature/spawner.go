package creature

import (
	"github.com/talgya/wildgrid/internal/entropy"
	"github.com/talgya/wildgrid/internal/grid"
)

// Spawner creates creatures with monotonically increasing IDs. One
// spawner serves both initial placement and births so IDs stay unique
// across the whole run.
type Spawner struct {
	nextID ID
	rng    *entropy.Source
}

// NewSpawner creates a spawner drawing sexes from the given source.
func NewSpawner(rng *entropy.Source) *Spawner {
	return &Spawner{nextID: 1, rng: rng}
}

// Spawn creates a live creature of the given species at pos with a
// random sex.
func (s *Spawner) Spawn(species grid.Kind, pos grid.Position, energy int) *Creature {
	sex := SexMale
	if s.rng.Chance(0.5) {
		sex = SexFemale
	}
	c := &Creature{
		ID:      s.nextID,
		Species: species,
		Sex:     sex,
		Pos:     pos,
		Energy:  energy,
		Alive:   true,
	}
	s.nextID++
	return c
}

// NextID returns the ID the next spawn will receive.
func (s *Spawner) NextID() ID {
	return s.nextID
}
