package creature

import (
	"testing"

	"github.com/talgya/wildgrid/internal/entropy"
	"github.com/talgya/wildgrid/internal/grid"
)

func testRules() ReproductionRules {
	return ReproductionRules{
		MaturityAge:    10,
		CooldownTurns:  8,
		MinEnergy:      20,
		MaxEnergy:      100,
		InitialEnergy:  50,
		MutationChance: 0,
	}
}

func testPair() (*Creature, *Creature) {
	a := &Creature{
		ID: 1, Species: grid.KindPrey, Sex: SexMale,
		Pos: grid.Position{Row: 1, Col: 1}, Energy: 30, Age: 12, Alive: true,
	}
	b := &Creature{
		ID: 2, Species: grid.KindPrey, Sex: SexFemale,
		Pos: grid.Position{Row: 1, Col: 2}, Energy: 30, Age: 12, Alive: true,
	}
	return a, b
}

func TestCanMateReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a, b *Creature)
		want   MateReason
	}{
		{"eligible pair", func(a, b *Creature) {}, ReasonOK},
		{"same sex", func(a, b *Creature) { b.Sex = SexMale }, ReasonSameSex},
		{"different species", func(a, b *Creature) { b.Species = grid.KindPredator }, ReasonDifferentSpecies},
		{"first immature", func(a, b *Creature) { a.Age = 3 }, ReasonImmature},
		{"second immature", func(a, b *Creature) { b.Age = 9 }, ReasonImmature},
		{"on cooldown", func(a, b *Creature) { a.MatingCooldown = 2 }, ReasonOnCooldown},
		{"low energy", func(a, b *Creature) { b.Energy = 19 }, ReasonInsufficientEnergy},
		{"energy at threshold", func(a, b *Creature) { a.Energy = 20; b.Energy = 20 }, ReasonOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := entropy.NewSource(1)
			m := NewReproductionManager(testRules(), NewSpawner(rng), rng)
			a, b := testPair()
			tt.mutate(a, b)
			if got := m.CanMate(a, b); got != tt.want {
				t.Errorf("CanMate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanMateChecksSexBeforeSpecies(t *testing.T) {
	// Multiple violations: the fixed check order determines the reason.
	rng := entropy.NewSource(1)
	m := NewReproductionManager(testRules(), NewSpawner(rng), rng)
	a, b := testPair()
	b.Sex = SexMale
	b.Species = grid.KindPredator

	if got := m.CanMate(a, b); got != ReasonSameSex {
		t.Errorf("CanMate = %s, want same_sex (sex checked first)", got)
	}
}

func TestReproduceCostsAndOffspring(t *testing.T) {
	rng := entropy.NewSource(1)
	spawner := NewSpawner(rng)
	m := NewReproductionManager(testRules(), spawner, rng)
	a, b := testPair()
	spot := grid.Position{Row: 2, Col: 1}

	child := m.Reproduce(a, b, spot, false)

	if a.Energy != 15 || b.Energy != 15 {
		t.Errorf("parent energy = %d, %d; want 15, 15", a.Energy, b.Energy)
	}
	if a.MatingCooldown <= 0 || b.MatingCooldown <= 0 {
		t.Errorf("parents not on cooldown: %d, %d", a.MatingCooldown, b.MatingCooldown)
	}
	if child.Pos != spot {
		t.Errorf("offspring at %v, want %v", child.Pos, spot)
	}
	if child.Species != a.Species {
		t.Errorf("offspring species %s, want %s", child.Species, a.Species)
	}
	if child.Energy != 50 {
		t.Errorf("offspring energy %d, want 50", child.Energy)
	}
	if !child.Alive || child.Age != 0 {
		t.Error("offspring must start alive at age 0")
	}
	if child.Mutation != MutationNone {
		t.Error("mutations disabled but offspring mutated")
	}
}

func TestReproduceMutationChance(t *testing.T) {
	rules := testRules()
	rules.MutationChance = 1.0
	rng := entropy.NewSource(1)
	m := NewReproductionManager(rules, NewSpawner(rng), rng)
	a, b := testPair()

	child := m.Reproduce(a, b, grid.Position{Row: 2, Col: 1}, true)
	if child.Mutation == MutationNone {
		t.Error("per-birth chance of 1.0 must always mutate the offspring")
	}
}

func TestSpawnerIDsAreUniqueAndIncreasing(t *testing.T) {
	s := NewSpawner(entropy.NewSource(7))
	var last ID
	for i := 0; i < 10; i++ {
		c := s.Spawn(grid.KindPrey, grid.Position{}, 50)
		if c.ID <= last {
			t.Fatalf("spawn %d: id %d not greater than previous %d", i, c.ID, last)
		}
		last = c.ID
	}
}
