package grid

import "testing"

func TestChebyshevDist(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"same cell", Position{2, 2}, Position{2, 2}, 0},
		{"orthogonal", Position{2, 2}, Position{2, 5}, 3},
		{"diagonal", Position{0, 0}, Position{3, 3}, 3},
		{"mixed", Position{1, 1}, Position{4, 2}, 3},
		{"negative direction", Position{5, 5}, Position{2, 4}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChebyshevDist(tt.a, tt.b); got != tt.want {
				t.Errorf("ChebyshevDist(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNeighborsAtCorner(t *testing.T) {
	g := New(5)
	n := g.Neighbors(Position{Row: 0, Col: 0})
	if len(n) != 3 {
		t.Fatalf("corner cell has %d neighbors, want 3", len(n))
	}
	for _, p := range n {
		if !g.InBounds(p) {
			t.Errorf("neighbor %v out of bounds", p)
		}
	}
}

func TestEmptyNeighborsSkipsOccupied(t *testing.T) {
	g := New(3)
	center := Position{Row: 1, Col: 1}
	g.Set(Position{Row: 0, Col: 0}, KindWater)
	g.Set(Position{Row: 0, Col: 1}, KindPrey)

	free := g.EmptyNeighbors(center)
	if len(free) != 6 {
		t.Fatalf("got %d free neighbors, want 6", len(free))
	}
	for _, p := range free {
		if g.Kind(p) != KindEmpty {
			t.Errorf("cell %v reported free but holds %s", p, g.Kind(p))
		}
	}
}

func TestOccupancyCountsCreaturesAndCorpses(t *testing.T) {
	g := New(10)
	g.Set(Position{0, 0}, KindPredator)
	g.Set(Position{0, 1}, KindPrey)
	g.Set(Position{0, 2}, KindCorpse)
	g.Set(Position{0, 3}, KindWater) // Terrain, not occupancy
	g.Set(Position{0, 4}, KindPlant) // Terrain, not occupancy

	want := 3.0 / 100.0
	if got := g.Occupancy(); got != want {
		t.Errorf("Occupancy() = %v, want %v", got, want)
	}
}

func TestNearestRespectsRadius(t *testing.T) {
	g := New(10)
	origin := Position{Row: 0, Col: 0}
	near := Position{Row: 2, Col: 2}
	far := Position{Row: 8, Col: 8}
	g.Set(near, KindWater)
	g.Set(far, KindWater)

	got, ok := g.Nearest(origin, KindWater, 5)
	if !ok || got != near {
		t.Fatalf("Nearest = %v, %v; want %v, true", got, ok, near)
	}

	if _, ok := g.Nearest(origin, KindCorpse, 5); ok {
		t.Fatal("found a corpse on an empty grid")
	}

	if _, ok := g.Nearest(Position{Row: 9, Col: 0}, KindWater, 2); ok {
		t.Fatal("water outside radius 2 should not be found")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := New(3)
	g.Set(Position{1, 1}, KindPrey)

	snap := g.Snapshot()
	snap[1][1] = KindEmpty

	if g.Kind(Position{1, 1}) != KindPrey {
		t.Fatal("mutating the snapshot changed the grid")
	}
}
