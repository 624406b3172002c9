// Package grid provides the spatial world model: a square matrix of cell
// occupancy and the bounded-radius pathfinding search over it.
package grid

import "fmt"

// Kind tags what occupies a cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindWater
	KindPlant
	KindPredator
	KindPrey
	KindScavenger
	KindCorpse
)

// Living reports whether the kind is a live creature species.
func (k Kind) Living() bool {
	return k == KindPredator || k == KindPrey || k == KindScavenger
}

// String returns the kind name for logs and the API.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindWater:
		return "water"
	case KindPlant:
		return "plant"
	case KindPredator:
		return "predator"
	case KindPrey:
		return "prey"
	case KindScavenger:
		return "scavenger"
	case KindCorpse:
		return "corpse"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Position is a cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ChebyshevDist returns the chessboard distance between two positions,
// the number of 8-directional steps separating them.
func ChebyshevDist(a, b Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// Adjacent reports whether two distinct positions are within one step of
// each other.
func Adjacent(a, b Position) bool {
	return a != b && ChebyshevDist(a, b) == 1
}

// Grid holds the cell occupancy matrix. One occupant per cell; water and
// plant cells are terrain-level resources and block movement like any
// other occupant.
type Grid struct {
	size  int
	cells [][]Kind
}

// New creates an empty grid of size×size cells.
func New(size int) *Grid {
	cells := make([][]Kind, size)
	for i := range cells {
		cells[i] = make([]Kind, size)
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the grid edge length.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether the position lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// Kind returns the occupant kind at p. Out-of-bounds reads return
// KindEmpty; callers bound their own iteration.
func (g *Grid) Kind(p Position) Kind {
	if !g.InBounds(p) {
		return KindEmpty
	}
	return g.cells[p.Row][p.Col]
}

// Set places a kind at p.
func (g *Grid) Set(p Position, k Kind) {
	if g.InBounds(p) {
		g.cells[p.Row][p.Col] = k
	}
}

// IsEmpty reports whether p is in bounds and unoccupied.
func (g *Grid) IsEmpty(p Position) bool {
	return g.InBounds(p) && g.cells[p.Row][p.Col] == KindEmpty
}

// neighborOffsets covers the 8 movement directions.
var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Neighbors returns the in-bounds positions adjacent to p.
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, 8)
	for _, d := range neighborOffsets {
		n := Position{Row: p.Row + d[0], Col: p.Col + d[1]}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// EmptyNeighbors returns the unoccupied positions adjacent to p.
func (g *Grid) EmptyNeighbors(p Position) []Position {
	out := make([]Position, 0, 8)
	for _, n := range g.Neighbors(p) {
		if g.cells[n.Row][n.Col] == KindEmpty {
			out = append(out, n)
		}
	}
	return out
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == k {
				n++
			}
		}
	}
	return n
}

// Occupancy returns the fraction of cells holding a creature or corpse.
// Terrain resources (water, plants) do not count as occupied.
func (g *Grid) Occupancy() float64 {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Living() || c == KindCorpse {
				n++
			}
		}
	}
	return float64(n) / float64(g.size*g.size)
}

// Snapshot returns a deep copy of the cell matrix for external consumers.
func (g *Grid) Snapshot() [][]Kind {
	out := make([][]Kind, g.size)
	for i, row := range g.cells {
		out[i] = make([]Kind, g.size)
		copy(out[i], row)
	}
	return out
}

// Nearest returns the position of the closest cell of the given kind
// within maxRadius Chebyshev distance of p, or false if none exists.
func (g *Grid) Nearest(p Position, k Kind, maxRadius int) (Position, bool) {
	best := Position{}
	bestDist := maxRadius + 1
	found := false
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r][c] != k {
				continue
			}
			q := Position{Row: r, Col: c}
			d := ChebyshevDist(p, q)
			if d <= maxRadius && d < bestDist {
				best = q
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}
