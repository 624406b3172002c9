// Bounded Dijkstra pathfinding over the 8-connected grid.
//
// Orthogonal steps cost 10 and diagonal steps cost 14 (≈10√2), so straight
// paths beat zig-zags of equal cell count. The search never expands nodes
// beyond maxRadius Chebyshev distance from the start, which bounds both
// computation and how far a creature can "see".

package grid

import "container/heap"

// Step costs. 14/10 approximates √2 without floating point.
const (
	costOrthogonal = 10
	costDiagonal   = 14
)

// pathNode is an entry in the Dijkstra frontier.
type pathNode struct {
	pos   Position
	cost  int
	goal  bool // Target-kind cell; popped but never expanded
	index int  // Heap index
}

type nodeHeap []*pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// FindNextMove searches for the nearest cell of target kind within
// maxRadius of start and returns the single next cell to step to. In
// approach mode the step lies on a shortest path toward the nearest
// target, and is the target cell itself once adjacent; the engine
// interprets stepping onto a resource, prey, or corpse as the
// interaction. In fleeing mode the target kind is treated as a threat
// and the returned step maximizes distance from the nearest instance,
// falling back to any free adjacent cell when cornered.
//
// The second return is false when no target of the kind exists within
// range, or no legal move exists at all. A returned step never differs
// from start by more than one cell on either axis.
func FindNextMove(g *Grid, start Position, target Kind, maxRadius int, fleeing bool) (Position, bool) {
	if !g.InBounds(start) || maxRadius <= 0 {
		return Position{}, false
	}
	if fleeing {
		return fleeMove(g, start, target, maxRadius)
	}
	return approachMove(g, start, target, maxRadius)
}

// approachMove runs Dijkstra from start over empty cells. Cells of the
// target kind enter the frontier as goals but are never expanded, so the
// first goal popped is the nearest by path cost.
func approachMove(g *Grid, start Position, target Kind, maxRadius int) (Position, bool) {
	dist := map[Position]int{start: 0}
	cameFrom := map[Position]Position{}
	open := &nodeHeap{}
	heap.Push(open, &pathNode{pos: start})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if cur.cost > dist[cur.pos] {
			continue // Stale entry
		}
		if cur.goal {
			return clampStep(start, firstStep(cameFrom, start, cur.pos))
		}

		for _, d := range neighborOffsets {
			next := Position{Row: cur.pos.Row + d[0], Col: cur.pos.Col + d[1]}
			if !g.InBounds(next) || ChebyshevDist(start, next) > maxRadius {
				continue
			}
			kind := g.Kind(next)
			isGoal := kind == target
			if !isGoal && kind != KindEmpty {
				continue // Occupied, not the thing we want
			}
			step := costOrthogonal
			if d[0] != 0 && d[1] != 0 {
				step = costDiagonal
			}
			nd := cur.cost + step
			if prev, seen := dist[next]; seen && nd >= prev {
				continue
			}
			dist[next] = nd
			cameFrom[next] = cur.pos
			heap.Push(open, &pathNode{pos: next, cost: nd, goal: isGoal})
		}
	}
	return Position{}, false
}

// firstStep walks the predecessor chain from goal back to start and
// returns the first cell after start.
func firstStep(cameFrom map[Position]Position, start, goal Position) Position {
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok || prev == start {
			return cur
		}
		cur = prev
	}
}

// clampStep rejects any step whose delta from start exceeds one cell on
// either axis. The search only produces adjacent steps, but the engine
// contract guarantees it regardless.
func clampStep(start, step Position) (Position, bool) {
	if ChebyshevDist(start, step) > 1 {
		return Position{}, false
	}
	return step, true
}

// fleeMove picks the adjacent free cell that maximizes distance from the
// nearest threat of the given kind. When every free cell would bring the
// creature closer, any free adjacent cell is returned rather than none,
// so a cornered creature is never permanently stuck.
func fleeMove(g *Grid, start Position, threat Kind, maxRadius int) (Position, bool) {
	threatPos, found := g.Nearest(start, threat, maxRadius)
	if !found {
		return Position{}, false
	}

	free := g.EmptyNeighbors(start)
	if len(free) == 0 {
		return Position{}, false
	}

	best := free[0]
	bestDist := ChebyshevDist(free[0], threatPos)
	for _, cand := range free[1:] {
		if d := ChebyshevDist(cand, threatPos); d > bestDist {
			best = cand
			bestDist = d
		}
	}
	// If every free cell closes distance (cornered), best is still the
	// least bad adjacent cell; never report "no move".
	return best, true
}
