package engine

// Path is the result of a nearest-target search.
type Path struct {
	Target    Coord // Chosen target cell
	FirstStep Coord // Cell to enter first; equals the start when Distance is 0
	Distance  int   // Steps from the start to Target
}

// InPlace reports whether the start already satisfies the target predicate.
func (p Path) InPlace() bool {
	return p.Distance == 0
}

// FindPath runs a breadth-first search from start over cells accepted by
// passable and returns the nearest cell accepted by isTarget.
//
// Neighbours are expanded up, left, right, down. Among targets at the same
// distance the one first in reading order wins; among first steps leading to
// it along a shortest path the one first in reading order wins. The start
// cell itself is never tested against passable. The second return value is
// false when no target is reachable, which is a normal outcome.
//
// Nothing is cached between calls; occupancy is expected to change between
// them.
func FindPath(g *Grid, start Coord, passable, isTarget func(Coord) bool) (Path, bool) {
	if isTarget(start) {
		return Path{Target: start, FirstStep: start}, true
	}

	seen := make([]bool, g.W*g.H)
	if g.InBounds(start) {
		seen[g.index(start)] = true
	}
	frontier := []Coord{start}

	for dist := 1; len(frontier) > 0; dist++ {
		var next []Coord
		var best Coord
		found := false

		for _, c := range frontier {
			for _, n := range c.Neighbors() {
				if !g.Traversable(n) || seen[g.index(n)] || !passable(n) {
					continue
				}
				seen[g.index(n)] = true
				next = append(next, n)
				if isTarget(n) && (!found || n.Less(best)) {
					best = n
					found = true
				}
			}
		}

		if found {
			return Path{
				Target:    best,
				FirstStep: firstStep(g, start, best, dist, passable),
				Distance:  dist,
			}, true
		}
		frontier = next
	}

	return Path{}, false
}

// firstStep picks the neighbour of start, in reading order, that lies on a
// shortest path of length dist to target. It walks backwards from target.
func firstStep(g *Grid, start, target Coord, dist int, passable func(Coord) bool) Coord {
	if dist == 1 {
		return target
	}

	back := make([]int, g.W*g.H)
	for i := range back {
		back[i] = -1
	}
	back[g.index(target)] = 0
	frontier := []Coord{target}

	// Distances up to dist-1 are enough to rank the start's neighbours.
	for d := 1; d < dist && len(frontier) > 0; d++ {
		var next []Coord
		for _, c := range frontier {
			for _, n := range c.Neighbors() {
				if !g.Traversable(n) || back[g.index(n)] >= 0 || !passable(n) {
					continue
				}
				back[g.index(n)] = d
				next = append(next, n)
			}
		}
		frontier = next
	}

	for _, n := range start.Neighbors() {
		if g.InBounds(n) && back[g.index(n)] == dist-1 {
			return n
		}
	}
	// Unreachable when called from FindPath: the forward search proved a path exists.
	return start
}
