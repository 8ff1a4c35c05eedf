package territory

import (
	"sort"
)

// Graph is the adjacency graph of a tessellation plus the set of tiles that
// may never be selected. It's built once & not modified afterwards.
type Graph struct {
	tiles      map[int]*Tile
	indices    []int // sorted
	neighbours map[int][]int
	excluded   map[int]bool
}

// BuildGraph links tiles that share at least one boundary vertex & marks
// excluded tiles: those near a pole & each pentagon plus its neighbours.
//
// Input tiles are copied; the returned graph owns its own Tile values.
func BuildGraph(tiles []*Tile, cfg *Config) *Graph {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	g := &Graph{
		tiles:      map[int]*Tile{},
		indices:    []int{},
		neighbours: map[int][]int{},
		excluded:   map[int]bool{},
	}

	for _, t := range tiles {
		if t == nil {
			continue
		}
		if _, ok := g.tiles[t.Index]; ok {
			logger.Warn("duplicate tile index, keeping the last", "index", t.Index)
		} else {
			g.indices = append(g.indices, t.Index)
		}
		cp := *t
		cp.Boundary = append(cp.Boundary[:0:0], t.Boundary...)
		cp.Excluded = false
		g.tiles[t.Index] = &cp
	}
	sort.Ints(g.indices)

	// group tiles by (quantized) vertex
	byVertex := map[string][]int{}
	for _, i := range g.indices {
		t := g.tiles[i]
		for _, v := range t.Boundary {
			key := vertexKey(v, cfg.VertexPrecision)
			byVertex[key] = appendUnique(byVertex[key], i)
		}
	}

	links := map[int]map[int]bool{}
	for _, group := range byVertex {
		for _, a := range group {
			for _, b := range group {
				if a == b {
					continue
				}
				if links[a] == nil {
					links[a] = map[int]bool{}
				}
				links[a][b] = true
			}
		}
	}
	for _, i := range g.indices {
		ns := make([]int, 0, len(links[i]))
		for n := range links[i] {
			ns = append(ns, n)
		}
		sort.Ints(ns)
		g.neighbours[i] = ns
	}

	// exclusions
	up := cfg.Up()
	down := up.Mul(-1)
	limit := cfg.PolarExclusion()
	for _, i := range g.indices {
		t := g.tiles[i]
		if t.Center.Norm() == 0 {
			continue
		}
		if t.Center.Angle(up) < limit || t.Center.Angle(down) < limit {
			g.excluded[i] = true
		}
		if t.IsPentagon() {
			g.excluded[i] = true
			for _, n := range g.neighbours[i] {
				g.excluded[n] = true
			}
		}
	}
	for i := range g.excluded {
		g.tiles[i].Excluded = true
	}

	logger.Debug("built tile graph", "tiles", len(g.indices), "vertices", len(byVertex), "excluded", len(g.excluded))
	return g
}

// appendUnique appends i to in if it's not already the last element.
// Tiles are visited one at a time so a repeat can only be at the end.
func appendUnique(in []int, i int) []int {
	if len(in) > 0 && in[len(in)-1] == i {
		return in
	}
	return append(in, i)
}

// Len returns the number of tiles in the graph
func (g *Graph) Len() int {
	return len(g.indices)
}

// Has returns if the graph knows the given tile index
func (g *Graph) Has(i int) bool {
	_, ok := g.tiles[i]
	return ok
}

// Tile returns the tile with the given index (or nil)
func (g *Graph) Tile(i int) *Tile {
	return g.tiles[i]
}

// Indices returns all tile indices, sorted low -> high
func (g *Graph) Indices() []int {
	return append([]int{}, g.indices...)
}

// Neighbours returns the tiles adjacent to i, sorted low -> high.
// The returned slice must not be modified.
func (g *Graph) Neighbours(i int) []int {
	return g.neighbours[i]
}

// Adjacent returns if tiles a & b share a boundary vertex
func (g *Graph) Adjacent(a, b int) bool {
	ns := g.neighbours[a]
	n := sort.SearchInts(ns, b)
	return n < len(ns) && ns[n] == b
}

// Excluded returns if tile i can never be selected
func (g *Graph) Excluded(i int) bool {
	return g.excluded[i]
}

// ExcludedIndices returns all excluded tiles, sorted low -> high
func (g *Graph) ExcludedIndices() []int {
	out := make([]int, 0, len(g.excluded))
	for i := range g.excluded {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Connected returns if `set` is empty or forms exactly one connected component.
// Only keys mapped to true are members.
func (g *Graph) Connected(set map[int]bool) bool {
	in := sortedKeys(set)
	if len(in) == 0 {
		return true
	}
	return len(g.flood(in[0], set)) == len(in)
}

// Components splits `set` into its connected components. Components are
// sorted largest first; ties go to the component holding the lowest index.
// Each component is sorted low -> high.
func (g *Graph) Components(set map[int]bool) [][]int {
	seen := map[int]bool{}
	comps := [][]int{}

	for _, i := range sortedKeys(set) {
		if seen[i] {
			continue
		}
		reached := g.flood(i, set)
		comp := make([]int, 0, len(reached))
		for j := range reached {
			seen[j] = true
			comp = append(comp, j)
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	sort.SliceStable(comps, func(a, b int) bool {
		return len(comps[a]) > len(comps[b])
	})
	return comps
}

// flood does a breadth first fill from start, only walking over tiles in `set`.
func (g *Graph) flood(start int, set map[int]bool) map[int]bool {
	reached := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbours[cur] {
			if !set[n] || reached[n] {
				continue
			}
			reached[n] = true
			queue = append(queue, n)
		}
	}
	return reached
}

// sortedKeys returns the keys of a set, sorted low -> high
func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for i, ok := range set {
		if ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
