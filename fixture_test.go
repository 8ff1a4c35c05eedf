package territory

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

const (
	fixtureRadius = 100.0
	fixtureStep   = 0.05 // radians of arc per lattice unit
)

// hexGrid lays a cols x rows parallelogram of pointy-top hexagons over the
// sphere around lat/lon (0, 0). Tile index = r*cols + q.
func hexGrid(cols, rows int) []*Tile {
	return hexGridAt(cols, rows, 0)
}

// hexGridAt is hexGrid centred on the given latitude (degrees)
func hexGridAt(cols, rows int, latDegrees float64) []*Tile {
	lat0 := latDegrees * math.Pi / 180

	// centre the grid on (0, lat0)
	midX, midY := latticeCenter(float64(cols-1)/2, float64(rows-1)/2)

	onSphere := func(x, y float64) r3.Vector {
		lon := (x - midX) * fixtureStep
		lat := lat0 + (y-midY)*fixtureStep
		return r3.Vector{
			X: math.Cos(lat) * math.Sin(lon),
			Y: math.Sin(lat),
			Z: math.Cos(lat) * math.Cos(lon),
		}.Mul(fixtureRadius)
	}

	tiles := []*Tile{}
	for r := 0; r < rows; r++ {
		for q := 0; q < cols; q++ {
			cx, cy := latticeCenter(float64(q), float64(r))
			t := &Tile{
				Index:    r*cols + q,
				Center:   onSphere(cx, cy),
				Boundary: make([]r3.Vector, 6),
				Tier:     "standard",
			}
			for k := 0; k < 6; k++ {
				a := math.Pi / 180 * float64(60*k-30)
				t.Boundary[k] = onSphere(cx+math.Cos(a), cy+math.Sin(a))
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// latticeCenter returns the 2D centre of hex (q, r)
func latticeCenter(q, r float64) (float64, float64) {
	return math.Sqrt(3) * (q + r/2), 1.5 * r
}

// gridNeighbours returns the expected neighbours of tile i in a hexGrid
func gridNeighbours(cols, rows, i int) []int {
	q, r := i%cols, i/cols
	out := []int{}
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, -1}, {-1, 1}} {
		nq, nr := q+d[0], r+d[1]
		if nq < 0 || nq >= cols || nr < 0 || nr >= rows {
			continue
		}
		out = append(out, nr*cols+nq)
	}
	sort.Ints(out)
	return out
}

// chain is a single row of n hexagons: 0-1-2-...-(n-1)
func chain(n int) []*Tile {
	return hexGrid(n, 1)
}

// set makes a selection-style set out of indices
func set(in ...int) map[int]bool {
	out := map[int]bool{}
	for _, i := range in {
		out[i] = true
	}
	return out
}

// staticConflicts is a fixed set of assigned tiles
type staticConflicts map[int]bool

func (c staticConflicts) IsAssigned(i int) bool { return c[i] }

// recordingRenderer remembers everything it's told
type recordingRenderer struct {
	selections [][]int
	visuals    map[int]Visual
	uvs        map[int][]UV
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{visuals: map[int]Visual{}, uvs: map[int][]UV{}}
}

func (r *recordingRenderer) SelectionChanged(indices []int) {
	r.selections = append(r.selections, indices)
}

func (r *recordingRenderer) TileVisual(i int, v Visual) {
	r.visuals[i] = v
}

func (r *recordingRenderer) TileUVs(i int, uvs []UV) {
	r.uvs[i] = uvs
}
