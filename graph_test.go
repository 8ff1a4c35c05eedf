package territory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestBuildGraphAdjacency(t *testing.T) {
	cols, rows := 5, 4
	g := BuildGraph(hexGrid(cols, rows), nil)

	assert.Equal(t, cols*rows, g.Len())
	for _, i := range g.Indices() {
		assert.Equal(t, gridNeighbours(cols, rows, i), g.Neighbours(i), "tile %d", i)
	}
}

func TestBuildGraphSymmetric(t *testing.T) {
	g := BuildGraph(hexGrid(6, 6), nil)

	for _, a := range g.Indices() {
		for _, b := range g.Neighbours(a) {
			assert.True(t, g.Adjacent(b, a), "%d-%d", a, b)
		}
		assert.False(t, g.Adjacent(a, a))
	}
}

func TestBuildGraphAbsorbsJitter(t *testing.T) {
	tiles := chain(3)
	// nudge one shared corner by far less than the quantisation step
	tiles[1].Boundary[0] = tiles[1].Boundary[0].Add(r3.Vector{X: 1e-9, Y: -1e-9})

	g := BuildGraph(tiles, nil)

	assert.True(t, g.Adjacent(0, 1))
	assert.True(t, g.Adjacent(1, 2))
	assert.False(t, g.Adjacent(0, 2))
}

func TestBuildGraphCopiesTiles(t *testing.T) {
	tiles := hexGrid(2, 2)
	g := BuildGraph(tiles, nil)

	tiles[0].Tier = "changed"
	tiles[0].Boundary[0] = r3.Vector{}

	assert.Equal(t, "standard", g.Tile(0).Tier)
	assert.NotEqual(t, r3.Vector{}, g.Tile(0).Boundary[0])
}

func TestBuildGraphUnknownTile(t *testing.T) {
	g := BuildGraph(chain(2), nil)

	assert.False(t, g.Has(99))
	assert.Nil(t, g.Tile(99))
	assert.Empty(t, g.Neighbours(99))
	assert.False(t, g.Excluded(99))
}

func TestExcludedNearEquator(t *testing.T) {
	g := BuildGraph(hexGrid(5, 4), nil)

	assert.Empty(t, g.ExcludedIndices())
}

func TestExcludedNearPoles(t *testing.T) {
	for _, lat := range []float64{89, -89} {
		g := BuildGraph(hexGridAt(3, 3, lat), nil)
		assert.Equal(t, g.Indices(), g.ExcludedIndices(), "lat %v", lat)
		for _, i := range g.Indices() {
			assert.True(t, g.Tile(i).Excluded)
		}
	}
}

func TestExcludedRespectsThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PolarExclusionDegrees = 1

	g := BuildGraph(hexGridAt(3, 3, 80), cfg)

	assert.Empty(t, g.ExcludedIndices())
}

func TestExcludedPentagonRing(t *testing.T) {
	cols, rows := 5, 4
	tiles := hexGrid(cols, rows)
	tiles[7].Boundary = tiles[7].Boundary[:5]

	g := BuildGraph(tiles, nil)

	expect := append([]int{7}, gridNeighbours(cols, rows, 7)...)
	assert.ElementsMatch(t, expect, g.ExcludedIndices())
	assert.True(t, g.Tile(7).IsPentagon())
	assert.False(t, g.Excluded(0))
}

func TestConnectedAndComponents(t *testing.T) {
	g := BuildGraph(chain(6), nil)

	assert.True(t, g.Connected(set()))
	assert.True(t, g.Connected(set(2)))
	assert.True(t, g.Connected(set(1, 2, 3)))
	assert.False(t, g.Connected(set(0, 1, 3)))

	// keys mapped to false aren't members
	assert.True(t, g.Connected(map[int]bool{1: true, 2: true, 4: false}))
	assert.True(t, g.Connected(map[int]bool{3: false, 5: false}))
	assert.Equal(t, [][]int{{1, 2}}, g.Components(map[int]bool{1: true, 2: true, 4: false}))

	comps := g.Components(set(0, 2, 3, 5))
	assert.Equal(t, [][]int{{2, 3}, {0}, {5}}, comps)
}

func TestReadWriteTiles(t *testing.T) {
	in := hexGrid(2, 2)
	in[3].Tier = "gold"

	buf := &bytes.Buffer{}
	assert.Nil(t, WriteTiles(buf, in))

	out, err := ReadTiles(buf)
	assert.Nil(t, err)
	assert.Equal(t, len(in), len(out))
	assert.Equal(t, "gold", out[3].Tier)
	assert.Equal(t, 6, len(out[3].Boundary))
	assert.InDelta(t, in[3].Center.X, out[3].Center.X, 1e-9)

	g := BuildGraph(out, nil)
	assert.True(t, g.Adjacent(0, 1))
}

func TestReadTilesRejectsBadInput(t *testing.T) {
	_, err := ReadTiles(strings.NewReader("tiles:\n  - index: 1\n    center: [1, 2]\n    boundary: []\n"))
	assert.NotNil(t, err)

	_, err = ReadTiles(strings.NewReader("tiles:\n  - index: 1\n    center: [0, 0, 1]\n    boundary: [[1,0,0],[0,1,0]]\n"))
	assert.NotNil(t, err)
}
