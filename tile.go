package territory

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/go-yaml/yaml"
	"github.com/golang/geo/r3"
)

// Tile is one cell of the tessellated sphere.
// The index is stable across sessions; it's the only identity a tile has.
type Tile struct {
	Index    int
	Boundary []r3.Vector // 5 (pentagon) or 6 (hexagon) vertices, in order
	Center   r3.Vector
	Tier     string // opaque, from the tier classifier
	Excluded bool   // set by BuildGraph
}

// IsPentagon returns if this is a seam tile of the tessellation
func (t *Tile) IsPentagon() bool {
	return len(t.Boundary) == 5
}

// tessellation is the on disk form of the generator output
type tessellation struct {
	Tiles []*rawTile `yaml:"tiles"`
}

type rawTile struct {
	Index    int         `yaml:"index"`
	Center   []float64   `yaml:"center"`
	Boundary [][]float64 `yaml:"boundary"`
	Tier     string      `yaml:"tier,omitempty"`
}

// ReadTiles decodes tessellation generator output (YAML)
func ReadTiles(r io.Reader) ([]*Tile, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	in := tessellation{}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decoding tessellation: %w", err)
	}

	tiles := make([]*Tile, 0, len(in.Tiles))
	for _, rt := range in.Tiles {
		if len(rt.Center) != 3 {
			return nil, fmt.Errorf("tile %d: center must have 3 coordinates", rt.Index)
		}
		if len(rt.Boundary) < 3 {
			return nil, fmt.Errorf("tile %d: boundary has %d vertices", rt.Index, len(rt.Boundary))
		}

		t := &Tile{
			Index:    rt.Index,
			Center:   toVector(rt.Center),
			Boundary: make([]r3.Vector, len(rt.Boundary)),
			Tier:     rt.Tier,
		}
		for i, v := range rt.Boundary {
			if len(v) != 3 {
				return nil, fmt.Errorf("tile %d: vertex %d must have 3 coordinates", rt.Index, i)
			}
			t.Boundary[i] = toVector(v)
		}
		tiles = append(tiles, t)
	}

	return tiles, nil
}

// WriteTiles encodes tiles in the same format ReadTiles understands
func WriteTiles(w io.Writer, tiles []*Tile) error {
	out := tessellation{Tiles: make([]*rawTile, len(tiles))}
	for i, t := range tiles {
		rt := &rawTile{
			Index:    t.Index,
			Center:   fromVector(t.Center),
			Boundary: make([][]float64, len(t.Boundary)),
			Tier:     t.Tier,
		}
		for j, v := range t.Boundary {
			rt.Boundary[j] = fromVector(v)
		}
		out.Tiles[i] = rt
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// OpenTiles reads a tessellation file from disk
func OpenTiles(fname string) ([]*Tile, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTiles(f)
}
