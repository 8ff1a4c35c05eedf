package territory

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

const (
	// below this |up x normal| we consider the centroid to be on a pole
	poleEpsilon = 1e-9

	// bounds grow by this fraction of their extent on each side so tile
	// borders don't clip at the texture edge
	boundsPadding = 0.02
)

// UV is a texture coordinate. Textures repeat so values outside 0..1 are fine.
type UV struct {
	U, V float64
}

// Basis is a local flat coordinate system touching the sphere at Centroid.
type Basis struct {
	Centroid r3.Vector
	Normal   r3.Vector
	East     r3.Vector
	North    r3.Vector
}

// Bounds is a rectangle in tangent plane (east, north) coordinates
type Bounds struct {
	MinU, MaxU float64
	MinV, MaxV float64
}

// Width along east
func (b Bounds) Width() float64 {
	return b.MaxU - b.MinU
}

// Height along north
func (b Bounds) Height() float64 {
	return b.MaxV - b.MinV
}

// Contains returns if o lies entirely within b
func (b Bounds) Contains(o Bounds) bool {
	return o.MinU >= b.MinU && o.MaxU <= b.MaxU && o.MinV >= b.MinV && o.MaxV <= b.MaxV
}

// Projection is the texture mapping of a set of tiles
type Projection struct {
	Basis      Basis
	Bounds     Bounds // padded
	Scale      float64
	Aspect     float64
	Adjustment PatternAdjustment

	// tile -> one UV per boundary vertex, in boundary order
	UVs map[int][]UV
}

// Tiles returns the projected tiles, sorted low -> high
func (p *Projection) Tiles() []int {
	out := make([]int, 0, len(p.UVs))
	for i := range p.UVs {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Span returns the smallest & largest UV values over every projected vertex
func (p *Projection) Span() (UV, UV) {
	lo := UV{U: math.Inf(1), V: math.Inf(1)}
	hi := UV{U: math.Inf(-1), V: math.Inf(-1)}
	for _, uvs := range p.UVs {
		for _, uv := range uvs {
			lo.U = math.Min(lo.U, uv.U)
			lo.V = math.Min(lo.V, uv.V)
			hi.U = math.Max(hi.U, uv.U)
			hi.V = math.Max(hi.V, uv.V)
		}
	}
	return lo, hi
}

// members returns the known tiles of `in`, sorted & de-duplicated so that
// every computation over them runs in the same order.
func members(g *Graph, in []int) []*Tile {
	out := []*Tile{}
	for _, i := range sortedCopy(in) {
		if t := g.Tile(i); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// NewBasis computes the tangent basis at the centroid of the given tiles.
// The centroid is put back on the sphere rather than left at the raw 3D
// average, which sinks inwards as clusters get bigger.
// Returns false if none of the tiles are known.
func NewBasis(g *Graph, tiles []int, up r3.Vector) (Basis, bool) {
	ts := members(g, tiles)
	if len(ts) == 0 {
		return Basis{}, false
	}

	sum := r3.Vector{}
	radius := 0.0
	for _, t := range ts {
		sum = sum.Add(t.Center)
		radius += t.Center.Norm()
	}
	radius /= float64(len(ts))

	dir := sum
	if dir.Norm() < poleEpsilon {
		dir = ts[0].Center
	}
	normal := dir.Normalize()

	east := up.Cross(normal)
	if east.Norm() < poleEpsilon {
		east = normal.Ortho()
	} else {
		east = east.Normalize()
	}
	north := normal.Cross(east).Normalize()

	return Basis{
		Centroid: normal.Mul(radius),
		Normal:   normal,
		East:     east,
		North:    north,
	}, true
}

// local returns v in tangent plane coordinates
func (b Basis) local(v r3.Vector) (float64, float64) {
	return v.Dot(b.East), v.Dot(b.North)
}

// ProjectBounds returns the padded bounds of every boundary vertex of the
// given tiles in the basis' tangent plane.
func ProjectBounds(g *Graph, tiles []int, basis Basis) Bounds {
	return boundsOf(members(g, tiles), basis)
}

func boundsOf(ts []*Tile, basis Basis) Bounds {
	b := Bounds{
		MinU: math.Inf(1), MaxU: math.Inf(-1),
		MinV: math.Inf(1), MaxV: math.Inf(-1),
	}
	if len(ts) == 0 {
		return Bounds{}
	}
	for _, t := range ts {
		for _, v := range t.Boundary {
			u, w := basis.local(v)
			b.MinU = math.Min(b.MinU, u)
			b.MaxU = math.Max(b.MaxU, u)
			b.MinV = math.Min(b.MinV, w)
			b.MaxV = math.Max(b.MaxV, w)
		}
	}

	padU := b.Width() * boundsPadding
	padV := b.Height() * boundsPadding
	b.MinU -= padU
	b.MaxU += padU
	b.MinV -= padV
	b.MaxV += padV
	return b
}

// Project maps every boundary vertex of the given tiles to texture space.
//
// The texture is fitted to "contain" the cluster: it's never stretched, the
// longer side decides the scale & the texture repeats to fill the rest.
// Texture U follows north/south & texture V follows east/west; this keeps
// uploaded images upright when seen from the default camera.
//
// Returns nil if none of the tiles are known.
func Project(g *Graph, tiles []int, basis Basis, adj PatternAdjustment, aspect float64) *Projection {
	ts := members(g, tiles)
	if len(ts) == 0 {
		return nil
	}
	if aspect <= 0 {
		aspect = 1
	}
	userScale := adj.Scale
	if userScale <= 0 {
		userScale = 1
	}

	bounds := boundsOf(ts, basis)
	scale := math.Max(bounds.Width(), bounds.Height()*aspect)
	if scale <= 0 {
		scale = 1
	}
	centerU := (bounds.MinU + bounds.MaxU) / 2
	centerV := (bounds.MinV + bounds.MaxV) / 2

	p := &Projection{
		Basis:      basis,
		Bounds:     bounds,
		Scale:      scale,
		Aspect:     aspect,
		Adjustment: adj,
		UVs:        make(map[int][]UV, len(ts)),
	}
	for _, t := range ts {
		uvs := make([]UV, len(t.Boundary))
		for j, v := range t.Boundary {
			localU, localV := basis.local(v)
			uvs[j] = UV{
				U: ((localV-centerV)/scale+0.5)/userScale + adj.OffsetX*0.5,
				V: (((localU-centerU)/scale)*aspect+0.5)/userScale + adj.OffsetY*0.5,
			}
		}
		p.UVs[t.Index] = uvs
	}
	return p
}

// ProjectTiles builds a basis for the tiles & projects them in one go.
func ProjectTiles(g *Graph, tiles []int, up r3.Vector, adj PatternAdjustment, aspect float64) *Projection {
	basis, ok := NewBasis(g, tiles, up)
	if !ok {
		return nil
	}
	return Project(g, tiles, basis, adj, aspect)
}
