package territory

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
)

// vertexKey rounds a vertex to `precision` decimal places & returns a string
// key. Vertices shared by neighbouring tiles map to the same key even if the
// generator produced them with a little floating point jitter.
func vertexKey(v r3.Vector, precision int) string {
	scale := math.Pow(10, float64(precision))
	parts := make([]string, 3)
	for i, f := range []float64{v.X, v.Y, v.Z} {
		r := math.Round(f*scale) / scale
		if r == 0 {
			r = 0 // drop negative zero
		}
		parts[i] = strconv.FormatFloat(r, 'f', precision, 64)
	}
	return strings.Join(parts, ",")
}

// toVector turns a [x,y,z] slice into a vector, missing values are 0
func toVector(in []float64) r3.Vector {
	var v [3]float64
	copy(v[:], in)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// fromVector is the reverse of toVector
func fromVector(v r3.Vector) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
