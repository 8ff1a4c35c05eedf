package territory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeIndices(t *testing.T) {
	assert.Equal(t, "", encodeIndices(nil))
	assert.Equal(t, "1,2,3", encodeIndices([]int{1, 2, 3}))

	in := make([]int, indicesPerRow+2)
	for i := range in {
		in[i] = i
	}
	assert.Equal(t, "0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,\n16,17", encodeIndices(in))
}

func TestDecodeIndices(t *testing.T) {
	out, err := decodeIndices("\n 4,5,\n6 ,7\n")
	assert.Nil(t, err)
	assert.Equal(t, []int{4, 5, 6, 7}, out)

	out, err = decodeIndices("")
	assert.Nil(t, err)
	assert.Empty(t, out)

	_, err = decodeIndices("1,--2")
	assert.NotNil(t, err)

	// corrupt values are rejected, not squashed into other tiles
	for _, in := range []string{"1a2", "3,4x", "5;6"} {
		_, err = decodeIndices(in)
		assert.NotNil(t, err, in)
	}
}

func TestIndicesRoundTrip(t *testing.T) {
	in := []int{0, 7, 42, 10000, 3, 3}
	out, err := decodeIndices(encodeIndices(in))

	assert.Nil(t, err)
	assert.Equal(t, in, out)
}
