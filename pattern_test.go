package territory

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdaptNeutralIsUnlit(t *testing.T) {
	p := Adapt("flag.png", DefaultAdjustment())

	assert.True(t, p.Unlit)
	assert.Equal(t, "flag.png", p.Image)
	assert.Equal(t, 0.0, p.InBlack)
	assert.Equal(t, 1.0, p.InWhite)
	assert.Equal(t, 1.0, p.InvGamma)
	assert.Equal(t, 1.0, p.OutWhite)
	assert.Equal(t, 1.0, p.Saturation)
}

func TestAdaptPlacementStaysUnlit(t *testing.T) {
	adj := DefaultAdjustment()
	adj.Scale = 3
	adj.OffsetX = 0.5

	p := Adapt("flag.png", adj)
	assert.True(t, p.Unlit)
	assert.Equal(t, 3.0, p.Scale)
	assert.Equal(t, 0.5, p.OffsetX)
}

func TestAdaptColourParams(t *testing.T) {
	cases := map[string]func(*PatternAdjustment){
		"in black":   func(a *PatternAdjustment) { a.InBlack = 10 },
		"in white":   func(a *PatternAdjustment) { a.InWhite = 200 },
		"gamma":      func(a *PatternAdjustment) { a.Gamma = 2 },
		"out black":  func(a *PatternAdjustment) { a.OutBlack = 5 },
		"out white":  func(a *PatternAdjustment) { a.OutWhite = 250 },
		"saturation": func(a *PatternAdjustment) { a.Saturation = 0 },
	}

	for name, change := range cases {
		adj := DefaultAdjustment()
		change(&adj)
		assert.False(t, Adapt("x", adj).Unlit, name)
	}

	adj := DefaultAdjustment()
	adj.InBlack = 51
	adj.Gamma = 2
	p := Adapt("x", adj)
	assert.InDelta(t, 0.2, p.InBlack, 1e-12)
	assert.InDelta(t, 0.5, p.InvGamma, 1e-12)
}

func TestAdaptBadValues(t *testing.T) {
	adj := DefaultAdjustment()
	adj.Gamma = 0
	adj.Scale = -2

	p := Adapt("x", adj)
	assert.Equal(t, 1.0, p.InvGamma)
	assert.Equal(t, 1.0, p.Scale)
}

func TestRenderParamsChannel(t *testing.T) {
	adj := DefaultAdjustment()
	adj.InBlack = 51  // 0.2
	adj.InWhite = 204 // 0.8
	adj.OutBlack = 0
	adj.OutWhite = 255
	p := Adapt("x", adj)

	assert.InDelta(t, 0, p.Channel(0.1), 1e-9)
	assert.InDelta(t, 0.5, p.Channel(0.5), 1e-9)
	assert.InDelta(t, 1, p.Channel(0.9), 1e-9)
}

func TestRenderParamsDesaturate(t *testing.T) {
	adj := DefaultAdjustment()
	adj.Saturation = 0
	p := Adapt("x", adj)

	r, g, b := p.Color(1, 0, 0)
	assert.InDelta(t, r, g, 1e-12)
	assert.InDelta(t, g, b, 1e-12)
}

func TestApplyAdjustment(t *testing.T) {
	in := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	in.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	in.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	same := ApplyAdjustment(in, DefaultAdjustment())
	assert.Equal(t, in.Pix, same.Pix)

	adj := DefaultAdjustment()
	adj.Saturation = 0
	grey := ApplyAdjustment(in, adj)
	c := grey.NRGBAAt(0, 0)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, uint8(128), grey.NRGBAAt(1, 0).A)
}
