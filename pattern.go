package territory

import (
	"image"
	"image/color"
	"math"
)

// PatternAdjustment is how a sponsor image is placed & colour corrected.
// Levels are in 0..255, Gamma & Saturation are multipliers where 1 is neutral.
type PatternAdjustment struct {
	Scale   float64 `json:"scale" yaml:"scale"`
	OffsetX float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`

	InBlack  float64 `json:"in_black" yaml:"in_black"`
	InWhite  float64 `json:"in_white" yaml:"in_white"`
	Gamma    float64 `json:"gamma" yaml:"gamma"`
	OutBlack float64 `json:"out_black" yaml:"out_black"`
	OutWhite float64 `json:"out_white" yaml:"out_white"`

	Saturation float64 `json:"saturation" yaml:"saturation"`
}

// DefaultAdjustment returns the neutral adjustment
func DefaultAdjustment() PatternAdjustment {
	return PatternAdjustment{
		Scale:      1,
		InWhite:    255,
		Gamma:      1,
		OutWhite:   255,
		Saturation: 1,
	}
}

// IsNeutral returns if the colour pipeline would leave the image unchanged.
// Placement (scale & offsets) isn't part of this, it's applied through UVs.
func (a PatternAdjustment) IsNeutral() bool {
	d := DefaultAdjustment()
	return a.InBlack == d.InBlack && a.InWhite == d.InWhite && a.Gamma == d.Gamma &&
		a.OutBlack == d.OutBlack && a.OutWhite == d.OutWhite && a.Saturation == d.Saturation
}

// RenderParams is what a renderer needs to draw a pattern.
// Levels are normalised to 0..1 & gamma is given inverted, as a shader
// wants them.
type RenderParams struct {
	Image string

	// Unlit means the adjustment is neutral & a plain textured material
	// will do instead of the adjustable shader.
	Unlit bool

	Scale   float64
	OffsetX float64
	OffsetY float64

	InBlack  float64
	InWhite  float64
	InvGamma float64
	OutBlack float64
	OutWhite float64

	Saturation float64
}

// Adapt turns an image reference & adjustment into renderer parameters.
func Adapt(img string, adj PatternAdjustment) RenderParams {
	gamma := adj.Gamma
	if gamma <= 0 {
		gamma = 1
	}
	scale := adj.Scale
	if scale <= 0 {
		scale = 1
	}
	return RenderParams{
		Image:      img,
		Unlit:      adj.IsNeutral(),
		Scale:      scale,
		OffsetX:    adj.OffsetX,
		OffsetY:    adj.OffsetY,
		InBlack:    adj.InBlack / 255,
		InWhite:    adj.InWhite / 255,
		InvGamma:   1 / gamma,
		OutBlack:   adj.OutBlack / 255,
		OutWhite:   adj.OutWhite / 255,
		Saturation: adj.Saturation,
	}
}

// Channel runs a single 0..1 value through levels & gamma, the same way the
// adjustable shader does.
func (p RenderParams) Channel(c float64) float64 {
	span := p.InWhite - p.InBlack
	if span <= 0 {
		span = 1.0 / 255
	}
	c = clamp01((c - p.InBlack) / span)
	c = math.Pow(c, p.InvGamma)
	return clamp01(p.OutBlack + c*(p.OutWhite-p.OutBlack))
}

// Color runs a full colour through levels, gamma & saturation
func (p RenderParams) Color(r, g, b float64) (float64, float64, float64) {
	r, g, b = p.Channel(r), p.Channel(g), p.Channel(b)
	lum := 0.2126*r + 0.7152*g + 0.0722*b
	sat := func(c float64) float64 {
		return clamp01(lum + (c-lum)*p.Saturation)
	}
	return sat(r), sat(g), sat(b)
}

// ApplyAdjustment colour corrects an image on the CPU, matching the shader.
// Used for previews; a neutral adjustment returns a plain copy.
func ApplyAdjustment(in image.Image, adj PatternAdjustment) *image.NRGBA {
	b := in.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBAModel.Convert(in.At(x, y)).(color.NRGBA))
		}
	}
	if adj.IsNeutral() {
		return out
	}

	params := Adapt("", adj)
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			c := out.NRGBAAt(x, y)
			r, g, b := params.Color(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
			out.SetNRGBA(x, y, color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: c.A})
		}
	}
	return out
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

func to8(f float64) uint8 {
	return uint8(math.Round(clamp01(f) * 255))
}
