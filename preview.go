package territory

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// checkerCells is how many squares the placeholder texture has per side
const checkerCells = 8

// ImageAspect returns width / height of an image (1 for an empty image)
func ImageAspect(img image.Image) float64 {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 1
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// RenderPreview draws a projection in texture space: every tile is filled
// with the (repeating, colour adjusted) texture & outlined. One texture
// repeat is one square cell of the output; the longest side is `size` px.
// A nil texture draws a checkerboard so the UV layout itself is visible.
func RenderPreview(p *Projection, tex image.Image, size int) image.Image {
	if p == nil || len(p.UVs) == 0 || size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}

	lo, hi := p.Span()
	originU, originV := math.Floor(lo.U), math.Floor(lo.V)
	cellsU := math.Max(1, math.Ceil(hi.U-originU))
	cellsV := math.Max(1, math.Ceil(hi.V-originV))
	cell := math.Max(1, math.Floor(float64(size)/math.Max(cellsU, cellsV)))

	// texture u runs along x, v along y
	toPixel := func(uv UV) (float64, float64) {
		return (uv.U - originU) * cell, (uv.V - originV) * cell
	}

	if tex == nil {
		tex = checkerboard(int(cell))
	}
	tex = ApplyAdjustment(tex, p.Adjustment)
	tex = resize.Resize(uint(cell), uint(cell), tex, resize.Lanczos3)

	dc := gg.NewContext(int(cellsU*cell), int(cellsV*cell))
	dc.SetRGB(0.08, 0.08, 0.1)
	dc.Clear()

	pattern := gg.NewSurfacePattern(tex, gg.RepeatBoth)
	for _, i := range p.Tiles() {
		uvs := p.UVs[i]
		for j, uv := range uvs {
			x, y := toPixel(uv)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.SetFillStyle(pattern)
		dc.FillPreserve()
		dc.SetRGBA(1, 1, 1, 0.8)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	return dc.Image()
}

// SavePreview writes a preview image to disk as a png
func SavePreview(fname string, img image.Image) error {
	return gg.SavePNG(fname, img)
}

// LoadTexture reads a png / jpeg texture from disk
func LoadTexture(fname string) (image.Image, error) {
	return gg.LoadImage(fname)
}

// checkerboard is a placeholder texture of size x size px
func checkerboard(size int) image.Image {
	if size < checkerCells {
		size = checkerCells
	}
	dc := gg.NewContext(size, size)
	sq := float64(size) / checkerCells
	light := color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	dark := color.NRGBA{R: 0x55, G: 0x66, B: 0x77, A: 0xff}
	for y := 0; y < checkerCells; y++ {
		for x := 0; x < checkerCells; x++ {
			if (x+y)%2 == 0 {
				dc.SetColor(light)
			} else {
				dc.SetColor(dark)
			}
			dc.DrawRectangle(float64(x)*sq, float64(y)*sq, sq, sq)
			dc.Fill()
		}
	}
	return dc.Image()
}
