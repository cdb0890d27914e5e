package effects

import (
	"fmt"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/modular"
)

// ColorScale multiplies every pixel by a straight-alpha color, tinting and
// fading the surface. It works on both CPU and Ebitengine surfaces.
type ColorScale struct {
	Color modular.Color
}

var _ modular.VisualEffect = (*ColorScale)(nil)

// NewColorScale creates a ColorScale with components in [0, 1].
func NewColorScale(r, g, b, a float64) *ColorScale {
	return &ColorScale{Color: modular.Color{R: r, G: g, B: b, A: a}}
}

func (c *ColorScale) Apply(s modular.Surface) (modular.Surface, error) {
	// Surfaces hold premultiplied pixels, so alpha scales the color too.
	k := c.Color
	r, g, b, a := k.R*k.A, k.G*k.A, k.B*k.A, k.A
	switch v := s.(type) {
	case *modular.ImageSurface:
		out := adjust.Apply(v.RGBA(), func(px color.RGBA) color.RGBA {
			return color.RGBA{
				R: scale8(px.R, r),
				G: scale8(px.G, g),
				B: scale8(px.B, b),
				A: scale8(px.A, a),
			}
		})
		return modular.WrapRGBA(out), nil
	case *modular.EbitenSurface:
		src := v.Image()
		if src == nil {
			return v, nil
		}
		bounds := src.Bounds()
		dst := ebiten.NewImage(bounds.Dx(), bounds.Dy())
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(float64(-bounds.Min.X), float64(-bounds.Min.Y))
		op.ColorScale.Scale(float32(r), float32(g), float32(b), float32(a))
		dst.DrawImage(src, &op)
		return modular.WrapEbitenImage(dst), nil
	default:
		return nil, fmt.Errorf("%w: color scale cannot process %T", modular.ErrType, s)
	}
}

func scale8(v uint8, f float64) uint8 {
	x := float64(v) * f
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return uint8(x + 0.5)
	}
}
