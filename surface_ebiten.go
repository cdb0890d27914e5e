package modular

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface is a GPU Surface backed by an *ebiten.Image. A zero-sized
// surface holds no image, since Ebitengine cannot allocate one.
//
// Pixels of an EbitenSurface can only be read back while the game loop runs.
type EbitenSurface struct {
	img *ebiten.Image
}

var _ Surface = (*EbitenSurface)(nil)

// NewEbitenSurface creates a transparent w x h surface.
func NewEbitenSurface(w, h int) *EbitenSurface {
	if w <= 0 || h <= 0 {
		return &EbitenSurface{}
	}
	return &EbitenSurface{img: ebiten.NewImage(w, h)}
}

// WrapEbitenImage returns a surface that draws directly into img, typically
// the screen passed to Draw. The image is not copied.
func WrapEbitenImage(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Image returns the backing image, or nil for a zero-sized surface.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Fill replaces every pixel with c.
func (s *EbitenSurface) Fill(c color.Color) {
	if s.img != nil {
		s.img.Fill(c)
	}
}

// Size returns the surface dimensions.
func (s *EbitenSurface) Size() (w, h int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the surface rectangle.
func (s *EbitenSurface) Bounds() Rect {
	w, h := s.Size()
	return Rect{Width: float64(w), Height: float64(h)}
}

// Copy returns a new image holding the same pixels.
func (s *EbitenSurface) Copy() Surface {
	if s.img == nil {
		return &EbitenSurface{}
	}
	b := s.img.Bounds()
	dst := ebiten.NewImage(b.Dx(), b.Dy())
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(-b.Min.X), float64(-b.Min.Y))
	op.Blend = ebiten.BlendCopy
	dst.DrawImage(s.img, &op)
	return &EbitenSurface{img: dst}
}

// Blank returns a new transparent EbitenSurface.
func (s *EbitenSurface) Blank(w, h int) Surface {
	return NewEbitenSurface(w, h)
}

// Blit draws src over s with source-over blending, translated by (x, y).
// An *ImageSurface source is uploaded to the GPU first; any other foreign
// implementation returns ErrType.
func (s *EbitenSurface) Blit(src Surface, x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: blit offset (%v, %v) is not finite", ErrType, x, y)
	}
	var img *ebiten.Image
	switch v := src.(type) {
	case *EbitenSurface:
		if v == nil {
			return fmt.Errorf("%w: nil source surface", ErrType)
		}
		img = v.img
	case *ImageSurface:
		if v == nil {
			return fmt.Errorf("%w: nil source surface", ErrType)
		}
		if !v.img.Bounds().Empty() {
			img = ebiten.NewImageFromImage(v.img)
		}
	default:
		return fmt.Errorf("%w: cannot blit %T onto *EbitenSurface", ErrType, src)
	}
	if s.img == nil || img == nil {
		return nil
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	s.img.DrawImage(img, &op)
	return nil
}
