package modular

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Surface is the raster buffer the engine renders into. The engine only needs
// to create, copy, measure and alpha-composite surfaces; pixel formats and
// storage belong to the implementation.
//
// Blit returns ErrType when src is of an implementation the receiver cannot
// read. The only cross-implementation blit supported is an ImageSurface drawn
// onto an EbitenSurface.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)
	// Bounds returns the surface rectangle.
	Bounds() Rect
	// Copy returns an independent surface with the same pixels.
	Copy() Surface
	// Blank returns a new transparent surface of the same implementation.
	Blank(w, h int) Surface
	// Blit composites src over the receiver with its top-left corner at (x, y).
	Blit(src Surface, x, y float64) error
}

// --- ImageSurface ---

// ImageSurface is a CPU Surface backed by an *image.RGBA whose bounds always
// start at the origin. It renders deterministically and supports pixel
// readback anywhere, which makes it the surface of choice for tests and
// headless rendering.
type ImageSurface struct {
	img *image.RGBA
}

var _ Surface = (*ImageSurface)(nil)

// NewImageSurface creates a transparent w x h surface. Negative dimensions are
// treated as zero.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// NewImageSurfaceFrom copies img into a new surface positioned at the origin.
func NewImageSurfaceFrom(img image.Image) *ImageSurface {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	return &ImageSurface{img: rgba}
}

// WrapRGBA returns a surface backed by img without copying it, unless its
// bounds do not start at the origin.
func WrapRGBA(img *image.RGBA) *ImageSurface {
	if img.Bounds().Min != (image.Point{}) {
		return NewImageSurfaceFrom(img)
	}
	return &ImageSurface{img: img}
}

// RGBA returns the backing image. Writes to it change the surface.
func (s *ImageSurface) RGBA() *image.RGBA {
	return s.img
}

// Fill replaces every pixel with c.
func (s *ImageSurface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// At returns the premultiplied pixel at (x, y).
func (s *ImageSurface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Size returns the surface dimensions.
func (s *ImageSurface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the surface rectangle.
func (s *ImageSurface) Bounds() Rect {
	w, h := s.Size()
	return Rect{Width: float64(w), Height: float64(h)}
}

// Copy returns a deep copy.
func (s *ImageSurface) Copy() Surface {
	return &ImageSurface{img: clone.AsRGBA(s.img)}
}

// Blank returns a new transparent ImageSurface.
func (s *ImageSurface) Blank(w, h int) Surface {
	return NewImageSurface(w, h)
}

// Blit composites src over s using source-over blending. Whole-pixel offsets
// are copied directly; fractional offsets are resampled bilinearly.
func (s *ImageSurface) Blit(src Surface, x, y float64) error {
	other, ok := src.(*ImageSurface)
	if !ok || other == nil {
		return fmt.Errorf("%w: cannot blit %T onto *ImageSurface", ErrType, src)
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: blit offset (%v, %v) is not finite", ErrType, x, y)
	}
	sb := other.img.Bounds()
	if sb.Empty() {
		return nil
	}
	if x == math.Trunc(x) && y == math.Trunc(y) {
		dp := image.Pt(int(x), int(y))
		draw.Draw(s.img, image.Rectangle{Min: dp, Max: dp.Add(sb.Size())}, other.img, sb.Min, draw.Over)
		return nil
	}
	s2d := f64.Aff3{1, 0, x, 0, 1, y}
	draw.ApproxBiLinear.Transform(s.img, s2d, other.img, sb, draw.Over, nil)
	return nil
}
