// Package effects provides stock VisualEffect modules.
//
// The filters in this package run on the CPU through bild and require an
// *modular.ImageSurface; ColorScale also handles *modular.EbitenSurface.
// Every effect returns a new surface and leaves its input untouched.
package effects

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	bildeffect "github.com/anthonynsimon/bild/effect"
	"github.com/phanxgames/modular"
)

// rgbaOf returns the pixels behind a CPU surface.
func rgbaOf(name string, s modular.Surface) (*image.RGBA, error) {
	is, ok := s.(*modular.ImageSurface)
	if !ok || is == nil {
		return nil, fmt.Errorf("%w: %s effect needs *modular.ImageSurface, got %T", modular.ErrType, name, s)
	}
	return is.RGBA(), nil
}

// Blur applies a Gaussian blur.
type Blur struct {
	Radius float64
}

var _ modular.VisualEffect = (*Blur)(nil)

// NewBlur creates a Gaussian blur with the given radius in pixels.
func NewBlur(radius float64) *Blur {
	return &Blur{Radius: radius}
}

func (b *Blur) Apply(s modular.Surface) (modular.Surface, error) {
	img, err := rgbaOf("blur", s)
	if err != nil {
		return nil, err
	}
	return modular.WrapRGBA(blur.Gaussian(img, b.Radius)), nil
}

// Grayscale removes color, keeping luminance and alpha.
type Grayscale struct{}

var _ modular.VisualEffect = (*Grayscale)(nil)

func NewGrayscale() *Grayscale {
	return &Grayscale{}
}

func (g *Grayscale) Apply(s modular.Surface) (modular.Surface, error) {
	img, err := rgbaOf("grayscale", s)
	if err != nil {
		return nil, err
	}
	return modular.WrapRGBA(bildeffect.Grayscale(img)), nil
}

// Invert inverts the color channels, keeping alpha.
type Invert struct{}

var _ modular.VisualEffect = (*Invert)(nil)

func NewInvert() *Invert {
	return &Invert{}
}

func (i *Invert) Apply(s modular.Surface) (modular.Surface, error) {
	img, err := rgbaOf("invert", s)
	if err != nil {
		return nil, err
	}
	return modular.WrapRGBA(bildeffect.Invert(img)), nil
}

// Brightness shifts brightness by Change, in [-1, 1].
type Brightness struct {
	Change float64
}

var _ modular.VisualEffect = (*Brightness)(nil)

func NewBrightness(change float64) *Brightness {
	return &Brightness{Change: change}
}

func (b *Brightness) Apply(s modular.Surface) (modular.Surface, error) {
	if b.Change < -1 || b.Change > 1 {
		return nil, fmt.Errorf("%w: brightness change must be in [-1, 1], got %v", modular.ErrValue, b.Change)
	}
	img, err := rgbaOf("brightness", s)
	if err != nil {
		return nil, err
	}
	return modular.WrapRGBA(adjust.Brightness(img, b.Change)), nil
}
