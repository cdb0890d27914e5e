package modular

import (
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// NRGBA converts c to an 8-bit straight-alpha color, clamping components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A)}
}

func unit8(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// NodeKind distinguishes how a Node takes part in updates and rendering.
type NodeKind uint8

const (
	KindPlain   NodeKind = iota // positioned node with behaviors, no pixels
	KindVisual                  // owns a surface, z-order, camera shift and effects
	KindSpecial                 // engine-level node that no HUD or ControlRoom accepts
	KindCamera                  // special node that composites the scene into a frame
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindVisual:
		return "visual"
	case KindSpecial:
		return "special"
	case KindCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Events is the per-frame input snapshot handed unchanged to every Update and
// Behavior.Run call of that frame. The engine never inspects it.
type Events struct {
	// Frame is the number of update ticks completed before this one.
	Frame uint64
	// DT is the frame duration in seconds.
	DT float64
	// CursorX and CursorY are the pointer position in screen pixels.
	CursorX, CursorY int
	// Keys holds the keys held down during this frame.
	Keys []ebiten.Key
	// Buttons is a bitmask indexed by MouseButton.
	Buttons uint8
}

// KeyPressed reports whether k is held down this frame.
func (e Events) KeyPressed(k ebiten.Key) bool {
	return slices.Contains(e.Keys, k)
}

// ButtonPressed reports whether b is held down this frame.
func (e Events) ButtonPressed(b MouseButton) bool {
	return e.Buttons&(1<<b) != 0
}
