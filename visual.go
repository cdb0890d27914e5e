package modular

import (
	"fmt"
	"math"
)

func (n *Node) requireVisual(op string) error {
	if n.kind != KindVisual {
		return fmt.Errorf("%w: %s on %s node %q", ErrType, op, n.kind, n.Name)
	}
	return nil
}

// Z returns the draw order among siblings. Non-visual nodes report 0.
func (n *Node) Z() float64 {
	return n.z
}

// SetZ sets the draw order among siblings; higher z draws on top. An attached
// node is moved to its new position in the parent's children right away.
func (n *Node) SetZ(z float64) error {
	if err := n.requireVisual("SetZ"); err != nil {
		return err
	}
	if math.IsNaN(z) {
		return fmt.Errorf("%w: z must be a number", ErrType)
	}
	if n.z == z {
		return nil
	}
	n.z = z
	if n.parent != nil {
		return n.parent.childSet().list.Fix(n)
	}
	return nil
}

// CameraShift returns the parallax coefficient. Non-visual nodes report 0.
func (n *Node) CameraShift() float64 {
	return n.cameraShift
}

// SetCameraShift sets the parallax coefficient: 1 follows the camera at full
// rate, smaller values move less (background) and larger values move more
// (foreground). Returns ErrValue unless c is finite and greater than zero.
func (n *Node) SetCameraShift(c float64) error {
	if err := n.requireVisual("SetCameraShift"); err != nil {
		return err
	}
	if math.IsNaN(c) {
		return fmt.Errorf("%w: camera shift must be a number", ErrType)
	}
	if c <= 0 || math.IsInf(c, 1) {
		return fmt.Errorf("%w: camera shift must be greater than zero and finite, got %v", ErrValue, c)
	}
	n.cameraShift = c
	return nil
}

// Surface returns a copy of the node's own surface, without children or
// effects. Callers may modify the copy freely.
func (n *Node) Surface() Surface {
	if n.surface == nil {
		return nil
	}
	return n.surface.Copy()
}

// SetSurface replaces the node's own surface. The node keeps s; modifying s
// afterwards changes what the node draws.
func (n *Node) SetSurface(s Surface) error {
	if err := n.requireVisual("SetSurface"); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: nil surface", ErrType)
	}
	n.surface = s
	return nil
}

// Rect returns the bounds of the node's own surface.
func (n *Node) Rect() Rect {
	if n.surface == nil {
		return Rect{}
	}
	return n.surface.Bounds()
}

// --- Visual effects ---

// AddEffect appends e to the node's effect chain.
func (n *Node) AddEffect(e VisualEffect) error {
	if err := n.requireVisual("AddEffect"); err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: nil effect", ErrType)
	}
	return n.effects.add(e)
}

// RemoveEffect detaches e. Returns ErrStructure if e is not attached.
func (n *Node) RemoveEffect(e VisualEffect) error {
	if err := n.requireVisual("RemoveEffect"); err != nil {
		return err
	}
	return n.effects.remove(e)
}

// HasEffect reports whether e is in the node's effect chain.
func (n *Node) HasEffect(e VisualEffect) bool {
	return n.effects.has(e)
}

// Effects returns the effect chain in application order.
func (n *Node) Effects() []VisualEffect {
	return n.effects.snapshot()
}
