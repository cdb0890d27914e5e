package modular

import (
	"fmt"
	"math"
)

// checkFinite rejects NaN and infinite coordinates.
func checkFinite(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrType, what, v)
	}
	return nil
}

// X returns the local X offset relative to the parent.
func (n *Node) X() float64 { return n.x }

// Y returns the local Y offset relative to the parent.
func (n *Node) Y() float64 { return n.y }

// SetX sets the local X offset.
func (n *Node) SetX(x float64) error {
	if err := checkFinite("x", x); err != nil {
		return err
	}
	n.x = x
	return nil
}

// SetY sets the local Y offset.
func (n *Node) SetY(y float64) error {
	if err := checkFinite("y", y); err != nil {
		return err
	}
	n.y = y
	return nil
}

// SetPosition sets both local offsets. Neither is changed on error.
func (n *Node) SetPosition(x, y float64) error {
	if err := checkFinite("x", x); err != nil {
		return err
	}
	if err := checkFinite("y", y); err != nil {
		return err
	}
	n.x, n.y = x, y
	return nil
}

// Move adds (dx, dy) to the local offsets.
func (n *Node) Move(dx, dy float64) error {
	return n.SetPosition(n.x+dx, n.y+dy)
}

// Position returns the local offsets as a vector.
func (n *Node) Position() Vec2 {
	return Vec2{n.x, n.y}
}

// RelativeCoordinates returns the local offsets.
func (n *Node) RelativeCoordinates() (x, y float64) {
	return n.x, n.y
}

// GlobalCoordinates returns the sum of the local offsets of n and every Node
// above it. Root containers have no offset of their own.
func (n *Node) GlobalCoordinates() (x, y float64) {
	for p := n; p != nil; p = p.parentNode() {
		x += p.x
		y += p.y
	}
	return x, y
}

// parentNode returns the parent when it is a Node, nil otherwise.
func (n *Node) parentNode() *Node {
	p, _ := n.parent.(*Node)
	return p
}
