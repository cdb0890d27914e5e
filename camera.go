package modular

import (
	"cmp"
	"fmt"
	"slices"
)

// NewCamera creates a camera node. canvas is the backdrop every frame starts
// from and fixes the frame size; a nil canvas is replaced by an empty
// ImageSurface.
//
// A camera contributes no pixels to any render. Attach it to a Scene to make it
// selectable by name.
func NewCamera(name string, canvas Surface) *Node {
	n := newNode(name, KindCamera)
	if canvas == nil {
		canvas = NewImageSurface(0, 0)
	}
	n.canvas = canvas
	return n
}

func (n *Node) requireCamera(op string) error {
	if n.kind != KindCamera {
		return fmt.Errorf("%w: %s on %s node %q", ErrType, op, n.kind, n.Name)
	}
	return nil
}

// Canvas returns a copy of the camera backdrop.
func (n *Node) Canvas() Surface {
	if n.canvas == nil {
		return nil
	}
	return n.canvas.Copy()
}

// SetCanvas replaces the camera backdrop.
func (n *Node) SetCanvas(s Surface) error {
	if err := n.requireCamera("SetCanvas"); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: nil canvas", ErrType)
	}
	n.canvas = s
	return nil
}

// RelativeCenter returns the local offset of the middle of the camera view.
func (n *Node) RelativeCenter() Vec2 {
	return n.Position().Add(n.halfCanvas())
}

// GlobalCenter returns the global position of the middle of the camera view.
func (n *Node) GlobalCenter() Vec2 {
	x, y := n.GlobalCoordinates()
	return Vec2{x, y}.Add(n.halfCanvas())
}

func (n *Node) halfCanvas() Vec2 {
	if n.canvas == nil {
		return Vec2{}
	}
	w, h := n.canvas.Size()
	return Vec2{float64(w) / 2, float64(h) / 2}
}

// Crop composites the whole scene as seen from the camera.
//
// Starting from a copy of the canvas, every visual node reachable from the
// root without passing through another visual node is rendered (its own
// subtree included) and blitted at
//
//	offset = pathOffset + (-camX, -camY) * node.CameraShift()
//
// where pathOffset sums the local offsets from the root down to the node and
// (camX, camY) is the camera's global position. Those nodes are drawn in
// ascending z across the whole tree, so a visual inside a plain group is
// ordered against top-level visuals by its own z; equal z keeps tree order.
// The camera effect chain runs on the result.
func (n *Node) Crop() (Surface, error) {
	res, _, err := n.crop()
	return res, err
}

// cropItem is a visual node reached by Crop with its offset from the root.
type cropItem struct {
	node *Node
	at   Vec2
}

// crop is Crop that also reports how many top-level visual nodes it drew.
func (n *Node) crop() (Surface, int, error) {
	if err := n.requireCamera("Crop"); err != nil {
		return nil, 0, err
	}
	root := n.Root()
	if root == TreeNode(n) {
		return nil, 0, fmt.Errorf("%w: camera %q is not attached to a tree", ErrStructure, n.Name)
	}
	items := collectVisuals(nil, root.Children(), Vec2{})
	slices.SortStableFunc(items, func(a, b cropItem) int {
		return cmp.Compare(a.node.z, b.node.z)
	})

	res := n.canvas.Copy()
	camX, camY := n.GlobalCoordinates()
	cam := Vec2{camX, camY}
	drawn := 0
	for _, it := range items {
		img, err := it.node.Render()
		if err != nil {
			return nil, drawn, err
		}
		off := it.at.Add(cam.Scale(-it.node.cameraShift))
		if err := res.Blit(img, off.X, off.Y); err != nil {
			return nil, drawn, fmt.Errorf("crop %q: compose %q: %w", n.Name, it.node.Name, err)
		}
		drawn++
	}
	out, err := applyEffects(n.Name, res, n.cameraEffects.items)
	return out, drawn, err
}

// collectVisuals appends the visual nodes in nodes, descending through
// non-visual ones, in tree order.
func collectVisuals(dst []cropItem, nodes []*Node, origin Vec2) []cropItem {
	for _, c := range nodes {
		at := origin.Add(c.Position())
		if c.kind != KindVisual {
			dst = collectVisuals(dst, c.children.list.Items(), at)
			continue
		}
		dst = append(dst, cropItem{node: c, at: at})
	}
	return dst
}

// --- Camera effects ---

// AddCameraEffect appends e to the chain applied to the composited frame.
// This chain is separate from the per-node effects used by Render.
func (n *Node) AddCameraEffect(e VisualEffect) error {
	if err := n.requireCamera("AddCameraEffect"); err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: nil effect", ErrType)
	}
	return n.cameraEffects.add(e)
}

// RemoveCameraEffect detaches e from the camera chain.
func (n *Node) RemoveCameraEffect(e VisualEffect) error {
	if err := n.requireCamera("RemoveCameraEffect"); err != nil {
		return err
	}
	return n.cameraEffects.remove(e)
}

// HasCameraEffect reports whether e is in the camera chain.
func (n *Node) HasCameraEffect(e VisualEffect) bool {
	return n.cameraEffects.has(e)
}

// CameraEffects returns the camera chain in application order.
func (n *Node) CameraEffects() []VisualEffect {
	return n.cameraEffects.snapshot()
}
