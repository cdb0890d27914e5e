package modular

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// rootBase is the child container shared by the root containers. Roots have
// no parent and no coordinates.
type rootBase struct {
	children children
}

func newRootBase() rootBase {
	return rootBase{children: newChildren()}
}

// Parent always returns nil for a root.
func (r *rootBase) Parent() TreeNode { return nil }

// Children returns a snapshot of the root's children in draw order.
func (r *rootBase) Children() []*Node { return r.children.list.Items() }

// NumChildren returns the number of children.
func (r *rootBase) NumChildren() int { return r.children.list.Len() }

// HasChild reports whether child is directly attached to the root.
func (r *rootBase) HasChild(child *Node) bool { return r.children.list.Contains(child) }

// Update updates every child subtree in draw order.
func (r *rootBase) Update(ev Events) error { return updateChildren(&r.children, ev) }

func (r *rootBase) childSet() *children { return &r.children }

// --- Scene ---

// Scene is the root of the world tree. It accepts every node kind and keeps a
// registry of the cameras attached directly to it, one of which is current
// and produces the frame returned by Render.
type Scene struct {
	rootBase
	cameras map[string]*Node
	current *Node
}

var _ TreeNode = (*Scene)(nil)

// NewScene creates an empty scene with no cameras.
func NewScene() *Scene {
	return &Scene{
		rootBase: newRootBase(),
		cameras:  make(map[string]*Node),
	}
}

// Root returns the scene itself.
func (s *Scene) Root() TreeNode { return s }

// AddChild attaches child. A camera's name is checked before the tree is
// touched: a duplicate returns ErrStructure and leaves everything unchanged.
// The first camera registered becomes current when none is.
func (s *Scene) AddChild(child *Node) error {
	if child != nil && child.kind == KindCamera {
		if other, ok := s.cameras[child.Name]; ok && other != child {
			return fmt.Errorf("%w: camera %q already exists in scene", ErrStructure, child.Name)
		}
	}
	if err := attach(s, child); err != nil {
		return err
	}
	if child.kind == KindCamera {
		s.cameras[child.Name] = child
		if s.current == nil {
			s.current = child
		}
	}
	return nil
}

// RemoveChild detaches child and drops it from the camera registry. Removing
// the current camera leaves the scene without one.
func (s *Scene) RemoveChild(child *Node) error {
	if err := detach(s, child); err != nil {
		return err
	}
	if child.kind == KindCamera {
		maps.DeleteFunc(s.cameras, func(_ string, c *Node) bool { return c == child })
		if s.current == child {
			s.current = nil
		}
	}
	return nil
}

// Camera returns the registered camera with the given name. Cameras are
// registered under their Name at attach time; use RenameCamera to change it.
func (s *Scene) Camera(name string) (*Node, bool) {
	c, ok := s.cameras[name]
	return c, ok
}

// CameraNames returns the registered camera names in sorted order.
func (s *Scene) CameraNames() []string {
	return slices.Sorted(maps.Keys(s.cameras))
}

// CurrentCamera returns the camera used by Render, or nil.
func (s *Scene) CurrentCamera() *Node {
	return s.current
}

// RenameCamera renames the registered camera old to name, keeping the
// registry in sync. Assigning Node.Name on a registered camera directly
// leaves the registry with the old name. Returns ErrStructure if old is not
// registered or name is taken by another camera.
func (s *Scene) RenameCamera(old, name string) error {
	c, ok := s.cameras[old]
	if !ok {
		return fmt.Errorf("%w: no camera named %q", ErrStructure, old)
	}
	if other, ok := s.cameras[name]; ok && other != c {
		return fmt.Errorf("%w: camera %q already exists in scene", ErrStructure, name)
	}
	delete(s.cameras, old)
	c.Name = name
	s.cameras[name] = c
	return nil
}

// SetCurrentCamera selects the registered camera used by Render.
func (s *Scene) SetCurrentCamera(name string) error {
	c, ok := s.cameras[name]
	if !ok {
		return fmt.Errorf("%w: no camera named %q", ErrStructure, name)
	}
	s.current = c
	return nil
}

// Render returns the current camera's Crop.
func (s *Scene) Render() (Surface, error) {
	if s.current == nil {
		return nil, fmt.Errorf("%w: scene has no current camera", ErrStructure)
	}
	if !globalDebug {
		return s.current.Crop()
	}
	t0 := time.Now()
	res, drawn, err := s.current.crop()
	logFrameStats(frameStats{
		camera:   s.current.Name,
		cropTime: time.Since(t0),
		drawn:    drawn,
	})
	return res, err
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame render
// stats and tree depth and child count warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// --- HUD ---

// HUD is a root for overlay content drawn on top of the camera frame without
// parallax. It accepts visual nodes only.
type HUD struct {
	rootBase
}

var _ TreeNode = (*HUD)(nil)

// NewHUD creates an empty HUD.
func NewHUD() *HUD {
	return &HUD{rootBase: newRootBase()}
}

// Root returns the HUD itself.
func (h *HUD) Root() TreeNode { return h }

// AddChild attaches a visual node. Other kinds return ErrType.
func (h *HUD) AddChild(child *Node) error {
	if child != nil && child.kind != KindVisual {
		return fmt.Errorf("%w: HUD accepts visual nodes only, got %s", ErrType, child)
	}
	return attach(h, child)
}

// RemoveChild detaches child.
func (h *HUD) RemoveChild(child *Node) error {
	return detach(h, child)
}

// Render composites every child's rendered subtree onto dst at the child's
// local offset and returns dst.
func (h *HUD) Render(dst Surface) (Surface, error) {
	if dst == nil {
		return nil, fmt.Errorf("%w: nil HUD target", ErrType)
	}
	for _, child := range h.children.list.Items() {
		img, err := child.Render()
		if err != nil {
			return nil, err
		}
		if err := dst.Blit(img, child.x, child.y); err != nil {
			return nil, fmt.Errorf("hud: compose %q: %w", child.Name, err)
		}
	}
	return dst, nil
}

// --- ControlRoom ---

// ControlRoom is a root for coordination nodes that neither draw nor act as
// cameras. It accepts plain nodes only.
type ControlRoom struct {
	rootBase
}

var _ TreeNode = (*ControlRoom)(nil)

// NewControlRoom creates an empty ControlRoom.
func NewControlRoom() *ControlRoom {
	return &ControlRoom{rootBase: newRootBase()}
}

// Root returns the ControlRoom itself.
func (c *ControlRoom) Root() TreeNode { return c }

// AddChild attaches a plain node. Visual and special nodes return ErrType.
func (c *ControlRoom) AddChild(child *Node) error {
	if child != nil && child.kind != KindPlain {
		return fmt.Errorf("%w: ControlRoom accepts plain nodes only, got %s", ErrType, child)
	}
	return attach(c, child)
}

// RemoveChild detaches child.
func (c *ControlRoom) RemoveChild(child *Node) error {
	return detach(c, child)
}
