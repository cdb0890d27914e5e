package modular

import (
	"image/color"
	"testing"
)

var (
	red         = color.RGBA{255, 0, 0, 255}
	green       = color.RGBA{0, 255, 0, 255}
	blue        = color.RGBA{0, 0, 255, 255}
	transparent = color.RGBA{}
)

// solid returns a w x h ImageSurface filled with c.
func solid(w, h int, c color.RGBA) *ImageSurface {
	s := NewImageSurface(w, h)
	s.Fill(c)
	return s
}

// visual returns a visual node drawing a solid w x h block at (x, y).
func visual(t *testing.T, name string, w, h int, c color.RGBA, x, y float64) *Node {
	t.Helper()
	n := NewVisual(name, solid(w, h, c))
	if err := n.SetPosition(x, y); err != nil {
		t.Fatalf("SetPosition(%v, %v): %v", x, y, err)
	}
	return n
}

func mustAdd(t *testing.T, parent TreeNode, child *Node) {
	t.Helper()
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild(%s): %v", child, err)
	}
}

func pixelAt(t *testing.T, s Surface, x, y int) color.RGBA {
	t.Helper()
	is, ok := s.(*ImageSurface)
	if !ok {
		t.Fatalf("surface is %T, want *ImageSurface", s)
	}
	return is.At(x, y)
}

// recorder is a Behavior that logs its Start and Run calls into a shared log.
type recorder struct {
	name   string
	log    *[]string
	starts int
	runErr error
}

func (r *recorder) Start(*Node) error {
	r.starts++
	*r.log = append(*r.log, r.name+".start")
	return nil
}

func (r *recorder) Run(n *Node, _ Events) error {
	*r.log = append(*r.log, r.name)
	return r.runErr
}
