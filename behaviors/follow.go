package behaviors

import (
	"fmt"

	"github.com/phanxgames/modular"
)

// Follow chases a target node. Each frame the owner closes Lerp of the gap
// between its global position and the target's global position plus Offset;
// a Lerp of 1 snaps.
//
// When attached to a camera with Center set, the offset also subtracts half
// the camera canvas so the target ends up in the middle of the frame.
type Follow struct {
	Target *modular.Node
	Offset modular.Vec2
	Lerp   float64
	Center bool
}

var _ modular.Behavior = (*Follow)(nil)

// NewFollow creates a Follow of target.
func NewFollow(target *modular.Node, lerp float64) *Follow {
	return &Follow{Target: target, Lerp: lerp}
}

// NewCameraFollow creates a Follow that keeps target centered in a camera.
func NewCameraFollow(target *modular.Node, lerp float64) *Follow {
	return &Follow{Target: target, Lerp: lerp, Center: true}
}

func (f *Follow) Start(_ *modular.Node) error {
	if f.Target == nil {
		return fmt.Errorf("%w: follow needs a target", modular.ErrType)
	}
	if f.Lerp <= 0 || f.Lerp > 1 {
		return fmt.Errorf("%w: follow lerp must be in (0, 1], got %v", modular.ErrValue, f.Lerp)
	}
	return nil
}

// Run is called every frame. The center shift is read from the current
// canvas so a camera resized after Start still centers correctly.
func (f *Follow) Run(n *modular.Node, _ modular.Events) error {
	tx, ty := f.Target.GlobalCoordinates()
	gx, gy := n.GlobalCoordinates()
	want := modular.Vec2{X: tx, Y: ty}.Add(f.Offset)
	if f.Center && n.Kind() == modular.KindCamera {
		c := n.GlobalCenter()
		want = want.Add(modular.Vec2{X: gx - c.X, Y: gy - c.Y})
	}
	return n.Move((want.X-gx)*f.Lerp, (want.Y-gy)*f.Lerp)
}
