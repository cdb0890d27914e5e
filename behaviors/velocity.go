package behaviors

import "github.com/phanxgames/modular"

// Velocity moves its node by (VX, VY) pixels per second.
type Velocity struct {
	VX, VY float64
}

var _ modular.Behavior = (*Velocity)(nil)

func NewVelocity(vx, vy float64) *Velocity {
	return &Velocity{VX: vx, VY: vy}
}

func (v *Velocity) Start(*modular.Node) error { return nil }

func (v *Velocity) Run(n *modular.Node, ev modular.Events) error {
	return n.Move(v.VX*ev.DT, v.VY*ev.DT)
}
