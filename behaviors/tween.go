package behaviors

import (
	"github.com/phanxgames/modular"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween moves its node from wherever it is when attached to a target local
// position over a fixed duration, advancing by Events.DT each frame.
// Once finished it stays attached and does nothing.
type Tween struct {
	ToX, ToY float64
	Duration float32
	Ease     ease.TweenFunc

	tweenX *gween.Tween
	tweenY *gween.Tween
	done   bool
}

var _ modular.Behavior = (*Tween)(nil)

// NewTween creates a Tween to (toX, toY). A nil fn means linear easing.
func NewTween(toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{ToX: toX, ToY: toY, Duration: duration, Ease: fn}
}

// Start captures the node's current position as the starting point.
func (t *Tween) Start(n *modular.Node) error {
	t.tweenX = gween.New(float32(n.X()), float32(t.ToX), t.Duration, t.Ease)
	t.tweenY = gween.New(float32(n.Y()), float32(t.ToY), t.Duration, t.Ease)
	t.done = false
	return nil
}

// Run advances the tween and writes the new position.
func (t *Tween) Run(n *modular.Node, ev modular.Events) error {
	if t.done {
		return nil
	}
	dt := float32(ev.DT)
	x, doneX := t.tweenX.Update(dt)
	y, doneY := t.tweenY.Update(dt)
	t.done = doneX && doneY
	return n.SetPosition(float64(x), float64(y))
}

// Done reports whether the node has reached the target.
func (t *Tween) Done() bool {
	return t.done
}
