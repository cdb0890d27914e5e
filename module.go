package modular

// Behavior is a functional module: it mutates the state of the node it is
// attached to once per frame.
//
// Start is called exactly once, when the behavior is attached with
// Node.AddBehavior. Run is called once per Update, in attachment order, after
// every child of the node has been updated for that frame.
//
// Implementations must be comparable (use pointer receivers); attachment,
// removal and membership compare modules with ==.
type Behavior interface {
	Start(n *Node) error
	Run(n *Node, ev Events) error
}

// VisualEffect is a cosmetic module: it post-processes a freshly rendered
// surface. Apply may modify s in place and return it, or return a new surface.
// Effects run in attachment order, each receiving the previous one's output.
type VisualEffect interface {
	Apply(s Surface) (Surface, error)
}

type behaviorFunc struct {
	run func(n *Node, ev Events) error
}

func (b *behaviorFunc) Start(*Node) error { return nil }

func (b *behaviorFunc) Run(n *Node, ev Events) error { return b.run(n, ev) }

// BehaviorFunc wraps a plain function as a Behavior with a no-op Start.
// Each call returns a distinct module.
func BehaviorFunc(run func(n *Node, ev Events) error) Behavior {
	return &behaviorFunc{run: run}
}

type effectFunc struct {
	apply func(s Surface) (Surface, error)
}

func (e *effectFunc) Apply(s Surface) (Surface, error) { return e.apply(s) }

// EffectFunc wraps a plain function as a VisualEffect.
// Each call returns a distinct module.
func EffectFunc(apply func(s Surface) (Surface, error)) VisualEffect {
	return &effectFunc{apply: apply}
}
