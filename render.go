package modular

import "fmt"

// Render produces the node's frame: a copy of its own surface with every
// visual child's rendered subtree composited at the child's local offset in
// ascending z, then passed through the effect chain. Non-visual children and
// everything below them contribute nothing.
//
// Render never modifies the node's stored surface, so rendering an unchanged
// tree twice yields identical pixels.
func (n *Node) Render() (Surface, error) {
	if err := n.requireVisual("Render"); err != nil {
		return nil, err
	}
	res := n.surface.Copy()
	for _, child := range n.children.list.Items() {
		if child.kind != KindVisual {
			continue
		}
		img, err := child.Render()
		if err != nil {
			return nil, err
		}
		if err := res.Blit(img, child.x, child.y); err != nil {
			return nil, fmt.Errorf("render %q: compose %q: %w", n.Name, child.Name, err)
		}
	}
	return applyEffects(n.Name, res, n.effects.items)
}

// applyEffects runs chain in order, feeding each output to the next effect.
func applyEffects(owner string, s Surface, chain []VisualEffect) (Surface, error) {
	for i, e := range chain {
		out, err := e.Apply(s)
		if err != nil {
			return nil, fmt.Errorf("render %q: effect %d: %w", owner, i, err)
		}
		if out == nil {
			return nil, fmt.Errorf("%w: render %q: effect %d returned no surface", ErrType, owner, i)
		}
		s = out
	}
	return s, nil
}
