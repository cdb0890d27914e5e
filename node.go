package modular

import (
	"fmt"
	"math"
)

// TreeNode is anything that can own children: a Node or one of the root
// containers (Scene, HUD, ControlRoom).
type TreeNode interface {
	// Parent returns the owning TreeNode, or nil for roots and detached nodes.
	Parent() TreeNode
	// Root walks Parent until none remains and returns the last TreeNode.
	Root() TreeNode
	// Children returns a snapshot of the children in draw order.
	Children() []*Node
	// AddChild attaches child, detaching it from its previous parent first.
	AddChild(child *Node) error
	// RemoveChild detaches child.
	RemoveChild(child *Node) error

	childSet() *children
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct serves
// every NodeKind; kind-specific fields stay zero on nodes that do not use them
// and kind-specific operations return ErrType on the wrong kind.
type Node struct {
	// Identity
	ID   uint32
	Name string
	kind NodeKind

	// Hierarchy
	parent   TreeNode
	children children

	// Local offset relative to the parent
	x, y float64

	behaviors moduleList[Behavior]

	// Visual fields (KindVisual)
	z           float64
	surface     Surface
	cameraShift float64
	effects     moduleList[VisualEffect]

	// Camera fields (KindCamera)
	canvas        Surface
	cameraEffects moduleList[VisualEffect]

	// Metadata
	UserData any
}

func newNode(name string, kind NodeKind) *Node {
	return &Node{
		ID:       nextNodeID(),
		Name:     name,
		kind:     kind,
		children: newChildren(),
	}
}

// NewNode creates a plain node: positioned, updatable, never rendered.
func NewNode(name string) *Node {
	return newNode(name, KindPlain)
}

// NewSpecial creates a special node. Special nodes behave like plain nodes but
// are refused by HUD and ControlRoom.
func NewSpecial(name string) *Node {
	return newNode(name, KindSpecial)
}

// NewVisual creates a visual node drawing surf. A nil surf is replaced by an
// empty ImageSurface.
func NewVisual(name string, surf Surface) *Node {
	n := newNode(name, KindVisual)
	if surf == nil {
		surf = NewImageSurface(0, 0)
	}
	n.surface = surf
	n.cameraShift = 1
	return n
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// IsVisual reports whether the node contributes pixels when rendered.
func (n *Node) IsVisual() bool {
	return n.kind == KindVisual
}

// IsSpecial reports whether the node is special (cameras included).
func (n *Node) IsSpecial() bool {
	return n.kind == KindSpecial || n.kind == KindCamera
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %q (id %d)", n.kind, n.Name, n.ID)
}

// --- Tree manipulation ---

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() TreeNode {
	return n.parent
}

// SetParent attaches n to p through p.AddChild, keeping both sides of the
// relationship consistent. A nil p detaches n from its current parent.
func (n *Node) SetParent(p TreeNode) error {
	if p == nil {
		if n.parent == nil {
			return nil
		}
		return n.parent.RemoveChild(n)
	}
	return p.AddChild(n)
}

// Root returns the topmost TreeNode above n, or n itself when detached.
func (n *Node) Root() TreeNode {
	var t TreeNode = n
	for t.Parent() != nil {
		t = t.Parent()
	}
	return t
}

// AddChild attaches child under n. Any node kind is accepted.
// Returns ErrType for a nil child and ErrStructure when child is n or one of
// its ancestors.
func (n *Node) AddChild(child *Node) error {
	return attach(n, child)
}

// RemoveChild detaches child from n.
// Returns ErrStructure if child is not one of n's children.
func (n *Node) RemoveChild(child *Node) error {
	return detach(n, child)
}

// Children returns a snapshot of the children: visual children in ascending z,
// followed by the non-visual ones in attach order.
func (n *Node) Children() []*Node {
	return n.children.list.Items()
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return n.children.list.Len()
}

// ChildAt returns the child at the given draw-order index.
func (n *Node) ChildAt(index int) *Node {
	return n.children.list.At(index)
}

// HasChild reports whether child is directly attached to n.
func (n *Node) HasChild(child *Node) bool {
	return n.children.list.Contains(child)
}

func (n *Node) childSet() *children {
	return &n.children
}

// --- Behaviors ---

// AddBehavior attaches b and calls its Start method. If Start fails the
// behavior is detached again and the error returned.
func (n *Node) AddBehavior(b Behavior) error {
	if b == nil {
		return fmt.Errorf("%w: nil behavior", ErrType)
	}
	if err := n.behaviors.add(b); err != nil {
		return err
	}
	if err := b.Start(n); err != nil {
		_ = n.behaviors.remove(b)
		return fmt.Errorf("start behavior on %q: %w", n.Name, err)
	}
	return nil
}

// RemoveBehavior detaches b. Returns ErrStructure if b is not attached.
func (n *Node) RemoveBehavior(b Behavior) error {
	return n.behaviors.remove(b)
}

// HasBehavior reports whether b is attached to n.
func (n *Node) HasBehavior(b Behavior) bool {
	return n.behaviors.has(b)
}

// Behaviors returns the attached behaviors in execution order.
func (n *Node) Behaviors() []Behavior {
	return n.behaviors.snapshot()
}

// --- Update ---

// Update runs one frame: every child's subtree is updated first, in draw
// order, then n's own behaviors run in attachment order. The first error
// aborts the traversal.
func (n *Node) Update(ev Events) error {
	if err := updateChildren(&n.children, ev); err != nil {
		return err
	}
	for _, b := range n.behaviors.snapshot() {
		if err := b.Run(n, ev); err != nil {
			return fmt.Errorf("update %q: %w", n.Name, err)
		}
	}
	return nil
}

// --- Child container ---

// children is the z-ordered child list shared by nodes and root containers.
type children struct {
	list *SortedList[*Node]
}

func newChildren() children {
	return children{list: NewSortedList(drawKey)}
}

// drawKey orders visual nodes by z. Other kinds have no z and sort after every
// visual sibling.
func drawKey(n *Node) float64 {
	if n.kind == KindVisual {
		return n.z
	}
	return math.Inf(1)
}

// updateChildren updates a snapshot of c so behaviors may restructure the tree
// while it is being walked.
func updateChildren(c *children, ev Events) error {
	for _, child := range c.list.Items() {
		if err := child.Update(ev); err != nil {
			return err
		}
	}
	return nil
}

// attach links child under owner. Admission policies must already have run.
func attach(owner TreeNode, child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: cannot add nil child", ErrType)
	}
	if isAncestor(child, owner) {
		return fmt.Errorf("%w: adding %q would create a cycle", ErrStructure, child.Name)
	}
	if child.parent == owner {
		return fmt.Errorf("%w: %q is already a child", ErrStructure, child.Name)
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}
	child.parent = owner
	owner.childSet().list.Insert(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(owner)
	}
	return nil
}

// detach unlinks child from owner.
func detach(owner TreeNode, child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: cannot remove nil child", ErrType)
	}
	if child.parent != owner {
		return fmt.Errorf("%w: %q is not a child of this node", ErrStructure, child.Name)
	}
	if err := owner.childSet().list.Remove(child); err != nil {
		return err
	}
	child.parent = nil
	return nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate *Node, node TreeNode) bool {
	for p := node; p != nil; p = p.Parent() {
		if n, ok := p.(*Node); ok && n == candidate {
			return true
		}
	}
	return false
}
