package modular

import (
	"errors"
	"math"
	"testing"
)

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		kind    NodeKind
		visual  bool
		special bool
	}{
		{"plain", NewNode("p"), KindPlain, false, false},
		{"visual", NewVisual("v", nil), KindVisual, true, false},
		{"special", NewSpecial("s"), KindSpecial, false, true},
		{"camera", NewCamera("c", nil), KindCamera, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.node
			if n.ID == 0 {
				t.Error("ID should be non-zero")
			}
			if n.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", n.Kind(), tt.kind)
			}
			if n.IsVisual() != tt.visual || n.IsSpecial() != tt.special {
				t.Errorf("IsVisual/IsSpecial = %v/%v, want %v/%v", n.IsVisual(), n.IsSpecial(), tt.visual, tt.special)
			}
			if n.Parent() != nil {
				t.Error("new node should be detached")
			}
			if n.NumChildren() != 0 {
				t.Error("new node should have no children")
			}
			if n.X() != 0 || n.Y() != 0 {
				t.Errorf("position = (%v, %v), want (0, 0)", n.X(), n.Y())
			}
		})
	}
}

func TestNewVisualDefaults(t *testing.T) {
	n := NewVisual("v", nil)
	if n.CameraShift() != 1 {
		t.Errorf("CameraShift = %v, want 1", n.CameraShift())
	}
	if n.Z() != 0 {
		t.Errorf("Z = %v, want 0", n.Z())
	}
	if w, h := n.Surface().Size(); w != 0 || h != 0 {
		t.Errorf("default surface = %dx%d, want 0x0", w, h)
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a")
	b := NewVisual("b", nil)
	c := NewCamera("c", nil)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild / RemoveChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	mustAdd(t, parent, child)

	if child.Parent() != TreeNode(parent) {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold child")
	}
	if !parent.HasChild(child) {
		t.Error("HasChild should be true")
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	parents := []TreeNode{NewNode("node"), NewScene(), NewControlRoom()}
	for _, p := range parents {
		c := NewNode("c")
		mustAdd(t, p, c)
		if err := p.RemoveChild(c); err != nil {
			t.Fatalf("RemoveChild: %v", err)
		}
		if c.Parent() != nil {
			t.Errorf("%T: child.Parent() = %v, want nil", p, c.Parent())
		}
		for _, got := range p.Children() {
			if got == c {
				t.Errorf("%T: child still listed after removal", p)
			}
		}
	}
}

func TestAddChildNil(t *testing.T) {
	n := NewNode("n")
	if err := n.AddChild(nil); !errors.Is(err, ErrType) {
		t.Errorf("AddChild(nil) = %v, want ErrType", err)
	}
}

func TestAddChildSelf(t *testing.T) {
	n := NewNode("n")
	if err := n.AddChild(n); !errors.Is(err, ErrStructure) {
		t.Errorf("AddChild(self) = %v, want ErrStructure", err)
	}
}

func TestAddChildCycle(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	mustAdd(t, a, b)
	mustAdd(t, b, c)
	if err := c.AddChild(a); !errors.Is(err, ErrStructure) {
		t.Errorf("AddChild(ancestor) = %v, want ErrStructure", err)
	}
	if a.Parent() != nil {
		t.Error("failed attach must not change the tree")
	}
}

func TestAddChildTwice(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	mustAdd(t, p, c)
	if err := p.AddChild(c); !errors.Is(err, ErrStructure) {
		t.Errorf("second AddChild = %v, want ErrStructure", err)
	}
	if p.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", p.NumChildren())
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")
	mustAdd(t, p1, child)
	mustAdd(t, p2, child)

	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent() != TreeNode(p2) {
		t.Error("child.Parent() should be p2")
	}
}

func TestRemoveChildNotPresent(t *testing.T) {
	p := NewNode("p")
	other := NewNode("other")
	c := NewNode("c")
	mustAdd(t, other, c)
	if err := p.RemoveChild(c); !errors.Is(err, ErrStructure) {
		t.Errorf("RemoveChild(foreign) = %v, want ErrStructure", err)
	}
	if c.Parent() != TreeNode(other) {
		t.Error("failed removal must not detach the child from its real parent")
	}
	if err := p.RemoveChild(nil); !errors.Is(err, ErrType) {
		t.Errorf("RemoveChild(nil) = %v, want ErrType", err)
	}
}

func TestSetParent(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	if err := c.SetParent(p); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if !p.HasChild(c) || c.Parent() != TreeNode(p) {
		t.Error("SetParent should attach on both sides")
	}
	if err := c.SetParent(nil); err != nil {
		t.Fatalf("SetParent(nil): %v", err)
	}
	if p.HasChild(c) || c.Parent() != nil {
		t.Error("SetParent(nil) should detach on both sides")
	}
	if err := c.SetParent(nil); err != nil {
		t.Errorf("SetParent(nil) on detached node = %v, want nil", err)
	}
}

func TestSetParentHonorsAdmission(t *testing.T) {
	hud := NewHUD()
	n := NewNode("plain")
	if err := n.SetParent(hud); !errors.Is(err, ErrType) {
		t.Errorf("SetParent(hud) for plain node = %v, want ErrType", err)
	}
}

func TestRoot(t *testing.T) {
	s := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	mustAdd(t, s, a)
	mustAdd(t, a, b)
	if b.Root() != TreeNode(s) {
		t.Errorf("Root() = %v, want scene", b.Root())
	}
	if s.Root() != TreeNode(s) {
		t.Error("scene should be its own root")
	}
	lone := NewNode("lone")
	if lone.Root() != TreeNode(lone) {
		t.Error("detached node should be its own root")
	}
}

func TestChildrenSnapshot(t *testing.T) {
	p := NewNode("p")
	mustAdd(t, p, NewNode("a"))
	kids := p.Children()
	kids[0] = nil
	if p.ChildAt(0) == nil {
		t.Error("mutating Children() result changed the node")
	}
}

// --- Z ordering ---

func TestChildrenSortedByZIncrementally(t *testing.T) {
	p := NewVisual("p", nil)
	zs := []float64{5, -2, 3, 10, 0, 7}
	for i, z := range zs {
		c := NewVisual("c", nil)
		if err := c.SetZ(z); err != nil {
			t.Fatal(err)
		}
		mustAdd(t, p, c)
		kids := p.Children()
		if len(kids) != i+1 {
			t.Fatalf("len = %d, want %d", len(kids), i+1)
		}
		for j := 1; j < len(kids); j++ {
			if kids[j-1].Z() > kids[j].Z() {
				t.Fatalf("after insert %d: z out of order %v > %v", i, kids[j-1].Z(), kids[j].Z())
			}
		}
	}
}

func TestNonVisualChildrenFollowVisual(t *testing.T) {
	p := NewNode("p")
	plain := NewNode("plain")
	v := NewVisual("v", nil)
	_ = v.SetZ(100)
	mustAdd(t, p, plain)
	mustAdd(t, p, v)
	if p.ChildAt(0) != v || p.ChildAt(1) != plain {
		t.Errorf("order = [%s, %s], want visual first", p.ChildAt(0), p.ChildAt(1))
	}
}

func TestSetZResortsParent(t *testing.T) {
	p := NewVisual("p", nil)
	a := NewVisual("a", nil)
	b := NewVisual("b", nil)
	_ = b.SetZ(1)
	mustAdd(t, p, a)
	mustAdd(t, p, b)
	if err := a.SetZ(2); err != nil {
		t.Fatal(err)
	}
	if p.ChildAt(0) != b || p.ChildAt(1) != a {
		t.Error("SetZ should move a after b")
	}
}

func TestSetZErrors(t *testing.T) {
	if err := NewNode("n").SetZ(1); !errors.Is(err, ErrType) {
		t.Errorf("SetZ on plain node = %v, want ErrType", err)
	}
	if err := NewVisual("v", nil).SetZ(math.NaN()); !errors.Is(err, ErrType) {
		t.Errorf("SetZ(NaN) = %v, want ErrType", err)
	}
}

// --- Behaviors ---

func TestAddBehaviorStartsOnce(t *testing.T) {
	var log []string
	n := NewNode("n")
	r := &recorder{name: "m", log: &log}
	if err := n.AddBehavior(r); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := n.Update(Events{}); err != nil {
			t.Fatal(err)
		}
	}
	if r.starts != 1 {
		t.Errorf("starts = %d, want 1", r.starts)
	}
	want := []string{"m.start", "m", "m", "m"}
	if !equalStrings(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestBehaviorOrder(t *testing.T) {
	var log []string
	n := NewNode("n")
	for _, name := range []string{"M1", "M2", "M3"} {
		if err := n.AddBehavior(&recorder{name: name, log: &log}); err != nil {
			t.Fatal(err)
		}
	}
	log = log[:0]
	for i := 0; i < 2; i++ {
		if err := n.Update(Events{}); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"M1", "M2", "M3", "M1", "M2", "M3"}
	if !equalStrings(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestUpdateChildrenFirst(t *testing.T) {
	var log []string
	root := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	mustAdd(t, root, a)
	mustAdd(t, a, b)
	mustAdd(t, b, c)
	d := NewNode("d")
	mustAdd(t, a, d)
	for _, n := range []*Node{a, b, c, d} {
		if err := n.AddBehavior(&recorder{name: n.Name, log: &log}); err != nil {
			t.Fatal(err)
		}
	}
	log = log[:0]
	if err := root.Update(Events{}); err != nil {
		t.Fatal(err)
	}
	want := []string{"c", "b", "d", "a"}
	if !equalStrings(log, want) {
		t.Errorf("update order = %v, want %v", log, want)
	}
}

func TestUpdatePassesEvents(t *testing.T) {
	n := NewNode("n")
	var got Events
	b := BehaviorFunc(func(_ *Node, ev Events) error {
		got = ev
		return nil
	})
	_ = n.AddBehavior(b)
	want := Events{Frame: 7, DT: 0.5, CursorX: 3}
	if err := n.Update(want); err != nil {
		t.Fatal(err)
	}
	if got.Frame != 7 || got.DT != 0.5 || got.CursorX != 3 {
		t.Errorf("events = %+v, want %+v", got, want)
	}
}

func TestUpdateAbortsOnError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	n := NewNode("n")
	_ = n.AddBehavior(&recorder{name: "first", log: &log, runErr: boom})
	_ = n.AddBehavior(&recorder{name: "second", log: &log})
	log = log[:0]
	err := n.Update(Events{})
	if !errors.Is(err, boom) {
		t.Fatalf("Update = %v, want boom", err)
	}
	if !equalStrings(log, []string{"first"}) {
		t.Errorf("log = %v, second behavior should not run", log)
	}
}

type failingStart struct{}

func (*failingStart) Start(*Node) error { return errors.New("no") }
func (*failingStart) Run(*Node, Events) error { return nil }

func TestAddBehaviorStartFailureRollsBack(t *testing.T) {
	n := NewNode("n")
	b := &failingStart{}
	if err := n.AddBehavior(b); err == nil {
		t.Fatal("AddBehavior should fail")
	}
	if n.HasBehavior(b) {
		t.Error("behavior should not stay attached after Start failed")
	}
}

func TestBehaviorMembership(t *testing.T) {
	var log []string
	n := NewNode("n")
	r := &recorder{name: "r", log: &log}
	if err := n.AddBehavior(nil); !errors.Is(err, ErrType) {
		t.Errorf("AddBehavior(nil) = %v, want ErrType", err)
	}
	_ = n.AddBehavior(r)
	if !n.HasBehavior(r) || len(n.Behaviors()) != 1 {
		t.Error("behavior should be attached")
	}
	if err := n.AddBehavior(r); !errors.Is(err, ErrStructure) {
		t.Errorf("duplicate AddBehavior = %v, want ErrStructure", err)
	}
	if err := n.RemoveBehavior(r); err != nil {
		t.Fatal(err)
	}
	if n.HasBehavior(r) {
		t.Error("behavior should be removed")
	}
	if err := n.RemoveBehavior(r); !errors.Is(err, ErrStructure) {
		t.Errorf("RemoveBehavior(absent) = %v, want ErrStructure", err)
	}
}

func TestBehaviorMayRestructureTree(t *testing.T) {
	p := NewNode("p")
	a := NewNode("a")
	b := NewNode("b")
	mustAdd(t, p, a)
	mustAdd(t, p, b)
	_ = a.AddBehavior(BehaviorFunc(func(n *Node, _ Events) error {
		return p.RemoveChild(b)
	}))
	if err := p.Update(Events{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.HasChild(b) {
		t.Error("b should have been removed")
	}
}
