package modular

import (
	"encoding/json"
	"fmt"
	"math"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type inputScriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// injectedPointer is one frame of synthetic pointer state.
type injectedPointer struct {
	x, y    int
	pressed bool
}

// InputScript replays scripted pointer input and screenshots across frames,
// for automated visual checks. Attach it with Game.SetInputScript.
//
// Supported actions: "click" (x, y), "move" (x, y), "drag" (fromX, fromY,
// toX, toY, frames), "wait" (frames) and "screenshot" (label). While the
// script injects pointer events they replace the polled cursor and left
// button state; keys are passed through unchanged.
type InputScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	pending   []injectedPointer
	done      bool
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(jsonData []byte) (*InputScript, error) {
	var f inputScriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: %w: no steps", ErrValue)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "move", "drag", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse input script: %w: step %d: unknown action %q", ErrValue, i, st.Action)
		}
	}
	return &InputScript{steps: f.Steps}, nil
}

// SetInputScript attaches s to the game. Pass nil to detach.
func (g *Game) SetInputScript(s *InputScript) {
	g.script = s
}

// Done reports whether every step has run and all injected input is consumed.
func (r *InputScript) Done() bool {
	return r.done
}

// apply advances the script by one frame and returns ev with any injected
// pointer state applied.
func (r *InputScript) apply(g *Game, ev Events) Events {
	r.advance(g)
	if len(r.pending) == 0 {
		return ev
	}
	p := r.pending[0]
	r.pending = r.pending[1:]
	ev.CursorX, ev.CursorY = p.x, p.y
	ev.Buttons &^= 1 << MouseButtonLeft
	if p.pressed {
		ev.Buttons |= 1 << MouseButtonLeft
	}
	if len(r.pending) == 0 && r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return ev
}

func (r *InputScript) advance(g *Game) {
	if r.done || len(r.pending) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		r.push(st.X, st.Y, true)
		r.push(st.X, st.Y, false)
	case "move":
		r.push(st.X, st.Y, false)
	case "drag":
		r.drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pending) == 0 {
		r.done = true
	}
}

func (r *InputScript) push(x, y float64, pressed bool) {
	r.pending = append(r.pending, injectedPointer{
		x:       int(math.Round(x)),
		y:       int(math.Round(y)),
		pressed: pressed,
	})
}

// drag queues a press at the start, frames-2 interpolated held moves and a
// release at the end. frames is at least 2.
func (r *InputScript) drag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	r.push(fromX, fromY, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.push(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, true)
	}
	r.push(toX, toY, false)
}
