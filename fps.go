package modular

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is the number of seconds between FPS widget redraws.
const fpsRefresh = 0.5

// NewFPSWidget creates a visual node that displays the measured FPS and TPS,
// redrawn about twice per second. Add it to a HUD; it draws above its
// siblings.
func NewFPSWidget() *Node {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	surf := NewEbitenSurface(100, 32)
	n := NewVisual("fps_widget", surf)
	n.z = math.MaxFloat64

	var since float64
	refresh := BehaviorFunc(func(_ *Node, ev Events) error {
		since += ev.DT
		if since < fpsRefresh {
			return nil
		}
		since = 0

		img := surf.Image()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		return nil
	})
	// A fresh node and a BehaviorFunc with a no-op Start: attaching cannot fail.
	if err := n.AddBehavior(refresh); err != nil {
		panic(err)
	}
	return n
}
