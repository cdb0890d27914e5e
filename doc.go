// Package modular is a small retained-mode 2D scene graph built around
// attachable modules.
//
// Objects form a tree of [Node] values under one of three root containers.
// Each frame the driver calls Update on the roots, which walks the tree
// children-first and runs every attached [Behavior]; then [Scene.Render]
// asks the current camera to composite the scene into a [Surface].
//
// # Scene graph
//
// A [Node] is one of four kinds: plain nodes only hold a position and
// behaviors, visual nodes also own a surface, a z-order, a parallax
// coefficient and a chain of [VisualEffect] modules, cameras composite the
// scene, and special nodes are reserved for engine-level objects.
//
//	scene := modular.NewScene()
//	cam := modular.NewCamera("main", modular.NewImageSurface(320, 240))
//	_ = scene.AddChild(cam)
//
//	sky := modular.NewVisual("sky", skySurface)
//	_ = sky.SetCameraShift(0.25) // far background, scrolls slowly
//	_ = scene.AddChild(sky)
//
//	hero := modular.NewVisual("hero", heroSurface)
//	_ = hero.SetZ(10)
//	_ = hero.AddBehavior(behaviors.NewVelocity(40, 0))
//	_ = scene.AddChild(hero)
//
//	_ = scene.Update(modular.Events{DT: 1.0 / 60})
//	frame, err := scene.Render()
//
// Offsets are local to the parent. Children are kept sorted by z, lower z
// drawn first; non-visual children follow their visual siblings.
//
// # Roots
//
// [Scene] accepts every kind and registers cameras by name. [HUD] accepts
// visual nodes only and draws them without parallax on top of a frame.
// [ControlRoom] accepts plain nodes only, for logic that never draws.
//
// # Surfaces
//
// [ImageSurface] renders on the CPU and can be read back at any time.
// [EbitenSurface] renders on the GPU through [Ebitengine]; use [NewGame] and
// [Run] to drive a scene from a window.
//
// # Running
//
// [Game] polls input into [Events], updates the ControlRoom, Scene and HUD in
// that order, and draws the current camera's frame with the HUD on top.
// [RunConfig] can be loaded from TOML with [ParseRunConfig]. An [InputScript]
// replays scripted clicks, drags and screenshots for automated visual checks,
// and [NewFPSWidget] adds a frame rate readout to a HUD.
//
// # Errors
//
// Every failure wraps [ErrType], [ErrValue] or [ErrStructure].
//
// [Ebitengine]: https://ebitengine.org
package modular
