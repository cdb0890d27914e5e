package modular

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	// Title is the window title.
	Title string `toml:"title"`
	// Width and Height are the logical screen size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// TPS is the number of updates per second.
	TPS int `toml:"tps"`
	// Debug enables per-frame render stats and tree warnings.
	Debug bool `toml:"debug"`
	// ScreenshotDir is where Game.Screenshot writes PNG files.
	ScreenshotDir string `toml:"screenshot_dir"`
}

const (
	defaultWidth         = 640
	defaultHeight        = 480
	defaultScreenshotDir = "screenshots"
)

// withDefaults fills zero fields with their defaults.
func (c RunConfig) withDefaults() RunConfig {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.TPS <= 0 {
		c.TPS = ebiten.DefaultTPS
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = defaultScreenshotDir
	}
	return c
}

// ParseRunConfig decodes a TOML document into a RunConfig with defaults
// applied to missing fields.
func ParseRunConfig(data []byte) (RunConfig, error) {
	return ParseRunConfigOnto(data, RunConfig{})
}

// ParseRunConfigOnto decodes a TOML document over base. Fields absent from
// the document keep base's values; defaults fill whatever is still zero.
func ParseRunConfigOnto(data []byte, base RunConfig) (RunConfig, error) {
	c := base
	if err := toml.Unmarshal(data, &c); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	return c.withDefaults(), nil
}

// Game drives a Scene and its optional HUD and ControlRoom from the Ebitengine
// loop. Each tick it polls input into an Events value and updates the
// ControlRoom, the Scene and the HUD in that order; each draw it renders the
// Scene through its current camera and paints the HUD on top.
type Game struct {
	Scene    *Scene
	HUD      *HUD
	Controls *ControlRoom

	cfg             RunConfig
	frame           uint64
	keys            []ebiten.Key
	screenshotQueue []string
	script          *InputScript
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a Game for scene using cfg.
func NewGame(scene *Scene, cfg RunConfig) *Game {
	return &Game{Scene: scene, cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (g *Game) Config() RunConfig {
	return g.cfg
}

// Update implements ebiten.Game. An attached InputScript may override the
// polled pointer state.
func (g *Game) Update() error {
	ev := g.pollEvents()
	if g.script != nil {
		ev = g.script.apply(g, ev)
	}
	return g.step(ev)
}

// step advances every root by one frame with ev.
func (g *Game) step(ev Events) error {
	if g.Controls != nil {
		if err := g.Controls.Update(ev); err != nil {
			return fmt.Errorf("control room: %w", err)
		}
	}
	if err := g.Scene.Update(ev); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if g.HUD != nil {
		if err := g.HUD.Update(ev); err != nil {
			return fmt.Errorf("hud: %w", err)
		}
	}
	g.frame++
	return nil
}

// Draw implements ebiten.Game. Render failures are logged and leave the
// screen as it was.
func (g *Game) Draw(screen *ebiten.Image) {
	frame, err := g.Scene.Render()
	if err != nil {
		logger.Error("render scene", slog.Any("err", err))
		return
	}
	if err := drawSurface(screen, frame); err != nil {
		logger.Error("present frame", slog.Any("err", err))
		return
	}
	if g.HUD != nil {
		if _, err := g.HUD.Render(WrapEbitenImage(screen)); err != nil {
			logger.Error("render hud", slog.Any("err", err))
		}
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game with a fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// pollEvents snapshots the current input state.
func (g *Game) pollEvents() Events {
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	mx, my := ebiten.CursorPosition()
	var buttons uint8
	for i, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if ebiten.IsMouseButtonPressed(b) {
			buttons |= 1 << i
		}
	}
	return Events{
		Frame:   g.frame,
		DT:      1 / float64(ebiten.TPS()),
		CursorX: mx,
		CursorY: my,
		Keys:    slices.Clone(g.keys),
		Buttons: buttons,
	}
}

// drawSurface paints a rendered frame onto the screen at the origin.
func drawSurface(screen *ebiten.Image, frame Surface) error {
	return WrapEbitenImage(screen).Blit(frame, 0, 0)
}

// Run opens a window and runs g until the window closes or an update fails.
func Run(g *Game) error {
	if g == nil || g.Scene == nil {
		return errors.New("modular: Run needs a Game with a Scene")
	}
	cfg := g.cfg
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	g.Scene.SetDebugMode(cfg.Debug)
	return ebiten.RunGame(g)
}
