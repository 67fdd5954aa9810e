// Package view renders a growing morse tree in an Ebitengine window. The
// camera refits to the tree with gween tweens, new branches grow in over a
// short reveal, and the keyboard drives typing, held-Backspace undo, reset
// and branch angle changes.
package view

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/morsetree"
)

// RunConfig holds window and animation settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the tick rate; the automaton advances once per tick. 0 uses
	// Ebitengine's default of 60.
	TPS int
	// FitMargin is the screen padding kept around the tree, in pixels.
	FitMargin float64
	// FitDuration and GrowDuration are tween lengths in seconds.
	FitDuration  float32
	GrowDuration float32
	ShowHUD      bool
	// ScreenshotDir receives captures from scripts.
	ScreenshotDir string
	// ExitWhenDone ends Run once the attached script has finished and the
	// automaton is idle.
	ExitWhenDone bool
}

// DefaultRunConfig matches the reference canvas.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:        "Morse Tree",
		Width:        700,
		Height:       500,
		TPS:          60,
		FitMargin:    24,
		FitDuration:  0.6,
		GrowDuration: 0.15,
		ShowHUD:      true,
	}
}

// Game implements ebiten.Game around an Automaton: keyboard input feeds
// characters and undo, each tick advances one symbol, and Draw renders the
// segment list through an auto-fitting camera.
type Game struct {
	Automaton *morsetree.Automaton
	// Root reseeds the tree on Reset.
	Root     morsetree.Branch
	Camera   *Camera
	Keyboard *Keyboard
	Style    Style
	// Script, when set, injects replayed input each tick.
	Script *morsetree.Script
	Shots  Screenshots

	cfg  RunConfig
	grow *growth
	segs []morsetree.Branch
	tips []morsetree.Branch
}

// NewGame wires an automaton to a window-sized camera and live keyboard.
func NewGame(a *morsetree.Automaton, root morsetree.Branch, cfg RunConfig) *Game {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.DefaultTPS
	}
	g := &Game{
		Automaton: a,
		Root:      root,
		Camera:    NewCamera(morsetree.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}),
		Keyboard:  NewKeyboard(),
		Style:     DefaultStyle(),
		Shots:     Screenshots{Dir: cfg.ScreenshotDir},
		cfg:       cfg,
		grow:      newGrowth(cfg.GrowDuration),
	}
	g.Camera.FitTo(a.Bounds(), cfg.FitMargin, 0)
	return g
}

// AttachScript replays s from the next tick, routing its screenshots to the
// game's capture queue.
func (g *Game) AttachScript(s *morsetree.Script) {
	g.Script = s
	if s.OnScreenshot == nil {
		s.OnScreenshot = g.Shots.Screenshot
	}
}

// apply carries out one tick of keyboard intent.
func (g *Game) apply(in Intent) {
	a := g.Automaton
	if in.Reset {
		a.Reset(g.Root)
		a.ClearHistory()
	}
	for i := 0; i < in.Undo; i++ {
		a.Undo()
	}
	for _, r := range in.Chars {
		a.EmitCharacter(r)
	}
	if in.AngleDelta != 0 {
		cfg := a.Config()
		cfg.BranchAngle = min(max(cfg.BranchAngle+in.AngleDelta, morsetree.MinBranchAngle), morsetree.MaxBranchAngle)
		_ = a.SetConfig(cfg) // only the angle changed; the rest was already valid
	}
}

// Update runs one tick: script and keyboard input, one Advance, then the
// reveal and camera tweens.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(g.cfg.TPS))

	if g.Script != nil {
		g.Script.Step(g.Automaton)
	}
	g.apply(g.Keyboard.Poll())
	g.Automaton.Advance()

	g.segs = g.Automaton.Segments()
	g.tips = g.Automaton.Tips()
	g.grow.sync(g.segs)
	g.grow.update(dt)

	g.Camera.FitTo(g.Automaton.Bounds(), g.cfg.FitMargin, g.cfg.FitDuration)
	g.Camera.update(dt)

	if g.cfg.ExitWhenDone && g.Script != nil && g.Script.Done() &&
		g.Automaton.Idle() && !g.grow.animating() && g.Shots.Pending() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw paints the background, the tree and the HUD, then flushes queued
// screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.Style.Background)
	drawTree(screen, g.segs, g.tips, g.Camera, g.grow, g.Style)
	if g.cfg.ShowHUD {
		drawHUD(screen, g.Automaton)
	}
	g.Shots.flush(screen)
}

// Layout tracks the window size so the camera refits on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Camera.SetViewport(morsetree.Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// Run opens a window and runs g until the window closes or the script ends.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
