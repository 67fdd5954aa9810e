package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/morsetree"
)

func newTestGame(t *testing.T) (*Game, *fakeKeys) {
	t.Helper()
	root := morsetree.NewRootBranch(morsetree.Vec2{X: 350, Y: 500}, -90, 120, 6)
	a := morsetree.New(morsetree.DefaultConfig(), root)
	g := NewGame(a, root, DefaultRunConfig())
	kb, src := newTestKeyboard()
	g.Keyboard = kb
	return g, src
}

func TestGameTypingGrowsOneSymbolPerTick(t *testing.T) {
	g, src := newTestGame(t)
	src.chars = []rune("e")
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.Automaton.SegmentCount() != 3 {
		t.Errorf("segments after first tick = %d, want 3", g.Automaton.SegmentCount())
	}
	g.Update()
	if g.Automaton.SegmentCount() != 6 || !g.Automaton.Idle() {
		t.Errorf("segments after second tick = %d, want 6", g.Automaton.SegmentCount())
	}
	if len(g.segs) != 6 {
		t.Errorf("cached segments = %d, want 6", len(g.segs))
	}
}

func TestGameUndoAndReset(t *testing.T) {
	g, src := newTestGame(t)
	src.chars = []rune("et")
	g.Update()
	src.tick(ebiten.KeyBackspace)
	g.Update()
	if g.Automaton.TypedText() != "E" {
		t.Errorf("text after undo = %q, want E", g.Automaton.TypedText())
	}

	src.tick(ebiten.KeyEnter)
	g.Update()
	if g.Automaton.SegmentCount() != 1 || g.Automaton.HistoryLen() != 0 {
		t.Errorf("reset left %d segments, %d history", g.Automaton.SegmentCount(), g.Automaton.HistoryLen())
	}
}

func TestGameAngleClamped(t *testing.T) {
	g, src := newTestGame(t)
	cfg := g.Automaton.Config()
	cfg.BranchAngle = morsetree.MaxBranchAngle
	if err := g.Automaton.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	src.tick(ebiten.KeyArrowUp)
	g.Update()
	if got := g.Automaton.Config().BranchAngle; got != morsetree.MaxBranchAngle {
		t.Errorf("BranchAngle = %f, want clamp at %f", got, morsetree.MaxBranchAngle)
	}
	src.tick(ebiten.KeyArrowDown)
	g.Update()
	if got := g.Automaton.Config().BranchAngle; got != morsetree.MaxBranchAngle-1 {
		t.Errorf("BranchAngle = %f, want %f", got, morsetree.MaxBranchAngle-1)
	}
}

func TestGameScriptTerminates(t *testing.T) {
	g, _ := newTestGame(t)
	g.cfg.ExitWhenDone = true
	g.cfg.GrowDuration = 0
	g.grow = newGrowth(0)
	s, err := morsetree.LoadScript([]byte(`{"steps":[{"action":"type","text":"SOS"},{"action":"drain"}]}`), g.Root)
	if err != nil {
		t.Fatal(err)
	}
	g.AttachScript(s)

	var err2 error
	for i := 0; i < 200; i++ {
		if err2 = g.Update(); err2 != nil {
			break
		}
	}
	if !errors.Is(err2, ebiten.Termination) {
		t.Fatalf("Update = %v, want ebiten.Termination once the script finishes", err2)
	}
	if g.Automaton.TypedText() != "SOS" {
		t.Errorf("text = %q, want SOS", g.Automaton.TypedText())
	}
}

func TestAttachScriptRoutesScreenshots(t *testing.T) {
	g, _ := newTestGame(t)
	s, err := morsetree.LoadScript([]byte(`{"steps":[{"action":"screenshot","label":"x"}]}`), g.Root)
	if err != nil {
		t.Fatal(err)
	}
	g.AttachScript(s)
	g.Update()
	if g.Shots.Pending() != 1 {
		t.Errorf("pending screenshots = %d, want 1", g.Shots.Pending())
	}
}

func TestHUDText(t *testing.T) {
	g, _ := newTestGame(t)
	g.Automaton.EmitString("hi")
	text := hudText(g.Automaton, 60)
	for _, want := range []string{"Angle 40°", "decay 0.72/0.80", "Typed: HI", "Undo 2"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD missing %q:\n%s", want, text)
		}
	}
}
