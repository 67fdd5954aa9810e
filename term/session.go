// Package term runs the automaton interactively inside a terminal using
// tcell. Typed characters grow the tree, Backspace undoes the last
// character, Enter resets to the root and Esc quits.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/morsetree"
)

// DefaultTick is the growth interval: one Advance per tick.
const DefaultTick = 50 * time.Millisecond

// Session couples a screen with an automaton.
type Session struct {
	Screen    tcell.Screen
	Automaton *morsetree.Automaton
	Root      morsetree.Branch
	Renderer  Renderer
	// Tick is the interval between growth steps. Zero uses DefaultTick.
	Tick time.Duration
}

// NewSession returns a session with the default renderer and tick.
// The screen must already be initialized.
func NewSession(screen tcell.Screen, a *morsetree.Automaton, root morsetree.Branch) *Session {
	return &Session{
		Screen:    screen,
		Automaton: a,
		Root:      root,
		Renderer:  DefaultRenderer(),
		Tick:      DefaultTick,
	}
}

// HandleEvent applies one input event. It returns false when the session
// should end.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			s.Automaton.Undo()
		case tcell.KeyEnter:
			s.Automaton.Reset(s.Root)
			s.Automaton.ClearHistory()
		case tcell.KeyRune:
			s.Automaton.EmitCharacter(ev.Rune())
		}
	case *tcell.EventResize:
		s.Screen.Sync()
	}
	return true
}

// Frame advances the automaton by one step and redraws.
func (s *Session) Frame() {
	s.Automaton.Advance()
	s.Renderer.Draw(s.Screen, s.Automaton)
	s.Screen.Show()
}

// Run drives the session until ctx is cancelled or the user quits. Events are
// read on a separate goroutine and applied on the ticker goroutine, so the
// automaton is only touched from one place.
func (s *Session) Run(ctx context.Context) error {
	tick := s.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	s.Renderer.Draw(s.Screen, s.Automaton)
	s.Screen.Show()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !s.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			s.Frame()
		}
	}
}
