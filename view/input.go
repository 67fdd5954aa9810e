package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	defaultRepeatDelay    = 24 // ticks before a held key starts repeating
	defaultRepeatInterval = 4  // ticks between repeats
	angleStep             = 1.0
)

// KeySource is the slice of Ebitengine's input API the keyboard reads. The
// default reads the live window; tests substitute a scripted source.
type KeySource interface {
	// AppendInputChars appends the runes typed this tick.
	AppendInputChars(runes []rune) []rune
	// KeyPressDuration returns how many ticks key has been held, 0 if up.
	KeyPressDuration(key ebiten.Key) int
}

type ebitenKeys struct{}

func (ebitenKeys) AppendInputChars(runes []rune) []rune { return ebiten.AppendInputChars(runes) }
func (ebitenKeys) KeyPressDuration(key ebiten.Key) int  { return inpututil.KeyPressDuration(key) }

// Intent is what the keyboard asks the automaton to do this tick.
type Intent struct {
	// Chars are typed runes in order, unfiltered.
	Chars []rune
	// Undo is the number of undo steps requested (held Backspace repeats).
	Undo int
	// Reset clears the tree and its history.
	Reset bool
	// AngleDelta nudges the branch angle in degrees.
	AngleDelta float64
}

// Keyboard turns raw key state into an Intent each tick. Holding Backspace
// undoes once immediately, then again every RepeatInterval ticks once the
// key has been down RepeatDelay ticks; Up and Down repeat the same way.
type Keyboard struct {
	Source         KeySource
	RepeatDelay    int
	RepeatInterval int

	chars []rune
}

// NewKeyboard returns a keyboard reading the live Ebitengine window.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		Source:         ebitenKeys{},
		RepeatDelay:    defaultRepeatDelay,
		RepeatInterval: defaultRepeatInterval,
	}
}

// repeating reports whether a key held for d ticks fires this tick.
func (k *Keyboard) repeating(d int) bool {
	switch {
	case d <= 0:
		return false
	case d == 1:
		return true
	}
	if d < k.RepeatDelay || k.RepeatInterval <= 0 {
		return false
	}
	return (d-k.RepeatDelay)%k.RepeatInterval == 0
}

// Poll reads this tick's input. The returned Chars slice is reused by the
// next Poll.
func (k *Keyboard) Poll() Intent {
	k.chars = k.Source.AppendInputChars(k.chars[:0])
	in := Intent{Chars: k.chars}

	if k.repeating(k.Source.KeyPressDuration(ebiten.KeyBackspace)) {
		in.Undo++
	}
	if k.Source.KeyPressDuration(ebiten.KeyEnter) == 1 {
		in.Reset = true
	}
	if k.repeating(k.Source.KeyPressDuration(ebiten.KeyArrowUp)) {
		in.AngleDelta += angleStep
	}
	if k.repeating(k.Source.KeyPressDuration(ebiten.KeyArrowDown)) {
		in.AngleDelta -= angleStep
	}
	return in
}
