package sonify

import (
	"time"
	"unicode"

	"github.com/phanxgames/morsetree"
)

// Standard Morse spacing, in units.
const (
	dotUnits     = 1
	dashUnits    = 3
	elementGap   = 1
	characterGap = 3
	wordGap      = 7
)

// Element is one keyed or silent interval.
type Element struct {
	Tone  bool
	Units int
}

// Timeline converts text into alternating tone and gap elements. Characters
// without a Morse code are skipped and leading or trailing spaces produce no
// silence.
func Timeline(text string) []Element {
	var out []Element
	pendingWord := false
	for _, ch := range text {
		if unicode.IsSpace(ch) {
			pendingWord = len(out) > 0
			continue
		}
		code, ok := morsetree.MorseCode(ch)
		if !ok {
			continue
		}
		if len(out) > 0 {
			gap := characterGap
			if pendingWord {
				gap = wordGap
			}
			out = append(out, Element{Units: gap})
		}
		pendingWord = false
		for i, c := range code {
			if i > 0 {
				out = append(out, Element{Units: elementGap})
			}
			units := dotUnits
			if c == '-' {
				units = dashUnits
			}
			out = append(out, Element{Tone: true, Units: units})
		}
	}
	return out
}

// Unit returns the length of one dot at wpm words per minute, using the
// PARIS convention of 50 units per word.
func Unit(wpm int) time.Duration {
	if wpm <= 0 {
		return 0
	}
	return 1200 * time.Millisecond / time.Duration(wpm)
}

// Duration returns how long text takes to key at opt.WPM.
func Duration(text string, opt Options) time.Duration {
	units := 0
	for _, e := range Timeline(text) {
		units += e.Units
	}
	return time.Duration(units) * Unit(opt.WPM)
}
