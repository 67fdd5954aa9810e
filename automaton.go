package morsetree

import (
	"io"
	"os"
	"slices"
)

// StepOutcome classifies what a call to Advance did.
type StepOutcome uint8

const (
	StepIdle      StepOutcome = iota // symbol queue was empty
	StepDiscarded                    // no tips left; the head symbol was dropped
	StepRejected                     // a candidate was too close; the tip died and the symbol stays queued
	StepCommitted                    // every candidate passed and was committed
)

var outcomeNames = [...]string{"idle", "discarded", "rejected", "committed"}

// String returns the lower-case outcome name.
func (o StepOutcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// StepResult describes one Advance call. It is informational; Advance never
// fails.
type StepResult struct {
	Outcome StepOutcome
	Symbol  Symbol
	// Tip is the branch that was expanded or retired, NoParent if none.
	Tip BranchID
	// Added lists the committed children, in heading order.
	Added []BranchID
	// Blocker is the first existing branch a rejected candidate came too
	// close to, NoParent otherwise.
	Blocker BranchID
}

// Stats counts step outcomes since the last Reset. Stats are not part of
// history: Undo does not rewind them.
type Stats struct {
	Committed int
	Rejected  int
	Discarded int
}

// Automaton is the growth state machine. It owns the segment arena, the tip
// queue, the symbol queue and the undo history. It is single-threaded: every
// method must be called from the same flow of control.
type Automaton struct {
	cfg Config

	segments []Branch   // committed branches; index == BranchID
	tips     []BranchID // FIFO of branches still eligible to expand
	symbols  []Symbol   // FIFO of pending growth symbols
	text     string

	history history
	stats   Stats

	debug    bool
	debugOut io.Writer
}

// New creates an automaton seeded with root. cfg is used as given; callers
// that accept user input should run Config.Validate first.
func New(cfg Config, root Branch) *Automaton {
	a := &Automaton{cfg: cfg, debugOut: os.Stderr}
	a.Reset(root)
	return a
}

// Reset reinitialises the tree to root as the single segment and tip, and
// clears both queues, the typed text and Stats. History is kept.
func (a *Automaton) Reset(root Branch) {
	root.ID = 0
	root.Parent = NoParent
	root.Depth = 0
	a.segments = []Branch{root}
	a.tips = []BranchID{0}
	a.symbols = nil
	a.text = ""
	a.stats = Stats{}
	if a.debug {
		a.debugf("reset: root %v->%v", root.Start, root.End)
	}
}

// Config returns the active growth parameters.
func (a *Automaton) Config() Config {
	return a.cfg
}

// SetConfig validates and installs cfg. Committed branches are unaffected;
// the new values apply from the next expansion. On error the previous config
// stays active.
func (a *Automaton) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// EmitCharacter encodes ch into growth symbols and queues them. Before
// queueing, the current state is pushed onto the history stack. Characters
// without a Morse mapping are ignored and EmitCharacter reports false.
func (a *Automaton) EmitCharacter(ch rune) bool {
	syms, text, ok := EncodeRune(ch)
	if !ok {
		return false
	}
	a.history.push(a.snapshot())
	a.symbols = append(a.symbols, syms...)
	a.text += string(text)
	if a.debug {
		a.debugf("emit: %q -> %s pending=%d history=%d",
			text, symbolString(syms), len(a.symbols), a.history.len())
	}
	return true
}

// EmitString sends every rune of s through EmitCharacter and returns how many
// were accepted.
func (a *Automaton) EmitString(s string) int {
	n := 0
	for _, r := range s {
		if a.EmitCharacter(r) {
			n++
		}
	}
	return n
}

// Advance performs at most one symbol-to-tip expansion attempt.
//
// The oldest tip is always consumed. If any of its candidate children would
// come within clearance of an existing branch other than the tip itself, no
// child is committed, the tip is retired, and the symbol stays at the head of
// the queue to be retried against the next tip. When the tip queue is empty
// the head symbol is dropped.
func (a *Automaton) Advance() StepResult {
	if len(a.symbols) == 0 {
		return StepResult{Outcome: StepIdle, Tip: NoParent, Blocker: NoParent}
	}
	sym := a.symbols[0]

	if len(a.tips) == 0 {
		a.symbols = a.symbols[1:]
		a.stats.Discarded++
		res := StepResult{Outcome: StepDiscarded, Symbol: sym, Tip: NoParent, Blocker: NoParent}
		a.logStep(res)
		return res
	}

	tipID := a.tips[0]
	a.tips = a.tips[1:]
	tip := a.segments[tipID]

	children := encodeChildren(a.cfg, sym, tip)
	for _, c := range children {
		if blocker, hit := a.tooClose(c); hit {
			a.stats.Rejected++
			res := StepResult{Outcome: StepRejected, Symbol: sym, Tip: tipID, Blocker: blocker}
			a.logStep(res)
			return res
		}
	}

	a.symbols = a.symbols[1:]
	added := make([]BranchID, len(children))
	for i, c := range children {
		c.ID = BranchID(len(a.segments))
		a.segments = append(a.segments, c)
		a.tips = append(a.tips, c.ID)
		added[i] = c.ID
	}
	a.stats.Committed++
	res := StepResult{Outcome: StepCommitted, Symbol: sym, Tip: tipID, Added: added, Blocker: NoParent}
	a.logStep(res)
	return res
}

// Drain advances until the symbol queue is empty or maxSteps steps have run,
// and returns the number of steps taken. maxSteps <= 0 means no limit; the
// loop always terminates because every step either consumes a symbol or
// retires a tip.
func (a *Automaton) Drain(maxSteps int) int {
	n := 0
	for len(a.symbols) > 0 && (maxSteps <= 0 || n < maxSteps) {
		a.Advance()
		n++
	}
	return n
}

// tooClose reports whether child would come within the required clearance of
// any committed branch other than its own parent. The parent is excluded by
// identity since the two always meet at the joint.
func (a *Automaton) tooClose(child Branch) (BranchID, bool) {
	reach := child.Bounds().Inset(-a.cfg.Clearance)
	for i := range a.segments {
		other := &a.segments[i]
		if other.ID == child.Parent {
			continue
		}
		if !reach.Intersects(other.Bounds()) {
			continue
		}
		margin := a.cfg.Clearance + 0.5*(child.Width+other.Width)
		if SegmentDistance(child.Start, child.End, other.Start, other.End) < margin {
			return other.ID, true
		}
	}
	return NoParent, false
}

// Segments returns a copy of every committed branch in commit order.
func (a *Automaton) Segments() []Branch {
	return slices.Clone(a.segments)
}

// SegmentCount returns the number of committed branches.
func (a *Automaton) SegmentCount() int {
	return len(a.segments)
}

// Branch returns the committed branch with the given ID.
func (a *Automaton) Branch(id BranchID) (Branch, bool) {
	if id < 0 || int(id) >= len(a.segments) {
		return Branch{}, false
	}
	return a.segments[id], true
}

// Tips returns the active growth fronts, oldest first.
func (a *Automaton) Tips() []Branch {
	out := make([]Branch, len(a.tips))
	for i, id := range a.tips {
		out[i] = a.segments[id]
	}
	return out
}

// TipCount returns the number of active growth fronts.
func (a *Automaton) TipCount() int {
	return len(a.tips)
}

// PendingSymbols returns a copy of the symbol queue, head first.
func (a *Automaton) PendingSymbols() []Symbol {
	return slices.Clone(a.symbols)
}

// Idle reports whether no symbols are waiting.
func (a *Automaton) Idle() bool {
	return len(a.symbols) == 0
}

// TypedText returns the accepted characters in upper case, spaces included.
func (a *Automaton) TypedText() string {
	return a.text
}

// Stats returns the step outcome counters.
func (a *Automaton) Stats() Stats {
	return a.stats
}

// Bounds returns the AABB of every committed branch at its stroke width.
func (a *Automaton) Bounds() Rect {
	r := a.segments[0].Bounds()
	for _, b := range a.segments[1:] {
		r = r.Union(b.Bounds())
	}
	return r
}
