package morsetree

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func newReferenceAutomaton() *Automaton {
	return New(DefaultConfig(), referenceRoot())
}

func TestNewAutomatonState(t *testing.T) {
	a := newReferenceAutomaton()
	if a.SegmentCount() != 1 || a.TipCount() != 1 {
		t.Fatalf("segments=%d tips=%d, want 1 and 1", a.SegmentCount(), a.TipCount())
	}
	if !a.Idle() || a.TypedText() != "" || a.HistoryLen() != 0 {
		t.Error("fresh automaton should be idle with no text and no history")
	}
	if res := a.Advance(); res.Outcome != StepIdle {
		t.Errorf("Advance on empty queue = %s, want idle", res.Outcome)
	}
}

func TestReferenceScenario(t *testing.T) {
	a := newReferenceAutomaton()
	if !a.EmitCharacter('E') {
		t.Fatal("EmitCharacter('E') = false")
	}
	if got := a.PendingSymbols(); !slices.Equal(got, []Symbol{SymbolDot, SymbolBar}) {
		t.Fatalf("pending = %q, want [. |]", symbolString(got))
	}

	first := a.Advance()
	if first.Outcome != StepCommitted || len(first.Added) != 2 {
		t.Fatalf("first step = %s with %d children, want committed with 2", first.Outcome, len(first.Added))
	}
	second := a.Advance()
	if second.Outcome != StepCommitted || len(second.Added) != 3 {
		t.Fatalf("second step = %s with %d children, want committed with 3", second.Outcome, len(second.Added))
	}
	if a.SegmentCount() != 6 {
		t.Errorf("segments = %d, want 6", a.SegmentCount())
	}

	root, _ := a.Branch(0)
	for _, id := range first.Added {
		b, _ := a.Branch(id)
		if b.Start != root.End {
			t.Errorf("branch %d starts at %v, want root end %v", id, b.Start, root.End)
		}
	}
	// The second symbol expands the oldest tip: the first child of the root.
	if second.Tip != first.Added[0] {
		t.Errorf("second step expanded tip %d, want %d", second.Tip, first.Added[0])
	}
	if a.TypedText() != "E" || !a.Idle() {
		t.Errorf("text=%q idle=%v, want \"E\" and idle", a.TypedText(), a.Idle())
	}
}

func TestEmitCharacterSpaceAndCase(t *testing.T) {
	a := newReferenceAutomaton()
	a.EmitCharacter(' ')
	a.EmitCharacter('t')
	want := []Symbol{SymbolBar, SymbolBar, SymbolDash, SymbolBar}
	if got := a.PendingSymbols(); !slices.Equal(got, want) {
		t.Errorf("pending = %q, want %q", symbolString(got), symbolString(want))
	}
	if a.TypedText() != " T" {
		t.Errorf("text = %q, want %q", a.TypedText(), " T")
	}
	if a.HistoryLen() != 2 {
		t.Errorf("history = %d, want 2", a.HistoryLen())
	}
}

func TestEmitCharacterIgnoresUnmapped(t *testing.T) {
	a := newReferenceAutomaton()
	for _, r := range "!?,\n\té" {
		if a.EmitCharacter(r) {
			t.Errorf("EmitCharacter(%q) = true, want false", r)
		}
	}
	if !a.Idle() || a.TypedText() != "" || a.HistoryLen() != 0 {
		t.Error("unmapped characters must not queue symbols, record text or push history")
	}
}

func TestEmitString(t *testing.T) {
	a := newReferenceAutomaton()
	if n := a.EmitString("a-b c"); n != 4 {
		t.Errorf("EmitString accepted %d, want 4", n)
	}
	if a.TypedText() != "AB C" {
		t.Errorf("text = %q, want %q", a.TypedText(), "AB C")
	}
}

// crowdedConfig demands so much clearance that only the root can expand.
func crowdedConfig() Config {
	cfg := DefaultConfig()
	cfg.Clearance = 1000
	return cfg
}

func TestRejectRetiresTipAndKeepsSymbol(t *testing.T) {
	a := New(crowdedConfig(), referenceRoot())
	a.EmitCharacter('E') // . |

	if res := a.Advance(); res.Outcome != StepCommitted {
		t.Fatalf("root expansion = %s, want committed", res.Outcome)
	}
	segs := a.SegmentCount()
	tips := a.Tips()

	res := a.Advance()
	if res.Outcome != StepRejected {
		t.Fatalf("outcome = %s, want rejected", res.Outcome)
	}
	if res.Tip != tips[0].ID {
		t.Errorf("retired tip %d, want oldest %d", res.Tip, tips[0].ID)
	}
	if res.Blocker == NoParent {
		t.Error("rejected step should name a blocker")
	}
	if a.SegmentCount() != segs {
		t.Errorf("segments = %d after reject, want %d", a.SegmentCount(), segs)
	}
	if a.TipCount() != len(tips)-1 {
		t.Errorf("tips = %d after reject, want %d", a.TipCount(), len(tips)-1)
	}
	if p := a.PendingSymbols(); len(p) != 1 || p[0] != SymbolBar {
		t.Errorf("pending = %q, want the rejected bar at the head", symbolString(p))
	}

	// Second tip dies too, then the symbol has nowhere to go.
	if res := a.Advance(); res.Outcome != StepRejected {
		t.Fatalf("outcome = %s, want rejected", res.Outcome)
	}
	if res := a.Advance(); res.Outcome != StepDiscarded || res.Symbol != SymbolBar {
		t.Fatalf("outcome = %s sym=%s, want discarded bar", res.Outcome, res.Symbol)
	}
	if !a.Idle() || a.TipCount() != 0 {
		t.Error("queue should be empty with no tips left")
	}

	want := Stats{Committed: 1, Rejected: 2, Discarded: 1}
	if a.Stats() != want {
		t.Errorf("Stats = %+v, want %+v", a.Stats(), want)
	}

	// With no tips every further symbol is discarded.
	a.EmitCharacter('T')
	if n := a.Drain(0); n != 2 {
		t.Errorf("Drain took %d steps, want 2", n)
	}
	if a.SegmentCount() != segs {
		t.Error("dead tree must not grow")
	}
}

func TestExpansionIsFIFO(t *testing.T) {
	a := newReferenceAutomaton()
	a.symbols = []Symbol{SymbolBar, SymbolDot, SymbolDash, SymbolDot}

	fan := a.Advance()
	if fan.Outcome != StepCommitted || len(fan.Added) != 3 {
		t.Fatalf("fan step = %s with %d children", fan.Outcome, len(fan.Added))
	}
	var expanded []BranchID
	for !a.Idle() {
		res := a.Advance()
		if res.Outcome != StepCommitted {
			t.Fatalf("step on tip %d = %s, want committed", res.Tip, res.Outcome)
		}
		expanded = append(expanded, res.Tip)
	}
	if !slices.Equal(expanded, fan.Added) {
		t.Errorf("expanded tips %v, want creation order %v", expanded, fan.Added)
	}

	// Depth along commit order never decreases for breadth-first growth.
	segs := a.Segments()
	for i := 1; i < len(segs); i++ {
		if segs[i].Depth < segs[i-1].Depth {
			t.Errorf("segment %d depth %d after depth %d", i, segs[i].Depth, segs[i-1].Depth)
		}
	}
}

func TestTreeInvariants(t *testing.T) {
	a := newReferenceAutomaton()
	for _, r := range "HELLO WORLD 1234567890 THE QUICK BROWN FOX" {
		a.EmitCharacter(r)
		a.Advance()
		a.Advance()
	}
	a.Undo()
	a.Undo()
	a.Drain(0)

	segs := a.Segments()
	cfg := a.Config()

	for i, b := range segs {
		if b.ID != BranchID(i) {
			t.Fatalf("segment %d has ID %d", i, b.ID)
		}
		if b.IsRoot() {
			if i != 0 {
				t.Errorf("root found at index %d", i)
			}
			continue
		}
		if b.Parent < 0 || b.Parent >= b.ID {
			t.Fatalf("branch %d has parent %d outside committed prefix", b.ID, b.Parent)
		}
		p := segs[b.Parent]
		if b.Start != p.End {
			t.Errorf("branch %d starts at %v, parent %d ends at %v", b.ID, b.Start, p.ID, p.End)
		}
	}

	seen := make(map[BranchID]bool)
	for _, tip := range a.Tips() {
		if seen[tip.ID] {
			t.Errorf("tip %d queued twice", tip.ID)
		}
		seen[tip.ID] = true
	}

	// Clearance holds for every pair except parent/child and siblings, which
	// are committed in one batch.
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			x, y := segs[i], segs[j]
			if y.Parent == x.ID || x.Parent == y.ID || x.Parent == y.Parent {
				continue
			}
			d := SegmentDistance(y.Start, y.End, x.Start, x.End)
			need := cfg.Clearance + 0.5*(x.Width+y.Width)
			if d < need-1e-9 {
				t.Errorf("branches %d and %d are %f apart, need %f", x.ID, y.ID, d, need)
			}
		}
	}
}

func TestUndoRoundTrip(t *testing.T) {
	a := newReferenceAutomaton()
	a.EmitCharacter('H')
	a.Advance()
	a.Advance()

	segs, tips, syms, text := a.Segments(), a.Tips(), a.PendingSymbols(), a.TypedText()

	a.EmitCharacter('I')
	a.Advance()
	a.Advance()
	a.Advance()
	if a.SegmentCount() == len(segs) {
		t.Fatal("expected growth after the second character")
	}

	if !a.Undo() {
		t.Fatal("Undo() = false with history present")
	}
	if !slices.Equal(a.Segments(), segs) {
		t.Error("segments not restored")
	}
	if !slices.Equal(a.Tips(), tips) {
		t.Error("tips not restored")
	}
	if !slices.Equal(a.PendingSymbols(), syms) {
		t.Errorf("pending = %q, want %q", symbolString(a.PendingSymbols()), symbolString(syms))
	}
	if a.TypedText() != text {
		t.Errorf("text = %q, want %q", a.TypedText(), text)
	}

	// The snapshot before 'H' is the pristine tree.
	a.Undo()
	if a.SegmentCount() != 1 || a.TipCount() != 1 || !a.Idle() || a.TypedText() != "" {
		t.Error("second undo should restore the initial tree")
	}
	if a.Undo() {
		t.Error("Undo() = true with empty history")
	}
}

func TestUndoStateIsIndependent(t *testing.T) {
	a := newReferenceAutomaton()
	a.EmitCharacter('S')
	a.EmitCharacter('O')
	a.Drain(0)
	a.Undo()

	// Growing again after an undo must not corrupt the remaining snapshot.
	a.Drain(0)
	a.EmitCharacter('X')
	a.Drain(0)
	a.Undo()
	a.Undo()
	if a.SegmentCount() != 1 || a.TypedText() != "" || !a.Idle() {
		t.Errorf("segments=%d text=%q, want pristine tree", a.SegmentCount(), a.TypedText())
	}
}

func TestResetKeepsHistory(t *testing.T) {
	a := newReferenceAutomaton()
	a.EmitCharacter('E')
	a.EmitCharacter('T')
	a.Drain(0)
	a.Reset(referenceRoot())

	if a.SegmentCount() != 1 || a.TipCount() != 1 || a.TypedText() != "" || !a.Idle() {
		t.Fatal("Reset should leave only the root")
	}
	if a.Stats() != (Stats{}) {
		t.Errorf("Stats = %+v after reset, want zero", a.Stats())
	}
	if a.HistoryLen() != 2 {
		t.Fatalf("history = %d, want 2", a.HistoryLen())
	}
	a.Undo()
	if a.TypedText() != "E" {
		t.Errorf("text = %q after undo, want %q", a.TypedText(), "E")
	}
	a.ClearHistory()
	if a.HistoryLen() != 0 || a.Undo() {
		t.Error("ClearHistory should empty the stack")
	}
}

func TestSetConfig(t *testing.T) {
	a := newReferenceAutomaton()
	bad := DefaultConfig()
	bad.LengthDecay = 1.5
	if err := a.SetConfig(bad); err == nil {
		t.Fatal("SetConfig accepted length_decay 1.5")
	}
	if a.Config() != DefaultConfig() {
		t.Error("rejected config must not be installed")
	}

	narrow := DefaultConfig()
	narrow.BranchAngle = 10
	if err := a.SetConfig(narrow); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	a.EmitCharacter('E')
	res := a.Advance()
	b, _ := a.Branch(res.Added[0])
	if !approxEqual(b.Angle, -100, 1e-9) {
		t.Errorf("angle = %f, want -100 with a 10 degree spread", b.Angle)
	}
}

func TestBoundsCoversSegments(t *testing.T) {
	a := newReferenceAutomaton()
	a.EmitString("MORSE")
	a.Drain(0)
	r := a.Bounds()
	for _, b := range a.Segments() {
		if !r.Contains(b.Start.X, b.Start.Y) || !r.Contains(b.End.X, b.End.Y) {
			t.Errorf("branch %d outside bounds %+v", b.ID, r)
		}
	}
}

func TestBranchLookup(t *testing.T) {
	a := newReferenceAutomaton()
	if _, ok := a.Branch(1); ok {
		t.Error("Branch(1) found on a single-segment tree")
	}
	if _, ok := a.Branch(NoParent); ok {
		t.Error("Branch(NoParent) should not resolve")
	}
	if b, ok := a.Branch(0); !ok || !b.IsRoot() {
		t.Error("Branch(0) should be the root")
	}
}

func TestDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	a := newReferenceAutomaton()
	a.SetDebugOutput(&buf)
	a.SetDebugMode(true)

	a.EmitCharacter('E')
	a.Advance()
	a.Undo()

	out := buf.String()
	for _, want := range []string{
		"[morsetree] emit: 'E' -> .|",
		"[morsetree] step: committed sym=. tip=0",
		"[morsetree] undo: segments=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	a.SetDebugMode(false)
	a.EmitCharacter('E')
	a.Advance()
	if buf.Len() != 0 {
		t.Errorf("debug disabled but wrote %q", buf.String())
	}
}

func TestStepOutcomeString(t *testing.T) {
	if StepRejected.String() != "rejected" || StepOutcome(42).String() != "unknown" {
		t.Error("unexpected StepOutcome names")
	}
}
