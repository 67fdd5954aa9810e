package morsetree

import "slices"

// snapshot is an independent copy of the automaton's mutable state. Branches
// are values and immutable once committed, so copying the containers is
// enough for later growth never to reach a stored snapshot.
type snapshot struct {
	segments []Branch
	tips     []BranchID
	symbols  []Symbol
	text     string
}

// history is a LIFO stack of snapshots with no depth limit.
type history struct {
	entries []snapshot
}

func (h *history) push(s snapshot) {
	h.entries = append(h.entries, s)
}

func (h *history) pop() (snapshot, bool) {
	n := len(h.entries)
	if n == 0 {
		return snapshot{}, false
	}
	s := h.entries[n-1]
	h.entries[n-1] = snapshot{}
	h.entries = h.entries[:n-1]
	return s, true
}

func (h *history) len() int {
	return len(h.entries)
}

func (h *history) clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
}

// snapshot captures the current state.
func (a *Automaton) snapshot() snapshot {
	return snapshot{
		segments: slices.Clone(a.segments),
		tips:     slices.Clone(a.tips),
		symbols:  slices.Clone(a.symbols),
		text:     a.text,
	}
}

// restore replaces the current state wholesale. The snapshot must already be
// off the stack; its slices are adopted without another copy.
func (a *Automaton) restore(s snapshot) {
	a.segments = s.segments
	a.tips = s.tips
	a.symbols = s.symbols
	a.text = s.text
}

// Undo rolls the automaton back to the state captured before the most recent
// accepted character, discarding any growth since, including symbols still
// in flight. It reports false, and changes nothing, when history is empty.
func (a *Automaton) Undo() bool {
	s, ok := a.history.pop()
	if !ok {
		return false
	}
	a.restore(s)
	if a.debug {
		a.debugf("undo: segments=%d tips=%d pending=%d history=%d",
			len(a.segments), len(a.tips), len(a.symbols), a.history.len())
	}
	return true
}

// HistoryLen returns the number of snapshots available to Undo.
func (a *Automaton) HistoryLen() int {
	return a.history.len()
}

// ClearHistory drops every snapshot. Reset leaves history alone; callers that
// want a clean slate call both.
func (a *Automaton) ClearHistory() {
	a.history.clear()
}
