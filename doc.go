// Package morsetree grows a branching tree whose shape spells typed text in
// Morse code.
//
// Every accepted character becomes a short run of growth symbols: a dot fans
// a tip left and straight, a dash fans it straight and right, and a bar fans
// it three ways. Bars also close each character, and a space is two bars.
// The [Automaton] consumes one symbol per call to [Automaton.Advance],
// expanding the oldest tip so the tree fills out breadth-first.
//
// # Quick start
//
//	root := morsetree.NewRootBranch(morsetree.Vec2{X: 350, Y: 500}, -90, 120, 6)
//	a := morsetree.New(morsetree.DefaultConfig(), root)
//	a.EmitString("SOS")
//	for !a.Idle() {
//		a.Advance()
//	}
//	for _, b := range a.Segments() {
//		// draw b.Start -> b.End at b.Width
//	}
//
// Drive Advance from your frame loop to animate growth; the view package does
// this for an Ebitengine window and the term package for a terminal.
//
// # Collision gate
//
// A tip's candidate children are admitted as a batch. If any child would come
// within [Config.Clearance] plus half the combined stroke widths of a
// committed branch (other than the tip it grows from), none are committed,
// the tip dies, and the symbol is retried against the next tip. When no tips
// remain the symbol is dropped. Nothing in the automaton is an error: empty
// queues, unmapped characters and blocked growth all degrade to no-ops.
//
// # Undo
//
// [Automaton.EmitCharacter] snapshots the whole state before queueing
// symbols. [Automaton.Undo] restores the latest snapshot wholesale, so an undo
// mid-burst also drops the symbols still in flight.
//
// # Replay
//
// [LoadScript] reads a JSON script of typed text, undos, waits and
// screenshots that can be replayed frame by frame against an automaton.
package morsetree
