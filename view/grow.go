package view

import (
	"github.com/phanxgames/morsetree"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// reveal tracks how much of one branch is drawn.
type reveal struct {
	end   morsetree.Vec2 // identifies the branch occupying this ID
	tween *gween.Tween
	value float64
}

// growth animates newly committed branches from their start point to full
// length. Branch IDs are reused after undo or reset, so each entry remembers
// the end point it was created for and restarts when a different branch
// takes the slot.
//
// There is no global animation manager; Game calls sync and update itself.
type growth struct {
	duration float32
	reveals  []reveal
}

func newGrowth(duration float32) *growth {
	return &growth{duration: duration}
}

// sync matches tracked reveals to the current segment list.
func (g *growth) sync(segs []morsetree.Branch) {
	if len(g.reveals) > len(segs) {
		clear(g.reveals[len(segs):])
		g.reveals = g.reveals[:len(segs)]
	}
	for i := range g.reveals {
		if g.reveals[i].end != segs[i].End {
			g.reveals[i] = g.start(segs[i])
		}
	}
	for i := len(g.reveals); i < len(segs); i++ {
		g.reveals = append(g.reveals, g.start(segs[i]))
	}
}

func (g *growth) start(b morsetree.Branch) reveal {
	if g.duration <= 0 {
		return reveal{end: b.End, value: 1}
	}
	return reveal{end: b.End, tween: gween.New(0, 1, g.duration, ease.OutQuad)}
}

// update advances every running reveal by dt seconds.
func (g *growth) update(dt float32) {
	for i := range g.reveals {
		r := &g.reveals[i]
		if r.tween == nil {
			continue
		}
		val, done := r.tween.Update(dt)
		r.value = float64(val)
		if done {
			r.value = 1
			r.tween = nil
		}
	}
}

// fraction returns the drawn share of branch id in [0, 1]. Untracked IDs are
// drawn in full.
func (g *growth) fraction(id morsetree.BranchID) float64 {
	if id < 0 || int(id) >= len(g.reveals) {
		return 1
	}
	return g.reveals[id].value
}

// animating reports whether any reveal is still running.
func (g *growth) animating() bool {
	for i := range g.reveals {
		if g.reveals[i].tween != nil {
			return true
		}
	}
	return false
}
