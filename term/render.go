package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/morsetree"
)

// hudRows is the number of rows reserved at the bottom of the screen.
const hudRows = 2

// tipRune marks the growing end of every queued tip.
const tipRune = '●'

// Renderer draws an automaton onto a tcell screen.
type Renderer struct {
	Branch tcell.Style
	Tip    tcell.Style
	HUD    tcell.Style
	// CellAspect is the height of one cell divided by its width.
	CellAspect float64
}

// DefaultRenderer returns green branches, yellow tips and a plain HUD.
func DefaultRenderer() Renderer {
	return Renderer{
		Branch:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
		Tip:        tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		HUD:        tcell.StyleDefault.Foreground(tcell.ColorWhite),
		CellAspect: 2,
	}
}

// cellProjection maps world coordinates to terminal cells.
type cellProjection struct {
	scale      float64
	aspect     float64
	cx, cy     float64
	midX, midY float64
}

func (p cellProjection) apply(v morsetree.Vec2) (int, int) {
	x := (v.X-p.cx)*p.scale + p.midX
	y := (v.Y-p.cy)*p.scale/p.aspect + p.midY
	return int(math.Round(x)), int(math.Round(y))
}

// project fits bounds into a w by h cell area, compensating for cells being
// taller than they are wide.
func project(bounds morsetree.Rect, w, h int, aspect float64) cellProjection {
	if aspect <= 0 {
		aspect = 1
	}
	scale := 1.0
	if bounds.Width > 0 && bounds.Height > 0 {
		scale = math.Min(float64(w-1)/bounds.Width, float64(h-1)*aspect/bounds.Height)
	}
	c := bounds.Center()
	return cellProjection{
		scale:  scale,
		aspect: aspect,
		cx:     c.X,
		cy:     c.Y,
		midX:   float64(w-1) / 2,
		midY:   float64(h-1) / 2,
	}
}

// Draw clears screen and paints every segment, the live tips and the HUD.
// It does not call Show.
func (r Renderer) Draw(screen tcell.Screen, a *morsetree.Automaton) {
	screen.Clear()
	w, h := screen.Size()
	treeH := h - hudRows
	if w <= 0 || treeH <= 0 {
		return
	}

	proj := project(a.Bounds(), w, treeH, r.CellAspect)
	put := func(x, y int, ch rune, st tcell.Style) {
		if x >= 0 && x < w && y >= 0 && y < treeH {
			screen.SetContent(x, y, ch, nil, st)
		}
	}

	for _, b := range a.Segments() {
		x0, y0 := proj.apply(b.Start)
		x1, y1 := proj.apply(b.End)
		ch := lineChar(x1-x0, y1-y0)
		for _, p := range bresenham(x0, y0, x1, y1) {
			put(p.X, p.Y, ch, r.Branch)
		}
	}
	for _, b := range a.Tips() {
		x, y := proj.apply(b.End)
		put(x, y, tipRune, r.Tip)
	}

	r.drawText(screen, 0, treeH, w, statusLine(a))
	r.drawText(screen, 0, treeH+1, w, "Typed: "+a.TypedText())
}

func (r Renderer) drawText(screen tcell.Screen, x, y, w int, s string) {
	for _, ch := range s {
		if x >= w {
			return
		}
		screen.SetContent(x, y, ch, nil, r.HUD)
		x++
	}
}

func statusLine(a *morsetree.Automaton) string {
	st := a.Stats()
	return fmt.Sprintf("Segments %d  Tips %d  Pending %d  Rejected %d  Undo %d  [Bksp undo, Enter reset, Esc quit]",
		a.SegmentCount(), a.TipCount(), len(a.PendingSymbols()), st.Rejected, a.HistoryLen())
}
