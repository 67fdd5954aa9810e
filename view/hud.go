package view

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/morsetree"
)

const hudHelp = "Type letters/digits/spaces to grow. Backspace undo, Enter reset, Up/Down angle."

// hudText builds the overlay: help, parameters, counters and typed text.
func hudText(a *morsetree.Automaton, fps float64) string {
	cfg := a.Config()
	st := a.Stats()
	var b strings.Builder
	b.WriteString(hudHelp)
	fmt.Fprintf(&b, "\nAngle %.0f°, decay %.2f/%.2f, clearance %.1f",
		cfg.BranchAngle, cfg.LengthDecay, cfg.WidthDecay, cfg.Clearance)
	fmt.Fprintf(&b, "\nSegments %d  Tips %d  Pending %d  Rejected %d  Undo %d  FPS %.1f",
		a.SegmentCount(), a.TipCount(), len(a.PendingSymbols()), st.Rejected, a.HistoryLen(), fps)
	fmt.Fprintf(&b, "\nTyped: %s", a.TypedText())
	return b.String()
}

// drawHUD prints the overlay in the top-left corner.
func drawHUD(dst *ebiten.Image, a *morsetree.Automaton) {
	ebitenutil.DebugPrintAt(dst, hudText(a, ebiten.ActualFPS()), 12, 8)
}
