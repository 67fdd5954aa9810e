package view

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/morsetree"
)

// Style controls how the tree is painted.
type Style struct {
	Background color.Color
	Branch     color.Color
	// Tip colors active growth fronts. Nil draws tips like other branches.
	Tip color.Color
	// MinStroke keeps branches visible when the camera zooms far out.
	MinStroke float32
}

// DefaultStyle is black ink on paper with tips in a muted green.
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{0xf4, 0xf1, 0xea, 0xff},
		Branch:     color.RGBA{0x1a, 0x1a, 0x1a, 0xff},
		Tip:        color.RGBA{0x3c, 0x8d, 0x5a, 0xff},
		MinStroke:  1,
	}
}

// strokeWidth returns the on-screen width of a branch.
func strokeWidth(w, zoom float64, floor float32) float32 {
	return max(float32(w*zoom), floor)
}

// revealedEnd returns the point frac of the way along b.
func revealedEnd(b morsetree.Branch, frac float64) morsetree.Vec2 {
	if frac >= 1 {
		return b.End
	}
	frac = math.Max(frac, 0)
	return b.Start.Add(b.End.Sub(b.Start).Scale(frac))
}

// drawTree strokes every segment through the camera. Segments still growing
// in are drawn to their revealed length.
func drawTree(dst *ebiten.Image, segs []morsetree.Branch, tips []morsetree.Branch, cam *Camera, g *growth, st Style) {
	isTip := make(map[morsetree.BranchID]bool, len(tips))
	for _, t := range tips {
		isTip[t.ID] = true
	}

	for _, b := range segs {
		frac := g.fraction(b.ID)
		if frac <= 0 {
			continue
		}
		end := revealedEnd(b, frac)
		x0, y0 := cam.WorldToScreen(b.Start.X, b.Start.Y)
		x1, y1 := cam.WorldToScreen(end.X, end.Y)

		clr := st.Branch
		if st.Tip != nil && isTip[b.ID] {
			clr = st.Tip
		}
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1),
			strokeWidth(b.Width, cam.Zoom, st.MinStroke), clr, true)
	}
}
