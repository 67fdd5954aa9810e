package morsetree

import "math"

// BranchID addresses a branch in an Automaton's segment arena. IDs are arena
// indices: the root is always 0 and children are numbered in commit order.
type BranchID int

// NoParent is the Parent value of the root branch.
const NoParent BranchID = -1

// Branch is one committed straight-line growth unit. Branches are immutable
// once committed; Start of every non-root branch equals End of its parent.
type Branch struct {
	ID     BranchID
	Parent BranchID
	Start  Vec2
	End    Vec2
	// Angle is the heading in degrees from the positive X axis. With Y
	// increasing downward, -90 points up the screen.
	Angle float64
	Len   float64
	Width float64
	// Depth counts edges from the root (root = 0).
	Depth int
}

// NewRootBranch builds the fixed base segment of a tree, starting at base and
// extending length units along angle.
func NewRootBranch(base Vec2, angle, length, width float64) Branch {
	return Branch{
		ID:     0,
		Parent: NoParent,
		Start:  base,
		End:    base.Add(heading(angle).Scale(length)),
		Angle:  angle,
		Len:    length,
		Width:  width,
	}
}

// IsRoot reports whether b has no parent.
func (b Branch) IsRoot() bool {
	return b.Parent == NoParent
}

// Bounds returns the AABB of the branch stroked at its width.
func (b Branch) Bounds() Rect {
	return segmentBounds(b.Start, b.End, b.Width)
}

// heading returns the unit vector for an angle in degrees.
func heading(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: cos, Y: sin}
}

// deriveChild produces an uncommitted child of parent turned by delta
// degrees. Length and width decay by the configured factors and clamp at the
// configured floors; growth continues at the floor. The child's ID is left
// for the Automaton to assign at commit time.
func deriveChild(cfg Config, parent Branch, delta float64) Branch {
	angle := parent.Angle + delta
	length := math.Max(parent.Len*cfg.LengthDecay, cfg.MinLength)
	width := math.Max(parent.Width*cfg.WidthDecay, cfg.MinWidth)
	return Branch{
		Parent: parent.ID,
		Start:  parent.End,
		End:    parent.End.Add(heading(angle).Scale(length)),
		Angle:  angle,
		Len:    length,
		Width:  width,
		Depth:  parent.Depth + 1,
	}
}

// headingOffsets returns the child heading offsets a symbol fans into.
func headingOffsets(sym Symbol, branchAngle float64) []float64 {
	switch sym {
	case SymbolDot:
		return []float64{-branchAngle, 0}
	case SymbolDash:
		return []float64{0, branchAngle}
	case SymbolBar:
		return []float64{-branchAngle, 0, branchAngle}
	default:
		return []float64{0}
	}
}

// encodeChildren returns the candidate children of parent for sym, in
// left-to-right heading order.
func encodeChildren(cfg Config, sym Symbol, parent Branch) []Branch {
	offsets := headingOffsets(sym, cfg.BranchAngle)
	children := make([]Branch, len(offsets))
	for i, off := range offsets {
		children[i] = deriveChild(cfg, parent, off)
	}
	return children
}
