package term

import "image"

// bresenham returns the cells on the line from (x0,y0) to (x1,y1), both
// endpoints included. The loop is capped at dx+dy+2 iterations.
func bresenham(x0, y0, x1, y1 int) []image.Point {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	x, y := x0, y0

	pts := make([]image.Point, 0, dx+dy+1)
	for range dx + dy + 2 {
		pts = append(pts, image.Pt(x, y))
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// lineChar picks the glyph for a segment running along (dx, dy) in cell
// space. Shallow and steep lines snap to horizontal and vertical strokes.
func lineChar(dx, dy int) rune {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax == 0 && ay == 0:
		return '·'
	case ay*2 < ax:
		return '─'
	case ax*2 < ay:
		return '│'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
