package morsetree

import "math"

// parallelEpsilon guards the denominator of the closest-point solve. Segment
// pairs whose cross term falls below it are treated as parallel.
const parallelEpsilon = 1e-8

// SegmentDistance returns the minimum Euclidean distance between segment
// a1→a2 and segment b1→b2. Parallel, overlapping and zero-length segments are
// all handled.
func SegmentDistance(a1, a2, b1, b2 Vec2) float64 {
	pa, pb := ClosestPoints(a1, a2, b1, b2)
	return pa.Dist(pb)
}

// ClosestPoints returns the pair of points, one on each segment, that realise
// the minimum distance between segment a1→a2 and segment b1→b2.
//
// Each segment is parametrised as P(s) = a1 + s*d1 and Q(t) = b1 + t*d2 with
// s, t in [0, 1]. The unconstrained minimum is clamped to s, propagated to t,
// clamped, and propagated back to s.
func ClosestPoints(a1, a2, b1, b2 Vec2) (Vec2, Vec2) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	r := a1.Sub(b1)

	a := d1.Dot(d1) // squared length of segment a
	e := d2.Dot(d2) // squared length of segment b
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= parallelEpsilon && e <= parallelEpsilon:
		// Both degenerate to points.
		return a1, b1
	case a <= parallelEpsilon:
		s = 0
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= parallelEpsilon {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > parallelEpsilon {
				s = clamp01((b*f - c*e) / denom)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	return a1.Add(d1.Scale(s)), b1.Add(d2.Scale(t))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// segmentBounds returns the AABB of a segment stroked with the given width.
func segmentBounds(p, q Vec2, width float64) Rect {
	half := width / 2
	minX := math.Min(p.X, q.X) - half
	minY := math.Min(p.Y, q.Y) - half
	maxX := math.Max(p.X, q.X) + half
	maxY := math.Max(p.Y, q.Y) + half
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
