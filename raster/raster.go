// Package raster draws a morse tree into an in-memory image without a GPU or
// window, for exports and golden-image checks.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/phanxgames/morsetree"
	"golang.org/x/image/vector"
)

// Options controls image size and colors.
type Options struct {
	Width, Height int
	// Margin is the pixel padding kept around the tree.
	Margin float64
	// MinStroke keeps thin branches visible after scaling, in pixels.
	MinStroke  float64
	Background color.Color
	Ink        color.Color
}

// DefaultOptions returns a 700x500 canvas, black ink on white.
func DefaultOptions() Options {
	return Options{
		Width:      700,
		Height:     500,
		Margin:     16,
		MinStroke:  1,
		Background: color.White,
		Ink:        color.Black,
	}
}

// Projection maps world coordinates to image pixels with a uniform scale.
type Projection struct {
	Scale      float64
	OffX, OffY float64
}

// Apply projects a world point.
func (p Projection) Apply(v morsetree.Vec2) (x, y float64) {
	return v.X*p.Scale + p.OffX, v.Y*p.Scale + p.OffY
}

// Project returns the projection that centers bounds in the image and scales
// it to fit inside the margin. Trees smaller than the image are not enlarged.
func Project(bounds morsetree.Rect, opt Options) Projection {
	availW := float64(opt.Width) - 2*opt.Margin
	availH := float64(opt.Height) - 2*opt.Margin
	scale := 1.0
	if bounds.Width > 0 && bounds.Height > 0 && availW > 0 && availH > 0 {
		scale = math.Min(1, math.Min(availW/bounds.Width, availH/bounds.Height))
	}
	c := bounds.Center()
	return Projection{
		Scale: scale,
		OffX:  float64(opt.Width)/2 - c.X*scale,
		OffY:  float64(opt.Height)/2 - c.Y*scale,
	}
}

// Bounds returns the stroked AABB of segs. ok is false for an empty slice.
func Bounds(segs []morsetree.Branch) (r morsetree.Rect, ok bool) {
	if len(segs) == 0 {
		return morsetree.Rect{}, false
	}
	r = segs[0].Bounds()
	for _, b := range segs[1:] {
		r = r.Union(b.Bounds())
	}
	return r, true
}

// Render paints segs into a new image fitted to their bounds.
func Render(segs []morsetree.Branch, opt Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)

	bounds, ok := Bounds(segs)
	if !ok {
		return img
	}
	proj := Project(bounds, opt)
	ink := image.NewUniform(opt.Ink)
	var r vector.Rasterizer
	for _, b := range segs {
		strokeSegment(&r, img, ink, proj, b, opt.MinStroke)
	}
	return img
}

// strokeSegment fills the quad covering one branch. Each end is extended by
// half the stroke width so joints between parent and child stay closed. The
// rasterizer is sized to the quad's bounding box, clipped to dst.
func strokeSegment(r *vector.Rasterizer, dst *image.RGBA, src image.Image, proj Projection, b morsetree.Branch, minStroke float64) {
	x0, y0 := proj.Apply(b.Start)
	x1, y1 := proj.Apply(b.End)
	half := math.Max(b.Width*proj.Scale, minStroke) / 2

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		dx, dy, length = 1, 0, 1
	}
	ux, uy := dx/length*half, dy/length*half // along the branch
	nx, ny := -uy, ux                        // across the branch

	ax, ay := x0-ux, y0-uy
	bx, by := x1+ux, y1+uy
	quad := [4][2]float64{
		{ax + nx, ay + ny},
		{bx + nx, by + ny},
		{bx - nx, by - ny},
		{ax - nx, ay - ny},
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range quad {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	clipped := box.Intersect(dst.Bounds())
	if clipped.Empty() {
		return
	}

	// Draw writes the full mask into dst, so the mask must not extend past it.
	poly := clipPolygon(quad[:], float64(clipped.Min.X), float64(clipped.Min.Y), float64(clipped.Max.X), float64(clipped.Max.Y))
	if len(poly) < 3 {
		return
	}
	r.Reset(clipped.Dx(), clipped.Dy())
	ox, oy := float64(clipped.Min.X), float64(clipped.Min.Y)
	r.MoveTo(float32(poly[0][0]-ox), float32(poly[0][1]-oy))
	for _, p := range poly[1:] {
		r.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	r.ClosePath()
	r.Draw(dst, clipped, src, image.Point{})
}

// clipPolygon clips a convex polygon to the rectangle [x0,x1]x[y0,y1]
// (Sutherland-Hodgman).
func clipPolygon(poly [][2]float64, x0, y0, x1, y1 float64) [][2]float64 {
	edges := []struct {
		inside func(p [2]float64) bool
		cross  func(a, b [2]float64) [2]float64
	}{
		{func(p [2]float64) bool { return p[0] >= x0 }, func(a, b [2]float64) [2]float64 { return lerpX(a, b, x0) }},
		{func(p [2]float64) bool { return p[0] <= x1 }, func(a, b [2]float64) [2]float64 { return lerpX(a, b, x1) }},
		{func(p [2]float64) bool { return p[1] >= y0 }, func(a, b [2]float64) [2]float64 { return lerpY(a, b, y0) }},
		{func(p [2]float64) bool { return p[1] <= y1 }, func(a, b [2]float64) [2]float64 { return lerpY(a, b, y1) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([][2]float64, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func lerpX(a, b [2]float64, x float64) [2]float64 {
	t := (x - a[0]) / (b[0] - a[0])
	return [2]float64{x, a[1] + t*(b[1]-a[1])}
}

func lerpY(a, b [2]float64, y float64) [2]float64 {
	t := (y - a[1]) / (b[1] - a[1])
	return [2]float64{a[0] + t*(b[0]-a[0]), y}
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
