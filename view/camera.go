package view

import (
	"math"

	"github.com/phanxgames/morsetree"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fitAnim holds the active fit-to-bounds tweens for camera X, Y and Zoom.
type fitAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	doneX, doneY, doneZoom    bool
	target                    [3]float64
}

// Camera maps tree (world) coordinates into a screen viewport. It keeps the
// growing tree in view by tweening toward the tree's bounds.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport morsetree.Rect

	// MinZoom bounds how far FitTo may zoom out.
	MinZoom float64
	// AllowZoomIn lets FitTo magnify small trees past 1.0.
	AllowZoomIn bool

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	fit *fitAnim
}

// NewCamera creates a camera with default values and the given viewport,
// centered on the viewport's own center so world and screen coincide.
func NewCamera(viewport morsetree.Rect) *Camera {
	c := viewport.Center()
	return &Camera{
		X:        c.X,
		Y:        c.Y,
		Zoom:     1.0,
		Viewport: viewport,
		MinZoom:  0.05,
		dirty:    true,
	}
}

// SetViewport changes the screen rectangle, e.g. after a window resize.
func (c *Camera) SetViewport(vp morsetree.Rect) {
	if vp != c.Viewport {
		c.Viewport = vp
		c.dirty = true
	}
}

// fitTarget returns the camera position and zoom that frame bounds inside
// the viewport with margin pixels of padding on each side.
func (c *Camera) fitTarget(bounds morsetree.Rect, margin float64) (x, y, zoom float64) {
	center := bounds.Center()
	availW := c.Viewport.Width - 2*margin
	availH := c.Viewport.Height - 2*margin
	zoom = c.Zoom
	if availW > 0 && availH > 0 && bounds.Width > 0 && bounds.Height > 0 {
		zoom = math.Min(availW/bounds.Width, availH/bounds.Height)
	}
	if !c.AllowZoomIn {
		zoom = math.Min(zoom, 1)
	}
	zoom = math.Max(zoom, c.MinZoom)
	return center.X, center.Y, zoom
}

// FitTo animates the camera so bounds fills the viewport over duration
// seconds. A duration <= 0 snaps immediately. Calling FitTo again with the
// same target while a tween runs leaves the tween alone, so it is safe to
// call every frame.
func (c *Camera) FitTo(bounds morsetree.Rect, margin float64, duration float32) {
	x, y, zoom := c.fitTarget(bounds, margin)
	target := [3]float64{x, y, zoom}

	if duration <= 0 {
		c.X, c.Y, c.Zoom = x, y, zoom
		c.fit = nil
		c.dirty = true
		return
	}
	if c.fit != nil && nearTarget(c.fit.target, target) {
		return
	}
	if c.fit == nil && nearTarget([3]float64{c.X, c.Y, c.Zoom}, target) {
		return
	}
	c.fit = &fitAnim{
		tweenX:    gween.New(float32(c.X), float32(x), duration, ease.OutCubic),
		tweenY:    gween.New(float32(c.Y), float32(y), duration, ease.OutCubic),
		tweenZoom: gween.New(float32(c.Zoom), float32(zoom), duration, ease.OutCubic),
		target:    target,
	}
}

func nearTarget(a, b [3]float64) bool {
	const posEps, zoomEps = 0.5, 1e-3
	return math.Abs(a[0]-b[0]) < posEps && math.Abs(a[1]-b[1]) < posEps && math.Abs(a[2]-b[2]) < zoomEps
}

// Fitting reports whether a fit tween is in progress.
func (c *Camera) Fitting() bool {
	return c.fit != nil
}

// update advances the fit animation. Called once per tick by Game.
func (c *Camera) update(dt float32) {
	if c.fit == nil {
		return
	}
	f := c.fit
	if !f.doneX {
		val, done := f.tweenX.Update(dt)
		c.X = float64(val)
		f.doneX = done
	}
	if !f.doneY {
		val, done := f.tweenY.Update(dt)
		c.Y = float64(val)
		f.doneY = done
	}
	if !f.doneZoom {
		val, done := f.tweenZoom.Update(dt)
		c.Zoom = float64(val)
		f.doneZoom = done
	}
	if f.doneX && f.doneY && f.doneZoom {
		// Land exactly on the float64 target rather than the float32 tween value.
		c.X, c.Y, c.Zoom = f.target[0], f.target[1], f.target[2]
		c.fit = nil
	}
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom

	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	sx, sy = transformPoint(c.viewMatrix, wx, wy)
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	wx, wy = transformPoint(c.invViewMatrix, sx, sy)
	return
}

// VisibleBounds returns the world-space rectangle the viewport shows.
func (c *Camera) VisibleBounds() morsetree.Rect {
	c.computeViewMatrix()
	x0, y0 := transformPoint(c.invViewMatrix, c.Viewport.X, c.Viewport.Y)
	x1, y1 := transformPoint(c.invViewMatrix, c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return morsetree.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
