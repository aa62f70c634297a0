package adventure

import "math"

// Camera controls the view into the world: position, zoom, and viewport.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// NewCamera creates a Camera with default values and the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// LookAt centers the camera on the world position (x, y), clamped to the
// bounds when they are enabled.
func (c *Camera) LookAt(x, y float64) {
	c.X, c.Y = x, y
	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.dirty = true
}

// CenterOnScreen positions the camera so world coordinates equal screen
// coordinates inside the viewport, and disables bounds clamping.
func (c *Camera) CenterOnScreen() {
	c.BoundsEnabled = false
	c.Zoom = 1.0
	c.X = float64(c.Viewport.Width) / 2
	c.Y = float64(c.Viewport.Height) / 2
	c.dirty = true
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
	c.dirty = true
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := float64(c.Viewport.Width) / (2 * c.Zoom)
	halfH := float64(c.Viewport.Height) / (2 * c.Zoom)

	bx, by := float64(c.Bounds.X), float64(c.Bounds.Y)
	bw, bh := float64(c.Bounds.Width), float64(c.Bounds.Height)

	minX := bx + halfW
	maxX := bx + bw - halfW
	minY := by + halfH
	maxY := by + bh - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = bx + bw/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = by + bh/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
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

	cx := float64(c.Viewport.X) + float64(c.Viewport.Width)/2
	cy := float64(c.Viewport.Y) + float64(c.Viewport.Height)/2
	z := c.Zoom

	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	m := c.computeViewMatrix()
	return transformPoint(m, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// WorldRectToScreen maps a world rectangle to screen space.
func (c *Camera) WorldRectToScreen(r Rect) Rect {
	x0, y0 := c.WorldToScreen(float64(r.X), float64(r.Y))
	x1, y1 := c.WorldToScreen(float64(r.X+r.Width), float64(r.Y+r.Height))
	return Rect{
		X:      int(math.Floor(x0)),
		Y:      int(math.Floor(y0)),
		Width:  int(math.Round(x1 - x0)),
		Height: int(math.Round(y1 - y0)),
	}
}

// VisibleBounds returns the rectangle of the camera's visible area in world
// space.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(float64(c.Viewport.X), float64(c.Viewport.Y))
	x1, y1 := c.ScreenToWorld(float64(c.Viewport.X+c.Viewport.Width), float64(c.Viewport.Y+c.Viewport.Height))
	minX, maxX := math.Floor(math.Min(x0, x1)), math.Ceil(math.Max(x0, x1))
	minY, maxY := math.Floor(math.Min(y0, y1)), math.Ceil(math.Max(y0, y1))
	return Rect{X: int(minX), Y: int(minY), Width: int(maxX - minX), Height: int(maxY - minY)}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// --- Affine helpers ---

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix laid out as
// [a, b, c, d, tx, ty]. Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
