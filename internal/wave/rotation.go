package wave

import "math"

// AutoRotation accumulates a Y-axis angle in degrees, wrapped to [0, 360).
type AutoRotation struct {
	Angle float32
}

// Advance adds rate*dt degrees and returns the new angle.
func (a *AutoRotation) Advance(rate float32, dt float64) float32 {
	angle := math.Mod(float64(a.Angle)+float64(rate)*dt, 360)
	if angle < 0 {
		angle += 360
	}
	a.Angle = float32(angle)
	return a.Angle
}

// Rect is a viewport rectangle in window coordinates.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Drag turns pointer drags over the canvas into a pitch/yaw pair in degrees.
// Angle[0] is pitch (X axis), Angle[1] is yaw (Y axis).
type Drag struct {
	Angle    *[2]float32
	dragging bool
	lastX    float32
	lastY    float32
}

// NewDrag binds a drag handler to the given accumulator.
func NewDrag(angle *[2]float32) *Drag {
	return &Drag{Angle: angle}
}

// Dragging reports whether a drag is in progress.
func (d *Drag) Dragging() bool {
	return d.dragging
}

// Press starts a drag when the pointer is inside the canvas bounds.
func (d *Drag) Press(x, y float32, canvas Rect) {
	if !canvas.Contains(x, y) {
		return
	}
	d.dragging = true
	d.lastX, d.lastY = x, y
}

// Release ends the drag.
func (d *Drag) Release() {
	d.dragging = false
}

// Move applies one pointer move. viewportHeight scales pixels to degrees.
func (d *Drag) Move(x, y float32, viewportHeight int) {
	if d.dragging && viewportHeight > 0 && d.Angle != nil {
		ratio := 100 / float32(viewportHeight)
		dx := x - d.lastX
		dy := y - d.lastY
		d.Angle[0] += ratio * dy
		d.Angle[1] += ratio * dx
	}
	d.lastX, d.lastY = x, y
}
