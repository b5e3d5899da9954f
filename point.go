package fractal

import "math"

// Point is a position in canvas-pixel space or in a generator's logical space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Round returns the nearest integer pixel to p.
// ok is false when p is too far outside any buffer to be converted safely.
func (p Point) Round() (x, y int, ok bool) {
	const limit = 1 << 30
	if !(math.Abs(p.X) < limit && math.Abs(p.Y) < limit) {
		return 0, 0, false
	}
	return int(math.Round(p.X)), int(math.Round(p.Y)), true
}

// Rect is an axis-aligned rectangle in a generator's logical space.
type Rect struct {
	Min, Max Point
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// ToCanvas maps a logical point inside r onto a w×h canvas. Logical y grows
// upward while canvas y grows downward, so the vertical axis is flipped.
// Pixel coordinates are floored; r.Max lands one past the last pixel.
func (r Rect) ToCanvas(p Point, w, h int) (x, y int, ok bool) {
	fx := (p.X - r.Min.X) / r.Dx() * float64(w)
	fy := (r.Max.Y - p.Y) / r.Dy() * float64(h)
	if !(fx >= 0 && fx < float64(w) && fy >= 0 && fy < float64(h)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
