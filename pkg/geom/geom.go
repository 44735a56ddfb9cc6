// Package geom provides the immutable 2D primitives used by the layout
// engine: [Point], [Size], and [Rect].
//
// All three are plain value types. Operations return new values and never
// mutate their receiver, so they can be shared freely between layout passes
// without aliasing hazards.
package geom

import "math"

// Point is a 2D coordinate or displacement vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns the component-wise sum p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both components multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dot returns the dot product p · q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Magnitude returns the Euclidean length of p viewed as a vector.
func (p Point) Magnitude() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Magnitude() }

// Normalize returns the unit vector pointing in the direction of p.
// The zero vector normalizes to the zero vector.
func (p Point) Normalize() Point {
	m := p.Magnitude()
	if m == 0 {
		return Point{}
	}
	return Point{p.X / m, p.Y / m}
}

// Size is a non-negative width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sz builds a Size, clamping negative dimensions to zero.
func Sz(width, height float64) Size {
	return Size{Width: math.Max(width, 0), Height: math.Max(height, 0)}
}

// Scale returns the size with both dimensions multiplied by f.
// The result is clamped to non-negative dimensions.
func (s Size) Scale(f float64) Size { return Sz(s.Width*f, s.Height*f) }

// Area returns width × height.
func (s Size) Area() float64 { return s.Width * s.Height }

// AspectRatio returns width / height, or 0 if the height is zero.
func (s Size) AspectRatio() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
}

// RectOf builds a Rect from top-left coordinates and dimensions.
func RectOf(x, y, width, height float64) Rect {
	return Rect{Position: Pt(x, y), Size: Sz(width, height)}
}

// Left returns the minimum x coordinate.
func (r Rect) Left() float64 { return r.Position.X }

// Top returns the minimum y coordinate.
func (r Rect) Top() float64 { return r.Position.Y }

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.Position.X + r.Size.Width }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Position.Y + r.Size.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Pt(r.Position.X+r.Size.Width/2, r.Position.Y+r.Size.Height/2)
}

// ContainsPoint reports whether p lies inside or on the boundary of r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Contains reports whether o lies entirely inside or on the boundary of r.
func (r Rect) Contains(o Rect) bool {
	return o.Left() >= r.Left() && o.Right() <= r.Right() &&
		o.Top() >= r.Top() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether r and o share any area or boundary.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() <= o.Right() && o.Left() <= r.Right() &&
		r.Top() <= o.Bottom() && o.Top() <= r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left(), o.Left())
	top := math.Min(r.Top(), o.Top())
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return RectOf(left, top, right-left, bottom-top)
}

// Inflate returns r grown by dx on the left and right and dy on the top and
// bottom. Negative deltas shrink the rectangle; the size never goes below zero.
func (r Rect) Inflate(dx, dy float64) Rect {
	return RectOf(r.Left()-dx, r.Top()-dy, r.Size.Width+2*dx, r.Size.Height+2*dy)
}
