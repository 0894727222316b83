// Package core provides fundamental types and utilities for the brick breaker.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units (pixels of the logical playfield).
type Vec2 struct {
	X, Y float64
}

// V creates a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s on both axes.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// AddScalar adds s to both components.
func (v Vec2) AddScalar(s float64) Vec2 {
	return Vec2{X: v.X + s, Y: v.Y + s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// ok is false for the zero vector, which has no direction.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, true
}

// Clamp restricts each component of v to [lo, hi] component-wise.
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{X: ClampF(v.X, lo.X, hi.X), Y: ClampF(v.Y, lo.Y, hi.Y)}
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	Pos  Vec2 // Top-left corner
	Size Vec2 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: Vec2{X: x, Y: y}, Size: Vec2{X: w, Y: h}}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Pos.X + r.Size.X
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Pos.Y + r.Size.Y
}

// HalfExtents returns half of the rectangle size.
func (r Rect) HalfExtents() Vec2 {
	return r.Size.Scale(0.5)
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Pos.Add(r.HalfExtents())
}

// RectOverlap reports whether the projections of a and b overlap on both axes.
// Touching edges count as overlap.
func RectOverlap(a, b Rect) bool {
	collisionX := a.Right() >= b.Pos.X && b.Right() >= a.Pos.X
	collisionY := a.Bottom() >= b.Pos.Y && b.Bottom() >= a.Pos.Y
	return collisionX && collisionY
}

// Direction is a compass direction used to classify penetration vectors.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// compass holds the unit vector for each Direction, in Direction order.
// Up is +Y: a penetration vector pointing down the screen means the circle
// came onto the box from above.
var compass = [...]Vec2{
	DirUp:    {X: 0, Y: 1},
	DirRight: {X: 1, Y: 0},
	DirDown:  {X: 0, Y: -1},
	DirLeft:  {X: -1, Y: 0},
}

// VectorDirection returns the compass direction closest to v.
// Ties go to the first direction in Up, Right, Down, Left order.
// The zero vector has no direction and maps to Up.
func VectorDirection(v Vec2) Direction {
	unit, ok := v.Normalize()
	if !ok {
		return DirUp
	}

	best := DirUp
	maxDot := math.Inf(-1)
	for i, c := range compass {
		if d := unit.Dot(c); d > maxDot {
			maxDot = d
			best = Direction(i)
		}
	}
	return best
}

// Collision describes the result of a circle vs box test.
type Collision struct {
	Hit   bool
	Dir   Direction
	Delta Vec2 // From circle center to the closest point on the box
}

// CircleRectCollision tests a circle against an axis-aligned box.
// pos is the top-left corner of the circle's bounding square, so the
// center sits at pos + radius on both axes.
//
// If the center lies inside the box the closest point is the center itself
// and Delta is zero; the direction is then taken from the offset between
// the circle center and the box center.
func CircleRectCollision(pos Vec2, radius float64, box Rect) Collision {
	center := pos.AddScalar(radius)

	half := box.HalfExtents()
	boxCenter := box.Pos.Add(half)

	difference := center.Sub(boxCenter)
	clamped := difference.Clamp(half.Scale(-1), half)

	closest := boxCenter.Add(clamped)
	delta := closest.Sub(center)

	if delta.Len() >= radius {
		return Collision{}
	}

	dir := VectorDirection(delta)
	if delta == (Vec2{}) {
		dir = VectorDirection(difference)
	}
	return Collision{Hit: true, Dir: dir, Delta: delta}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
