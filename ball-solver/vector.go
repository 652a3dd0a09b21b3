package ball

import "math"

// Vec2 is a plain 2D vector used for velocities in collision space.
type Vec2 struct {
	X, Y float64
}

// Rotate rotates the vector v by angle radians.
func Rotate(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Distance returns the Euclidean distance between {x1, y1} and {x2, y2}.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
