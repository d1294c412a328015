package math

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// RotateAround rotates point about the axis passing through pivot.
// axis should be normalized, angle is in degrees.
func RotateAround(point, pivot, axis Vec3, degrees float32) Vec3 {
	q := QuatFromAxisAngle(axis, DegToRad(degrees))
	return pivot.Add(q.Rotate(point.Sub(pivot)))
}
