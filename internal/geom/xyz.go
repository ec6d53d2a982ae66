package geom

import "math"

// ============================================================
// XYZ
// ============================================================

// XYZ is a point or free vector in host model space.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

var (
	Zero   = XYZ{}
	BasisX = XYZ{X: 1}
	BasisY = XYZ{Y: 1}
	BasisZ = XYZ{Z: 1}
)

// V is a convenience function to create an XYZ.
func V(x, y, z float64) XYZ {
	return XYZ{X: x, Y: y, Z: z}
}

func (v XYZ) Add(w XYZ) XYZ {
	return XYZ{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

func (v XYZ) Sub(w XYZ) XYZ {
	return XYZ{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

func (v XYZ) Mul(s float64) XYZ {
	return XYZ{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v XYZ) Div(s float64) XYZ {
	return XYZ{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

func (v XYZ) Neg() XYZ {
	return XYZ{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v XYZ) Dot(w XYZ) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v XYZ) Cross(w XYZ) XYZ {
	return XYZ{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v XYZ) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// DistanceTo returns the distance between two points.
func (v XYZ) DistanceTo(w XYZ) float64 {
	return v.Sub(w).Length()
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v XYZ) Normalize() XYZ {
	l := v.Length()
	if l == 0 {
		return XYZ{}
	}
	return v.Div(l)
}

// AngleTo returns the unsigned angle between two vectors in [0, π].
func (v XYZ) AngleTo(w XYZ) float64 {
	return math.Atan2(v.Cross(w).Length(), v.Dot(w))
}

// Midpoint returns the point halfway between v and w.
func (v XYZ) Midpoint(w XYZ) XYZ {
	return v.Add(w).Mul(0.5)
}

func (v XYZ) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Approx reports whether both vectors agree component-wise within eps.
func (v XYZ) Approx(w XYZ, eps float64) bool {
	return math.Abs(v.X-w.X) < eps && math.Abs(v.Y-w.Y) < eps && math.Abs(v.Z-w.Z) < eps
}

// ProjectTo returns the foot of the perpendicular from v onto the ray
// through linePt with unit direction lineDir.
func (v XYZ) ProjectTo(linePt, lineDir XYZ) XYZ {
	return linePt.Add(lineDir.Mul(lineDir.Dot(v.Sub(linePt))))
}

// ProjectToPlane returns the foot of the perpendicular from v onto the plane
// through origin with unit normal.
func (v XYZ) ProjectToPlane(origin, normal XYZ) XYZ {
	return v.Sub(normal.Mul(normal.Dot(v.Sub(origin))))
}
