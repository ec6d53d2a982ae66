package geom

import "math"

// ============================================================
// Transform
// ============================================================

// Transform is a 3D affine map: x' = BasisX*x + BasisY*y + BasisZ*z + Origin.
type Transform struct {
	BasisX XYZ `json:"basisX"`
	BasisY XYZ `json:"basisY"`
	BasisZ XYZ `json:"basisZ"`
	Origin XYZ `json:"origin"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{BasisX: BasisX, BasisY: BasisY, BasisZ: BasisZ}
}

// Translation returns a transform that moves points by v.
func Translation(v XYZ) Transform {
	t := Identity()
	t.Origin = v
	return t
}

// RotationZ returns a rotation by angle radians about the vertical axis
// through center.
func RotationZ(angle float64, center XYZ) Transform {
	cos, sin := math.Cos(angle), math.Sin(angle)
	t := Transform{
		BasisX: XYZ{X: cos, Y: sin},
		BasisY: XYZ{X: -sin, Y: cos},
		BasisZ: BasisZ,
	}
	t.Origin = center.Sub(t.OfVector(center))
	return t
}

// Scaling returns a uniform scale about the world origin.
func Scaling(s float64) Transform {
	return Transform{BasisX: BasisX.Mul(s), BasisY: BasisY.Mul(s), BasisZ: BasisZ.Mul(s)}
}

// Reflection returns the mirror through the plane with the given origin and
// unit normal.
func Reflection(origin, normal XYZ) Transform {
	n := normal.Normalize()
	mirror := func(e XYZ) XYZ { return e.Sub(n.Mul(2 * n.Dot(e))) }
	t := Transform{BasisX: mirror(BasisX), BasisY: mirror(BasisY), BasisZ: mirror(BasisZ)}
	t.Origin = origin.Sub(t.OfVector(origin))
	return t
}

// OfVector applies the linear part of t to a free vector.
func (t Transform) OfVector(v XYZ) XYZ {
	return t.BasisX.Mul(v.X).Add(t.BasisY.Mul(v.Y)).Add(t.BasisZ.Mul(v.Z))
}

// OfPoint applies t to a point.
func (t Transform) OfPoint(p XYZ) XYZ {
	return t.OfVector(p).Add(t.Origin)
}

// Multiply returns t ∘ o, the transform that applies o first.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		BasisX: t.OfVector(o.BasisX),
		BasisY: t.OfVector(o.BasisY),
		BasisZ: t.OfVector(o.BasisZ),
		Origin: t.OfPoint(o.Origin),
	}
}
