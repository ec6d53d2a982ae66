package geom

import (
	"math"

	"formwork/internal/units"
)

// ============================================================
// Oriented Rectangle
// ============================================================

// Rect is an oriented rectangle used for panel footprints. Origin and the
// direction vectors live in host units; LenX and LenY are signed extents in
// display millimetres. The corners, in winding order, are Pt0..Pt3.
type Rect struct {
	Origin XYZ     `json:"origin"`
	DirX   XYZ     `json:"dirX"`
	DirY   XYZ     `json:"dirY"`
	DirZ   XYZ     `json:"dirZ"`
	LenX   float64 `json:"lenX"`
	LenY   float64 `json:"lenY"`
}

// NewRect returns a rectangle at the world origin on the world basis.
func NewRect(lenX, lenY float64) Rect {
	return Rect{DirX: BasisX, DirY: BasisY, DirZ: BasisZ, LenX: lenX, LenY: lenY}
}

// NewRectFromPoints builds a rectangle from its first corner p1, a point p2
// along the first edge and a point p3 anywhere on the opposite edge. The
// extents are rounded to whole millimetres.
func NewRectFromPoints(p1, p2, p3 XYZ) Rect {
	r := Rect{Origin: p1}
	r.DirX = p2.Sub(p1).Normalize()
	r.LenX = math.RoundToEven(units.ToDisplayLength(p1.DistanceTo(p2)))
	dy := p3.Sub(p3.ProjectTo(p1, r.DirX))
	r.LenY = math.RoundToEven(units.ToDisplayLength(dy.Length()))
	r.DirY = dy.Normalize()
	r.DirZ = r.DirX.Cross(r.DirY)
	return r
}

// NewRectFromCorners uses the first three of pts. It returns false when
// fewer than three points are given.
func NewRectFromCorners(pts []XYZ) (Rect, bool) {
	if len(pts) < 3 {
		return Rect{}, false
	}
	return NewRectFromPoints(pts[0], pts[1], pts[2]), true
}

func (r Rect) Pt0() XYZ { return r.Origin }
func (r Rect) Pt1() XYZ { return r.Origin.Add(r.DirX.Mul(units.ToHostLength(r.LenX))) }
func (r Rect) Pt2() XYZ { return r.Pt1().Add(r.DirY.Mul(units.ToHostLength(r.LenY))) }
func (r Rect) Pt3() XYZ { return r.Origin.Add(r.DirY.Mul(units.ToHostLength(r.LenY))) }

// Corners returns Pt0..Pt3.
func (r Rect) Corners() [4]XYZ {
	return [4]XYZ{r.Pt0(), r.Pt1(), r.Pt2(), r.Pt3()}
}

// Reverse swaps the two edge roles while keeping Origin fixed: DirX and DirY
// trade places, DirZ flips and the extents swap.
func (r *Rect) Reverse() {
	r.DirZ = r.DirZ.Neg()
	r.DirX, r.DirY = r.DirY, r.DirX
	r.LenX, r.LenY = r.LenY, r.LenX
}

// Advance applies k quarter turns; k may be negative. Each turn moves Origin
// to the second corner, rotates the basis (DirX takes DirY, DirY takes the
// negated DirX) and swaps the extents.
func (r *Rect) Advance(k int) {
	for k = (k%4 + 4) % 4; k > 0; k-- {
		r.Origin = r.Pt1()
		x := r.DirX
		r.DirX = r.DirY
		r.DirY = x.Neg()
		r.LenX, r.LenY = r.LenY, r.LenX
	}
}

// Expand grows the rectangle outward by mm on every side, whatever the sign
// of each extent.
func (r *Rect) Expand(mm float64) {
	d := units.ToHostLength(mm)
	if r.LenX > 0 {
		r.LenX += mm * 2
		r.Origin = r.Origin.Sub(r.DirX.Mul(d))
	} else {
		r.LenX -= mm * 2
		r.Origin = r.Origin.Add(r.DirX.Mul(d))
	}
	if r.LenY > 0 {
		r.LenY += mm * 2
		r.Origin = r.Origin.Sub(r.DirY.Mul(d))
	} else {
		r.LenY -= mm * 2
		r.Origin = r.Origin.Add(r.DirY.Mul(d))
	}
}

// TransformBy maps Origin as a point and the three directions as free
// vectors. Directions are not renormalised.
func (r *Rect) TransformBy(t Transform) {
	r.DirZ = t.OfVector(r.DirZ)
	r.DirX = t.OfVector(r.DirX)
	r.DirY = t.OfVector(r.DirY)
	r.Origin = t.OfPoint(r.Origin)
}

// Approx compares two rectangles; eps applies to host-unit vectors and to
// millimetre extents alike.
func (r Rect) Approx(o Rect, eps float64) bool {
	return r.Origin.Approx(o.Origin, eps) &&
		r.DirX.Approx(o.DirX, eps) &&
		r.DirY.Approx(o.DirY, eps) &&
		r.DirZ.Approx(o.DirZ, eps) &&
		math.Abs(r.LenX-o.LenX) < eps &&
		math.Abs(r.LenY-o.LenY) < eps
}
