package mapper

import (
	"errors"

	"formwork/internal/geom"
	"formwork/internal/plan/models"
	"formwork/internal/units"
)

// ErrDegenerateRect is returned when the three rectangle points do not span
// an area.
var ErrDegenerateRect = errors.New("rectangle points are collinear or coincident")

// TransformRect runs the rectangle pipeline of req.
func TransformRect(req models.RectRequest) (models.Rect, error) {
	p1, p2, p3 := toHost3(req.P1), toHost3(req.P2), toHost3(req.P3)
	if p1.DistanceTo(p2) < units.LengthTolerance {
		return models.Rect{}, ErrDegenerateRect
	}
	r := geom.NewRectFromPoints(p1, p2, p3)
	if r.LenY == 0 {
		return models.Rect{}, ErrDegenerateRect
	}

	if req.Reverse {
		r.Reverse()
	}
	r.Advance(req.Advance)
	if req.Expand != 0 {
		r.Expand(req.Expand)
	}
	if req.Rotate != 0 {
		r.TransformBy(geom.RotationZ(units.ToHostAngle(req.Rotate), toHost3(req.Pivot)))
	}
	if req.Translate != (models.Point3{}) {
		r.TransformBy(geom.Translation(toHost3(req.Translate)))
	}
	return rectDTO(r), nil
}

func rectDTO(r geom.Rect) models.Rect {
	dir := func(v geom.XYZ) models.Point3 {
		return models.Point3{X: roundMM(v.X), Y: roundMM(v.Y), Z: roundMM(v.Z)}
	}
	out := models.Rect{
		Origin: toPlan3(r.Origin),
		DirX:   dir(r.DirX),
		DirY:   dir(r.DirY),
		DirZ:   dir(r.DirZ),
		LenX:   r.LenX,
		LenY:   r.LenY,
	}
	for i, p := range r.Corners() {
		out.Corners[i] = toPlan3(p)
	}
	return out
}
