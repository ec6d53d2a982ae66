package geom

import "math"

// ============================================================
// Line
// ============================================================

// Line is a straight line through Origin along the unit Direction. A bound
// line carries the parameter range [Start, End] measured along Direction
// from Origin; an unbound line has infinite bounds.
type Line struct {
	Origin    XYZ     `json:"origin"`
	Direction XYZ     `json:"direction"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// NewBoundLine builds the segment from p0 to p1. Origin is p0 and the
// parameter range is [0, |p1-p0|].
func NewBoundLine(p0, p1 XYZ) Line {
	d := p1.Sub(p0)
	return Line{Origin: p0, Direction: d.Normalize(), Start: 0, End: d.Length()}
}

// NewUnboundLine builds an infinite line through origin along dir.
func NewUnboundLine(origin, dir XYZ) Line {
	return Line{Origin: origin, Direction: dir.Normalize(), Start: math.Inf(-1), End: math.Inf(1)}
}

// IsBound reports whether both parameter bounds are finite.
func (l Line) IsBound() bool {
	return !math.IsInf(l.Start, 0) && !math.IsInf(l.End, 0)
}

// Evaluate returns the point at parameter t.
func (l Line) Evaluate(t float64) XYZ {
	return l.Origin.Add(l.Direction.Mul(t))
}

// EndPoint returns the start (i == 0) or end point of a bound line.
func (l Line) EndPoint(i int) XYZ {
	if i == 0 {
		return l.Evaluate(l.Start)
	}
	return l.Evaluate(l.End)
}

// Midpoint returns the point halfway along a bound line.
func (l Line) Midpoint() XYZ {
	return l.Evaluate((l.Start + l.End) / 2)
}

// Length returns the parametric length of a bound line.
func (l Line) Length() float64 {
	return l.End - l.Start
}

// Parameter returns the parameter of the projection of p onto the line.
func (l Line) Parameter(p XYZ) float64 {
	return l.Direction.Dot(p.Sub(l.Origin))
}

// Project returns the parameter and foot point of p on the (unbounded) line.
func (l Line) Project(p XYZ) (float64, XYZ) {
	t := l.Parameter(p)
	return t, l.Evaluate(t)
}

// Transformed maps the line through t. Parameters are kept, so t should be
// rigid for the bounds to stay meaningful.
func (l Line) Transformed(t Transform) Line {
	return Line{
		Origin:    t.OfPoint(l.Origin),
		Direction: t.OfVector(l.Direction),
		Start:     l.Start,
		End:       l.End,
	}
}
