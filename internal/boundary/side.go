// Package boundary models the straight sides of a face outline and chains
// them into loops.
package boundary

import (
	"errors"

	"formwork/internal/fault"
	"formwork/internal/geom"
	"formwork/internal/units"
)

// ErrDegenerate marks a side whose two points coincide.
var ErrDegenerate = errors.New("side has zero length")

// ============================================================
// Side
// ============================================================

// Side is one straight boundary segment. It keeps an unbound support line
// and the parameters of its two ends on that line; the end points are always
// evaluated from the line, so they stay collinear.
type Side struct {
	fault.Status

	line   geom.Line
	paraA  float64
	paraB  float64
	offset geom.XYZ

	// AngleA and AngleB are the corner angles at each end in whole degrees,
	// measured between this side and its neighbour.
	AngleA int
	AngleB int

	// Tag names the source outline, if any.
	Tag string
}

// NewSide builds the side from p1 to p2 on a face with the given normal.
// A zero-length side is returned marked with fault.CodeGeometry.
func NewSide(faceNormal, p1, p2 geom.XYZ) *Side {
	s := &Side{
		line:  geom.NewUnboundLine(p1, p2.Sub(p1)),
		paraA: 0,
		paraB: p1.DistanceTo(p2),
	}
	if s.line.Direction.IsZero() {
		s.Fail(fault.CodeGeometry, ErrDegenerate)
		return s
	}
	s.offset = s.line.Direction.Cross(faceNormal)
	return s
}

// Line returns the unbound support line.
func (s *Side) Line() geom.Line { return s.line }

// Direction is the unit direction from A to B's side of the support line.
func (s *Side) Direction() geom.XYZ { return s.line.Direction }

// AppendOffsetDir points to the side on which the face area grows.
func (s *Side) AppendOffsetDir() geom.XYZ { return s.offset }

func (s *Side) ParaA() float64 { return s.paraA }
func (s *Side) ParaB() float64 { return s.paraB }
func (s *Side) PtA() geom.XYZ  { return s.line.Evaluate(s.paraA) }
func (s *Side) PtB() geom.XYZ  { return s.line.Evaluate(s.paraB) }

// SetParaA moves end A to parameter t.
func (s *Side) SetParaA(t float64) { s.paraA = t }

// SetParaB moves end B to parameter t.
func (s *Side) SetParaB(t float64) { s.paraB = t }

// SetPtA moves end A to the projection of p on the support line.
func (s *Side) SetPtA(p geom.XYZ) { s.paraA = s.line.Parameter(p) }

// SetPtB moves end B to the projection of p on the support line.
func (s *Side) SetPtB(p geom.XYZ) { s.paraB = s.line.Parameter(p) }

// Length returns the signed length from A to B in whole millimetres.
func (s *Side) Length() int {
	return units.LengthToRounded(s.paraB-s.paraA, 1)
}

// Bound returns the segment from A to B.
func (s *Side) Bound() geom.Line {
	l := s.line
	l.Start, l.End = s.paraA, s.paraB
	return l
}

// Midpoint returns the point halfway between the ends.
func (s *Side) Midpoint() geom.XYZ {
	return s.line.Evaluate((s.paraA + s.paraB) / 2)
}

// Extend moves end A back by mmA and end B forward by mmB along the line.
func (s *Side) Extend(mmA, mmB float64) {
	s.paraA -= units.ToHostLength(mmA)
	s.paraB += units.ToHostLength(mmB)
}

// Offset shifts the support line by mm along AppendOffsetDir.
func (s *Side) Offset(mm float64) {
	s.line.Origin = s.line.Origin.Add(s.offset.Mul(units.ToHostLength(mm)))
}

// Reverse swaps the ends. The support line flips and the offset direction
// is recomputed for the same face normal.
func (s *Side) Reverse() {
	a, b := s.PtA(), s.PtB()
	s.line = geom.NewUnboundLine(b, s.line.Direction.Neg())
	s.paraA = 0
	s.paraB = a.Sub(b).Dot(s.line.Direction)
	s.offset = s.offset.Neg()
	s.AngleA, s.AngleB = s.AngleB, s.AngleA
}

// cornerAngle is the angle in whole degrees between two rays leaving a
// corner.
func cornerAngle(u, v geom.XYZ) int {
	return units.AngleToRounded(u.AngleTo(v), 1)
}
