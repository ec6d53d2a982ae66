// Package grid computes mantissas: the millimetre remainders that align
// cut boundaries to the 50 mm increments measured from the structural axis
// grid.
package grid

import (
	"math"

	"formwork/internal/geom"
	"formwork/internal/units"
)

// Modulus is the manufacturing increment in millimetres.
const Modulus = 50

// ============================================================
// Grid Lines
// ============================================================

// GridLine is one structural axis. ParamMin and ParamMax bound the axis
// along Direction, measured from Origin in host units.
type GridLine struct {
	Name      string   `json:"name,omitempty"`
	Origin    geom.XYZ `json:"origin"`
	Direction geom.XYZ `json:"direction"`
	ParamMin  float64  `json:"paramMin"`
	ParamMax  float64  `json:"paramMax"`
}

// NewGridLine builds the axis from p0 to p1.
func NewGridLine(name string, p0, p1 geom.XYZ) GridLine {
	return GridLine{
		Name:      name,
		Origin:    p0,
		Direction: p1.Sub(p0).Normalize(),
		ParamMin:  0,
		ParamMax:  p0.DistanceTo(p1),
	}
}

// End returns the start (i == 0) or end point of the axis.
func (g GridLine) End(i int) geom.XYZ {
	if i == 0 {
		return g.Origin.Add(g.Direction.Mul(g.ParamMin))
	}
	return g.Origin.Add(g.Direction.Mul(g.ParamMax))
}

// Line returns the axis as a bound line.
func (g GridLine) Line() geom.Line {
	return geom.Line{Origin: g.Origin, Direction: g.Direction, Start: g.ParamMin, End: g.ParamMax}
}

// Covers reports whether the projection of p falls strictly inside the
// axis range.
func (g GridLine) Covers(p geom.XYZ) bool {
	t := g.Direction.Dot(p.Sub(g.Origin))
	return t > g.ParamMin && t < g.ParamMax
}

// Provider supplies the axis grid of a project.
type Provider interface {
	GridLines() []GridLine
}

// Axes is a fixed axis grid.
type Axes []GridLine

func (a Axes) GridLines() []GridLine { return a }

// ============================================================
// Mantissa
// ============================================================

// Normalize reduces v into [0, Modulus).
func Normalize(v int) int {
	return (v%Modulus + Modulus) % Modulus
}

func angle(u, v geom.XYZ) int {
	return units.AngleToRounded(u.AngleTo(v), 1)
}

func toMM(hostLen float64) int {
	return units.LengthToRounded(hostLen, 1)
}

// TwoEndMantissa aligns both ends of a bound boundary line. The reference
// is the axis perpendicular to the boundary whose range covers the
// boundary's midpoint and whose origin lies nearest that midpoint along the
// boundary. endL is the distance to pull the start back onto a 50 mm step
// after extending it by extendL; endR is the overshoot of the end past a
// step after extending it by extendR. ok is false when no axis qualifies.
func TwoEndMantissa(axes []GridLine, boundary geom.Line, extendL, extendR int) (endL, endR int, ok bool) {
	if !boundary.IsBound() {
		return 0, 0, false
	}
	dir := boundary.Direction
	mid := boundary.Midpoint()

	var ref GridLine
	best := 0.0
	for _, ax := range axes {
		if angle(dir, ax.Direction) != 90 || !ax.Covers(mid) {
			continue
		}
		d := math.Abs(dir.Dot(ax.Origin.Sub(mid)))
		if !ok || d < best {
			ref, best, ok = ax, d, true
		}
	}
	if !ok {
		return 0, 0, false
	}

	endL = Normalize(toMM(dir.Dot(boundary.EndPoint(0).Sub(ref.Origin))) - extendL)
	if endL != 0 {
		endL = Modulus - endL
	}
	endR = Normalize(toMM(dir.Dot(boundary.EndPoint(1).Sub(ref.Origin))) + extendR)
	return endL, endR, true
}

// SectionMantissa measures a section width against the axes parallel to
// line whose extent overlaps the line's. The distance to each axis is taken
// along probe, usually the normal of the face holding the section; the
// nearest axis wins.
func SectionMantissa(axes []GridLine, line geom.Line, probe geom.XYZ) (int, bool) {
	p0, p1 := line.EndPoint(0), line.EndPoint(1)

	end, ok := 0, false
	for _, ax := range axes {
		if angle(ax.Direction, line.Direction)%180 > 0 {
			continue
		}
		lo := ax.Direction.Dot(p0.Sub(ax.Origin))
		hi := ax.Direction.Dot(p1.Sub(ax.Origin))
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo > ax.ParamMax || hi < ax.ParamMin {
			continue
		}
		d := toMM(probe.Dot(ax.Origin.Sub(line.Origin)))
		if !ok || absInt(d) < absInt(end) {
			end, ok = d, true
		}
	}
	if !ok {
		return 0, false
	}
	return Normalize(end), true
}

// SingleEndMantissa measures the distance from pt along dir to the nearest
// axis perpendicular to dir whose range covers pt.
func SingleEndMantissa(axes []GridLine, pt, dir geom.XYZ) (int, bool) {
	end, ok := 0, false
	for _, ax := range axes {
		if angle(dir, ax.Direction) != 90 || !ax.Covers(pt) {
			continue
		}
		d := toMM(dir.Dot(ax.Origin.Sub(pt)))
		if !ok || absInt(d) < absInt(end) {
			end, ok = d, true
		}
	}
	if !ok {
		return 0, false
	}
	return Normalize(end), true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
