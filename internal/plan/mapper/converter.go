// Package mapper turns parsed plan drawings into boundaries and axis grids,
// plans their sides into panel cut ranges, lays panels out into a host
// document and renders the result back to SVG.
package mapper

import (
	"errors"
	"fmt"
	"io"
	"math"

	"formwork/internal/boundary"
	"formwork/internal/geom"
	"formwork/internal/grid"
	"formwork/internal/panel"
	"formwork/internal/plan/models"
	"formwork/internal/plan/parser"
	"formwork/internal/units"
)

// ErrEmptyPlan is returned when a drawing holds no outline.
var ErrEmptyPlan = errors.New("drawing has no slab, wall or edge outline")

// ============================================================
// Converter
// ============================================================

// Options control how a plan is cut and laid out.
type Options struct {
	System panel.System
	Kind   panel.RangeKind
	Widths []int
	// Height of wall panels in millimetres.
	Height float64
	// SnapTolerance joins edge ends closer than this many millimetres.
	SnapTolerance float64
}

func DefaultOptions() Options {
	return Options{
		System:        panel.SystemGeto65,
		Kind:          panel.RangeIC,
		Widths:        panel.DefaultWidths,
		Height:        2700,
		SnapTolerance: 1,
	}
}

// Outline is the boundary of one drawing element.
type Outline struct {
	ID       string
	Type     string
	Boundary *boundary.Boundary
}

// Plan is a parsed drawing in host units.
type Plan struct {
	Axes     grid.Axes
	Outlines []Outline
}

type Converter struct {
	opts Options
}

func New(opts Options) *Converter {
	if len(opts.Widths) == 0 {
		opts.Widths = panel.DefaultWidths
	}
	return &Converter{opts: opts}
}

func (c *Converter) Options() Options { return c.opts }

// Load parses an SVG drawing. Axis_ shapes become grid axes, every Slab_ and
// Wall_ shape becomes its own outline and all Edge_ lines are snapped
// together into one outline named "edges".
func (c *Converter) Load(r io.Reader) (*Plan, error) {
	elements, err := parser.ParseSVG(r)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	p := &Plan{}
	var edges []*boundary.Side
	for _, elem := range elements {
		switch elem.Type {
		case models.TypeAxis:
			axis, err := c.axisOf(elem, len(p.Axes))
			if err != nil {
				return nil, fmt.Errorf("axis %q: %w", elem.ID, err)
			}
			p.Axes = append(p.Axes, axis)

		case models.TypeSlab, models.TypeWall:
			b, err := c.outlineOf(elem)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", elem.Type, elem.ID, err)
			}
			if len(b.Sides()) == 0 {
				continue
			}
			tagSides(elem.ID, b)
			p.Outlines = append(p.Outlines, Outline{ID: elem.ID, Type: elem.Type, Boundary: b})

		case models.TypeEdge:
			pts, err := pointsOf(elem)
			if err != nil {
				return nil, fmt.Errorf("edge %q: %w", elem.ID, err)
			}
			edges = append(edges, chain(pts, false)...)
		}
	}

	if len(edges) > 0 {
		b := boundary.Assemble(edges, units.ToHostLength(c.opts.SnapTolerance))
		if len(b.Sides()) > 0 {
			tagSides("edges", b)
			p.Outlines = append(p.Outlines, Outline{ID: "edges", Type: models.TypeEdge, Boundary: b})
		}
	}

	if len(p.Outlines) == 0 {
		return nil, ErrEmptyPlan
	}
	return p, nil
}

func (c *Converter) axisOf(elem models.SVGElement, index int) (grid.GridLine, error) {
	pts, err := pointsOf(elem)
	if err != nil {
		return grid.GridLine{}, err
	}
	if len(pts) < 2 || pts[0].DistanceTo(pts[len(pts)-1]) < units.LengthTolerance {
		return grid.GridLine{}, fmt.Errorf("axis needs two distinct points")
	}
	name := elem.ID
	if name == "" {
		name = fmt.Sprintf("Axis_%d", index+1)
	}
	return grid.NewGridLine(name, pts[0], pts[len(pts)-1]), nil
}

// outlineOf builds a closed polygon for rects and assembles path contours,
// closed or open, with the snap tolerance.
func (c *Converter) outlineOf(elem models.SVGElement) (*boundary.Boundary, error) {
	switch g := elem.Geometry.(type) {
	case models.RectGeometry:
		return boundary.Polygon(geom.BasisZ, []geom.XYZ{
			toHost(models.Point{X: g.X, Y: g.Y}),
			toHost(models.Point{X: g.X + g.Width, Y: g.Y}),
			toHost(models.Point{X: g.X + g.Width, Y: g.Y + g.Height}),
			toHost(models.Point{X: g.X, Y: g.Y + g.Height}),
		}), nil

	case models.PathGeometry:
		contours, err := parser.ParsePath(g.D)
		if err != nil {
			return nil, err
		}
		var sides []*boundary.Side
		for _, ct := range contours {
			pts := make([]geom.XYZ, len(ct.Points))
			for i, p := range ct.Points {
				pts[i] = toHost(p)
			}
			sides = append(sides, chain(pts, ct.Closed)...)
		}
		return boundary.Assemble(sides, units.ToHostLength(c.opts.SnapTolerance)), nil

	case models.LineGeometry:
		pts, _ := pointsOf(elem)
		return boundary.Assemble(chain(pts, false), 0), nil
	}
	return nil, fmt.Errorf("unsupported geometry %T", elem.Geometry)
}

// chain returns the sides through pts in order, skipping coincident points.
// A closed chain gets a closing side unless its last point already returns
// to the first.
func chain(pts []geom.XYZ, closed bool) []*boundary.Side {
	var sides []*boundary.Side
	n := len(pts)
	if closed && n > 1 && pts[0].DistanceTo(pts[n-1]) >= units.LengthTolerance {
		pts = append(pts[:n:n], pts[0])
	}
	for i := 0; i+1 < len(pts); i++ {
		if pts[i].DistanceTo(pts[i+1]) < units.LengthTolerance {
			continue
		}
		sides = append(sides, boundary.NewSide(geom.BasisZ, pts[i], pts[i+1]))
	}
	return sides
}

// pointsOf returns the host points of a line or of the first contour of a
// path.
func pointsOf(elem models.SVGElement) ([]geom.XYZ, error) {
	switch g := elem.Geometry.(type) {
	case models.LineGeometry:
		return []geom.XYZ{
			toHost(models.Point{X: g.X1, Y: g.Y1}),
			toHost(models.Point{X: g.X2, Y: g.Y2}),
		}, nil
	case models.PathGeometry:
		contours, err := parser.ParsePath(g.D)
		if err != nil {
			return nil, err
		}
		if len(contours) == 0 {
			return nil, fmt.Errorf("path has no points")
		}
		pts := make([]geom.XYZ, len(contours[0].Points))
		for i, p := range contours[0].Points {
			pts[i] = toHost(p)
		}
		return pts, nil
	}
	return nil, fmt.Errorf("unsupported geometry %T", elem.Geometry)
}

// tagSides names sides "<id>.<n>" in loop order.
func tagSides(id string, b *boundary.Boundary) {
	n := 0
	for _, l := range b.Loops() {
		for _, s := range l.Sides {
			n++
			s.Tag = fmt.Sprintf("%s.%d", id, n)
		}
	}
}

// ============================================================
// Unit helpers
// ============================================================

func toHost(p models.Point) geom.XYZ {
	return geom.V(units.ToHostLength(p.X), units.ToHostLength(p.Y), 0)
}

func toHost3(p models.Point3) geom.XYZ {
	return geom.V(units.ToHostLength(p.X), units.ToHostLength(p.Y), units.ToHostLength(p.Z))
}

func toPlan(v geom.XYZ) models.Point {
	return models.Point{X: roundMM(units.ToDisplayLength(v.X)), Y: roundMM(units.ToDisplayLength(v.Y))}
}

func toPlan3(v geom.XYZ) models.Point3 {
	return models.Point3{
		X: roundMM(units.ToDisplayLength(v.X)),
		Y: roundMM(units.ToDisplayLength(v.Y)),
		Z: roundMM(units.ToDisplayLength(v.Z)),
	}
}

// roundMM keeps three decimals so unit round trips print cleanly.
func roundMM(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}

// AxesOf converts plan axes to host grid lines.
func AxesOf(dtos []models.Axis) grid.Axes {
	out := make(grid.Axes, len(dtos))
	for i, a := range dtos {
		out[i] = grid.NewGridLine(a.Name, toHost(a.Start), toHost(a.End))
	}
	return out
}

// AxisDTOs converts host grid lines to plan axes.
func AxisDTOs(axes grid.Axes) []models.Axis {
	out := make([]models.Axis, len(axes))
	for i, a := range axes {
		out[i] = models.Axis{Name: a.Name, Start: toPlan(a.End(0)), End: toPlan(a.End(1))}
	}
	return out
}
