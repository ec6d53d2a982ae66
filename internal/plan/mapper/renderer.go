package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"formwork/internal/geom"
	"formwork/internal/plan/models"
)

// ============================================================
// Renderer
// ============================================================

// Renderer draws a plan with its axes, outlines and laid out panels.
type Renderer struct {
	// Thickness is the drawn panel depth in millimetres.
	Thickness float64
	// Margin pads the view box in millimetres.
	Margin float64
}

func NewRenderer() *Renderer {
	return &Renderer{Thickness: 65, Margin: 200}
}

// Render returns an SVG document. Panels are drawn as their plan footprint
// offset to the outside of their side.
func (r *Renderer) Render(p *Plan, panels []models.Panel) (string, error) {
	if p == nil {
		return "", fmt.Errorf("plan is nil")
	}

	var b bbox
	var elements []string
	elements = append(elements, r.renderAxes(p, &b)...)
	elements = append(elements, r.renderOutlines(p, &b)...)
	elements = append(elements, r.renderPanels(panels, &b)...)

	minX, minY, width, height := b.view(r.Margin)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(minX), formatFloat(minY), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderAxes(p *Plan, b *bbox) []string {
	var out []string
	for _, a := range AxisDTOs(p.Axes) {
		b.add(a.Start)
		b.add(a.End)
		out = append(out, fmt.Sprintf(`<line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="#d62728" stroke-dasharray="100 50" />`,
			escape(a.Name), formatFloat(a.Start.X), formatFloat(a.Start.Y), formatFloat(a.End.X), formatFloat(a.End.Y)))
	}
	return out
}

func (r *Renderer) renderOutlines(p *Plan, b *bbox) []string {
	var out []string
	for _, o := range p.Outlines {
		for i, l := range o.Boundary.Loops() {
			if len(l.Sides) == 0 {
				continue
			}
			var path strings.Builder
			path.WriteString(fmt.Sprintf(`<path id="%s-%d" d="M `, escape(o.ID), i+1))
			start := toPlan(l.Sides[0].PtA())
			b.add(start)
			path.WriteString(formatPoint(start))
			for _, s := range l.Sides {
				pt := toPlan(s.PtB())
				b.add(pt)
				path.WriteString(" L ")
				path.WriteString(formatPoint(pt))
			}
			if l.Closed {
				path.WriteString(" Z")
			}
			path.WriteString(`" fill="none" stroke="#000" />`)
			out = append(out, path.String())
		}
	}
	return out
}

func (r *Renderer) renderPanels(panels []models.Panel, b *bbox) []string {
	var out []string
	for _, pn := range panels {
		points := panelOutline(pn, r.Thickness)
		var path strings.Builder
		path.WriteString(fmt.Sprintf(`<path id="%s" d="M `, escape(pn.Number)))
		for i, pt := range points {
			b.add(pt)
			if i > 0 {
				path.WriteString(" L ")
			}
			path.WriteString(formatPoint(pt))
		}
		stroke := "#1f77b4"
		if pn.Reused {
			stroke = "#2ca02c"
		}
		path.WriteString(fmt.Sprintf(` Z" fill="none" stroke="%s"><title>%s</title></path>`, stroke, escape(pn.FullName)))
		out = append(out, path.String())
	}
	return out
}

// panelOutline is the plan rectangle of a panel: width along the rotation
// direction, thickness along that direction crossed with Z, which is the
// append offset direction of the side it was laid on.
func panelOutline(pn models.Panel, thickness float64) []models.Point {
	rad := pn.Rotation * math.Pi / 180
	dir := geom.V(math.Cos(rad), math.Sin(rad), 0)
	off := dir.Cross(geom.BasisZ)

	o := geom.V(pn.Position.X, pn.Position.Y, 0)
	corners := []geom.XYZ{
		o,
		o.Add(dir.Mul(pn.Width)),
		o.Add(dir.Mul(pn.Width)).Add(off.Mul(thickness)),
		o.Add(off.Mul(thickness)),
	}
	out := make([]models.Point, len(corners))
	for i, c := range corners {
		out[i] = models.Point{X: roundMM(c.X), Y: roundMM(c.Y)}
	}
	return out
}

// ============================================================
// Bounds
// ============================================================

type bbox struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *bbox) add(p models.Point) {
	if !b.set {
		b.minX, b.maxX, b.minY, b.maxY, b.set = p.X, p.X, p.Y, p.Y, true
		return
	}
	b.minX = math.Min(b.minX, p.X)
	b.maxX = math.Max(b.maxX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxY = math.Max(b.maxY, p.Y)
}

func (b *bbox) view(margin float64) (minX, minY, width, height float64) {
	if !b.set {
		return 0, 0, 1000, 1000
	}
	return b.minX - margin, b.minY - margin, b.maxX - b.minX + 2*margin, b.maxY - b.minY + 2*margin
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string {
	return attrEscaper.Replace(s)
}
