// Package parser reads plan drawings: SVG documents whose element ids name
// what each shape is (Axis_, Slab_, Wall_, Edge_ prefixes).
package parser

import (
	"encoding/xml"
	"io"
	"strings"

	"formwork/internal/plan/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name `xml:"svg"`
	Group
}

// Group is an <svg> or <g> container; groups nest.
type Group struct {
	ID     string  `xml:"id,attr"`
	Rects  []Rect  `xml:"rect"`
	Paths  []Path  `xml:"path"`
	Lines  []Line  `xml:"line"`
	Groups []Group `xml:"g"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type Path struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

type Line struct {
	ID string  `xml:"id,attr"`
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG returns the recognised elements of the drawing in document
// order per container: rects, then paths, then lines, then nested groups.
// Shapes without an id inherit the type of the nearest typed group.
func ParseSVG(r io.Reader) ([]models.SVGElement, error) {
	var svg SVG
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&svg); err != nil {
		return nil, err
	}

	var elements []models.SVGElement
	collect(svg.Group, "", &elements)
	return elements, nil
}

func collect(g Group, inherited string, out *[]models.SVGElement) {
	if t := classifyElementByID(g.ID); t != "" {
		inherited = t
	}
	typeOf := func(id string) string {
		if t := classifyElementByID(id); t != "" {
			return t
		}
		return inherited
	}

	for _, rect := range g.Rects {
		elemType := typeOf(rect.ID)
		if elemType == "" || elemType == models.TypeAxis {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:   rect.ID,
			Type: elemType,
			Geometry: models.RectGeometry{
				X:      rect.X,
				Y:      rect.Y,
				Width:  rect.Width,
				Height: rect.Height,
			},
		})
	}

	for _, path := range g.Paths {
		elemType := typeOf(path.ID)
		if elemType == "" {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:       path.ID,
			Type:     elemType,
			Geometry: models.PathGeometry{D: path.D},
		})
	}

	for _, line := range g.Lines {
		elemType := typeOf(line.ID)
		if elemType == "" {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:       line.ID,
			Type:     elemType,
			Geometry: models.LineGeometry{X1: line.X1, Y1: line.Y1, X2: line.X2, Y2: line.Y2},
		})
	}

	for _, sub := range g.Groups {
		collect(sub, inherited, out)
	}
}

func classifyElementByID(id string) string {
	switch {
	case strings.HasPrefix(id, "Axis_"):
		return models.TypeAxis
	case strings.HasPrefix(id, "Slab_"):
		return models.TypeSlab
	case strings.HasPrefix(id, "Wall_"):
		return models.TypeWall
	case strings.HasPrefix(id, "Edge_"):
		return models.TypeEdge
	}
	return ""
}
