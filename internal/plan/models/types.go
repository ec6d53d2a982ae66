// Package models holds the SVG plan elements and the JSON documents the
// plan service exchanges. Coordinates are plan millimetres.
package models

// ============================================================
// SVG Elements
// ============================================================

// Element types recognised by the plan parser.
const (
	TypeAxis = "axis"
	TypeSlab = "slab"
	TypeWall = "wall"
	TypeEdge = "edge"
)

type SVGElement struct {
	ID       string
	Type     string // axis, slab, wall, edge
	Geometry any
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type PathGeometry struct {
	D string
}

type LineGeometry struct {
	X1, Y1 float64
	X2, Y2 float64
}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Axis is a structural grid axis from Start to End.
type Axis struct {
	Name  string `json:"name"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// ============================================================
// Analysis
// ============================================================

type Range struct {
	Kind   string `json:"kind"`
	Length int    `json:"length"`
	Count  int    `json:"count"`
	Reused bool   `json:"reused,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Side struct {
	Tag     string  `json:"tag"`
	Start   Point   `json:"start"`
	End     Point   `json:"end"`
	Length  int     `json:"length"`
	AngleA  int     `json:"angleA"`
	AngleB  int     `json:"angleB"`
	Aligned bool    `json:"aligned"`
	EndL    int     `json:"endL"`
	EndR    int     `json:"endR"`
	Ranges  []Range `json:"ranges"`
	Error   string  `json:"error,omitempty"`
}

type Loop struct {
	Closed bool   `json:"closed"`
	Sides  []Side `json:"sides"`
}

type Outline struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Loops []Loop `json:"loops"`
}

type Analysis struct {
	System   string    `json:"system"`
	Axes     []Axis    `json:"axes"`
	Outlines []Outline `json:"outlines"`
}

// ============================================================
// Layout
// ============================================================

type Panel struct {
	ID       int64    `json:"id"`
	UniqueID string   `json:"uniqueId,omitempty"`
	Number   string   `json:"number"`
	FullName string   `json:"fullName"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Reused   bool     `json:"reused,omitempty"`
	Position Point    `json:"position"`
	Rotation float64  `json:"rotation"` // degrees
	Corners  [4]Point3 `json:"corners"`
}

type Layout struct {
	DocumentID string  `json:"documentId"`
	Name       string  `json:"name"`
	Panels     []Panel `json:"panels"`
	Skipped    int     `json:"skipped"`
}

// ============================================================
// Mantissa requests
// ============================================================

type TwoEndRequest struct {
	Axes    []Axis `json:"axes"`
	Start   Point  `json:"start"`
	End     Point  `json:"end"`
	ExtendL int    `json:"extendL"`
	ExtendR int    `json:"extendR"`
}

type TwoEndResponse struct {
	Matched bool `json:"matched"`
	EndL    int  `json:"endL"`
	EndR    int  `json:"endR"`
}

type SectionRequest struct {
	Axes  []Axis `json:"axes"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
	Probe Point  `json:"probe"`
}

type SingleEndRequest struct {
	Axes      []Axis `json:"axes"`
	Point     Point  `json:"point"`
	Direction Point  `json:"direction"`
}

type MantissaResponse struct {
	Matched  bool `json:"matched"`
	Mantissa int  `json:"mantissa"`
}

// ============================================================
// Rectangle transform
// ============================================================

// RectRequest builds a rectangle from three corners and applies, in order:
// Reverse, Advance, Expand, a rotation in degrees about Z through Pivot,
// then Translate.
type RectRequest struct {
	P1        Point3  `json:"p1"`
	P2        Point3  `json:"p2"`
	P3        Point3  `json:"p3"`
	Reverse   bool    `json:"reverse"`
	Advance   int     `json:"advance"`
	Expand    float64 `json:"expand"`
	Rotate    float64 `json:"rotate"`
	Pivot     Point3  `json:"pivot"`
	Translate Point3  `json:"translate"`
}

type Rect struct {
	Origin  Point3    `json:"origin"`
	DirX    Point3    `json:"dirX"`
	DirY    Point3    `json:"dirY"`
	DirZ    Point3    `json:"dirZ"`
	LenX    float64   `json:"lenX"`
	LenY    float64   `json:"lenY"`
	Corners [4]Point3 `json:"corners"`
}
