package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"formwork/internal/geom"
	"formwork/internal/grid"
	"formwork/internal/plan/mapper"
	"formwork/internal/plan/models"
	"formwork/internal/units"
)

// ============================================================
// Mantissa Handlers
// ============================================================

// Request coordinates, in millimetres, must lie within maxCoordinate of the
// origin and extensions within maxExtension.
const (
	maxCoordinate = 1e9
	maxExtension  = 1e6
)

var errOutOfRange = errors.New("coordinates must be finite and within 1e9 mm, extensions within 1e6 mm")

// TwoEndMantissa aligns both ends of a segment to the axis grid.
func TwoEndMantissa(c fiber.Ctx) error {
	var req models.TwoEndRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !inRange(axisValues(req.Axes, req.Start, req.End)...) ||
		math.Abs(float64(req.ExtendL)) > maxExtension || math.Abs(float64(req.ExtendR)) > maxExtension {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": errOutOfRange.Error()})
	}
	start, end := planPoint(req.Start), planPoint(req.End)
	if start.DistanceTo(end) < units.LengthTolerance {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "start and end coincide"})
	}

	endL, endR, ok := grid.TwoEndMantissa(mapper.AxesOf(req.Axes), geom.NewBoundLine(start, end), req.ExtendL, req.ExtendR)
	return c.JSON(models.TwoEndResponse{Matched: ok, EndL: endL, EndR: endR})
}

// SectionMantissa measures a section against the parallel axes along probe.
func SectionMantissa(c fiber.Ctx) error {
	var req models.SectionRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !inRange(axisValues(req.Axes, req.Start, req.End, req.Probe)...) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": errOutOfRange.Error()})
	}
	start, end := planPoint(req.Start), planPoint(req.End)
	probe := geom.V(req.Probe.X, req.Probe.Y, 0).Normalize()
	if start.DistanceTo(end) < units.LengthTolerance || probe.IsZero() {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "section needs two distinct points and a probe direction"})
	}

	m, ok := grid.SectionMantissa(mapper.AxesOf(req.Axes), geom.NewBoundLine(start, end), probe)
	return c.JSON(models.MantissaResponse{Matched: ok, Mantissa: m})
}

// SingleEndMantissa measures from a point along a direction to the grid.
func SingleEndMantissa(c fiber.Ctx) error {
	var req models.SingleEndRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !inRange(axisValues(req.Axes, req.Point, req.Direction)...) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": errOutOfRange.Error()})
	}
	dir := geom.V(req.Direction.X, req.Direction.Y, 0).Normalize()
	if dir.IsZero() {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "direction required"})
	}

	m, ok := grid.SingleEndMantissa(mapper.AxesOf(req.Axes), planPoint(req.Point), dir)
	return c.JSON(models.MantissaResponse{Matched: ok, Mantissa: m})
}

// TransformRect runs the oriented rectangle pipeline.
func TransformRect(c fiber.Ctx) error {
	var req models.RectRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var vals []float64
	for _, p := range []models.Point3{req.P1, req.P2, req.P3, req.Pivot, req.Translate} {
		vals = append(vals, p.X, p.Y, p.Z)
	}
	if !inRange(append(vals, req.Expand, req.Rotate)...) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": errOutOfRange.Error()})
	}
	r, err := mapper.TransformRect(req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(r)
}

// ============================================================
// Helpers
// ============================================================

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("body required")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errors.New("invalid JSON payload")
	}
	return nil
}

func planPoint(p models.Point) geom.XYZ {
	return geom.V(units.ToHostLength(p.X), units.ToHostLength(p.Y), 0)
}

// inRange reports whether every value is finite and within maxCoordinate.
func inRange(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.Abs(v) > maxCoordinate {
			return false
		}
	}
	return true
}

// axisValues flattens the axis endpoints and pts into one list of values.
func axisValues(axes []models.Axis, pts ...models.Point) []float64 {
	vals := make([]float64, 0, 4*len(axes)+2*len(pts))
	for _, a := range axes {
		vals = append(vals, a.Start.X, a.Start.Y, a.End.X, a.End.Y)
	}
	for _, p := range pts {
		vals = append(vals, p.X, p.Y)
	}
	return vals
}
