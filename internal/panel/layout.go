package panel

import (
	"fmt"
	"math"

	"formwork/internal/boundary"
	"formwork/internal/entity"
	"formwork/internal/fault"
	"formwork/internal/grid"
	"formwork/internal/host"
	"formwork/internal/units"
)

// ============================================================
// Layout
// ============================================================

// SidePlan is the cut plan of one boundary side.
type SidePlan struct {
	Side    *boundary.Side
	Aligned bool
	EndL    int
	EndR    int
	Ranges  []*CutRange
}

// PlanSide trims side by its two-end mantissa against axes and cuts the
// body into standard widths. Without a matching axis the whole side is cut
// with no filler ends.
func PlanSide(side *boundary.Side, axes []grid.GridLine, kind RangeKind, widths []int) (SidePlan, error) {
	p := SidePlan{Side: side}
	p.EndL, p.EndR, p.Aligned = grid.TwoEndMantissa(axes, side.Bound(), 0, 0)

	length := side.Length()
	if p.EndL+p.EndR > length {
		p.EndL, p.EndR = 0, 0
	}
	ranges, err := PlanCuts(kind, length, p.EndL, p.EndR, widths)
	if err != nil {
		return p, err
	}
	p.Ranges = ranges
	return p, nil
}

// LayoutWall creates one detached wall panel per panel of the valid ranges
// in plan, walking from end A of the side. Panels face the side's append
// offset direction and are heightMM tall.
func LayoutWall(plan SidePlan, sys System, heightMM float64, opts ...entity.Option) []*WallPanel {
	side := plan.Side
	dir := side.Direction()
	rotation := math.Atan2(dir.Y, dir.X)

	var panels []*WallPanel
	at := 0
	for _, r := range plan.Ranges {
		for range r.Count {
			if !r.Invalid() {
				pos := side.PtA().Add(dir.Mul(units.ToHostLength(float64(at))))
				w := NewWallPanel(pos, rotation, float64(r.Length), heightMM, opts...)
				w.SetFullName(fmt.Sprintf("%s-%s%dx%d", sys, r.Kind, r.Length, int(math.Round(heightMM))))
				w.SetReused(r.Reused)
				panels = append(panels, w)
			}
			at += r.Length
		}
	}
	for i, w := range panels {
		w.SetNumber(fmt.Sprintf("%s-%03d", side.Tag, i+1))
	}
	return panels
}

// Entmake places every panel through creator and returns the panels that
// were placed. Failed panels keep their fault status and are dropped.
func Entmake(panels []*WallPanel, creator host.Creator, symbols *Symbols) []*WallPanel {
	for _, w := range panels {
		_ = w.Entmake(creator, symbols)
	}
	return fault.ClearInvalid(panels)
}
