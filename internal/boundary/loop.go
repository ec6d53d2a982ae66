package boundary

import (
	"slices"

	"formwork/internal/fault"
	"formwork/internal/geom"
	"formwork/internal/link"
	"formwork/internal/units"
)

// ============================================================
// Loop Assembly
// ============================================================

// Loop is one chain of sides in traversal order.
type Loop struct {
	Sides  []*Side
	Closed bool
}

// Boundary holds sides in a link graph.
type Boundary struct {
	graph *link.Graph[*Side]
}

// Graph exposes the underlying link graph.
func (b *Boundary) Graph() *link.Graph[*Side] { return b.graph }

// Sides returns every side in insertion order.
func (b *Boundary) Sides() []*Side {
	out := make([]*Side, 0, b.graph.Len())
	for _, id := range b.graph.IDs() {
		out = append(out, b.graph.Value(id))
	}
	return out
}

// Loops partitions the sides into loops and open chains.
func (b *Boundary) Loops() []Loop {
	var out []Loop
	for _, ids := range b.graph.Loops(b.graph.IDs()) {
		l := Loop{Sides: make([]*Side, len(ids)), Closed: b.graph.IsClosed(ids[0])}
		for i, id := range ids {
			l.Sides[i] = b.graph.Value(id)
		}
		out = append(out, l)
	}
	return out
}

// Negate returns the side sharing id's edge in the opposite direction.
func (b *Boundary) Negate(id link.ID) (*Side, bool) {
	n, ok := b.graph.Negate(id)
	if !ok {
		return nil, false
	}
	return b.graph.Value(n), true
}

// Assemble drops invalid sides and links the rest, leaving the caller's
// slice untouched: a side follows another
// when its A end lies within tol (host units) of the other's B end. Sides
// covering the same edge in opposite directions are paired as negates.
// Corner angles are filled in for every linked end. A tol of zero uses
// units.LengthTolerance.
func Assemble(sides []*Side, tol float64) *Boundary {
	if tol <= 0 {
		tol = units.LengthTolerance
	}
	sides = fault.ClearInvalid(slices.Clone(sides))

	g := link.New[*Side]()
	ids := make([]link.ID, len(sides))
	for i, s := range sides {
		ids[i] = g.Add(s)
	}

	taken := make(map[link.ID]bool, len(ids))
	for i, a := range sides {
		for j, b := range sides {
			if i == j || taken[ids[j]] {
				continue
			}
			if a.PtB().DistanceTo(b.PtA()) < tol {
				connect(g, ids[i], ids[j])
				taken[ids[j]] = true
				break
			}
		}
	}

	for i, a := range sides {
		if _, ok := g.Negate(ids[i]); ok {
			continue
		}
		for j := i + 1; j < len(sides); j++ {
			b := sides[j]
			if _, ok := g.Negate(ids[j]); ok {
				continue
			}
			if a.PtA().DistanceTo(b.PtB()) < tol && a.PtB().DistanceTo(b.PtA()) < tol {
				g.PairNegate(ids[i], ids[j])
				break
			}
		}
	}
	return &Boundary{graph: g}
}

// Polygon builds a closed loop of sides through pts in order. Consecutive
// coincident points are skipped.
func Polygon(faceNormal geom.XYZ, pts []geom.XYZ) *Boundary {
	g := link.New[*Side]()
	var ids []link.ID
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		if p.DistanceTo(q) < units.LengthTolerance {
			continue
		}
		ids = append(ids, g.Add(NewSide(faceNormal, p, q)))
	}
	if len(ids) > 0 {
		g.ConnectLoop(ids)
		for i, id := range ids {
			next := ids[(i+1)%len(ids)]
			setCorner(g.Value(id), g.Value(next))
		}
	}
	return &Boundary{graph: g}
}

func connect(g *link.Graph[*Side], a, b link.ID) {
	g.SetNext(a, b)
	g.SetPrevious(b, a)
	setCorner(g.Value(a), g.Value(b))
}

// setCorner records the angle at the shared corner of a (end B) and its
// successor b (end A).
func setCorner(a, b *Side) {
	ang := cornerAngle(a.Direction().Neg(), b.Direction())
	a.AngleB = ang
	b.AngleA = ang
}
