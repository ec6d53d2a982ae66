package mapper

import (
	"formwork/internal/entity"
	"formwork/internal/host/memhost"
	"formwork/internal/panel"
	"formwork/internal/param"
	"formwork/internal/plan/models"
	"formwork/internal/units"
)

// ============================================================
// Analysis
// ============================================================

type sidePlan struct {
	plan panel.SidePlan
	err  error
}

type loopPlan struct {
	closed bool
	sides  []sidePlan
}

type outlinePlan struct {
	outline Outline
	loops   []loopPlan
}

// plan cuts every side of every outline.
func (c *Converter) plan(p *Plan) []outlinePlan {
	out := make([]outlinePlan, 0, len(p.Outlines))
	for _, o := range p.Outlines {
		op := outlinePlan{outline: o}
		for _, l := range o.Boundary.Loops() {
			lp := loopPlan{closed: l.Closed}
			for _, s := range l.Sides {
				sp, err := panel.PlanSide(s, p.Axes, c.opts.Kind, c.opts.Widths)
				lp.sides = append(lp.sides, sidePlan{plan: sp, err: err})
			}
			op.loops = append(op.loops, lp)
		}
		out = append(out, op)
	}
	return out
}

// Analyze reports the loops of every outline with the mantissas and cut
// ranges of each side.
func (c *Converter) Analyze(p *Plan) models.Analysis {
	a := models.Analysis{
		System:   c.opts.System.String(),
		Axes:     AxisDTOs(p.Axes),
		Outlines: []models.Outline{},
	}
	for _, op := range c.plan(p) {
		o := models.Outline{ID: op.outline.ID, Type: op.outline.Type}
		for _, lp := range op.loops {
			l := models.Loop{Closed: lp.closed}
			for _, sp := range lp.sides {
				l.Sides = append(l.Sides, sideDTO(sp))
			}
			o.Loops = append(o.Loops, l)
		}
		a.Outlines = append(a.Outlines, o)
	}
	return a
}

func sideDTO(sp sidePlan) models.Side {
	s := sp.plan.Side
	dto := models.Side{
		Tag:     s.Tag,
		Start:   toPlan(s.PtA()),
		End:     toPlan(s.PtB()),
		Length:  s.Length(),
		AngleA:  s.AngleA,
		AngleB:  s.AngleB,
		Aligned: sp.plan.Aligned,
		EndL:    sp.plan.EndL,
		EndR:    sp.plan.EndR,
		Ranges:  []models.Range{},
	}
	if sp.err != nil {
		dto.Error = sp.err.Error()
	}
	for _, r := range sp.plan.Ranges {
		rd := models.Range{Kind: r.Kind.String(), Length: r.Length, Count: r.Count, Reused: r.Reused}
		if r.Invalid() {
			rd.Error = r.Err.Error()
		}
		dto.Ranges = append(dto.Ranges, rd)
	}
	return dto
}

// ============================================================
// Layout
// ============================================================

// LoadFamilies loads the symbol of every kind into doc with one attribute
// per schema parameter.
func LoadFamilies(doc *memhost.Document, kinds ...panel.Kind) {
	for _, k := range kinds {
		attrs := make([]memhost.AttrSpec, 0, len(k.Schema.Params))
		for _, d := range k.Schema.Params {
			attrs = append(attrs, familyAttr(d))
		}
		doc.LoadSymbol(k.Symbol, attrs...)
	}
}

func familyAttr(d param.Descriptor) memhost.AttrSpec {
	switch d.Kind {
	case param.KindInt:
		return memhost.Integer(d.Name, d.Default.Int())
	case param.KindID:
		return memhost.Ref(d.Name, d.Default.ElementID())
	case param.KindString:
		return memhost.Text(d.Name, d.Default.Str())
	}
	if d.ConvertUnit {
		return memhost.Length(d.Name, units.ToHostLength(d.Default.Real()))
	}
	return memhost.Number(d.Name, d.Default.Real())
}

// Layout places wall panels along every side of p into doc. Sides that
// failed to plan are skipped; panels that fail to place are counted in
// Skipped.
func (c *Converter) Layout(p *Plan, doc *memhost.Document) (models.Layout, []*panel.WallPanel, error) {
	kinds := panel.Kinds()
	if len(doc.Symbols()) == 0 {
		LoadFamilies(doc, kinds...)
	}
	symbols, err := panel.InitSymbols(doc, kinds...)
	if err != nil {
		return models.Layout{}, nil, err
	}

	col := entity.NewCollector()
	var placed []*panel.WallPanel
	for _, op := range c.plan(p) {
		for _, lp := range op.loops {
			for _, sp := range lp.sides {
				if sp.err != nil {
					continue
				}
				panels := panel.LayoutWall(sp.plan, c.opts.System, c.opts.Height, entity.WithCollector(col))
				placed = append(placed, panel.Entmake(panels, doc, symbols)...)
			}
		}
	}

	out := models.Layout{
		DocumentID: doc.ID(),
		Panels:     make([]models.Panel, 0, len(placed)),
		Skipped:    col.Len() - len(placed),
	}
	for _, w := range placed {
		out.Panels = append(out.Panels, panelDTO(w))
	}
	return out, placed, nil
}

func panelDTO(w *panel.WallPanel) models.Panel {
	dto := models.Panel{
		Number:   w.Number(),
		FullName: w.FullName(),
		Width:    w.Width(),
		Height:   w.Height(),
		Reused:   w.Reused(),
		Position: toPlan(w.Position),
		Rotation: roundMM(units.ToDisplayAngle(w.Rotation)),
	}
	if el := w.Element(); el != nil {
		dto.ID = int64(el.ID())
		dto.UniqueID = el.UniqueID()
	}
	for i, p := range w.Footprint().Corners() {
		dto.Corners[i] = toPlan3(p)
	}
	return dto
}

// PanelsOf reads the wall panels back from a stored document.
func PanelsOf(doc *memhost.Document) []models.Panel {
	out := []models.Panel{}
	for _, el := range doc.Elements() {
		sym, ok := el.Symbol()
		if !ok || sym != panel.WallPanelKind.Symbol {
			continue
		}
		out = append(out, panelDTO(panel.WallPanelFromElement(el)))
	}
	return out
}
