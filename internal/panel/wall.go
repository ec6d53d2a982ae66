package panel

import (
	"formwork/internal/entity"
	"formwork/internal/geom"
	"formwork/internal/host"
	"formwork/internal/param"
)

// Wall panel parameter names, in millimetres.
const (
	ParamWidth  = "panel width"
	ParamHeight = "panel height"
)

// WallPanelKind is the vertical wall panel.
var WallPanelKind = Kind{
	Schema: FrameSchema.Extend("wall-panel-vertical",
		param.Real(ParamWidth, 0),
		param.Real(ParamHeight, 0),
	),
	Symbol: NewSymbol(host.CategoryGenericModel, "W Panel Vertical", ""),
}

// ============================================================
// Wall Panel
// ============================================================

// WallPanel is a vertical wall formwork panel.
type WallPanel struct {
	*Frame
}

// NewWallPanel builds a detached panel at pos, rotated about the vertical
// axis, with the given size in millimetres.
func NewWallPanel(pos geom.XYZ, rotation, widthMM, heightMM float64, opts ...entity.Option) *WallPanel {
	w := &WallPanel{Frame: NewFrame(WallPanelKind, nil, opts...)}
	w.Collect(w)
	w.Position = pos
	w.Rotation = rotation
	w.SetWidth(widthMM)
	w.SetHeight(heightMM)
	return w
}

// WallPanelFromElement reads an existing wall panel instance.
func WallPanelFromElement(el host.Element, opts ...entity.Option) *WallPanel {
	w := &WallPanel{Frame: NewFrame(WallPanelKind, el, opts...)}
	w.Collect(w)
	return w
}

func (w *WallPanel) Width() float64  { return w.MustParam(ParamWidth).Real() }
func (w *WallPanel) Height() float64 { return w.MustParam(ParamHeight).Real() }

func (w *WallPanel) SetWidth(mm float64)  { _ = w.MustParam(ParamWidth).SetReal(mm) }
func (w *WallPanel) SetHeight(mm float64) { _ = w.MustParam(ParamHeight).SetReal(mm) }

// Footprint returns the panel face as a rectangle: width along the panel's
// local X after rotation, height up the vertical axis.
func (w *WallPanel) Footprint() geom.Rect {
	r := geom.NewRect(w.Width(), w.Height())
	r.DirY, r.DirZ = geom.BasisZ, geom.BasisY.Neg()
	r.TransformBy(geom.RotationZ(w.Rotation, geom.Zero))
	r.TransformBy(geom.Translation(w.Position))
	return r
}

// ============================================================
// Registration
// ============================================================

// Register adds every placeable panel kind to reg.
func Register(reg *entity.Registry) {
	reg.Register(FrameKind.Name(), func(el host.Element, opts ...entity.Option) entity.Instance {
		return NewFrame(FrameKind, el, opts...)
	})
	reg.Register(WallPanelKind.Name(), func(el host.Element, opts ...entity.Option) entity.Instance {
		return WallPanelFromElement(el, opts...)
	})
}

// Kinds lists the placeable panel kinds.
func Kinds() []Kind {
	return []Kind{WallPanelKind}
}
