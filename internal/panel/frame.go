package panel

import (
	"errors"
	"fmt"

	"formwork/internal/entity"
	"formwork/internal/fault"
	"formwork/internal/geom"
	"formwork/internal/host"
	"formwork/internal/param"
)

// Parameter names shared by every frame kind.
const (
	ParamFullName = "full name"
	ParamNumber   = "position number"
	ParamLayer    = "layer"
	ParamReused   = "reused"
)

// FrameSchema declares the parameters common to every frame kind.
var FrameSchema = entity.Schema{
	Kind: "frame",
	Params: []param.Descriptor{
		param.String(ParamFullName, ""),
		param.String(ParamNumber, ""),
		param.Int(ParamLayer, 0),
		param.Int(ParamReused, 0),
	},
}

// FrameKind reads existing frame instances; it has no symbol of its own.
var FrameKind = Kind{Schema: FrameSchema}

// ErrNotPlaceable is recorded when a kind without a symbol is placed.
var ErrNotPlaceable = errors.New("kind declares no family symbol")

// ============================================================
// Frame
// ============================================================

// Frame is a point-placed panel instance.
type Frame struct {
	*entity.Entity

	kind     Kind
	Position geom.XYZ
	Rotation float64
}

// Framed is implemented by every panel kind embedding *Frame.
type Framed interface {
	entity.Instance
	AsFrame() *Frame
}

// NewFrame constructs a frame of kind from el, or a detached frame when el
// is nil. Position and rotation come from the element's location.
func NewFrame(kind Kind, el host.Element, opts ...entity.Option) *Frame {
	f := &Frame{Entity: entity.New(kind.Schema, el, opts...), kind: kind}
	if loc, ok := el.(host.Locator); ok {
		if pt, rot, located := loc.Location(); located {
			f.Position, f.Rotation = pt, rot
		}
	}
	f.Collect(f)
	return f
}

func (f *Frame) AsFrame() *Frame { return f }
func (f *Frame) PanelKind() Kind { return f.kind }

func (f *Frame) FullName() string { return f.MustParam(ParamFullName).Str() }
func (f *Frame) Number() string   { return f.MustParam(ParamNumber).Str() }
func (f *Frame) Layer() int       { return f.MustParam(ParamLayer).Int() }
func (f *Frame) Reused() bool     { return f.MustParam(ParamReused).Int() != 0 }

func (f *Frame) SetFullName(v string) { _ = f.MustParam(ParamFullName).SetStr(v) }
func (f *Frame) SetNumber(v string)   { _ = f.MustParam(ParamNumber).SetStr(v) }
func (f *Frame) SetLayer(v int)       { _ = f.MustParam(ParamLayer).SetInt(v) }

func (f *Frame) SetReused(v bool) {
	n := 0
	if v {
		n = 1
	}
	_ = f.MustParam(ParamReused).SetInt(n)
}

// Entmake places a new instance of the frame's symbol through creator,
// rotated by Rotation and moved to Position, binds the frame to it and
// writes every parameter. Failures are recorded on the frame's status and
// returned. When anything fails after placement and creator is a
// host.Remover, the placed element is removed again and the frame detached,
// so a failed frame leaves nothing behind in the document.
func (f *Frame) Entmake(creator host.Creator, symbols *Symbols) error {
	if f.Invalid() {
		return fmt.Errorf("entmake %s: %w", f.Kind(), f.Err)
	}
	if !f.kind.Placeable() {
		err := &entity.DeclarationError{Kind: f.Kind(), Reason: ErrNotPlaceable.Error()}
		f.Fail(fault.CodeDeclaration, err)
		return err
	}
	sym, ok := symbols.Lookup(f.Kind())
	if !ok {
		err := &SymbolError{Kind: f.Kind(), Symbol: f.kind.Symbol}
		f.Fail(fault.CodeSymbolMissing, err)
		return err
	}

	el, err := creator.Place(sym, f.Position, f.Rotation)
	if err != nil {
		err = fmt.Errorf("entmake %s: %w", f.Kind(), err)
		f.Fail(fault.CodeHost, err)
		return err
	}

	if err := f.fill(el); err != nil {
		err = fmt.Errorf("entmake %s: %w", f.Kind(), err)
		f.Fail(fault.CodeHost, err)
		if rm, ok := creator.(host.Remover); ok {
			if rmErr := rm.Remove(el); rmErr == nil {
				f.Detach()
			}
		}
		return err
	}
	return nil
}

// fill binds the frame to a freshly placed el and writes its values over
// the host defaults.
func (f *Frame) fill(el host.Element) error {
	// Bind would pull host defaults over the in-memory values.
	values := entity.New(f.Schema(), nil)
	if err := entity.CopyValues(values, f.Entity); err != nil {
		return err
	}
	bindErr := f.Bind(el)
	if err := entity.CopyValues(f.Entity, values); err != nil {
		return err
	}
	if bindErr != nil {
		return bindErr
	}
	return f.WriteAll()
}

// CloneFrame clones src through reg and dup and carries its position and
// rotation across.
func CloneFrame(reg *entity.Registry, src Framed, dup host.Duplicator, opts ...entity.Option) (Framed, error) {
	inst, err := reg.Clone(src, dup, opts...)
	if err != nil {
		return nil, err
	}
	out, ok := inst.(Framed)
	if !ok {
		return nil, &entity.DeclarationError{Kind: src.Base().Kind(), Reason: "constructor does not build a frame"}
	}
	out.AsFrame().Position = src.AsFrame().Position
	out.AsFrame().Rotation = src.AsFrame().Rotation
	return out, nil
}
