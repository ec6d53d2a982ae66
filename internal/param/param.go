// Package param binds typed in-memory values to named attributes of a host
// element and converts real values between host and display units.
package param

import (
	"errors"
	"fmt"
	"math"

	"formwork/internal/host"
	"formwork/internal/units"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrUnbound is returned when a parameter has no host attribute.
	ErrUnbound = errors.New("parameter is not bound to a host attribute")
	// ErrKindMismatch is returned when a value of the wrong kind is set.
	ErrKindMismatch = errors.New("parameter kind mismatch")
)

// UnboundError names the parameter whose attribute is missing on the host.
type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Name, ErrUnbound)
}

func (e *UnboundError) Unwrap() error { return ErrUnbound }

// ============================================================
// Descriptor
// ============================================================

// Descriptor declares one parameter of an entity kind.
type Descriptor struct {
	Name        string
	Kind        Kind
	ConvertUnit bool
	Default     Value
}

func Int(name string, def int) Descriptor {
	return Descriptor{Name: name, Kind: KindInt, Default: IntValue(def)}
}

func ID(name string, def host.ElementID) Descriptor {
	return Descriptor{Name: name, Kind: KindID, Default: IDValue(def)}
}

func String(name, def string) Descriptor {
	return Descriptor{Name: name, Kind: KindString, Default: StringValue(def)}
}

// Real declares a real parameter converted between host and display units.
func Real(name string, def float64) Descriptor {
	return Descriptor{Name: name, Kind: KindReal, ConvertUnit: true, Default: RealValue(def)}
}

// RawReal declares a real parameter exchanged with the host unconverted.
func RawReal(name string, def float64) Descriptor {
	return Descriptor{Name: name, Kind: KindReal, Default: RealValue(def)}
}

// ============================================================
// Conversion table
// ============================================================

type conversion struct {
	toDisplay func(float64) float64
	toHost    func(float64) float64
}

var conversions = map[host.PhysicalKind]conversion{
	host.PhysicalAngle: {
		toDisplay: func(v float64) float64 { return math.Mod(round3(units.ToDisplayAngle(v)), 360) },
		toHost:    units.ToHostAngle,
	},
	host.PhysicalLength: {
		toDisplay: func(v float64) float64 { return round3(units.ToDisplayLength(v)) },
		toHost:    units.ToHostLength,
	},
	host.PhysicalArea: {
		toDisplay: func(v float64) float64 { return round3(units.ToDisplayArea(v)) },
		toHost:    units.ToHostArea,
	},
	host.PhysicalVolume: {
		toDisplay: func(v float64) float64 { return round3(units.ToDisplayVolume(v)) },
		toHost:    units.ToHostVolume,
	},
}

func round3(v float64) float64 {
	return math.RoundToEven(v*1000) / 1000
}

// ============================================================
// Param
// ============================================================

// Owner supplies the element a parameter binds to lazily on Write.
type Owner interface {
	Element() host.Element
}

// Param is a typed value owned by one entity and optionally bound to a host
// attribute of the same name.
type Param struct {
	desc  Descriptor
	value Value
	owner Owner
	attr  host.Attribute
}

// New creates a parameter holding the descriptor's default. owner may be nil.
func New(d Descriptor, owner Owner) *Param {
	v := d.Default
	if v.Kind() != d.Kind {
		v = Zero(d.Kind)
	}
	return &Param{desc: d, value: v, owner: owner}
}

func (p *Param) Name() string           { return p.desc.Name }
func (p *Param) Kind() Kind             { return p.desc.Kind }
func (p *Param) Descriptor() Descriptor { return p.desc }
func (p *Param) Bound() bool            { return p.attr != nil }

// Attribute returns the bound host attribute, or nil.
func (p *Param) Attribute() host.Attribute { return p.attr }

// Bind looks up the like-named attribute on el and keeps it. Binding again
// to the same attribute is a no-op.
func (p *Param) Bind(el host.Element) error {
	if el == nil {
		return &UnboundError{Name: p.desc.Name}
	}
	a, ok := el.Lookup(p.desc.Name)
	if !ok {
		return &UnboundError{Name: p.desc.Name}
	}
	if p.attr == a {
		return nil
	}
	p.attr = a
	return nil
}

// Unbind drops the attribute binding and keeps the value.
func (p *Param) Unbind() { p.attr = nil }

// Pull reads the bound attribute into the in-memory value.
func (p *Param) Pull() error {
	if p.attr == nil {
		return &UnboundError{Name: p.desc.Name}
	}
	if err := p.checkStorage(); err != nil {
		return err
	}
	switch p.desc.Kind {
	case KindInt:
		p.value = IntValue(p.attr.Int())
	case KindID:
		p.value = IDValue(p.attr.ElementID())
	case KindString:
		p.value = StringValue(p.attr.Str())
	case KindReal:
		v := p.attr.Float()
		if p.desc.ConvertUnit {
			if c, ok := conversions[p.attr.Physical()]; ok {
				v = c.toDisplay(v)
			}
		}
		p.value = RealValue(v)
	}
	return nil
}

// Write pushes the in-memory value to the host attribute, binding through
// the owner first if needed. Read-only attributes are skipped silently.
func (p *Param) Write() error {
	if p.attr == nil {
		var el host.Element
		if p.owner != nil {
			el = p.owner.Element()
		}
		if err := p.Bind(el); err != nil {
			return err
		}
	}
	if p.attr.ReadOnly() {
		return nil
	}
	if err := p.checkStorage(); err != nil {
		return err
	}

	var err error
	switch p.desc.Kind {
	case KindInt:
		err = p.attr.SetInt(p.value.Int())
	case KindID:
		err = p.attr.SetElementID(p.value.ElementID())
	case KindString:
		err = p.attr.SetStr(p.value.Str())
	case KindReal:
		v := p.value.Real()
		if p.desc.ConvertUnit {
			if c, ok := conversions[p.attr.Physical()]; ok {
				v = c.toHost(v)
			}
		}
		err = p.attr.SetFloat(v)
	}
	if err != nil {
		return fmt.Errorf("write parameter %q: %w", p.desc.Name, err)
	}
	return nil
}

func (p *Param) checkStorage() error {
	if p.attr.Storage() != p.desc.Kind.storage() {
		return fmt.Errorf("parameter %q (%s): %w", p.desc.Name, p.desc.Kind, host.ErrStorage)
	}
	return nil
}

// ============================================================
// Value access
// ============================================================

func (p *Param) Value() Value { return p.value }

// Set replaces the value; v must have the parameter's kind.
func (p *Param) Set(v Value) error {
	if v.Kind() != p.desc.Kind {
		return fmt.Errorf("parameter %q is %s, got %s: %w", p.desc.Name, p.desc.Kind, v.Kind(), ErrKindMismatch)
	}
	p.value = v
	return nil
}

func (p *Param) Int() int                  { return p.value.Int() }
func (p *Param) ElementID() host.ElementID { return p.value.ElementID() }
func (p *Param) Str() string               { return p.value.Str() }
func (p *Param) Real() float64             { return p.value.Real() }

func (p *Param) SetInt(v int) error                  { return p.Set(IntValue(v)) }
func (p *Param) SetElementID(v host.ElementID) error { return p.Set(IDValue(v)) }
func (p *Param) SetStr(v string) error               { return p.Set(StringValue(v)) }
func (p *Param) SetReal(v float64) error             { return p.Set(RealValue(v)) }
