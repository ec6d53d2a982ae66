package entity

import (
	"errors"
	"fmt"

	"formwork/internal/fault"
	"formwork/internal/host"
	"formwork/internal/param"
)

// ============================================================
// Entity
// ============================================================

// Instance is implemented by every concrete entity kind embedding *Entity.
type Instance interface {
	Base() *Entity
}

// Option configures entity construction.
type Option func(*options)

type options struct {
	collector *Collector
}

// WithCollector appends the new entity to c when c is enabled.
func WithCollector(c *Collector) Option {
	return func(o *options) { o.collector = c }
}

// Entity is a set of typed parameters, optionally bound to a host element.
type Entity struct {
	fault.Status

	schema Schema
	params []*param.Param
	index  map[string]int
	el     host.Element

	collector *Collector
}

// New constructs an entity of schema. With a nil el the entity is detached
// and keeps the declared defaults; otherwise it binds and pulls every
// parameter. Failures are recorded on the entity's status, never returned.
func New(schema Schema, el host.Element, opts ...Option) *Entity {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &Entity{
		schema: schema,
		params: make([]*param.Param, 0, len(schema.Params)),
		index:  make(map[string]int, len(schema.Params)),
	}
	if err := schema.Validate(); err != nil {
		e.Fail(fault.CodeDeclaration, err)
	} else {
		for i, d := range schema.Params {
			e.params = append(e.params, param.New(d, e))
			e.index[d.Name] = i
		}
		if el != nil {
			_ = e.Bind(el)
		}
	}

	if o.collector != nil {
		e.collector = o.collector
		o.collector.Add(e)
	}
	return e
}

// Collect makes inst, the concrete kind embedding e, the item its
// collector holds in place of e. Kinds call it at the end of their
// constructor; without a collector it does nothing.
func (e *Entity) Collect(inst Instance) {
	if e.collector != nil && inst.Base() == e {
		e.collector.replace(inst)
	}
}

// Base implements Instance.
func (e *Entity) Base() *Entity { return e }

func (e *Entity) Kind() string   { return e.schema.Kind }
func (e *Entity) Schema() Schema { return e.schema }
func (e *Entity) Bound() bool    { return e.el != nil }

// Element returns the bound host element, or nil when detached.
func (e *Entity) Element() host.Element { return e.el }

// Bind attaches el and pulls every parameter from it. It is the only
// transition from detached to bound; binding again to the same element
// re-pulls, binding to another element fails with ErrAlreadyBound.
//
// Parameters without a like-named attribute keep their values and mark the
// entity with CodeUnboundParameter. The returned error joins every failure.
func (e *Entity) Bind(el host.Element) error {
	if el == nil {
		return fmt.Errorf("bind %s: %w", e.schema.Kind, ErrNotBound)
	}
	if e.el != nil && e.el != el {
		return fmt.Errorf("bind %s to element %d: %w", e.schema.Kind, el.ID(), ErrAlreadyBound)
	}
	e.el = el

	var errs []error
	for _, p := range e.params {
		if err := e.pull(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Detach drops the element and every parameter binding, keeping values and
// the fault status. It undoes Bind for an element the host no longer holds.
func (e *Entity) Detach() {
	e.el = nil
	for _, p := range e.params {
		p.Unbind()
	}
}

func (e *Entity) pull(p *param.Param) error {
	err := p.Bind(e.el)
	if err == nil {
		err = p.Pull()
	}
	if err == nil {
		return nil
	}

	var unbound *param.UnboundError
	if errors.As(err, &unbound) {
		e.Fail(fault.CodeUnboundParameter, err)
	} else {
		e.Fail(fault.CodeHost, err)
	}
	return err
}

// Param returns the parameter declared as name.
func (e *Entity) Param(name string) (*param.Param, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return e.params[i], true
}

// MustParam is Param for names the caller's schema declares.
func (e *Entity) MustParam(name string) *param.Param {
	p, ok := e.Param(name)
	if !ok {
		panic(fmt.Sprintf("entity kind %q declares no parameter %q", e.schema.Kind, name))
	}
	return p
}

// Params returns the parameters in declaration order.
func (e *Entity) Params() []*param.Param {
	out := make([]*param.Param, len(e.params))
	copy(out, e.params)
	return out
}

// Values returns the current values in declaration order.
func (e *Entity) Values() []param.Value {
	out := make([]param.Value, len(e.params))
	for i, p := range e.params {
		out[i] = p.Value()
	}
	return out
}

// WriteAll pushes every parameter to the host in declaration order. It is a
// no-op for detached entities.
func (e *Entity) WriteAll() error {
	if e.el == nil {
		return nil
	}
	var errs []error
	for _, p := range e.params {
		if err := p.Write(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("write %s %d: %w", e.schema.Kind, e.el.ID(), err)
	}
	return nil
}

// CopyValues copies every value of src into the like-named parameter of dst.
// Parameters dst does not declare are skipped; a parameter declared with a
// different kind is an error.
func CopyValues(dst, src *Entity) error {
	var errs []error
	for _, sp := range src.params {
		dp, ok := dst.Param(sp.Name())
		if !ok {
			continue
		}
		if err := dp.Set(sp.Value()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
