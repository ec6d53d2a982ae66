package memhost

import (
	"formwork/internal/geom"
	"formwork/internal/host"
)

// ============================================================
// Element
// ============================================================

// Element is an in-memory host element.
type Element struct {
	doc      *Document
	id       host.ElementID
	uniqueID string
	category host.Category
	symbol   *host.Symbol
	located  bool
	position geom.XYZ
	rotation float64
	attrs    []*Attribute
	index    map[string]int
}

func (e *Element) ID() host.ElementID      { return e.id }
func (e *Element) UniqueID() string        { return e.uniqueID }
func (e *Element) Category() host.Category { return e.category }

// Lookup implements host.Element.
func (e *Element) Lookup(name string) (host.Attribute, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return e.attrs[i], true
}

// Attribute returns the concrete attribute with name.
func (e *Element) Attribute(name string) (*Attribute, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return e.attrs[i], true
}

// Attributes returns the attributes in declaration order.
func (e *Element) Attributes() []*Attribute {
	out := make([]*Attribute, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Symbol returns the placed symbol, if any.
func (e *Element) Symbol() (host.Symbol, bool) {
	if e.symbol == nil {
		return host.Symbol{}, false
	}
	return *e.symbol, true
}

// Location implements host.Locator.
func (e *Element) Location() (geom.XYZ, float64, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.position, e.rotation, e.located
}

// Move translates a located element by v.
func (e *Element) Move(v geom.XYZ) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.position = e.position.Add(v)
}

// Record snapshots the element.
func (e *Element) Record() ElementRecord {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.recordLocked()
}

func (e *Element) recordLocked() ElementRecord {
	rec := ElementRecord{
		ID:       e.id,
		UniqueID: e.uniqueID,
		Category: e.category,
		Located:  e.located,
		Position: e.position,
		Rotation: e.rotation,
		Attrs:    make([]AttrSpec, 0, len(e.attrs)),
	}
	if e.symbol != nil {
		s := *e.symbol
		rec.Symbol = &s
	}
	for _, a := range e.attrs {
		rec.Attrs = append(rec.Attrs, a.specLocked())
	}
	return rec
}
