// Package memhost is an in-memory host document. It implements the host
// collaborators (elements, duplication, symbol placement, symbol catalog)
// for tests and for the plan service, which persists documents through the
// store package.
package memhost

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"formwork/internal/geom"
	"formwork/internal/host"
)

// ErrSymbolNotLoaded is returned by Place for symbols missing from the
// document.
var ErrSymbolNotLoaded = errors.New("family symbol not loaded")

// ErrForeignElement is returned when an element of another document is
// passed in.
var ErrForeignElement = errors.New("element does not belong to this document")

// ============================================================
// Records
// ============================================================

// SymbolRecord is a loaded symbol with the attributes its instances get.
type SymbolRecord struct {
	Symbol host.Symbol `json:"symbol"`
	Attrs  []AttrSpec  `json:"attrs"`
}

// ElementRecord is a detached snapshot of one element.
type ElementRecord struct {
	ID       host.ElementID `json:"id"`
	UniqueID string         `json:"uniqueId"`
	Category host.Category  `json:"category"`
	Symbol   *host.Symbol   `json:"symbol,omitempty"`
	Located  bool           `json:"located"`
	Position geom.XYZ       `json:"position"`
	Rotation float64        `json:"rotation"`
	Attrs    []AttrSpec     `json:"attrs"`
}

// ============================================================
// Document
// ============================================================

// Document owns a set of elements and loaded symbols.
type Document struct {
	mu       sync.RWMutex
	id       string
	nextID   host.ElementID
	elements map[host.ElementID]*Element
	symbols  []SymbolRecord
}

// New creates an empty document with a fresh id.
func New() *Document {
	return newDocument(uuid.NewString())
}

func newDocument(id string) *Document {
	return &Document{
		id:       id,
		nextID:   1,
		elements: make(map[host.ElementID]*Element),
	}
}

// ID returns the document id.
func (d *Document) ID() string {
	return d.id
}

// LoadSymbol makes sym placeable; its instances receive attrs.
func (d *Document) LoadSymbol(sym host.Symbol, attrs ...AttrSpec) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, s := range d.symbols {
		if s.Symbol == sym {
			d.symbols[i].Attrs = slices.Clone(attrs)
			return
		}
	}
	d.symbols = append(d.symbols, SymbolRecord{Symbol: sym, Attrs: slices.Clone(attrs)})
}

// Symbols implements host.SymbolCatalog.
func (d *Document) Symbols() []host.Symbol {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]host.Symbol, 0, len(d.symbols))
	for _, s := range d.symbols {
		out = append(out, s.Symbol)
	}
	return out
}

// SymbolRecords returns the loaded symbols with their attribute templates.
func (d *Document) SymbolRecords() []SymbolRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]SymbolRecord, 0, len(d.symbols))
	for _, s := range d.symbols {
		out = append(out, SymbolRecord{Symbol: s.Symbol, Attrs: slices.Clone(s.Attrs)})
	}
	return out
}

// AddElement creates an unplaced element of category cat.
func (d *Document) AddElement(cat host.Category, attrs ...AttrSpec) (*Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.addLocked(ElementRecord{Category: cat, Attrs: attrs})
}

// AddPlaced creates an element with a point location.
func (d *Document) AddPlaced(cat host.Category, at geom.XYZ, rotation float64, attrs ...AttrSpec) (*Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.addLocked(ElementRecord{Category: cat, Located: true, Position: at, Rotation: rotation, Attrs: attrs})
}

// Place implements host.Creator.
func (d *Document) Place(sym host.Symbol, at geom.XYZ, rotation float64) (host.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := slices.IndexFunc(d.symbols, func(s SymbolRecord) bool { return s.Symbol == sym })
	if idx < 0 {
		return nil, fmt.Errorf("place %s: %w", sym, ErrSymbolNotLoaded)
	}
	s := sym
	return d.addLocked(ElementRecord{
		Category: sym.Category,
		Symbol:   &s,
		Located:  true,
		Position: at,
		Rotation: rotation,
		Attrs:    d.symbols[idx].Attrs,
	})
}

// Duplicate implements host.Duplicator with an in-place copy.
func (d *Document) Duplicate(e host.Element) (host.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	src, ok := d.elements[e.ID()]
	if !ok || host.Element(src) != e {
		return nil, fmt.Errorf("duplicate %d: %w", e.ID(), ErrForeignElement)
	}
	rec := src.recordLocked()
	rec.ID = 0
	rec.UniqueID = ""
	return d.addLocked(rec)
}

// Remove implements host.Remover.
func (d *Document) Remove(e host.Element) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, ok := d.elements[e.ID()]
	if !ok || host.Element(cur) != e {
		return fmt.Errorf("remove %d: %w", e.ID(), ErrForeignElement)
	}
	delete(d.elements, e.ID())
	return nil
}

// Element returns the element with id.
func (d *Document) Element(id host.ElementID) (*Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.elements[id]
	return e, ok
}

// Elements returns all elements ordered by id.
func (d *Document) Elements() []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Element, 0, len(d.elements))
	for _, e := range d.elements {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Element) int { return int(a.id - b.id) })
	return out
}

// Len returns the number of elements.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.elements)
}

// Records snapshots every element ordered by id.
func (d *Document) Records() []ElementRecord {
	els := d.Elements()

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]ElementRecord, 0, len(els))
	for _, e := range els {
		out = append(out, e.recordLocked())
	}
	return out
}

// Restore rebuilds a document from persisted records, keeping ids.
func Restore(id string, symbols []SymbolRecord, records []ElementRecord) (*Document, error) {
	d := newDocument(id)
	for _, s := range symbols {
		d.LoadSymbol(s.Symbol, s.Attrs...)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, rec := range records {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("restore element: invalid id %d", rec.ID)
		}
		if _, dup := d.elements[rec.ID]; dup {
			return nil, fmt.Errorf("restore element: duplicate id %d", rec.ID)
		}
		if _, err := d.addLocked(rec); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// addLocked inserts an element built from rec. A zero rec.ID takes the next
// free id and an empty UniqueID gets a new uuid.
func (d *Document) addLocked(rec ElementRecord) (*Element, error) {
	if rec.ID == 0 {
		rec.ID = d.nextID
	}
	if rec.ID >= d.nextID {
		d.nextID = rec.ID + 1
	}
	if rec.UniqueID == "" {
		rec.UniqueID = uuid.NewString()
	}

	e := &Element{
		doc:      d,
		id:       rec.ID,
		uniqueID: rec.UniqueID,
		category: rec.Category,
		located:  rec.Located,
		position: rec.Position,
		rotation: rec.Rotation,
		index:    make(map[string]int, len(rec.Attrs)),
	}
	if rec.Symbol != nil {
		s := *rec.Symbol
		e.symbol = &s
	}
	for _, spec := range rec.Attrs {
		if _, dup := e.index[spec.Name]; dup {
			return nil, fmt.Errorf("element %d: duplicate attribute %q", rec.ID, spec.Name)
		}
		a, err := newAttribute(d, spec)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", rec.ID, err)
		}
		e.index[spec.Name] = len(e.attrs)
		e.attrs = append(e.attrs, a)
	}
	d.elements[e.id] = e
	return e, nil
}
