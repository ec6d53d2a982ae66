package memhost

import (
	"fmt"

	"formwork/internal/host"
)

// ============================================================
// Attribute
// ============================================================

// AttrSpec declares an attribute and its initial value. Value must hold an
// int, host.ElementID, string or float64 matching Storage; nil means zero.
type AttrSpec struct {
	Name     string            `json:"name"`
	Physical host.PhysicalKind `json:"physical"`
	Storage  host.StorageKind  `json:"storage"`
	ReadOnly bool              `json:"readOnly,omitempty"`
	Value    any               `json:"value"`
}

// Length declares a writable length attribute holding feet.
func Length(name string, feet float64) AttrSpec {
	return AttrSpec{Name: name, Physical: host.PhysicalLength, Storage: host.StorageFloat, Value: feet}
}

// Angle declares a writable angle attribute holding radians.
func Angle(name string, rad float64) AttrSpec {
	return AttrSpec{Name: name, Physical: host.PhysicalAngle, Storage: host.StorageFloat, Value: rad}
}

// Number declares a writable dimensionless real attribute.
func Number(name string, v float64) AttrSpec {
	return AttrSpec{Name: name, Storage: host.StorageFloat, Value: v}
}

// Integer declares a writable integer attribute.
func Integer(name string, v int) AttrSpec {
	return AttrSpec{Name: name, Storage: host.StorageInt, Value: v}
}

// Text declares a writable string attribute.
func Text(name, v string) AttrSpec {
	return AttrSpec{Name: name, Storage: host.StorageString, Value: v}
}

// Ref declares a writable element-id attribute.
func Ref(name string, v host.ElementID) AttrSpec {
	return AttrSpec{Name: name, Storage: host.StorageID, Value: v}
}

// Attribute is an in-memory host attribute. Access goes through the owning
// document's lock.
type Attribute struct {
	doc  *Document
	spec AttrSpec
	i    int
	id   host.ElementID
	s    string
	f    float64
}

func newAttribute(doc *Document, spec AttrSpec) (*Attribute, error) {
	a := &Attribute{doc: doc, spec: spec, id: host.InvalidElementID}
	if spec.Value == nil {
		return a, nil
	}

	// Values restored from JSON arrive as float64 whatever the storage.
	ok := true
	switch spec.Storage {
	case host.StorageInt:
		var n float64
		n, ok = number(spec.Value)
		a.i = int(n)
	case host.StorageID:
		var n float64
		n, ok = number(spec.Value)
		a.id = host.ElementID(n)
	case host.StorageString:
		a.s, ok = spec.Value.(string)
	case host.StorageFloat:
		a.f, ok = number(spec.Value)
	default:
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("attribute %q: value %T: %w", spec.Name, spec.Value, host.ErrStorage)
	}
	a.spec.Value = nil
	return a, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case host.ElementID:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func (a *Attribute) Name() string                { return a.spec.Name }
func (a *Attribute) Physical() host.PhysicalKind { return a.spec.Physical }
func (a *Attribute) Storage() host.StorageKind   { return a.spec.Storage }
func (a *Attribute) ReadOnly() bool              { return a.spec.ReadOnly }

func (a *Attribute) Int() int {
	a.doc.mu.RLock()
	defer a.doc.mu.RUnlock()
	return a.i
}

func (a *Attribute) ElementID() host.ElementID {
	a.doc.mu.RLock()
	defer a.doc.mu.RUnlock()
	return a.id
}

func (a *Attribute) Str() string {
	a.doc.mu.RLock()
	defer a.doc.mu.RUnlock()
	return a.s
}

func (a *Attribute) Float() float64 {
	a.doc.mu.RLock()
	defer a.doc.mu.RUnlock()
	return a.f
}

func (a *Attribute) SetInt(v int) error {
	return a.set(host.StorageInt, func() { a.i = v })
}

func (a *Attribute) SetElementID(v host.ElementID) error {
	return a.set(host.StorageID, func() { a.id = v })
}

func (a *Attribute) SetStr(v string) error {
	return a.set(host.StorageString, func() { a.s = v })
}

func (a *Attribute) SetFloat(v float64) error {
	return a.set(host.StorageFloat, func() { a.f = v })
}

func (a *Attribute) set(kind host.StorageKind, assign func()) error {
	if a.spec.ReadOnly {
		return fmt.Errorf("attribute %q: %w", a.spec.Name, host.ErrReadOnly)
	}
	if kind != a.spec.Storage {
		return fmt.Errorf("attribute %q: %w", a.spec.Name, host.ErrStorage)
	}
	a.doc.mu.Lock()
	defer a.doc.mu.Unlock()
	assign()
	return nil
}

// Value returns the current value as int, host.ElementID, string or float64.
func (a *Attribute) Value() any {
	a.doc.mu.RLock()
	defer a.doc.mu.RUnlock()
	return a.valueLocked()
}

func (a *Attribute) valueLocked() any {
	switch a.spec.Storage {
	case host.StorageID:
		return a.id
	case host.StorageString:
		return a.s
	case host.StorageFloat:
		return a.f
	}
	return a.i
}

// Spec returns the declaration with the current value.
func (a *Attribute) Spec() AttrSpec {
	a.doc.mu.RLock()
	defer a.doc.mu.RUnlock()
	return a.specLocked()
}

func (a *Attribute) specLocked() AttrSpec {
	s := a.spec
	s.Value = a.valueLocked()
	return s
}
