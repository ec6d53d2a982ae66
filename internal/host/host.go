// Package host declares the collaborators the formwork core needs from a
// CAD host: elements with named attributes, element duplication, symbol
// placement and the catalog of loaded family symbols.
package host

import (
	"errors"
	"fmt"

	"formwork/internal/geom"
)

// ============================================================
// Identifiers
// ============================================================

// ElementID identifies an element inside one host document.
type ElementID int64

// InvalidElementID is the id of no element.
const InvalidElementID ElementID = -1

// Category is the host's built-in category of an element.
type Category int

const (
	CategoryNone         Category = 0
	CategoryGenericModel Category = 2000151
	CategoryWalls        Category = 2000011
	CategoryFloors       Category = 2000032
	CategoryGrids        Category = 2000220
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryGenericModel:
		return "generic-model"
	case CategoryWalls:
		return "walls"
	case CategoryFloors:
		return "floors"
	case CategoryGrids:
		return "grids"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// PhysicalKind is the declared physical quantity of an attribute. It selects
// the unit conversion applied when a real value crosses the host boundary.
type PhysicalKind int

const (
	PhysicalNone PhysicalKind = iota
	PhysicalAngle
	PhysicalLength
	PhysicalArea
	PhysicalVolume
)

func (k PhysicalKind) String() string {
	switch k {
	case PhysicalAngle:
		return "angle"
	case PhysicalLength:
		return "length"
	case PhysicalArea:
		return "area"
	case PhysicalVolume:
		return "volume"
	}
	return "none"
}

// StorageKind is the value type an attribute stores.
type StorageKind int

const (
	StorageInt StorageKind = iota
	StorageID
	StorageString
	StorageFloat
)

// ErrReadOnly is returned by setters of read-only attributes.
var ErrReadOnly = errors.New("attribute is read-only")

// ErrStorage is returned when a getter or setter does not match the
// attribute's storage kind.
var ErrStorage = errors.New("attribute storage mismatch")

// ============================================================
// Host Element Provider
// ============================================================

// Attribute is a named, typed value on a host element.
type Attribute interface {
	Name() string
	Physical() PhysicalKind
	Storage() StorageKind
	ReadOnly() bool

	Int() int
	ElementID() ElementID
	Str() string
	Float() float64

	SetInt(v int) error
	SetElementID(v ElementID) error
	SetStr(v string) error
	SetFloat(v float64) error
}

// Element is a host element that exposes attributes by name.
type Element interface {
	ID() ElementID
	UniqueID() string
	Category() Category
	// Lookup returns the attribute with the given name, or false when the
	// element does not declare it.
	Lookup(name string) (Attribute, bool)
}

// Locator is implemented by point-placed elements.
type Locator interface {
	// Location returns the insertion point and the rotation in radians about
	// the vertical axis. ok is false for elements without a point location.
	Location() (pt geom.XYZ, rotation float64, ok bool)
}

// ============================================================
// Host services
// ============================================================

// Duplicator produces an unassociated in-place copy of an element.
type Duplicator interface {
	Duplicate(e Element) (Element, error)
}

// Symbol names a loadable family symbol.
type Symbol struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Family   string   `json:"family"`
}

func (s Symbol) String() string {
	return s.Family + "-" + s.Name
}

// SymbolCatalog lists the family symbols loaded in a document.
type SymbolCatalog interface {
	Symbols() []Symbol
}

// Creator places a new instance of a loaded symbol.
type Creator interface {
	// Place creates an instance at the world origin, rotates it by rotation
	// radians about the vertical axis and moves it to at.
	Place(sym Symbol, at geom.XYZ, rotation float64) (Element, error)
}

// Remover deletes an element from its document.
type Remover interface {
	Remove(e Element) error
}
