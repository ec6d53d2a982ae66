package param

import (
	"fmt"
	"strconv"

	"formwork/internal/host"
)

// ============================================================
// Kind & Value
// ============================================================

// Kind is the value type of a parameter.
type Kind int

const (
	KindInt Kind = iota
	KindID
	KindString
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindID:
		return "id"
	case KindString:
		return "string"
	case KindReal:
		return "real"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindInt && k <= KindReal
}

// storage maps a parameter kind to the host storage it reads and writes.
func (k Kind) storage() host.StorageKind {
	switch k {
	case KindID:
		return host.StorageID
	case KindString:
		return host.StorageString
	case KindReal:
		return host.StorageFloat
	}
	return host.StorageInt
}

// Value is a tagged parameter value. Only the field matching Kind is used.
type Value struct {
	kind Kind
	i    int
	id   host.ElementID
	s    string
	f    float64
}

func IntValue(v int) Value                { return Value{kind: KindInt, i: v} }
func IDValue(v host.ElementID) Value      { return Value{kind: KindID, id: v} }
func StringValue(v string) Value          { return Value{kind: KindString, s: v} }
func RealValue(v float64) Value           { return Value{kind: KindReal, f: v} }
func (v Value) Kind() Kind                { return v.kind }
func (v Value) Int() int                  { return v.i }
func (v Value) ElementID() host.ElementID { return v.id }
func (v Value) Str() string               { return v.s }
func (v Value) Real() float64             { return v.f }

// Zero returns the zero value of kind k.
func Zero(k Kind) Value {
	if k == KindID {
		return IDValue(host.InvalidElementID)
	}
	return Value{kind: k}
}

// Any returns the value as an interface holding int, host.ElementID, string
// or float64.
func (v Value) Any() any {
	switch v.kind {
	case KindID:
		return v.id
	case KindString:
		return v.s
	case KindReal:
		return v.f
	}
	return v.i
}

func (v Value) String() string {
	switch v.kind {
	case KindID:
		return strconv.FormatInt(int64(v.id), 10)
	case KindString:
		return v.s
	case KindReal:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	}
	return strconv.Itoa(v.i)
}
