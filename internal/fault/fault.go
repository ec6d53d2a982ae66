// Package fault records non-fatal failures on domain objects.
//
// A Status is embedded in entities, boundary sides and cut ranges. Code 0
// means the object is valid; any other code, or a non-nil Err, marks it
// invalid without unwinding the caller. Batches drop invalid members with
// ClearInvalid.
package fault

import "fmt"

// Code classifies why an object became invalid.
type Code int

const (
	OK Code = 0

	// CodeDeclaration marks a kind whose static declaration is unusable:
	// a missing constructor, a duplicate parameter name or a missing symbol.
	CodeDeclaration Code = -1
	// CodeUnboundParameter marks a declared parameter with no host attribute.
	CodeUnboundParameter Code = -2
	// CodeSymbolMissing marks a panel kind whose family symbol is not loaded.
	CodeSymbolMissing Code = -3
	// CodeHost marks a failure reported by the host collaborator.
	CodeHost Code = -4
	// CodeGeometry marks degenerate geometry such as a zero-length side.
	CodeGeometry Code = -5
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case CodeDeclaration:
		return "declaration"
	case CodeUnboundParameter:
		return "unbound parameter"
	case CodeSymbolMissing:
		return "symbol missing"
	case CodeHost:
		return "host"
	case CodeGeometry:
		return "geometry"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Status is the {code, detail} pair attached to a domain object.
type Status struct {
	Code Code
	Err  error
}

// Fail marks the status invalid. The first failure wins so the earliest
// cause stays visible.
func (s *Status) Fail(code Code, err error) {
	if s.Invalid() {
		return
	}
	s.Code = code
	s.Err = err
}

// Invalid reports whether a failure has been recorded.
func (s *Status) Invalid() bool {
	return s.Code != OK || s.Err != nil
}

// Reset clears the recorded failure.
func (s *Status) Reset() {
	s.Code = OK
	s.Err = nil
}

// Fault returns the status itself so embedding types satisfy Faulty.
func (s *Status) Fault() *Status {
	return s
}

func (s *Status) String() string {
	if !s.Invalid() {
		return OK.String()
	}
	if s.Err == nil {
		return s.Code.String()
	}
	return fmt.Sprintf("%s: %v", s.Code, s.Err)
}

// Faulty is implemented by anything carrying a Status.
type Faulty interface {
	Fault() *Status
}

// ClearInvalid removes every invalid member of items in one pass walking
// from the tail, and returns the shortened slice. Order of the survivors is
// preserved.
func ClearInvalid[T Faulty](items []T) []T {
	n := len(items)
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Fault().Invalid() {
			continue
		}
		copy(items[i:n-1], items[i+1:n])
		n--
	}
	clear(items[n:])
	return items[:n]
}
