// Package entity binds a declared set of typed parameters to a host element.
//
// A concrete entity kind declares its parameters once in a Schema. New pulls
// every parameter from the host element on construction; WriteAll pushes the
// in-memory values back. Binding failures are recorded on the entity's
// fault.Status instead of aborting the caller.
package entity

import (
	"errors"
	"fmt"

	"formwork/internal/param"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrNotBound is returned by operations that need a host element.
	ErrNotBound = errors.New("entity is not bound to a host element")
	// ErrAlreadyBound is returned when a bound entity is bound to another element.
	ErrAlreadyBound = errors.New("entity is already bound")
)

// DeclarationError reports an entity kind whose static declaration cannot be
// used: a bad schema or a kind with no registered constructor.
type DeclarationError struct {
	Kind   string
	Reason string
}

func (e *DeclarationError) Error() string {
	if e.Kind == "" {
		return "entity declaration: " + e.Reason
	}
	return fmt.Sprintf("entity kind %q: %s", e.Kind, e.Reason)
}

// ============================================================
// Schema
// ============================================================

// Schema is the static parameter declaration of one entity kind. Params are
// kept in declaration order.
type Schema struct {
	Kind   string
	Params []param.Descriptor
}

// Validate checks that the kind is named and every parameter has a unique
// name and a known value kind.
func (s Schema) Validate() error {
	if s.Kind == "" {
		return &DeclarationError{Reason: "empty kind name"}
	}
	seen := make(map[string]struct{}, len(s.Params))
	for _, d := range s.Params {
		if d.Name == "" {
			return &DeclarationError{Kind: s.Kind, Reason: "parameter with empty name"}
		}
		if !d.Kind.Valid() {
			return &DeclarationError{Kind: s.Kind, Reason: fmt.Sprintf("parameter %q has unknown kind %s", d.Name, d.Kind)}
		}
		if d.ConvertUnit && d.Kind != param.KindReal {
			return &DeclarationError{Kind: s.Kind, Reason: fmt.Sprintf("parameter %q converts units but is %s", d.Name, d.Kind)}
		}
		if _, dup := seen[d.Name]; dup {
			return &DeclarationError{Kind: s.Kind, Reason: fmt.Sprintf("duplicate parameter %q", d.Name)}
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}

// Extend returns a schema for kind that declares s's parameters followed by
// extra.
func (s Schema) Extend(kind string, extra ...param.Descriptor) Schema {
	params := make([]param.Descriptor, 0, len(s.Params)+len(extra))
	params = append(params, s.Params...)
	params = append(params, extra...)
	return Schema{Kind: kind, Params: params}
}
