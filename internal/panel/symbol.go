// Package panel holds the formwork panel kinds: family symbols, frame
// entities placed at a point, the vertical wall panel, and the cut ranges a
// boundary side is divided into before panels are laid out.
package panel

import (
	"fmt"

	"formwork/internal/entity"
	"formwork/internal/host"
)

// ============================================================
// Family Symbols
// ============================================================

// NewSymbol declares a family symbol. An empty family defaults to the
// symbol name.
func NewSymbol(cat host.Category, name, family string) host.Symbol {
	if family == "" {
		family = name
	}
	return host.Symbol{Category: cat, Name: name, Family: family}
}

// Kind is a panel kind: its parameter schema and the family symbol its
// instances are placed from. A zero Symbol means the kind cannot be placed.
type Kind struct {
	Schema entity.Schema
	Symbol host.Symbol
}

func (k Kind) Name() string { return k.Schema.Kind }

// Placeable reports whether the kind declares a symbol.
func (k Kind) Placeable() bool { return k.Symbol.Name != "" }

// SymbolError names a declared family symbol missing from the document.
type SymbolError struct {
	Kind   string
	Symbol host.Symbol
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("please load family symbol %s first (kind %q)", e.Symbol, e.Kind)
}

// Symbols is the set of kinds whose symbols were found in a document.
type Symbols struct {
	resolved map[string]host.Symbol
}

// InitSymbols resolves the symbol of every kind against catalog, matching
// category, symbol name and family name. It fails on the first kind that
// declares no symbol or whose symbol is not loaded, and resolves nothing in
// that case.
func InitSymbols(catalog host.SymbolCatalog, kinds ...Kind) (*Symbols, error) {
	loaded := catalog.Symbols()
	s := &Symbols{resolved: make(map[string]host.Symbol, len(kinds))}
	for _, k := range kinds {
		if !k.Placeable() {
			return nil, &entity.DeclarationError{Kind: k.Name(), Reason: "no family symbol declared"}
		}
		found := false
		for _, sym := range loaded {
			if sym == k.Symbol {
				found = true
				break
			}
		}
		if !found {
			return nil, &SymbolError{Kind: k.Name(), Symbol: k.Symbol}
		}
		s.resolved[k.Name()] = k.Symbol
	}
	return s, nil
}

// Lookup returns the resolved symbol of kind.
func (s *Symbols) Lookup(kind string) (host.Symbol, bool) {
	if s == nil {
		return host.Symbol{}, false
	}
	sym, ok := s.resolved[kind]
	return sym, ok
}
