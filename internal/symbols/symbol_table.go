package symbols

import (
	"sort"

	"github.com/funvibe/funpipe/internal/token"
	"github.com/funvibe/funpipe/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	BuiltinSymbol
)

type Symbol struct {
	Name string
	Type typesystem.Type
	Kind SymbolKind

	// DefinitionSpan is where the symbol was bound. Synthetic bindings such
	// as the pipeline variable point at the expression that produced the
	// value.
	DefinitionSpan token.Span
}

// SymbolTable is a chain of lexical scopes. Lookups walk outward; writes only
// ever touch the innermost table.
type SymbolTable struct {
	store map[string]Symbol
	outer *SymbolTable
}

// Scope is a copy of one table's bindings, as returned by Snapshot.
type Scope map[string]Symbol

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: make(map[string]Symbol)}
}

func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{
		store: make(map[string]Symbol),
		outer: outer,
	}
}

func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) Define(name string, span token.Span, t typesystem.Type) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, DefinitionSpan: span}
}

func (s *SymbolTable) DefineBuiltin(name string, t typesystem.Type) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: BuiltinSymbol}
}

// DefineLocal rebinds name in the innermost scope, shadowing any outer
// binding. It is what lets a pipeline rebind its step variable without
// touching enclosing scopes.
func (s *SymbolTable) DefineLocal(name string, span token.Span, t typesystem.Type) {
	s.Define(name, span, t)
}

// Find looks name up through the scope chain.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	if !ok && s.outer != nil {
		return s.outer.Find(name)
	}
	return sym, ok
}

// IsDefinedLocally reports whether name is bound in this table, ignoring
// outer scopes.
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}

// Snapshot copies the innermost scope's bindings. Restore with the returned
// Scope undoes every Define made on this table since, including rebindings
// and shadowing.
func (s *SymbolTable) Snapshot() Scope {
	saved := make(Scope, len(s.store))
	for name, sym := range s.store {
		saved[name] = sym
	}
	return saved
}

// Restore replaces the innermost scope's bindings with a snapshot taken
// earlier from the same table.
func (s *SymbolTable) Restore(saved Scope) {
	s.store = make(map[string]Symbol, len(saved))
	for name, sym := range saved {
		s.store[name] = sym
	}
}

// GetAllNames returns the names bound in this table, sorted, ignoring outer
// scopes.
func (s *SymbolTable) GetAllNames() []string {
	names := make([]string, 0, len(s.store))
	for name := range s.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
