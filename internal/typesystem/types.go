package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/funpipe/internal/config"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	typeNode()
}

// TCon represents a named type constructor (e.g. Int, String).
type TCon struct {
	Name string
	Args []Type
}

func (t *TCon) typeNode() {}

func (t *TCon) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ", "))
}

// TFunc represents a function type (e.g. fn(Int, Int) -> Bool).
type TFunc struct {
	Params []Type
	Return Type
}

func (t *TFunc) typeNode() {}

func (t *TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Return)
}

// TVar is a type variable. It starts unbound and may later be linked to
// another type during unification; once linked it behaves as that type.
// The link is set in place, so every expression holding the variable sees
// the binding at once.
type TVar struct {
	id   uint64
	link Type
}

func (t *TVar) typeNode() {}

func (t *TVar) String() string {
	if t.link != nil {
		return t.link.String()
	}
	return fmt.Sprintf("t%d", t.id)
}

// NewTVar returns a fresh unbound type variable with the given id.
func NewTVar(id uint64) *TVar {
	return &TVar{id: id}
}

// Unbound reports whether the variable has not been linked yet.
func (t *TVar) Unbound() bool { return t.link == nil }

// Resolve follows variable links until it reaches a concrete type or an
// unbound variable.
func Resolve(t Type) Type {
	for {
		v, ok := t.(*TVar)
		if !ok || v.link == nil {
			return t
		}
		t = v.link
	}
}

// AsFn resolves t and returns it as a function type, if it is one.
func AsFn(t Type) (*TFunc, bool) {
	fn, ok := Resolve(t).(*TFunc)
	return fn, ok
}

// Built-in type singletons. TCons unify by name, so these are a convenience,
// not an identity requirement.
var (
	IntType    = &TCon{Name: config.IntTypeName}
	FloatType  = &TCon{Name: config.FloatTypeName}
	StringType = &TCon{Name: config.StringTypeName}
	BoolType   = &TCon{Name: config.BoolTypeName}
	NilType    = &TCon{Name: config.NilTypeName}
)

// Fn builds a function type from parameter types and a return type.
func Fn(params []Type, ret Type) *TFunc {
	return &TFunc{Params: params, Return: ret}
}
