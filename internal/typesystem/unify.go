package typesystem

import "fmt"

// MismatchError reports that two types could not be made equal. When the
// failure happens inside a compound type, Expected and Given hold the
// enclosing types, not the innermost pair, so callers can reason about the
// shape of the whole disagreement.
type MismatchError struct {
	Expected Type
	Given    Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("could not unify %s with %s", e.Expected, e.Given)
}

// RecursiveTypeError reports that unification would require a type to contain
// itself.
type RecursiveTypeError struct{}

func (e *RecursiveTypeError) Error() string {
	return "recursive type"
}

// Unify makes expected and given equal, linking unbound type variables in
// place as needed. On success both types resolve to the same shape. The
// error, when non-nil, is a *MismatchError or *RecursiveTypeError.
func Unify(expected, given Type) error {
	a := Resolve(expected)
	b := Resolve(given)

	if a == b {
		return nil
	}

	if v, ok := a.(*TVar); ok {
		return link(v, b)
	}
	if v, ok := b.(*TVar); ok {
		return link(v, a)
	}

	switch at := a.(type) {
	case *TCon:
		bt, ok := b.(*TCon)
		if !ok || bt.Name != at.Name || len(bt.Args) != len(at.Args) {
			return &MismatchError{Expected: a, Given: b}
		}
		for i := range at.Args {
			if err := Unify(at.Args[i], bt.Args[i]); err != nil {
				return unifyEnclosed(a, b, err)
			}
		}
		return nil

	case *TFunc:
		bt, ok := b.(*TFunc)
		if !ok || len(bt.Params) != len(at.Params) {
			return &MismatchError{Expected: a, Given: b}
		}
		for i := range at.Params {
			if err := Unify(at.Params[i], bt.Params[i]); err != nil {
				return unifyEnclosed(a, b, err)
			}
		}
		if err := Unify(at.Return, bt.Return); err != nil {
			return unifyEnclosed(a, b, err)
		}
		return nil

	default:
		return &MismatchError{Expected: a, Given: b}
	}
}

// link binds the unbound variable v to t, refusing self-containing bindings.
func link(v *TVar, t Type) error {
	if occursIn(v, t) {
		return &RecursiveTypeError{}
	}
	v.link = t
	return nil
}

// unifyEnclosed rewrites a nested mismatch so it reports the enclosing types.
// Other unification errors pass through unchanged.
func unifyEnclosed(a, b Type, err error) error {
	if _, ok := err.(*MismatchError); ok {
		return &MismatchError{Expected: a, Given: b}
	}
	return err
}

func occursIn(v *TVar, t Type) bool {
	switch tt := Resolve(t).(type) {
	case *TVar:
		return tt == v
	case *TCon:
		for _, a := range tt.Args {
			if occursIn(v, a) {
				return true
			}
		}
		return false
	case *TFunc:
		for _, p := range tt.Params {
			if occursIn(v, p) {
				return true
			}
		}
		return occursIn(v, tt.Return)
	default:
		return false
	}
}
