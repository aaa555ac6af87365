package lambda

import "github.com/ahrtr/gocontainer/set"

// Validate checks the invariants of a closed term: every variable is bound
// by an enclosing abstraction with the same identifier, and no identifier
// is bound by two abstractions.
func Validate(t Term) error {
	v := validator{inScope: set.New(), binders: set.New()}
	return v.walk(t)
}

type validator struct {
	inScope set.Interface
	binders set.Interface
}

func (v *validator) walk(t Term) error {
	switch t := t.(type) {
	case *Var:
		if !v.inScope.Contains(t.ID) {
			return newError(KindUnbound, Pos{}, "%s has no enclosing binder", t)
		}
		return nil
	case *Abs:
		if v.binders.Contains(t.Bound.ID) {
			return newError(KindInput, Pos{}, "identifier %d bound twice", t.Bound.ID)
		}
		v.binders.Add(t.Bound.ID)
		v.inScope.Add(t.Bound.ID)
		err := v.walk(t.Body)
		v.inScope.Remove(t.Bound.ID)
		return err
	case *App:
		if err := v.walk(t.Fun); err != nil {
			return err
		}
		return v.walk(t.Arg)
	case nil:
		return newError(KindInput, Pos{}, "nil term")
	default:
		return newError(KindInput, Pos{}, "unknown term type %T", t)
	}
}
