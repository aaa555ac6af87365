package lambda

import (
	"github.com/edwingeng/deque"
	"github.com/tevino/abool/v2"
)

// Result tells whether Step performed a reduction.
type Result int

const (
	NoStep Result = iota
	Stepped
)

func (r Result) String() string {
	if r == Stepped {
		return "stepped"
	}
	return "no step"
}

// Reducer performs single-step reduction and drives terms to normal form.
//
// The zero value is usable. MaxSteps and Interrupt are safety valves that
// are off by default: a term without normal form is reduced forever.
type Reducer struct {
	MaxSteps  uint64            // 0 means no limit
	Interrupt *abool.AtomicBool // checked before every step when non-nil
	Check     bool              // run Validate after every step

	stats Stats

	traceBuf deque.Deque
	traceCap int
	pending  TraceEvent
}

func NewReducer() *Reducer {
	return &Reducer{}
}

// Stats returns the statistics accumulated since the reducer was created
// or last reset.
func (r *Reducer) Stats() Stats {
	return r.stats
}

func (r *Reducer) ResetStats() {
	r.stats = Stats{}
}

// Substitute replaces every occurrence of id in t with a copy of repl. It
// consumes t and returns the rewritten tree; callers store the result in
// place of t. Abstractions are not shielded: binder identifiers are unique,
// so no binder inside t can carry id.
func (r *Reducer) Substitute(t Term, id Ident, repl Term) Term {
	switch t := t.(type) {
	case *Var:
		if t.ID != id {
			return t
		}
		c := Refresh(repl)
		r.stats.Substitutions++
		r.stats.NodesCopied += uint64(Size(c))
		r.pending.Copies++
		return c
	case *Abs:
		t.Body = r.Substitute(t.Body, id, repl)
		return t
	case *App:
		t.Fun = r.Substitute(t.Fun, id, repl)
		t.Arg = r.Substitute(t.Arg, id, repl)
		return t
	default:
		return t
	}
}

// Step performs at most one reduction on t and returns the resulting tree,
// which replaces t. The redex is chosen as follows: a variable has none; an
// abstraction steps its body; an application whose function is an
// abstraction is beta-reduced; any other application steps its function
// and, only if that has no step, its argument.
func (r *Reducer) Step(t Term) (Term, Result, error) {
	r.pending = TraceEvent{}
	t, res, err := r.step(t)
	if err != nil || res == NoStep {
		return t, res, err
	}
	r.stats.TotalReductions++
	if r.tracing() {
		r.pending.Step = r.stats.TotalReductions
		r.pending.Fingerprint = Fingerprint(t)
		r.recordTrace(r.pending)
	}
	if r.Check {
		if err := Validate(t); err != nil {
			return t, Stepped, err
		}
	}
	return t, Stepped, nil
}

func (r *Reducer) step(t Term) (Term, Result, error) {
	switch t := t.(type) {
	case *Var:
		return t, NoStep, nil
	case *Abs:
		body, res, err := r.step(t.Body)
		t.Body = body
		return t, res, err
	case *App:
		if abs, ok := t.Fun.(*Abs); ok {
			return r.beta(abs, t.Arg), Stepped, nil
		}
		fun, res, err := r.step(t.Fun)
		t.Fun = fun
		if err != nil || res == Stepped {
			return t, res, err
		}
		arg, res, err := r.step(t.Arg)
		t.Arg = arg
		return t, res, err
	case nil:
		return nil, NoStep, newError(KindInput, Pos{}, "nil term")
	default:
		return t, NoStep, newError(KindInput, Pos{}, "unknown term type %T", t)
	}
}

// beta substitutes arg for the binder of abs in its body and returns the
// body; the abstraction and the application around it are dropped.
func (r *Reducer) beta(abs *Abs, arg Term) Term {
	uses := Occurrences(abs.Body, abs.Bound.ID)
	switch ruleFor(uses) {
	case RuleErasure:
		r.stats.Erasures++
	case RuleBeta:
		r.stats.Beta++
	default:
		r.stats.Duplications++
	}
	r.pending.Rule = ruleFor(uses)
	r.pending.Binder = abs.Bound
	return r.Substitute(abs.Body, abs.Bound.ID, arg)
}

// Normalize steps t until no reduction is left. visit, when non-nil, is
// called with the number of steps taken so far and the current term before
// every step, so the normal form is the last term visited. An error from
// visit stops the reduction and is returned.
func (r *Reducer) Normalize(t Term, visit func(step uint64, t Term) error) (Term, error) {
	if t == nil {
		return nil, newError(KindInput, Pos{}, "nil term")
	}
	for n := uint64(0); ; n++ {
		if visit != nil {
			if err := visit(n, t); err != nil {
				return t, err
			}
		}
		if r.Interrupt != nil && r.Interrupt.IsSet() {
			return t, newError(KindInterrupted, Pos{}, "after %d steps", n)
		}
		if r.MaxSteps > 0 && n >= r.MaxSteps {
			if IsNormal(t) {
				return t, nil
			}
			return t, newError(KindStepLimit, Pos{}, "no normal form after %d steps", n)
		}
		next, res, err := r.Step(t)
		if err != nil {
			return next, err
		}
		if res == NoStep {
			return next, nil
		}
		t = next
	}
}

// IsNormal reports whether t contains no redex, i.e. Step would return NoStep.
func IsNormal(t Term) bool {
	switch t := t.(type) {
	case *Var:
		return true
	case *Abs:
		return IsNormal(t.Body)
	case *App:
		if _, ok := t.Fun.(*Abs); ok {
			return false
		}
		return IsNormal(t.Fun) && IsNormal(t.Arg)
	default:
		return true
	}
}

// Occurrences counts the variables in t that refer to id.
func Occurrences(t Term, id Ident) int {
	switch t := t.(type) {
	case *Var:
		if t.ID == id {
			return 1
		}
		return 0
	case *Abs:
		return Occurrences(t.Body, id)
	case *App:
		return Occurrences(t.Fun, id) + Occurrences(t.Arg, id)
	default:
		return 0
	}
}

// Substitute is Reducer.Substitute without statistics.
func Substitute(t Term, id Ident, repl Term) Term {
	return NewReducer().Substitute(t, id, repl)
}

// Step is Reducer.Step without statistics.
func Step(t Term) (Term, Result, error) {
	return NewReducer().Step(t)
}

// Normalize is Reducer.Normalize without statistics or limits.
func Normalize(t Term, visit func(step uint64, t Term) error) (Term, error) {
	return NewReducer().Normalize(t, visit)
}
