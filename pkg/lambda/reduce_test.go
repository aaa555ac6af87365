package lambda

import (
	"errors"
	"testing"

	"github.com/tevino/abool/v2"
)

const omega = `((\x.(x x)) (\x.(x x)))`

func TestStepIdentityApplication(t *testing.T) {
	term := mustParse(t, `(\y.((\x.x) y))`)
	y := term.(*Abs).Bound

	res, result, err := Step(term)
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if result != Stepped {
		t.Fatalf("expected a step, got %v", result)
	}
	body, ok := res.(*Abs).Body.(*Var)
	if !ok {
		t.Fatalf("expected the body to become a variable, got %s", res)
	}
	if body.ID != y.ID {
		t.Errorf("body refers to %d, want y's binder %d", body.ID, y.ID)
	}

	if _, result, _ := Step(res); result != NoStep {
		t.Errorf("(\\y.y) should be in normal form")
	}
}

func TestStepConstantFunction(t *testing.T) {
	term := mustParse(t, `(\a.(\b.(((\x.(\y.x)) a) b)))`)
	a := term.(*Abs).Bound

	for i := 0; i < 2; i++ {
		var result Result
		var err error
		term, result, err = Step(term)
		if err != nil || result != Stepped {
			t.Fatalf("step %d: %v, %v", i+1, result, err)
		}
	}
	inner := term.(*Abs).Body.(*Abs)
	v, ok := inner.Body.(*Var)
	if !ok || v.ID != a.ID {
		t.Errorf("after two steps got %s, want a reference to a.%d", term, a.ID)
	}
	if _, result, _ := Step(term); result != NoStep {
		t.Errorf("expected normal form after two steps, got %s", term)
	}
}

func TestStepNonNormalizing(t *testing.T) {
	term := mustParse(t, omega)
	want := DeBruijn(term)
	for i := 0; i < 200; i++ {
		next, result, err := Step(term)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if result != Stepped {
			t.Fatalf("step %d reached a normal form: %s", i, next)
		}
		if got := DeBruijn(next); got != want {
			t.Fatalf("step %d: %s, want %s", i, got, want)
		}
		if err := Validate(next); err != nil {
			t.Fatalf("step %d produced an invalid term: %v", i, err)
		}
		term = next
	}
}

func TestStepOrderFunctionBeforeArgument(t *testing.T) {
	term := mustParse(t, `(\a.(((\x.x) a) ((\y.y) a)))`)
	term, _, err := Step(term)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := DeBruijn(term), `(\ (0 ((\ 0) 0)))`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestStepArgumentWhenFunctionIsNormal(t *testing.T) {
	term := mustParse(t, `(\f.(\a.((f a) ((\x.x) a))))`)
	term, result, err := Step(term)
	if err != nil || result != Stepped {
		t.Fatalf("Step: %v, %v", result, err)
	}
	if got, want := DeBruijn(term), `(\ (\ ((1 0) 0)))`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestStepHeadLambdaFirst(t *testing.T) {
	// The head is already a lambda, so the application is reduced before
	// the redex inside the argument.
	term := mustParse(t, `(\a.((\x.x) ((\y.y) a)))`)
	term, _, err := Step(term)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := DeBruijn(term), `(\ ((\ 0) 0))`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestStepNil(t *testing.T) {
	if _, _, err := Step(nil); !errors.Is(err, ErrInput) {
		t.Errorf("Step(nil) = %v, want input error", err)
	}
	if _, err := Normalize(nil, nil); !errors.Is(err, ErrInput) {
		t.Errorf("Normalize(nil) = %v, want input error", err)
	}
}

func TestSubstituteVar(t *testing.T) {
	v := NewVar(NewIdent(), "x")
	repl := mustParse(t, `(\z.z)`)
	got := Substitute(v, v.ID, repl)
	if got == Term(v) {
		t.Fatal("matching variable was not replaced")
	}
	if !AlphaEqual(got, repl) {
		t.Errorf("got %s, want a copy of %s", got, repl)
	}
	if got.(*Abs).Bound.ID == repl.(*Abs).Bound.ID {
		t.Errorf("inserted copy shares binder %d with the replacement", repl.(*Abs).Bound.ID)
	}
	other := NewVar(NewIdent(), "y")
	if Substitute(other, v.ID, repl) != Term(other) {
		t.Error("non-matching variable was replaced")
	}
}

func TestSubstituteKeepsFreeReferences(t *testing.T) {
	term := mustParse(t, `(\w.(\x.(x x)))`)
	w := term.(*Abs)
	x := w.Body.(*Abs)
	repl := NewVar(w.Bound.ID, "w")
	body := Substitute(x.Body, x.Bound.ID, repl)
	app := body.(*App)
	if app.Fun.(*Var).ID != w.Bound.ID || app.Arg.(*Var).ID != w.Bound.ID {
		t.Errorf("got %s, want both sides to refer to w.%d", body, w.Bound.ID)
	}
	if app.Fun == app.Arg {
		t.Error("both occurrences share one node")
	}
}

func TestNormalizeVisitsEveryForm(t *testing.T) {
	term := mustParse(t, `(\a.(\b.(((\x.(\y.x)) a) b)))`)
	var forms []string
	res, err := Normalize(term, func(step uint64, t Term) error {
		if int(step) != len(forms) {
			return errors.New("steps out of order")
		}
		forms = append(forms, DeBruijn(t))
		return nil
	})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := []string{
		`(\ (\ (((\ (\ 1)) 1) 0)))`,
		`(\ (\ ((\ 2) 0)))`,
		`(\ (\ 1))`,
	}
	if len(forms) != len(want) {
		t.Fatalf("visited %v, want %v", forms, want)
	}
	for i := range want {
		if forms[i] != want[i] {
			t.Errorf("form %d = %s, want %s", i, forms[i], want[i])
		}
	}
	if DeBruijn(res) != want[len(want)-1] {
		t.Errorf("result %s, want %s", DeBruijn(res), want[len(want)-1])
	}
}

func TestNormalizeVisitError(t *testing.T) {
	stop := errors.New("stop")
	_, err := Normalize(mustParse(t, omega), func(step uint64, _ Term) error {
		if step == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("got %v, want the visit error", err)
	}
}

func TestReducerStepLimit(t *testing.T) {
	r := NewReducer()
	r.MaxSteps = 10
	_, err := r.Normalize(mustParse(t, omega), nil)
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v, want step limit", err)
	}
	if got := r.Stats().TotalReductions; got != 10 {
		t.Errorf("performed %d reductions, want 10", got)
	}

	r = NewReducer()
	r.MaxSteps = 1
	res, err := r.Normalize(mustParse(t, `(\y.((\x.x) y))`), nil)
	if err != nil {
		t.Errorf("a term needing exactly MaxSteps steps failed: %v", err)
	}
	if DeBruijn(res) != `(\ 0)` {
		t.Errorf("got %s", res)
	}
}

func TestReducerInterrupt(t *testing.T) {
	r := NewReducer()
	r.Interrupt = abool.New()
	visits := 0
	_, err := r.Normalize(mustParse(t, omega), func(step uint64, _ Term) error {
		visits++
		if step == 5 {
			r.Interrupt.Set()
		}
		return nil
	})
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("got %v, want interrupted", err)
	}
	if visits != 6 {
		t.Errorf("visited %d forms, want 6", visits)
	}
}

func TestReducerStats(t *testing.T) {
	r := NewReducer()
	// K a b: x is used once, then y is unused and b is erased.
	_, err := r.Normalize(mustParse(t, `(\a.(\b.(((\x.(\y.x)) a) b)))`), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := r.Stats()
	if s.TotalReductions != 2 || s.Beta != 1 || s.Erasures != 1 || s.Duplications != 0 {
		t.Errorf("stats = %+v", s)
	}

	r.ResetStats()
	if _, _, err := r.Step(mustParse(t, omega)); err != nil {
		t.Fatal(err)
	}
	s = r.Stats()
	if s.Duplications != 1 || s.Substitutions != 2 || s.NodesCopied != 8 {
		t.Errorf("omega step stats = %+v", s)
	}
}

func TestReducerTrace(t *testing.T) {
	r := NewReducer()
	r.EnableTrace(3)
	r.MaxSteps = 5
	term := mustParse(t, omega)
	fp := Fingerprint(term)
	if _, err := r.Normalize(term, nil); !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v, want step limit", err)
	}
	events := r.TraceSnapshot()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Step != uint64(i+3) {
			t.Errorf("event %d has step %d, want %d", i, ev.Step, i+3)
		}
		if ev.Rule != RuleDuplication || ev.Copies != 2 {
			t.Errorf("event %d = %v", i, ev)
		}
		if ev.Fingerprint != fp {
			t.Errorf("event %d fingerprint %x, want %x", i, ev.Fingerprint, fp)
		}
	}
	t.Logf("trace:\n%s", FormatTrace(events))

	r.DisableTrace()
	if r.TraceSnapshot() != nil {
		t.Error("snapshot after DisableTrace should be nil")
	}
}

func TestReducerCheck(t *testing.T) {
	r := NewReducer()
	r.Check = true
	r.MaxSteps = 50
	if _, err := r.Normalize(mustParse(t, omega), nil); !errors.Is(err, ErrStepLimit) {
		t.Errorf("got %v, want step limit with no invariant violation", err)
	}
}

func TestIsNormal(t *testing.T) {
	cases := map[string]bool{
		`(\x.x)`:              true,
		`(\f.(\x.(f (f x))))`: true,
		`(\y.((\x.x) y))`:     false,
		`(\f.(f ((\x.x) f)))`: false,
		omega:                 false,
	}
	for src, want := range cases {
		if got := IsNormal(mustParse(t, src)); got != want {
			t.Errorf("IsNormal(%s) = %v, want %v", src, got, want)
		}
	}
}
