package lambda

import (
	"strconv"
	"strings"
)

// Term represents a lambda calculus term.
type Term interface {
	String() string
	// Copy returns a deep copy that keeps every identifier.
	Copy() Term
	write(b *strings.Builder)
}

// Var represents a variable. ID decides identity; Name is only printed.
type Var struct {
	ID   Ident
	Name string
}

// NewVar returns a variable, truncating name to MaxNameLen bytes.
func NewVar(id Ident, name string) *Var {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	return &Var{ID: id, Name: name}
}

func (v *Var) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *Var) write(b *strings.Builder) {
	b.WriteString(v.Name)
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(uint64(v.ID), 10))
}

func (v *Var) Copy() Term {
	c := *v
	return &c
}

// Abs represents an abstraction (lambda). It owns its binder and body.
type Abs struct {
	Bound Var
	Body  Term
}

func NewAbs(bound Var, body Term) *Abs {
	return &Abs{Bound: bound, Body: body}
}

func (a *Abs) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a *Abs) write(b *strings.Builder) {
	b.WriteString(`(\`)
	a.Bound.write(b)
	b.WriteString(". ")
	a.Body.write(b)
	b.WriteByte(')')
}

func (a *Abs) Copy() Term {
	return &Abs{Bound: a.Bound, Body: a.Body.Copy()}
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func NewApp(fun, arg Term) *App {
	return &App{Fun: fun, Arg: arg}
}

func (a *App) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a *App) write(b *strings.Builder) {
	b.WriteByte('(')
	a.Fun.write(b)
	b.WriteByte(' ')
	a.Arg.write(b)
	b.WriteByte(')')
}

func (a *App) Copy() Term {
	return &App{Fun: a.Fun.Copy(), Arg: a.Arg.Copy()}
}

// Copy returns an identity-preserving deep copy of t, or nil for nil.
func Copy(t Term) Term {
	if t == nil {
		return nil
	}
	return t.Copy()
}

// Refresh returns a deep copy of t in which every abstraction gets a new
// identifier from NewIdent. Occurrences bound inside t follow their binder;
// occurrences bound outside t keep their identifier.
func Refresh(t Term) Term {
	return refresh(t, make(map[Ident]Ident))
}

func refresh(t Term, renamed map[Ident]Ident) Term {
	switch t := t.(type) {
	case *Var:
		if id, ok := renamed[t.ID]; ok {
			return &Var{ID: id, Name: t.Name}
		}
		return &Var{ID: t.ID, Name: t.Name}
	case *Abs:
		id := NewIdent()
		prev, had := renamed[t.Bound.ID]
		renamed[t.Bound.ID] = id
		body := refresh(t.Body, renamed)
		if had {
			renamed[t.Bound.ID] = prev
		} else {
			delete(renamed, t.Bound.ID)
		}
		return &Abs{Bound: Var{ID: id, Name: t.Bound.Name}, Body: body}
	case *App:
		return &App{Fun: refresh(t.Fun, renamed), Arg: refresh(t.Arg, renamed)}
	default:
		panic("unknown term type")
	}
}

// Size returns the number of nodes in t.
func Size(t Term) int {
	switch t := t.(type) {
	case *Var:
		return 1
	case *Abs:
		return 1 + Size(t.Body)
	case *App:
		return 1 + Size(t.Fun) + Size(t.Arg)
	default:
		return 0
	}
}
