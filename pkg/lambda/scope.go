package lambda

// Scope maps a variable name to the identifier of its innermost active
// binding. It is only used while parsing.
type Scope struct {
	ids map[string]Ident
}

func NewScope() *Scope {
	return &Scope{ids: make(map[string]Ident)}
}

// Lookup returns the identifier currently bound to name.
func (s *Scope) Lookup(name string) (Ident, bool) {
	id, ok := s.ids[name]
	return id, ok
}

// Bind binds name to id and returns the identifier it shadows, or NoIdent.
func (s *Scope) Bind(name string, id Ident) Ident {
	prev := s.ids[name]
	s.ids[name] = id
	return prev
}

// Restore undoes a Bind: the entry is removed when prev is NoIdent and reset
// to prev otherwise.
func (s *Scope) Restore(name string, prev Ident) {
	if prev == NoIdent {
		delete(s.ids, name)
		return
	}
	s.ids[name] = prev
}

// Enter binds name to id and returns a func that restores the shadowed
// binding. Callers defer it so the restore runs on every exit path.
func (s *Scope) Enter(name string, id Ident) (release func()) {
	prev := s.Bind(name, id)
	return func() { s.Restore(name, prev) }
}

// Len returns the number of names currently bound.
func (s *Scope) Len() int {
	return len(s.ids)
}
