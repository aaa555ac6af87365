package lambda

import "sync/atomic"

// Ident is the identity of a binding. Two variable occurrences denote the
// same binding iff their Idents are equal; names are for display only.
type Ident uint64

// NoIdent is never issued by NewIdent.
const NoIdent Ident = 0

var lastIdent atomic.Uint64

// NewIdent returns an identifier greater than every one issued before in
// this process. The first value is 1. The counter is never reset, not even
// when a parse fails.
func NewIdent() Ident {
	return Ident(lastIdent.Add(1))
}

// LastIdent returns the most recently issued identifier.
func LastIdent() Ident {
	return Ident(lastIdent.Load())
}
