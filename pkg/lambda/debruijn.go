package lambda

import (
	"strconv"
	"strings"

	"github.com/segmentio/fasthash/fnv1a"
)

// DeBruijn renders t without names: a bound variable is printed as the
// number of binders between it and its own (0 for the innermost), so two
// terms are alpha-equivalent iff their renderings are equal. Free variables
// are printed as "#name.id".
func DeBruijn(t Term) string {
	var b strings.Builder
	writeDeBruijn(&b, t, nil)
	return b.String()
}

func writeDeBruijn(b *strings.Builder, t Term, binders []Ident) {
	switch t := t.(type) {
	case *Var:
		for i := len(binders) - 1; i >= 0; i-- {
			if binders[i] == t.ID {
				b.WriteString(strconv.Itoa(len(binders) - 1 - i))
				return
			}
		}
		b.WriteByte('#')
		b.WriteString(t.String())
	case *Abs:
		b.WriteString(`(\ `)
		writeDeBruijn(b, t.Body, append(binders, t.Bound.ID))
		b.WriteByte(')')
	case *App:
		b.WriteByte('(')
		writeDeBruijn(b, t.Fun, binders)
		b.WriteByte(' ')
		writeDeBruijn(b, t.Arg, binders)
		b.WriteByte(')')
	}
}

// AlphaEqual reports whether a and b differ only in binder identifiers and names.
func AlphaEqual(a, b Term) bool {
	return DeBruijn(a) == DeBruijn(b)
}

// Fingerprint is a hash of the nameless form of t, equal for
// alpha-equivalent terms.
func Fingerprint(t Term) uint64 {
	return fnv1a.HashString64(DeBruijn(t))
}
