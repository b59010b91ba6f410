package logic

import (
	"strconv"
	"strings"
)

// Key returns the canonical encoding of a term.
//
// Two terms have the same key iff Eq returns true for them. The key is the term's
// String form without whitespace, so it can also be read back by the parser.
func Key(t Term) string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t Atom) writeKey(b *strings.Builder) {
	b.WriteString(FormatAtom(t.Name))
}

func (t Int) writeKey(b *strings.Builder) {
	b.WriteString(strconv.Itoa(t.Value))
}

func (t Var) writeKey(b *strings.Builder) {
	b.WriteString(t.Name)
}

func (t *Comp) writeKey(b *strings.Builder) {
	b.WriteString(FormatAtom(t.Functor))
	b.WriteByte('(')
	for i, arg := range t.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		arg.writeKey(b)
	}
	b.WriteByte(')')
}
