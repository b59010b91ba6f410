package logic

import (
	"fmt"
	"strings"
)

// Position is a path from the root of a term to one of its subterms, as a list of
// argument indices. The empty position refers to the root.
type Position []int

func (p Position) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Child returns a new position for the i-th argument of the subterm at p.
func (p Position) Child(i int) Position {
	child := make(Position, len(p)+1)
	copy(child, p)
	child[len(p)] = i
	return child
}

// At returns the subterm of t at position p, or false if p doesn't exist in t.
func At(t Term, p Position) (Term, bool) {
	for _, idx := range p {
		c, ok := t.(*Comp)
		if !ok || idx < 0 || idx >= len(c.Args) {
			return nil, false
		}
		t = c.Args[idx]
	}
	return t, true
}

// Replace returns a copy of t with the subterm at position p replaced by sub.
//
// It panics if p doesn't exist in t.
func Replace(t Term, p Position, sub Term) Term {
	if len(p) == 0 {
		return sub
	}
	c, ok := t.(*Comp)
	if !ok || p[0] < 0 || p[0] >= len(c.Args) {
		panic(fmt.Sprintf("logic.Replace: invalid position %v for %v", p, t))
	}
	return c.WithArg(p[0], Replace(c.Args[p[0]], p[1:], sub))
}

// Walk calls fn for every subterm of t in pre-order: a comp is visited before its
// args, and args are visited left to right.
func Walk(t Term, fn func(p Position, sub Term)) {
	walk(t, Position{}, fn)
}

func walk(t Term, p Position, fn func(Position, Term)) {
	fn(p, t)
	if c, ok := t.(*Comp); ok {
		for i, arg := range c.Args {
			walk(arg, p.Child(i), fn)
		}
	}
}
