// Package logic implements the term model rewritten by the search engine.
//
// A term can fall in one of three categories:
//
// * atomic: an atom or an integer, representing an immutable value.
//
// * variable: a pattern variable, bound when a rule is matched against a term.
//
// * complex: a compound term, containing other terms recursively.
//
// Terms are immutable values. Every term has a canonical key (see Key) such that two
// terms have the same key iff they are structurally identical.
package logic

import (
	"fmt"
	"strings"
)

// ---- Basic types

// Term is a representation of a logic term.
type Term interface {
	fmt.Stringer
	writeKey(b *strings.Builder)
	vars(seen map[Var]struct{}, xs []Var) []Var
	hasVar() bool
}

// Atom is an atomic term representing a symbol.
type Atom struct {
	// Name is the identifier for an atom.
	Name string
}

// Int is an atomic term representing an integer.
type Int struct {
	// Value is the (immutable) value of an int.
	Value int
}

// Var is a variable term.
type Var struct {
	// Name is the identifier for a var.
	Name string
}

// Comp is a complex term, representing an immutable compound term.
type Comp struct {
	// Functor is the primary identifier of a comp.
	Functor string
	// Args is the list of terms within this term.
	Args    []Term
	hasVar_ bool
}

// ---- Vars

// NewVar creates a new var.
//
// It panics if the name doesn't start with an uppercase letter or an underscore.
func NewVar(name string) Var {
	if !IsVar(name) {
		panic(fmt.Sprintf("NewVar: invalid name: %q", name))
	}
	return Var{name}
}

// ---- Compound terms

// NewComp creates a compound term.
func NewComp(functor string, terms ...Term) *Comp {
	var hasVar bool
	for _, term := range terms {
		if term.hasVar() {
			hasVar = true
			break
		}
	}
	return &Comp{Functor: functor, Args: terms, hasVar_: hasVar}
}

// WithArg returns a copy of c with the i-th argument replaced.
func (c *Comp) WithArg(i int, arg Term) *Comp {
	args := make([]Term, len(c.Args))
	copy(args, c.Args)
	args[i] = arg
	return NewComp(c.Functor, args...)
}

// ---- vars()

// Vars returns a set with all term variables, in insertion order.
func Vars(term Term) []Var {
	if !term.hasVar() {
		return nil
	}
	seen := make(map[Var]struct{})
	return term.vars(seen, nil)
}

// IsGround returns whether the term has no variables.
func IsGround(term Term) bool {
	return !term.hasVar()
}

func (t Atom) vars(seen map[Var]struct{}, xs []Var) []Var { return xs }
func (t Int) vars(seen map[Var]struct{}, xs []Var) []Var  { return xs }

func (t Var) vars(seen map[Var]struct{}, xs []Var) []Var {
	if _, ok := seen[t]; ok {
		return xs
	}
	seen[t] = struct{}{}
	return append(xs, t)
}

func (t *Comp) vars(seen map[Var]struct{}, xs []Var) []Var {
	if !t.hasVar_ {
		return xs
	}
	for _, term := range t.Args {
		xs = term.vars(seen, xs)
	}
	return xs
}

// ---- hasVar()

func (t Atom) hasVar() bool  { return false }
func (t Int) hasVar() bool   { return false }
func (t Var) hasVar() bool   { return true }
func (t *Comp) hasVar() bool { return t.hasVar_ }

// ---- Comparisons

func termOrder(t Term) int {
	switch t.(type) {
	case Var:
		return 1
	case Int:
		return 2
	case Atom:
		return 3
	case *Comp:
		return 4
	default:
		panic(fmt.Sprintf("logic.termOrder: unhandled type %T", t))
	}
}

type ordering int

const (
	less ordering = iota
	equal
	more
)

func compareStrings(s1, s2 string) ordering {
	if s1 < s2 {
		return less
	}
	if s1 > s2 {
		return more
	}
	return equal
}

func compareInts(a, b int) ordering {
	if a < b {
		return less
	}
	if a > b {
		return more
	}
	return equal
}

func compare(t1, t2 Term) ordering {
	switch u := t1.(type) {
	case Atom:
		if v, ok := t2.(Atom); ok {
			return compareStrings(u.Name, v.Name)
		}
	case Int:
		if v, ok := t2.(Int); ok {
			return compareInts(u.Value, v.Value)
		}
	case Var:
		if v, ok := t2.(Var); ok {
			return compareStrings(u.Name, v.Name)
		}
	case *Comp:
		if v, ok := t2.(*Comp); ok {
			return u.compare(v)
		}
	default:
		panic(fmt.Sprintf("logic.compare: unhandled type %T", t1))
	}
	return compareInts(termOrder(t1), termOrder(t2))
}

func (c *Comp) compare(other *Comp) ordering {
	if c == other {
		return equal
	}
	if o := compareInts(len(c.Args), len(other.Args)); o != equal {
		return o
	}
	if o := compareStrings(c.Functor, other.Functor); o != equal {
		return o
	}
	for i := 0; i < len(c.Args); i++ {
		if o := compare(c.Args[i], other.Args[i]); o != equal {
			return o
		}
	}
	return equal
}

// Less returns the order between t1 and t2, following the standard of terms.
//
// The order of terms is: Vars < Ints < Atoms < Comps. Comps are first compared by
// arity, then by functor, then by args pairwise.
func Less(t1, t2 Term) bool {
	return compare(t1, t2) == less
}

// Eq returns whether t1 and t2 are identical terms.
func Eq(t1, t2 Term) bool {
	return compare(t1, t2) == equal
}

// ---- String()

func (t Atom) String() string {
	return FormatAtom(t.Name)
}

func (t Int) String() string {
	return fmt.Sprintf("%d", t.Value)
}

func (t Var) String() string {
	return t.Name
}

func (t *Comp) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", FormatAtom(t.Functor), strings.Join(args, ", "))
}

// ---- Equations

// Equation is an equality between two terms, to be proven by rewriting.
type Equation struct {
	Lhs, Rhs Term
}

func (eq Equation) String() string {
	return fmt.Sprintf("%v = %v", eq.Lhs, eq.Rhs)
}
