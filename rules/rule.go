// Package rules implements rewrite rules over logic terms and the discovery of every
// rewrite of a term.
//
// A rule rewrites a subterm matching its From pattern into its To pattern. Matching is
// one-way: variables in the pattern are bound to subterms, and variables in the term
// being rewritten are treated as constants. A rule may be guarded by a Condition over
// the match bindings, and may compute extra bindings with a Binder.
package rules

import (
	"fmt"
	"strings"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/logic"
)

// ErrInvalidRule is matched by every rule validation error.
const ErrInvalidRule = errors.Sentinel("invalid rule")

// Bindings maps pattern variables to terms.
type Bindings map[logic.Var]logic.Term

func (b Bindings) String() string {
	vars := make([]logic.Var, 0, len(b))
	for x := range b {
		vars = append(vars, x)
	}
	sortVars(vars)
	parts := make([]string, len(vars))
	for i, x := range vars {
		parts[i] = fmt.Sprintf("%v = %v", x, b[x])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (b Bindings) clone() Bindings {
	c := make(Bindings, len(b))
	for k, v := range b {
		c[k] = v
	}
	return c
}

// Condition guards the application of a rule.
type Condition interface {
	Holds(b Bindings) (bool, error)
}

// Binder computes new bindings from the bindings of a match.
type Binder interface {
	Bind(b Bindings) (Bindings, error)
}

// Declarer is implemented by binders that know beforehand which variables they bind.
type Declarer interface {
	Binds() []logic.Var
}

// CondFunc adapts a function to a Condition.
type CondFunc func(b Bindings) (bool, error)

func (f CondFunc) Holds(b Bindings) (bool, error) { return f(b) }

// BindFunc adapts a function to a Binder.
type BindFunc func(b Bindings) (Bindings, error)

func (f BindFunc) Bind(b Bindings) (Bindings, error) { return f(b) }

// Rule rewrites terms matching From into To.
type Rule struct {
	Name string
	From logic.Term
	To   logic.Term
	// When, if present, must hold for the match bindings.
	When Condition
	// Let, if present, extends the match bindings before substitution. It's only
	// used for forward applications.
	Let Binder
	// Symmetric rules may also rewrite terms matching To into From.
	Symmetric bool
}

func (r Rule) String() string {
	arrow := "->"
	if r.Symmetric {
		arrow = "<->"
	}
	return fmt.Sprintf("%s: %v %s %v", r.Name, r.From, arrow, r.To)
}

// Validate checks that every variable of To is bound on a forward application, and
// that symmetric rules bind every variable of From on a reversed application.
func (r Rule) Validate() error {
	if r.Name == "" {
		return errors.New("%v: empty name", ErrInvalidRule)
	}
	if r.From == nil || r.To == nil {
		return errors.New("%v: %s: missing pattern", ErrInvalidRule, r.Name)
	}
	bound := varSet(logic.Vars(r.From))
	if r.Symmetric {
		if r.Let != nil {
			return errors.New("%v: %s: symmetric rules can't have let bindings", ErrInvalidRule, r.Name)
		}
		if x, ok := missingVar(logic.Vars(r.From), varSet(logic.Vars(r.To))); ok {
			return errors.New("%v: %s: variable %v is not bound when reversed", ErrInvalidRule, r.Name, x)
		}
	}
	if r.Let != nil {
		d, ok := r.Let.(Declarer)
		if !ok {
			// Unknown bindings are checked on substitution.
			return nil
		}
		for _, x := range d.Binds() {
			if _, ok := bound[x]; ok {
				return errors.New("%v: %s: let rebinds variable %v", ErrInvalidRule, r.Name, x)
			}
			bound[x] = struct{}{}
		}
	}
	if x, ok := missingVar(logic.Vars(r.To), bound); ok {
		return errors.New("%v: %s: variable %v is not bound", ErrInvalidRule, r.Name, x)
	}
	return nil
}

func (r Rule) directions() []bool {
	if r.Symmetric {
		return []bool{false, true}
	}
	return []bool{false}
}

// patterns returns the source and target patterns for a direction.
func (r Rule) patterns(reversed bool) (src, dst logic.Term) {
	if reversed {
		return r.To, r.From
	}
	return r.From, r.To
}

func varSet(xs []logic.Var) map[logic.Var]struct{} {
	set := make(map[logic.Var]struct{}, len(xs))
	for _, x := range xs {
		set[x] = struct{}{}
	}
	return set
}

func missingVar(xs []logic.Var, set map[logic.Var]struct{}) (logic.Var, bool) {
	for _, x := range xs {
		if _, ok := set[x]; !ok {
			return x, true
		}
	}
	return logic.Var{}, false
}
