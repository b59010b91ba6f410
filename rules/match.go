package rules

import (
	"sort"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/logic"
)

// Match binds the variables of pattern so that it becomes equal to t, extending b.
// b is not modified.
func Match(pattern, t logic.Term, b Bindings) (Bindings, bool) {
	out := b.clone()
	if !match(pattern, t, out) {
		return nil, false
	}
	return out, true
}

func match(pattern, t logic.Term, b Bindings) bool {
	switch p := pattern.(type) {
	case logic.Var:
		if bound, ok := b[p]; ok {
			return logic.Eq(bound, t)
		}
		b[p] = t
		return true
	case *logic.Comp:
		c, ok := t.(*logic.Comp)
		if !ok || c.Functor != p.Functor || len(c.Args) != len(p.Args) {
			return false
		}
		for i, arg := range p.Args {
			if !match(arg, c.Args[i], b) {
				return false
			}
		}
		return true
	default:
		return logic.Eq(pattern, t)
	}
}

// Subst replaces every variable in pattern by its binding.
func Subst(pattern logic.Term, b Bindings) (logic.Term, error) {
	if logic.IsGround(pattern) {
		return pattern, nil
	}
	switch p := pattern.(type) {
	case logic.Var:
		t, ok := b[p]
		if !ok {
			return nil, errors.New("unbound variable %v", p)
		}
		return t, nil
	case *logic.Comp:
		args := make([]logic.Term, len(p.Args))
		for i, arg := range p.Args {
			t, err := Subst(arg, b)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return logic.NewComp(p.Functor, args...), nil
	default:
		return pattern, nil
	}
}

func sortVars(xs []logic.Var) {
	sort.Slice(xs, func(i, j int) bool { return xs[i].Name < xs[j].Name })
}
