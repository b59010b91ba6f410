package logic_test

import (
	"fmt"
	"testing"

	"github.com/brunokim/rewrite-search/logic"

	"github.com/google/go-cmp/cmp"
)

func TestLess(t *testing.T) {
	order := []logic.Term{
		var_("A"),
		var_("Z"),
		int_(-1),
		int_(1),
		int_(9),
		atom("a"),
		atom("a1"),
		atom("z"),
		comp("f"),
		comp("g"),
		comp("f", atom("a")),
		comp("f", atom("z")),
		comp("g", atom("a")),
		comp("f", atom("a"), atom("a")),
	}
	for i := 0; i < len(order)-1; i++ {
		if !logic.Less(order[i], order[i+1]) {
			t.Errorf("%v >= %v", order[i], order[i+1])
		}
	}
}

func TestEq(t *testing.T) {
	tests := []struct {
		x, y logic.Term
		want bool
	}{
		{atom("a"), atom("a"), true},
		{int_(1), int_(1), true},
		{atom("1"), int_(1), false},
		{var_("X"), atom("X"), false},
		{comp("f", int_(1)), comp("f", int_(1)), true},
		{comp("f", int_(1)), comp("f", int_(2)), false},
		{comp("f"), atom("f"), false},
	}
	for _, test := range tests {
		if got := logic.Eq(test.x, test.y); got != test.want {
			t.Errorf("Eq(%v, %v) = %t, want %t", test.x, test.y, got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		term fmt.Stringer
		want string
	}{
		{atom("a"), "a"},
		{atom("+"), "+"},
		{atom("=<"), "=<"},
		{atom("Upper"), "'Upper'"},
		{atom("1"), "'1'"},
		{atom("it's"), `'it\'s'`},
		{atom(""), "''"},
		{int_(-3), "-3"},
		{var_("A"), "A"},
		{comp("f"), "f()"},
		{comp("f", var_("A")), "f(A)"},
		{comp("+", int_(1), var_("B")), "+(1, B)"},
		{comp("Big", atom("x")), "'Big'(x)"},
	}
	for _, test := range tests {
		if got := test.term.String(); got != test.want {
			t.Errorf("%#v.String() = %q (!= %q)", test.term, got, test.want)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		term logic.Term
		want string
	}{
		{atom("a"), "a"},
		{int_(12), "12"},
		{atom("12"), "'12'"},
		{var_("X"), "X"},
		{atom("X"), "'X'"},
		{comp("f", int_(1), comp("g", atom("a"))), "f(1,g(a))"},
		{comp("+", int_(1), int_(2)), "+(1,2)"},
	}
	for _, test := range tests {
		if got := logic.Key(test.term); got != test.want {
			t.Errorf("Key(%v) = %q, want %q", test.term, got, test.want)
		}
	}
}

func TestKey_DistinctTerms(t *testing.T) {
	terms := []logic.Term{
		atom("a"), atom("'a'"), atom("1"), int_(1), int_(-1), atom("-1"),
		var_("A"), atom("A"), comp("a"), comp("a", atom("a")),
		comp("f", atom("a,b")), comp("f", atom("a"), atom("b")),
	}
	seen := make(map[string]logic.Term)
	for _, term := range terms {
		key := logic.Key(term)
		if prev, ok := seen[key]; ok {
			t.Errorf("%#v and %#v share key %q", prev, term, key)
		}
		seen[key] = term
	}
}

func TestVars(t *testing.T) {
	term := comp("f", var_("X"), comp("g", var_("Y"), var_("X")), atom("a"))
	want := []logic.Var{var_("X"), var_("Y")}
	if diff := cmp.Diff(want, logic.Vars(term)); diff != "" {
		t.Errorf("Vars(%v): (-want, +got)\n%s", term, diff)
	}
	if logic.Vars(comp("f", int_(1))) != nil {
		t.Errorf("Vars of ground term should be nil")
	}
	if !logic.IsGround(comp("f", int_(1))) || logic.IsGround(term) {
		t.Errorf("IsGround mismatch")
	}
}

func TestPositions(t *testing.T) {
	term := comp("f", atom("a"), comp("g", int_(1), int_(2)))
	var got []string
	logic.Walk(term, func(p logic.Position, sub logic.Term) {
		got = append(got, fmt.Sprintf("%v:%v", p, sub))
	})
	want := []string{
		"[]:f(a, g(1, 2))",
		"[0]:a",
		"[1]:g(1, 2)",
		"[1,0]:1",
		"[1,1]:2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk: (-want, +got)\n%s", diff)
	}

	sub, ok := logic.At(term, logic.Position{1, 1})
	if !ok || !logic.Eq(sub, int_(2)) {
		t.Errorf("At([1,1]) = %v, %t", sub, ok)
	}
	if _, ok := logic.At(term, logic.Position{0, 0}); ok {
		t.Errorf("At([0,0]) should not exist")
	}

	replaced := logic.Replace(term, logic.Position{1, 0}, atom("z"))
	if want := comp("f", atom("a"), comp("g", atom("z"), int_(2))); !logic.Eq(replaced, want) {
		t.Errorf("Replace: got %v, want %v", replaced, want)
	}
	if want := comp("f", atom("a"), comp("g", int_(1), int_(2))); !logic.Eq(term, want) {
		t.Errorf("Replace mutated the original term: %v", term)
	}
}
