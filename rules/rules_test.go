package rules_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/brunokim/rewrite-search/dsl"
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/proof"
	"github.com/brunokim/rewrite-search/rules"
	"github.com/brunokim/rewrite-search/test_helpers"

	"github.com/google/go-cmp/cmp"
)

var (
	atom = dsl.Atom
	int_ = dsl.Int
	var_ = dsl.Var
	comp = dsl.Comp
	pos  = dsl.Pos
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, term logic.Term
		want          rules.Bindings
		wantOk        bool
	}{
		{atom("a"), atom("a"), rules.Bindings{}, true},
		{atom("a"), atom("b"), nil, false},
		{int_(1), int_(1), rules.Bindings{}, true},
		{int_(1), atom("1"), nil, false},
		{var_("X"), comp("f", atom("a")), rules.Bindings{var_("X"): comp("f", atom("a"))}, true},
		{
			comp("add", var_("X"), int_(0)),
			comp("add", comp("s", atom("z")), int_(0)),
			rules.Bindings{var_("X"): comp("s", atom("z"))},
			true,
		},
		{comp("add", var_("X"), int_(0)), comp("add", atom("a"), int_(1)), nil, false},
		{comp("f", var_("X"), var_("X")), comp("f", atom("a"), atom("a")), rules.Bindings{var_("X"): atom("a")}, true},
		{comp("f", var_("X"), var_("X")), comp("f", atom("a"), atom("b")), nil, false},
		{comp("f", var_("X")), comp("g", atom("a")), nil, false},
		{comp("f", var_("X")), comp("f", atom("a"), atom("b")), nil, false},
		// Variables in the term are constants.
		{atom("a"), var_("Y"), nil, false},
		{var_("X"), var_("Y"), rules.Bindings{var_("X"): var_("Y")}, true},
	}
	for _, test := range tests {
		got, ok := rules.Match(test.pattern, test.term, nil)
		if ok != test.wantOk {
			t.Errorf("Match(%v, %v): got ok=%v, want %v", test.pattern, test.term, ok, test.wantOk)
			continue
		}
		if diff := cmp.Diff(test.want, got, test_helpers.IgnoreUnexported); diff != "" {
			t.Errorf("Match(%v, %v): (-want, +got)\n%s", test.pattern, test.term, diff)
		}
	}
}

func TestMatch_DoesNotModifyBindings(t *testing.T) {
	b := rules.Bindings{var_("X"): atom("a")}
	got, ok := rules.Match(comp("f", var_("X"), var_("Y")), comp("f", atom("a"), atom("b")), b)
	if !ok {
		t.Fatalf("Match: want ok")
	}
	if len(b) != 1 || len(got) != 2 {
		t.Errorf("got input %v and output %v", b, got)
	}
}

func TestSubst(t *testing.T) {
	b := rules.Bindings{var_("X"): atom("a"), var_("Y"): comp("g", int_(1))}
	got, err := rules.Subst(comp("f", var_("X"), comp("h", var_("Y"), var_("X"))), b)
	if err != nil {
		t.Fatal(err)
	}
	want := comp("f", atom("a"), comp("h", comp("g", int_(1)), atom("a")))
	if !logic.Eq(got, want) {
		t.Errorf("Subst: got %v, want %v", got, want)
	}
	if _, err := rules.Subst(comp("f", var_("Z")), b); err == nil {
		t.Errorf("Subst with unbound variable: want err")
	}
}

func TestBindings_String(t *testing.T) {
	b := rules.Bindings{var_("Y"): int_(2), var_("X"): comp("f", atom("a"))}
	if got, want := b.String(), "{X = f(a), Y = 2}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	let := rules.BindFunc(func(b rules.Bindings) (rules.Bindings, error) { return nil, nil })
	tests := []struct {
		desc string
		rule rules.Rule
	}{
		{"empty name", rules.Rule{From: atom("a"), To: atom("b")}},
		{"missing pattern", rules.Rule{Name: "r", From: atom("a")}},
		{"unbound var", dsl.Rule("r", comp("f", var_("X")), var_("Y"))},
		{"symmetric unbound var", dsl.Symm("r", comp("f", var_("X"), var_("Y")), comp("g", var_("X")))},
		{"symmetric with let", rules.Rule{Name: "r", From: var_("X"), To: var_("X"), Let: let, Symmetric: true}},
	}
	for _, test := range tests {
		if err := test.rule.Validate(); !errors.Is(err, rules.ErrInvalidRule) {
			t.Errorf("%s: got %v, want ErrInvalidRule", test.desc, err)
		}
	}
	valid := []rules.Rule{
		dsl.Rule("r", comp("f", var_("X")), var_("X")),
		dsl.Symm("comm", comp("add", var_("X"), var_("Y")), comp("add", var_("Y"), var_("X"))),
		// Undeclared let bindings are checked on substitution.
		{Name: "r", From: var_("X"), To: var_("Y"), Let: let},
	}
	for _, r := range valid {
		if err := r.Validate(); err != nil {
			t.Errorf("%v: got %v", r, err)
		}
	}
}

func TestNewCatalogue_Duplicate(t *testing.T) {
	_, err := rules.NewCatalogue(
		dsl.Rule("r", atom("a"), atom("b")),
		dsl.Rule("r", atom("b"), atom("c")))
	if !errors.Is(err, rules.ErrInvalidRule) {
		t.Errorf("got %v, want ErrInvalidRule", err)
	}
}

func TestConcat(t *testing.T) {
	c1 := dsl.Catalogue(dsl.Rule("r1", atom("a"), atom("b")))
	c2 := dsl.Catalogue(dsl.Rule("r2", atom("b"), atom("c")))
	c, err := rules.Concat(c1, c2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("Len: got %d", c.Len())
	}
	if _, ok := c.Rule("r2"); !ok {
		t.Errorf("Rule(r2) not found")
	}
	if _, err := rules.Concat(c1, c1); err == nil {
		t.Errorf("Concat with duplicates: want err")
	}
}

var arith = dsl.Catalogue(
	dsl.Rule("add_zero", comp("add", var_("X"), int_(0)), var_("X")),
	dsl.Symm("comm", comp("add", var_("X"), var_("Y")), comp("add", var_("Y"), var_("X"))),
)

func describe(c *rules.Catalogue, term logic.Term) ([]string, error) {
	rws, err := c.Rewrites(term)
	if err != nil {
		return nil, err
	}
	var got []string
	for _, rw := range rws {
		got = append(got, fmt.Sprintf("%v  %v", rw.Term, rw.How))
	}
	return got, nil
}

func TestRewrites(t *testing.T) {
	term := comp("add", atom("a"), comp("add", atom("b"), int_(0)))
	got, err := describe(arith, term)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"add(add(b, 0), a)  comm at []",
		"add(add(b, 0), a)  <-comm at []",
		"add(a, b)  add_zero at [1]",
		"add(a, add(0, b))  comm at [1]",
		"add(a, add(0, b))  <-comm at [1]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestRewrites_ProofsVerify(t *testing.T) {
	term := comp("add", atom("a"), comp("add", atom("b"), int_(0)))
	rws, err := arith.Rewrites(term)
	if err != nil {
		t.Fatal(err)
	}
	for _, rw := range rws {
		p := rw.Proof()
		if err := proof.CheckEquation(p, term, rw.Term, arith); err != nil {
			t.Errorf("%v: %v", rw.How, err)
		}
		if err := proof.CheckEquation(proof.NewSymm(p), rw.Term, term, arith); err != nil {
			t.Errorf("symm %v: %v", rw.How, err)
		}
		for _, s := range proof.Steps(proof.NewSymm(p)) {
			if err := arith.VerifyStep(s); err != nil {
				t.Errorf("flipped %v: %v", rw.How, err)
			}
		}
	}
}

var succ = rules.Rule{
	Name: "succ",
	From: var_("N"),
	To:   var_("M"),
	When: rules.CondFunc(func(b rules.Bindings) (bool, error) {
		n, ok := b[var_("N")].(logic.Int)
		if !ok {
			return false, fmt.Errorf("%v is not an int", b[var_("N")])
		}
		return n.Value < 3, nil
	}),
	Let: rules.BindFunc(func(b rules.Bindings) (rules.Bindings, error) {
		n := b[var_("N")].(logic.Int)
		return rules.Bindings{var_("M"): int_(n.Value + 1)}, nil
	}),
}

func TestRewrites_Guarded(t *testing.T) {
	c := dsl.Catalogue(succ)
	tests := []struct {
		term logic.Term
		want []string
	}{
		{int_(2), []string{"3  succ at []"}},
		{int_(3), nil},
		{atom("a"), nil},
		{comp("f", int_(0), atom("x")), []string{"f(1, x)  succ at [0]"}},
	}
	for _, test := range tests {
		got, err := describe(c, test.term)
		if err != nil {
			t.Errorf("%v: got err %v", test.term, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%v: (-want, +got)\n%s", test.term, diff)
		}
	}
}

func TestRewrites_BinderError(t *testing.T) {
	boom := errors.New("boom")
	c := dsl.Catalogue(rules.Rule{
		Name: "bad",
		From: atom("a"),
		To:   var_("X"),
		Let:  rules.BindFunc(func(rules.Bindings) (rules.Bindings, error) { return nil, boom }),
	})
	if _, err := c.Rewrites(comp("f", atom("a"))); !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
}

func TestRewrites_UnboundLet(t *testing.T) {
	c := dsl.Catalogue(rules.Rule{
		Name: "bad",
		From: atom("a"),
		To:   var_("X"),
		Let:  rules.BindFunc(func(rules.Bindings) (rules.Bindings, error) { return nil, nil }),
	})
	if _, err := c.Rewrites(atom("a")); err == nil {
		t.Errorf("want unbound variable error")
	}
}

func TestVerifyStep_Errors(t *testing.T) {
	tests := []struct {
		desc string
		step *proof.Step
	}{
		{"unknown rule", &proof.Step{Rule: "nope", Pos: pos(), From: atom("a"), To: atom("a")}},
		{"bad position", &proof.Step{Rule: "add_zero", Pos: pos(3), From: atom("a"), To: atom("a")}},
		{"does not apply", &proof.Step{Rule: "add_zero", Pos: pos(), From: atom("a"), To: atom("a")}},
		{
			"wrong result",
			&proof.Step{Rule: "add_zero", Pos: pos(), From: comp("add", atom("a"), int_(0)), To: atom("b")},
		},
		{
			"wrong direction",
			&proof.Step{Rule: "add_zero", Reversed: true, Pos: pos(), From: comp("add", atom("a"), int_(0)), To: atom("a")},
		},
	}
	for _, test := range tests {
		if err := arith.VerifyStep(test.step); err == nil {
			t.Errorf("%s: want err", test.desc)
		}
	}
	ok := &proof.Step{Rule: "add_zero", Reversed: true, Pos: pos(1), From: comp("f", atom("b"), atom("a")), To: comp("f", atom("b"), comp("add", atom("a"), int_(0)))}
	if err := arith.VerifyStep(ok); err != nil {
		t.Errorf("reversed step: %v", err)
	}
}

func ExampleCatalogue_Rewrites() {
	c := dsl.Catalogue(
		dsl.Rule("add_zero", comp("add", var_("X"), int_(0)), var_("X")),
		dsl.Symm("comm", comp("add", var_("X"), var_("Y")), comp("add", var_("Y"), var_("X"))),
	)
	rws, _ := c.Rewrites(comp("add", int_(0), atom("x")))
	for _, rw := range rws {
		fmt.Printf("%v by %v\n", rw.Term, rw.How)
	}
	// Output:
	// add(x, 0) by comm at []
	// add(x, 0) by <-comm at []
}
