package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/brunokim/rewrite-search/dsl"
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/parser"
	"github.com/brunokim/rewrite-search/test_helpers"

	"github.com/google/go-cmp/cmp"
)

var (
	atom = dsl.Atom
	int_ = dsl.Int
	var_ = dsl.Var
	comp = dsl.Comp
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want logic.Term
	}{
		{`a`, atom("a")},
		{`  a`, atom("a")},
		{` a  `, atom("a")},
		{`word`, atom("word")},
		{`word_`, atom("word_")},
		{`word123`, atom("word123")},
		{`'word123'`, atom("word123")},
		{`'word 123'`, atom("word 123")},
		{`'word\n123'`, atom("word\n123")},
		{`'word\'123'`, atom("word'123")},
		{`'Upper'`, atom("Upper")},
		{`+`, atom("+")},
		{`=<`, atom("=<")},
		{`123`, int_(123)},
		{`-12`, int_(-12)},
		{`X`, var_("X")},
		{`X123`, var_("X123")},
		{`X_1`, var_("X_1")},
		{`_a_1__`, var_("_a_1__")},
		{`f()`, comp("f")},
		{`f( )`, comp("f")},
		{`f(1 )`, comp("f", int_(1))},
		{`f( 1)`, comp("f", int_(1))},
		{`f( 1, )`, comp("f", int_(1))},
		{`f(1,)`, comp("f", int_(1))},
		{`edge(1, 2)`, comp("edge", int_(1), int_(2))},
		{`edge(1,2,)`, comp("edge", int_(1), int_(2))},
		{`f(g(1))`, comp("f", comp("g", int_(1)))},
		{`+(1, X)`, comp("+", int_(1), var_("X"))},
		{`'my f'(a)`, comp("my f", atom("a"))},
		{"f(a, % comment\n b)", comp("f", atom("a"), atom("b"))},
	}
	for _, test := range tests {
		got, err := parser.ParseTerm(test.text)
		if err != nil {
			t.Fatalf("%q: got err: %v", test.text, err)
		}
		if diff := cmp.Diff(test.want, got, test_helpers.IgnoreUnexported); diff != "" {
			t.Errorf("%q: (-want, +got)\n%s", test.text, diff)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{``, `1:1: expected term, got end of input`},
		{`f(a`, `1:4: expected ',' or ')', got end of input`},
		{`f (a)`, `1:3: expected end of input, got punctuation "("`},
		{`'abc`, `1:1: unterminated quoted atom`},
		{`'a\qb'`, `1:4: unknown escape sequence \q`},
		{"f(a,\n  ,)", `2:3: expected term, got punctuation ","`},
		{`a b`, `1:3: expected end of input, got atom "b"`},
	}
	for _, test := range tests {
		_, err := parser.ParseTerm(test.text)
		if err == nil {
			t.Errorf("%q: want err %q, got nil", test.text, test.want)
			continue
		}
		var synErr *parser.SyntaxError
		if !errors.As(err, &synErr) {
			t.Errorf("%q: want *SyntaxError, got %T", test.text, err)
		}
		if err.Error() != test.want {
			t.Errorf("%q: want err %q, got %q", test.text, test.want, err)
		}
	}
}

func TestParseEquation(t *testing.T) {
	tests := []struct {
		text string
		want logic.Equation
	}{
		{`0 = 2`, logic.Equation{Lhs: int_(0), Rhs: int_(2)}},
		{`a=b.`, logic.Equation{Lhs: atom("a"), Rhs: atom("b")}},
		{`add(X, 0) = X`, logic.Equation{Lhs: comp("add", var_("X"), int_(0)), Rhs: var_("X")}},
		{`f(a)=g(b)`, logic.Equation{Lhs: comp("f", atom("a")), Rhs: comp("g", atom("b"))}},
		{`X=-1`, logic.Equation{Lhs: var_("X"), Rhs: int_(-1)}},
		{`=<(a,b)=-12.`, logic.Equation{Lhs: comp("=<", atom("a"), atom("b")), Rhs: int_(-12)}},
		{`-(1)=-1`, logic.Equation{Lhs: comp("-", int_(1)), Rhs: int_(-1)}},
	}
	for _, test := range tests {
		got, err := parser.ParseEquation(test.text)
		if err != nil {
			t.Fatalf("%q: got err: %v", test.text, err)
		}
		if diff := cmp.Diff(test.want, got, test_helpers.IgnoreUnexported); diff != "" {
			t.Errorf("%q: (-want, +got)\n%s", test.text, diff)
		}
	}
	if _, err := parser.ParseEquation(`a b`); err == nil {
		t.Errorf("want error for missing '='")
	}
}

func TestParseEquations(t *testing.T) {
	text := test_helpers.Dedent(`
        % Peano arithmetic
        add(z, s(z)) = s(z).
        0 = 2.  % trailing comment
        f(X) = f(X).
    `)
	got, err := parser.ParseEquations(text)
	if err != nil {
		t.Fatalf("got err: %v", err)
	}
	var lines []string
	for _, eq := range got {
		lines = append(lines, eq.String())
	}
	want := []string{"add(z, s(z)) = s(z)", "0 = 2", "f(X) = f(X)"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	_, err = parser.ParseEquations("a = b\nc = d.")
	if err == nil || !strings.HasPrefix(err.Error(), "2:1:") {
		t.Errorf("want error at 2:1, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	terms := []logic.Term{
		atom("a"),
		atom("Upper"),
		atom("it's"),
		atom("two\nlines"),
		atom(""),
		atom("+"),
		int_(-7),
		comp("f", var_("X"), comp("'q'", atom("1"))),
		comp("+", int_(1), comp("*", int_(2), int_(3))),
	}
	for _, term := range terms {
		for _, text := range []string{term.String(), logic.Key(term)} {
			got, err := parser.ParseTerm(text)
			if err != nil {
				t.Errorf("%q: got err: %v", text, err)
				continue
			}
			if !logic.Eq(term, got) {
				t.Errorf("%q: round trip got %v", text, got)
			}
		}
	}
}
