package rules

import (
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/parser"
)

// hclFile is the schema of a catalogue file.
type hclFile struct {
	Rules []*hclRule `hcl:"rule,block"`
}

// hclRule is a rule block. Patterns are written in term syntax, and conditions and
// bindings are HCL expressions over the pattern variables.
//
//	rule "succ" {
//	  from = "N"
//	  to   = "M"
//	  when = N < 3
//	  let  = { M = N + 1 }
//	}
type hclRule struct {
	Name      string         `hcl:"name,label"`
	From      string         `hcl:"from"`
	To        string         `hcl:"to"`
	When      hcl.Expression `hcl:"when,optional"`
	Let       hcl.Expression `hcl:"let,optional"`
	Symmetric bool           `hcl:"symmetric,optional"`
}

// functions available to conditions and bindings.
var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"strlen": stdlib.StrlenFunc,
}

// LoadHCL decodes a catalogue from HCL source. filename is only used in messages.
func LoadHCL(src []byte, filename string) (*Catalogue, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.New("failed to parse %s: %v", filename, diags)
	}
	return decodeFile(f, filename)
}

// LoadFiles decodes a catalogue from every file in order.
func LoadFiles(paths ...string) (*Catalogue, error) {
	p := hclparse.NewParser()
	var rules []Rule
	for _, path := range paths {
		f, diags := p.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, errors.New("failed to parse %s: %v", path, diags)
		}
		c, err := decodeFile(f, path)
		if err != nil {
			return nil, err
		}
		rules = append(rules, c.rules...)
	}
	return NewCatalogue(rules...)
}

func decodeFile(f *hcl.File, filename string) (*Catalogue, error) {
	var root hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, errors.New("failed to decode %s: %v", filename, diags)
	}
	rules := make([]Rule, 0, len(root.Rules))
	for _, hr := range root.Rules {
		r, err := hr.rule()
		if err != nil {
			return nil, errors.New("%s: rule %q: %v", filename, hr.Name, err)
		}
		rules = append(rules, r)
	}
	c, err := NewCatalogue(rules...)
	if err != nil {
		return nil, errors.New("%s: %v", filename, err)
	}
	return c, nil
}

func (hr *hclRule) rule() (Rule, error) {
	from, err := parser.ParseTerm(hr.From)
	if err != nil {
		return Rule{}, errors.New("from: %v", err)
	}
	to, err := parser.ParseTerm(hr.To)
	if err != nil {
		return Rule{}, errors.New("to: %v", err)
	}
	r := Rule{Name: hr.Name, From: from, To: to, Symmetric: hr.Symmetric}
	if !isAbsent(hr.When) {
		r.When = exprCondition{hr.When}
	}
	if !isAbsent(hr.Let) {
		b, err := newExprBinder(hr.Let)
		if err != nil {
			return Rule{}, err
		}
		r.Let = b
	}
	return r, nil
}

// isAbsent returns whether an optional attribute was omitted. gohcl fills omitted
// expression fields with a static null.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

func evalContext(b Bindings) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(b))
	for x, t := range b {
		vars[x.Name] = toCty(t)
	}
	return &hcl.EvalContext{Variables: vars, Functions: functions}
}

func toCty(t logic.Term) cty.Value {
	switch t := t.(type) {
	case logic.Int:
		return cty.NumberIntVal(int64(t.Value))
	case logic.Atom:
		// Quoted, so that the value parses back into the same atom.
		return cty.StringVal(logic.FormatAtom(t.Name))
	default:
		return cty.StringVal(t.String())
	}
}

func fromCty(v cty.Value) (logic.Term, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, errors.New("value is not known")
	}
	switch v.Type() {
	case cty.Number:
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return nil, errors.New("%s is not a whole number", bf.Text('g', 10))
		}
		i, acc := bf.Int64()
		if acc != big.Exact {
			return nil, errors.New("%s is out of range", bf.Text('g', 10))
		}
		return logic.Int{Value: int(i)}, nil
	case cty.String:
		return parser.ParseTerm(v.AsString())
	case cty.Bool:
		if v.True() {
			return logic.Atom{Name: "true"}, nil
		}
		return logic.Atom{Name: "false"}, nil
	}
	return nil, errors.New("unsupported value of type %s", v.Type().FriendlyName())
}

// exprCondition is a condition written as an HCL expression.
type exprCondition struct {
	expr hcl.Expression
}

func (c exprCondition) Holds(b Bindings) (bool, error) {
	v, diags := c.expr.Value(evalContext(b))
	if diags.HasErrors() {
		return false, diags
	}
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.Bool {
		return false, errors.New("condition must be a bool, got %s", v.Type().FriendlyName())
	}
	return v.True(), nil
}

// exprBinder computes bindings from an HCL object expression, like { M = N + 1 }.
type exprBinder struct {
	expr hcl.Expression
	vars []logic.Var
}

func newExprBinder(expr hcl.Expression) (exprBinder, error) {
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return exprBinder{}, errors.New("let: %v", diags)
	}
	b := exprBinder{expr: expr}
	for _, pair := range pairs {
		name := hcl.ExprAsKeyword(pair.Key)
		if !logic.IsVar(name) {
			return exprBinder{}, errors.New("let: key %s is not a variable name", pair.Key.Range())
		}
		b.vars = append(b.vars, logic.NewVar(name))
	}
	return b, nil
}

func (e exprBinder) Binds() []logic.Var {
	return e.vars
}

func (e exprBinder) Bind(b Bindings) (Bindings, error) {
	v, diags := e.expr.Value(evalContext(b))
	if diags.HasErrors() {
		return nil, diags
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, errors.New("let must be an object, got %s", v.Type().FriendlyName())
	}
	out := make(Bindings, len(e.vars))
	for it := v.ElementIterator(); it.Next(); {
		k, val := it.Element()
		name := k.AsString()
		if !logic.IsVar(name) {
			return nil, errors.New("let: %q is not a variable name", name)
		}
		t, err := fromCty(val)
		if err != nil {
			return nil, errors.New("let %s: %v", name, err)
		}
		out[logic.NewVar(name)] = t
	}
	return out, nil
}
