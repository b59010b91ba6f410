package rules

import (
	"go.uber.org/zap"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/proof"
	"github.com/brunokim/rewrite-search/search"
)

// How identifies a rule application, and is the justification of rewrites found by a
// Catalogue.
type How struct {
	Rule     string
	Reversed bool
	Pos      logic.Position
}

func (h How) String() string {
	return proof.FormatJustification(h.Rule, h.Reversed, h.Pos)
}

// Inverse returns the application in the opposite direction.
func (h How) Inverse() search.Justification {
	return How{Rule: h.Rule, Reversed: !h.Reversed, Pos: h.Pos}
}

// Catalogue is an ordered list of rules with unique names.
type Catalogue struct {
	rules  []Rule
	byName map[string]int
	logger *zap.Logger
}

// NewCatalogue validates rules and returns a catalogue applying them in order.
func NewCatalogue(rules ...Rule) (*Catalogue, error) {
	c := &Catalogue{
		byName: make(map[string]int),
		logger: zap.NewNop(),
	}
	for _, r := range rules {
		if err := c.add(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalogue) add(r Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, ok := c.byName[r.Name]; ok {
		return errors.New("%v: duplicate rule name %q", ErrInvalidRule, r.Name)
	}
	c.byName[r.Name] = len(c.rules)
	c.rules = append(c.rules, r)
	return nil
}

// Concat returns a catalogue with the rules of every catalogue, in order.
func Concat(cs ...*Catalogue) (*Catalogue, error) {
	var rules []Rule
	for _, c := range cs {
		rules = append(rules, c.rules...)
	}
	return NewCatalogue(rules...)
}

// WithLogger returns a copy of c that logs rule discovery to logger.
func (c *Catalogue) WithLogger(logger *zap.Logger) *Catalogue {
	c2 := *c
	c2.logger = logger
	return &c2
}

// Rules returns all rules in order. The slice must not be modified.
func (c *Catalogue) Rules() []Rule {
	return c.rules
}

// Len returns the number of rules.
func (c *Catalogue) Len() int {
	return len(c.rules)
}

// Rule returns the rule with the given name.
func (c *Catalogue) Rule(name string) (Rule, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// apply rewrites t with r in the given direction. It returns false if r doesn't
// apply to t.
func (c *Catalogue) apply(r Rule, reversed bool, t logic.Term) (logic.Term, bool, error) {
	src, dst := r.patterns(reversed)
	b, ok := Match(src, t, nil)
	if !ok {
		return nil, false, nil
	}
	if r.When != nil {
		holds, err := r.When.Holds(b)
		if err != nil {
			c.logger.Debug("condition not applicable",
				zap.String("rule", r.Name),
				zap.Stringer("term", t),
				zap.Error(err))
			return nil, false, nil
		}
		if !holds {
			return nil, false, nil
		}
	}
	if r.Let != nil && !reversed {
		extra, err := r.Let.Bind(b)
		if err != nil {
			return nil, false, errors.New("rule %s: binding %v: %v", r.Name, b, err)
		}
		for x, v := range extra {
			b[x] = v
		}
	}
	got, err := Subst(dst, b)
	if err != nil {
		return nil, false, errors.New("rule %s: %v", r.Name, err)
	}
	return got, true, nil
}

// Rewrites returns every rewrite of t by a single rule application.
//
// Positions are visited in pre-order, and for each position rules are tried in
// catalogue order, forwards then reversed.
func (c *Catalogue) Rewrites(t logic.Term) ([]search.Rewrite[logic.Term, proof.Proof], error) {
	var rws []search.Rewrite[logic.Term, proof.Proof]
	var err error
	logic.Walk(t, func(pos logic.Position, sub logic.Term) {
		if err != nil {
			return
		}
		for _, r := range c.rules {
			for _, reversed := range r.directions() {
				got, ok, err1 := c.apply(r, reversed, sub)
				if err1 != nil {
					err = err1
					return
				}
				if !ok {
					continue
				}
				step := &proof.Step{
					Rule:     r.Name,
					Reversed: reversed,
					Pos:      pos,
					From:     t,
					To:       logic.Replace(t, pos, got),
				}
				rws = append(rws, search.Rewrite[logic.Term, proof.Proof]{
					Term:  step.To,
					Proof: func() proof.Proof { return step },
					How:   How{Rule: r.Name, Reversed: reversed, Pos: pos},
				})
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return rws, nil
}

// VerifyStep checks that applying the step's rule forwards at Pos rewrites From
// into To, or To into From if the step is reversed.
func (c *Catalogue) VerifyStep(s *proof.Step) error {
	r, ok := c.Rule(s.Rule)
	if !ok {
		return errors.New("unknown rule %q", s.Rule)
	}
	from, to := s.From, s.To
	if s.Reversed {
		from, to = to, from
	}
	sub, ok := logic.At(from, s.Pos)
	if !ok {
		return errors.New("position %v not in %v", s.Pos, from)
	}
	got, ok, err := c.apply(r, false, sub)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("rule %s does not apply to %v", r.Name, sub)
	}
	if want := logic.Replace(from, s.Pos, got); !logic.Eq(want, to) {
		return errors.New("rule %s rewrites %v into %v, not %v", r.Name, from, want, to)
	}
	return nil
}
