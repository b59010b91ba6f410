// Package proof implements certificates for equalities between terms.
//
// A certificate is a tree built from four constructors:
//
// * Refl: t = t.
//
// * Step: a single rule application at a position of a term.
//
// * Symm: b = a, given a proof of a = b.
//
// * Trans: a = c, given proofs of a = b and b = c.
//
// Certificates are built without validation, and checked afterwards with Check.
package proof

import (
	"fmt"
	"strings"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/logic"
)

// Proof is a certificate that Lhs() = Rhs().
type Proof interface {
	fmt.Stringer
	Lhs() logic.Term
	Rhs() logic.Term
}

// Refl proves that a term is equal to itself.
type Refl struct {
	Term logic.Term
}

// Step proves that From = To by applying a rule to the subterm of From at Pos.
//
// If Reversed, the rule was applied from its right-hand side to its left-hand side,
// so that applying it forwards to To at Pos yields From.
type Step struct {
	Rule     string
	Reversed bool
	Pos      logic.Position
	From, To logic.Term
}

// Symm proves b = a from a proof of a = b.
type Symm struct {
	Proof Proof
}

// Trans proves a = c from proofs of a = b and b = c.
type Trans struct {
	First, Second Proof
}

// ---- constructors

// NewRefl returns a reflexivity proof for t.
func NewRefl(t logic.Term) Proof {
	return &Refl{Term: t}
}

// NewSymm returns the symmetric of p, simplifying double symmetries and reflexivity.
func NewSymm(p Proof) Proof {
	switch q := p.(type) {
	case *Refl:
		return q
	case *Symm:
		return q.Proof
	}
	return &Symm{Proof: p}
}

// NewTrans chains p and q, dropping reflexivity proofs on either side.
func NewTrans(p, q Proof) Proof {
	if _, ok := p.(*Refl); ok {
		return q
	}
	if _, ok := q.(*Refl); ok {
		return p
	}
	return &Trans{First: p, Second: q}
}

// Flip returns the step going in the opposite direction.
func (s *Step) Flip() *Step {
	return &Step{Rule: s.Rule, Reversed: !s.Reversed, Pos: s.Pos, From: s.To, To: s.From}
}

// Justification describes the rule application, like "succ at [1]" or "<-comm at []".
func (s *Step) Justification() string {
	return FormatJustification(s.Rule, s.Reversed, s.Pos)
}

// FormatJustification formats a rule application.
func FormatJustification(rule string, reversed bool, pos logic.Position) string {
	prefix := ""
	if reversed {
		prefix = "<-"
	}
	return fmt.Sprintf("%s%s at %v", prefix, rule, pos)
}

// ---- endpoints

func (p *Refl) Lhs() logic.Term  { return p.Term }
func (p *Refl) Rhs() logic.Term  { return p.Term }
func (p *Step) Lhs() logic.Term  { return p.From }
func (p *Step) Rhs() logic.Term  { return p.To }
func (p *Symm) Lhs() logic.Term  { return p.Proof.Rhs() }
func (p *Symm) Rhs() logic.Term  { return p.Proof.Lhs() }
func (p *Trans) Lhs() logic.Term { return p.First.Lhs() }
func (p *Trans) Rhs() logic.Term { return p.Second.Rhs() }

// ---- String()

func (p *Refl) String() string {
	return fmt.Sprintf("refl(%v)", p.Term)
}

func (p *Step) String() string {
	return fmt.Sprintf("step(%s: %v -> %v)", p.Justification(), p.From, p.To)
}

func (p *Symm) String() string {
	return fmt.Sprintf("symm(%v)", p.Proof)
}

func (p *Trans) String() string {
	return fmt.Sprintf("trans(%v, %v)", p.First, p.Second)
}

// ---- Steps()

// Steps returns the rule applications of p in order from Lhs() to Rhs(). Steps under an
// odd number of symmetries are flipped.
func Steps(p Proof) []*Step {
	return appendSteps(nil, p, false)
}

func appendSteps(steps []*Step, p Proof, flipped bool) []*Step {
	switch q := p.(type) {
	case *Refl:
		return steps
	case *Step:
		if flipped {
			return append(steps, q.Flip())
		}
		return append(steps, q)
	case *Symm:
		return appendSteps(steps, q.Proof, !flipped)
	case *Trans:
		if flipped {
			steps = appendSteps(steps, q.Second, flipped)
			return appendSteps(steps, q.First, flipped)
		}
		steps = appendSteps(steps, q.First, flipped)
		return appendSteps(steps, q.Second, flipped)
	default:
		panic(fmt.Sprintf("proof.Steps: unhandled type %T", p))
	}
}

// Explain renders p as a chain of equalities, one rule application per line.
func Explain(p Proof) string {
	var b strings.Builder
	b.WriteString(p.Lhs().String())
	steps := Steps(p)
	if len(steps) == 0 {
		b.WriteString("\n  (by reflexivity)")
	}
	for _, step := range steps {
		fmt.Fprintf(&b, "\n  = %v    (%s)", step.To, step.Justification())
	}
	return b.String()
}

// ---- Check()

// StepVerifier checks that a single rule application is valid.
type StepVerifier interface {
	VerifyStep(s *Step) error
}

// ErrInvalidProof is matched by every error returned by Check.
const ErrInvalidProof = errors.Sentinel("invalid proof")

// Check validates every step of p with v, and that consecutive proofs in a Trans
// share their middle term.
func Check(p Proof, v StepVerifier) error {
	switch q := p.(type) {
	case *Refl:
		return nil
	case *Step:
		if err := v.VerifyStep(q); err != nil {
			return errors.New("%v: %v: %v", ErrInvalidProof, q, err)
		}
		return nil
	case *Symm:
		return Check(q.Proof, v)
	case *Trans:
		if mid1, mid2 := q.First.Rhs(), q.Second.Lhs(); !logic.Eq(mid1, mid2) {
			return errors.New("%v: trans middle terms differ: %v != %v", ErrInvalidProof, mid1, mid2)
		}
		if err := Check(q.First, v); err != nil {
			return err
		}
		return Check(q.Second, v)
	default:
		panic(fmt.Sprintf("proof.Check: unhandled type %T", p))
	}
}

// CheckEquation validates p with Check, and that it proves lhs = rhs.
func CheckEquation(p Proof, lhs, rhs logic.Term, v StepVerifier) error {
	if !logic.Eq(p.Lhs(), lhs) || !logic.Eq(p.Rhs(), rhs) {
		return errors.New("%v: proves %v = %v, want %v = %v", ErrInvalidProof, p.Lhs(), p.Rhs(), lhs, rhs)
	}
	return Check(p, v)
}
