// Package parser reads terms and equations written in the syntax printed by package logic.
//
//	term     := int | var | atom | atom '(' [term {',' term} [',']] ')'
//	equation := term '=' term
//	file     := {equation '.'}
//
// Atoms are lowercase identifiers, runs of symbol characters (like '+' or '=<'), or
// single-quoted text. A symbol run ends before a minus sign that starts a negative
// integer, so "X=-1" is the equation X = -1. A compound term's functor must be immediately followed by '(',
// without whitespace. '%' starts a comment that runs until the end of line.
package parser

import (
	"fmt"
	"strconv"

	"github.com/brunokim/rewrite-search/logic"
)

// SyntaxError describes a parse failure at a 1-based line and column.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", err.Line, err.Col, err.Msg)
}

type parser struct {
	lex *lexer
	tok token
}

func newParser(text string) *parser {
	p := &parser{lex: newLexer(text)}
	p.tok = p.lex.next()
	return p
}

func (p *parser) advance() token {
	tok := p.tok
	p.tok = p.lex.next()
	return tok
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.lex.errorf(p.tok.line, p.tok.col, format, args...)
}

func (p *parser) expect(kind tokenKind, text string) {
	if !p.tok.is(kind, text) {
		p.errorf("expected %q, got %v", text, p.tok)
	}
	p.advance()
}

func (p *parser) expectEOF() {
	if p.tok.kind != tokEOF {
		p.errorf("expected end of input, got %v", p.tok)
	}
}

// run calls fn, converting a panicking *SyntaxError into a returned error.
func run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			synErr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = synErr
		}
	}()
	fn()
	return nil
}

// ---- grammar

func (p *parser) term() logic.Term {
	tok := p.tok
	switch tok.kind {
	case tokInt:
		p.advance()
		i, err := strconv.Atoi(tok.text)
		if err != nil {
			p.lex.errorf(tok.line, tok.col, "invalid int %q: %v", tok.text, err)
		}
		return logic.Int{Value: i}
	case tokVar:
		p.advance()
		return logic.Var{Name: tok.text}
	case tokAtom:
		p.advance()
		if p.tok.is(tokPunct, "(") && !p.tok.spaced {
			p.advance()
			return logic.NewComp(tok.text, p.args()...)
		}
		return logic.Atom{Name: tok.text}
	}
	p.errorf("expected term, got %v", tok)
	return nil
}

// args parses the arguments of a comp, after its opening parenthesis.
func (p *parser) args() []logic.Term {
	var args []logic.Term
	for {
		if p.tok.is(tokPunct, ")") {
			p.advance()
			return args
		}
		args = append(args, p.term())
		if p.tok.is(tokPunct, ",") {
			p.advance()
			continue
		}
		if !p.tok.is(tokPunct, ")") {
			p.errorf("expected ',' or ')', got %v", p.tok)
		}
	}
}

func (p *parser) equation() logic.Equation {
	lhs := p.term()
	p.expect(tokAtom, "=")
	rhs := p.term()
	return logic.Equation{Lhs: lhs, Rhs: rhs}
}

// ---- parse functions

// ParseTerm parses a single term.
func ParseTerm(text string) (logic.Term, error) {
	var t logic.Term
	err := run(func() {
		p := newParser(text)
		t = p.term()
		p.expectEOF()
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ParseEquation parses a single equation 'lhs = rhs', optionally terminated by '.'.
func ParseEquation(text string) (logic.Equation, error) {
	var eq logic.Equation
	err := run(func() {
		p := newParser(text)
		eq = p.equation()
		if p.tok.is(tokPunct, ".") {
			p.advance()
		}
		p.expectEOF()
	})
	return eq, err
}

// ParseEquations parses a sequence of equations, each terminated by '.'.
func ParseEquations(text string) ([]logic.Equation, error) {
	var eqs []logic.Equation
	err := run(func() {
		p := newParser(text)
		for p.tok.kind != tokEOF {
			eqs = append(eqs, p.equation())
			p.expect(tokPunct, ".")
		}
	})
	if err != nil {
		return nil, err
	}
	return eqs, nil
}
