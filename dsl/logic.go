// Package dsl has short constructors for terms, rules and equations.
package dsl

import (
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/rules"
)

func Terms(terms ...logic.Term) []logic.Term {
	return terms
}

func Atom(name string) logic.Atom {
	return logic.Atom{Name: name}
}

func Int(i int) logic.Int {
	return logic.Int{Value: i}
}

func Var(name string) logic.Var {
	return logic.NewVar(name)
}

func Comp(functor string, args ...logic.Term) *logic.Comp {
	return logic.NewComp(functor, args...)
}

func Pos(idxs ...int) logic.Position {
	return logic.Position(idxs)
}

// ----

// Rule returns a one-directional, unconditional rule.
func Rule(name string, from, to logic.Term) rules.Rule {
	return rules.Rule{Name: name, From: from, To: to}
}

// Symm returns a rule that may also be applied from right to left.
func Symm(name string, from, to logic.Term) rules.Rule {
	return rules.Rule{Name: name, From: from, To: to, Symmetric: true}
}

// Catalogue builds a catalogue, panicking on invalid rules.
func Catalogue(rs ...rules.Rule) *rules.Catalogue {
	c, err := rules.NewCatalogue(rs...)
	if err != nil {
		panic(err)
	}
	return c
}
