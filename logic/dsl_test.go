package logic_test

import (
	"github.com/brunokim/rewrite-search/dsl"
)

var (
	atom = dsl.Atom
	comp = dsl.Comp
	int_ = dsl.Int
	var_ = dsl.Var
)
