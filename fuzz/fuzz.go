package fuzz

import (
	"fmt"

	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/parser"
)

// Fuzz parses data as an equations file, and checks that every equation parses back
// from its printed form into the same terms.
func Fuzz(data []byte) int {
	eqs, err := parser.ParseEquations(string(data))
	if err != nil {
		return 0
	}
	for _, eq := range eqs {
		text := eq.String()
		got, err := parser.ParseEquation(text)
		if err != nil {
			panic(fmt.Sprintf("printed equation %q doesn't parse: %v", text, err))
		}
		if logic.Key(got.Lhs) != logic.Key(eq.Lhs) || logic.Key(got.Rhs) != logic.Key(eq.Rhs) {
			panic(fmt.Sprintf("round trip of %q: got %v", text, got))
		}
	}
	return 1
}
