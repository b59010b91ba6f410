package search_test

import (
	"fmt"
	"strconv"

	"github.com/brunokim/rewrite-search/search"
)

// just is a rule name, possibly applied in reverse.
type just struct {
	rule     string
	reversed bool
}

func (j just) String() string {
	if j.reversed {
		return "<-" + j.rule
	}
	return j.rule
}

func (j just) Inverse() search.Justification {
	return just{j.rule, !j.reversed}
}

// eq is a proof that lhs = rhs.
type eq struct {
	lhs, rhs int
	text     string
}

type intRule struct {
	name  string
	apply func(n int) (int, bool)
}

var (
	succ = intRule{"succ", func(n int) (int, bool) { return n + 1, n < 3 }}
	pred = intRule{"pred", func(n int) (int, bool) { return n - 1, n > 0 }}
	dbl  = intRule{"dbl", func(n int) (int, bool) { return 2 * n, n > 0 && n < 20 }}
	inc  = intRule{"inc", func(n int) (int, bool) { return n + 1, n < 50 }}
	// swap exchanges 0 and 1.
	swap = intRule{"swap", func(n int) (int, bool) {
		switch n {
		case 0:
			return 1, true
		case 1:
			return 0, true
		}
		return 0, false
	}}
)

// intHost rewrites integers with a list of rules. It records every proof built and
// every broken transitivity chain.
type intHost struct {
	rules  []intRule
	fail   map[int]error
	built  int
	broken []string
}

func newHost(rules ...intRule) *intHost {
	return &intHost{rules: rules}
}

func (h *intHost) Key(n int) string {
	return strconv.Itoa(n)
}

func (h *intHost) Rewrites(n int) ([]search.Rewrite[int, eq], error) {
	if err, ok := h.fail[n]; ok {
		return nil, err
	}
	var rws []search.Rewrite[int, eq]
	for _, r := range h.rules {
		m, ok := r.apply(n)
		if !ok {
			continue
		}
		name := r.name
		rws = append(rws, search.Rewrite[int, eq]{
			Term: m,
			Proof: func() eq {
				h.built++
				return eq{n, m, fmt.Sprintf("%s(%d)", name, n)}
			},
			How: just{rule: name},
		})
	}
	return rws, nil
}

func (h *intHost) Refl(n int) eq {
	return eq{n, n, fmt.Sprintf("refl(%d)", n)}
}

func (h *intHost) Symm(p eq) eq {
	return eq{p.rhs, p.lhs, fmt.Sprintf("symm(%s)", p.text)}
}

func (h *intHost) Trans(p, q eq) eq {
	if p.rhs != q.lhs {
		h.broken = append(h.broken, fmt.Sprintf("trans(%s, %s)", p.text, q.text))
	}
	return eq{p.lhs, q.rhs, fmt.Sprintf("trans(%s, %s)", p.text, q.text)}
}

// stepStrings formats steps for comparisons.
func stepStrings(steps []search.RewriteStep[int]) []string {
	var s []string
	for _, step := range steps {
		s = append(s, step.String())
	}
	return s
}
