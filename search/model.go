// Package search implements a bidirectional rewrite search between two terms.
//
// The search grows a graph from both sides of an equation at once: vertices reachable
// from the left-hand side are tagged Left, and those reachable from the right-hand side
// are tagged Right. Vertices are expanded in creation order by asking the Host for
// every rewrite of their term. As soon as a rewrite produces a term already seen on
// the opposite side, the search is solved, and a single proof is assembled by walking
// parent edges from the meeting point back to both roots.
//
// Terms (T) and proofs (P) are opaque to the search: every operation on them is
// delegated to the Host.
package search

import (
	"fmt"
)

// Side identifies from which root of the equation a vertex descends.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Justification describes why a term rewrites into another. The search only stores
// it, and inverts it when reporting steps discovered from the right-hand side.
type Justification interface {
	String() string
	Inverse() Justification
}

// Rewrite is a candidate produced by rule discovery: Term is equal to the rewritten
// term, as proven by Proof.
//
// Proof is only called for rewrites along the final path.
type Rewrite[T, P any] struct {
	Term  T
	Proof func() P
	How   Justification
}

// Host provides every operation over terms and proofs needed by the search.
type Host[T, P any] interface {
	// Key returns the canonical encoding of a term. Terms with the same key are the same.
	Key(t T) string
	// Rewrites returns all rewrites of t, in a deterministic order.
	Rewrites(t T) ([]Rewrite[T, P], error)
	// Refl returns a proof of t = t.
	Refl(t T) P
	// Symm returns a proof of b = a from a proof of a = b.
	Symm(p P) P
	// Trans returns a proof of a = c from proofs of a = b and b = c.
	Trans(p, q P) P
}

// NoParent is the parent of root vertices.
const NoParent = -1

// Vertex is a term in the search graph.
type Vertex[T any] struct {
	// ID is the vertex index in the graph.
	ID   int
	Term T
	Key  string
	Side Side
	// Parent is the index of the edge that created this vertex, or NoParent for roots.
	Parent int
}

// Edge is a rewrite from the term of vertex From into the term of vertex To.
type Edge[P any] struct {
	From, To int
	Proof    func() P
	How      Justification
}

// RewriteStep is a rewrite in the final chain, oriented from the left-hand side to the
// right-hand side of the equation.
type RewriteStep[T any] struct {
	From, To T
	How      Justification
}

func (s RewriteStep[T]) String() string {
	return fmt.Sprintf("%v -> %v (%s)", s.From, s.To, s.How)
}

// Stats counts the work done by a search.
type Stats struct {
	// Expanded is the number of vertices expanded.
	Expanded int
	// Vertices is the number of distinct terms discovered, including both roots.
	Vertices int
	// Edges is the number of parent edges, excluding the solving edge.
	Edges int
}

// Result is a successful search outcome.
type Result[T, P any] struct {
	// Proof is a proof of lhs = rhs.
	Proof P
	// Steps are the rewrites used by Proof, in order from lhs to rhs.
	Steps []RewriteStep[T]
	Stats Stats
}
