package search

import (
	"github.com/brunokim/rewrite-search/errors"
)

const (
	// ErrInvalidVertexID means that a vertex id outside the graph was used. It denotes
	// a bug in the search, and is never expected.
	ErrInvalidVertexID = errors.Sentinel("invalid vertex id")
	// ErrMaxIterationsReached means that the expansion budget ran out before both
	// sides met. The search may succeed with a larger budget.
	ErrMaxIterationsReached = errors.Sentinel("search failed: budget exceeded")
	// ErrAllVerticesExplored means that every reachable term was expanded without
	// both sides meeting.
	ErrAllVerticesExplored = errors.Sentinel("search failed: exhausted reachable rewrites")
	// ErrEmptyProofList means that proof assembly received no proofs to combine. It
	// denotes a bug in the search, and is never expected.
	ErrEmptyProofList = errors.Sentinel("empty proof list")
)
