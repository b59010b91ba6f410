package search

import (
	"go.uber.org/zap"

	"github.com/brunokim/rewrite-search/errors"
)

// DefaultMaxIterations is the expansion budget used when none is configured.
const DefaultMaxIterations = 500

// Observer receives notifications about searches.
type Observer interface {
	// Expanded is called after each vertex expansion with the number of rewrites found.
	Expanded(rewrites int)
	// Finished is called once per search, with a nil error on success.
	Finished(stats Stats, err error)
}

type options struct {
	maxIterations int
	logger        *zap.Logger
	observer      Observer
}

// Option configures an Engine.
type Option func(*options)

// WithMaxIterations sets the maximum number of vertex expansions per search. Values
// below 1 are treated as 1.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.maxIterations = n
	}
}

// WithLogger sets the logger for debug traces of the search.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers an observer for every search run by the engine.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// Engine runs searches with a fixed host and configuration. It holds no per-search
// state, and may be used concurrently if the host allows it.
type Engine[T, P any] struct {
	host Host[T, P]
	opts options
}

// New returns an engine for host.
func New[T, P any](host Host[T, P], opts ...Option) *Engine[T, P] {
	o := options{
		maxIterations: DefaultMaxIterations,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T, P]{host: host, opts: o}
}

// MaxIterations returns the expansion budget of each search.
func (e *Engine[T, P]) MaxIterations() int {
	return e.opts.maxIterations
}

// FindProof searches for a proof that lhs = rhs.
//
// On failure, the returned Result still carries the search Stats, and the error
// matches ErrMaxIterationsReached, ErrAllVerticesExplored, or wraps an error from the
// host.
func (e *Engine[T, P]) FindProof(lhs, rhs T) (Result[T, P], error) {
	s := e.Start(lhs, rhs)
	s.Run()
	return s.Result()
}

// Start creates a search for lhs = rhs without expanding any vertex.
func (e *Engine[T, P]) Start(lhs, rhs T) *Search[T, P] {
	s := &Search[T, P]{
		host:  e.host,
		opts:  e.opts,
		lhs:   lhs,
		rhs:   rhs,
		graph: NewGraph[T, P](e.host.Key, lhs, rhs),
	}
	if s.graph.Trivial() {
		s.state = Solved
		s.opts.logger.Debug("trivial equation", zap.String("key", s.graph.vertices[0].Key))
	}
	return s
}

// State of a search.
type State int

const (
	Running State = iota
	Solved
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Solved:
		return "solved"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Search is a single run of the bidirectional search. It's not safe for concurrent use.
type Search[T, P any] struct {
	host     Host[T, P]
	opts     options
	lhs, rhs T
	graph    *Graph[T, P]
	next     int
	state    State
	err      error
	notified bool
}

// Graph returns the search graph as explored so far.
func (s *Search[T, P]) Graph() *Graph[T, P] {
	return s.graph
}

// State returns the current state.
func (s *Search[T, P]) State() State {
	return s.state
}

// Err returns the failure reason, or nil if the search didn't fail.
func (s *Search[T, P]) Err() error {
	return s.err
}

// Stats returns counters for the work done so far.
func (s *Search[T, P]) Stats() Stats {
	return Stats{
		Expanded: s.next,
		Vertices: s.graph.Len(),
		Edges:    len(s.graph.edges),
	}
}

// Step expands the next vertex, if the search is still running, and returns the new state.
func (s *Search[T, P]) Step() State {
	if s.state != Running {
		return s.state
	}
	i := s.next
	v := s.graph.vertices[i]
	rewrites, err := s.host.Rewrites(v.Term)
	if err != nil {
		return s.fail(errors.New("expanding %q: %v", v.Key, err))
	}
	s.opts.logger.Debug("expand",
		zap.Int("vertex", i),
		zap.Stringer("side", v.Side),
		zap.String("term", v.Key),
		zap.Int("rewrites", len(rewrites)))
	for _, rw := range rewrites {
		if err := s.graph.AddRewrite(i, rw); err != nil {
			return s.fail(err)
		}
	}
	s.next++
	if s.opts.observer != nil {
		s.opts.observer.Expanded(len(rewrites))
	}
	switch {
	case s.graph.solving != nil:
		s.state = Solved
		se := s.graph.solving
		s.opts.logger.Debug("sides met",
			zap.Int("from", se.From),
			zap.Int("to", se.To),
			zap.Stringer("how", se.How))
	case i+1 == s.opts.maxIterations:
		return s.fail(errors.New("%v (%d expansions)", ErrMaxIterationsReached, s.opts.maxIterations))
	case i+1 >= s.graph.Len():
		return s.fail(errors.New("%v (%d terms)", ErrAllVerticesExplored, s.graph.Len()))
	}
	return s.state
}

func (s *Search[T, P]) fail(err error) State {
	s.state = Failed
	s.err = err
	return s.state
}

// Run steps until the search is solved or fails.
func (s *Search[T, P]) Run() State {
	for s.Step() == Running {
	}
	return s.state
}

// Result assembles the proof of a solved search. It returns the failure reason if the
// search failed, and may only be called after it stopped running.
func (s *Search[T, P]) Result() (Result[T, P], error) {
	res, err := s.result()
	if s.opts.observer != nil && !s.notified && s.state != Running {
		s.notified = true
		s.opts.observer.Finished(res.Stats, err)
	}
	return res, err
}

func (s *Search[T, P]) result() (Result[T, P], error) {
	res := Result[T, P]{Stats: s.Stats()}
	switch s.state {
	case Running:
		return res, errors.New("search is still running")
	case Failed:
		return res, s.err
	}
	if s.graph.Trivial() {
		res.Proof = s.host.Refl(s.lhs)
		return res, nil
	}
	left, right, ok, err := s.graph.SolutionPaths()
	if err != nil {
		return res, err
	}
	if !ok {
		return res, errors.New("solved search has no solving edge")
	}
	var proofs []P
	if p, ok := proofForEdges(s.host, Left, left); ok {
		proofs = append(proofs, p)
	}
	if p, ok := proofForEdges(s.host, Right, right); ok {
		proofs = append(proofs, p)
	}
	if len(proofs) == 0 {
		res.Proof = s.host.Refl(s.lhs)
		return res, nil
	}
	res.Proof, err = combineProofs(s.host, proofs)
	if err != nil {
		return res, err
	}
	res.Steps = s.steps(left, right)
	return res, nil
}

func (s *Search[T, P]) steps(left, right []Edge[P]) []RewriteStep[T] {
	steps := make([]RewriteStep[T], 0, len(left)+len(right))
	for _, e := range left {
		steps = append(steps, RewriteStep[T]{
			From: s.graph.vertices[e.From].Term,
			To:   s.graph.vertices[e.To].Term,
			How:  e.How,
		})
	}
	for i := len(right) - 1; i >= 0; i-- {
		e := right[i]
		steps = append(steps, RewriteStep[T]{
			From: s.graph.vertices[e.To].Term,
			To:   s.graph.vertices[e.From].Term,
			How:  e.How.Inverse(),
		})
	}
	return steps
}

// proofForEdges composes the proofs along a root-to-meeting path. Left paths prove
// lhs = meet, and right paths are reversed to prove meet = rhs.
func proofForEdges[T, P any](host Host[T, P], side Side, edges []Edge[P]) (P, bool) {
	var p P
	n := len(edges)
	if n == 0 {
		return p, false
	}
	if side == Left {
		p = edges[0].Proof()
		for _, e := range edges[1:] {
			p = host.Trans(p, e.Proof())
		}
		return p, true
	}
	p = host.Symm(edges[n-1].Proof())
	for i := n - 2; i >= 0; i-- {
		p = host.Trans(p, host.Symm(edges[i].Proof()))
	}
	return p, true
}

// combineProofs chains proofs with transitivity, left to right.
func combineProofs[T, P any](host Host[T, P], proofs []P) (P, error) {
	var p P
	if len(proofs) == 0 {
		return p, ErrEmptyProofList
	}
	p = proofs[0]
	for _, q := range proofs[1:] {
		p = host.Trans(p, q)
	}
	return p, nil
}
