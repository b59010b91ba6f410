// Package prover proves equations between logic terms with a rule catalogue.
//
// It binds the term model, the rule catalogue and proof certificates into a search
// host, and runs one search per equation. Batches of equations are proven
// concurrently, each with its own search.
package prover

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/parser"
	"github.com/brunokim/rewrite-search/proof"
	"github.com/brunokim/rewrite-search/rules"
	"github.com/brunokim/rewrite-search/search"
)

const tracerName = "github.com/brunokim/rewrite-search/prover"

// Prover proves equations with a fixed catalogue. It's safe for concurrent use.
type Prover struct {
	catalogue     *rules.Catalogue
	engine        *search.Engine[logic.Term, proof.Proof]
	logger        *zap.Logger
	tracer        trace.Tracer
	workers       int
	maxIterations int
	observer      search.Observer
}

// Option configures a Prover.
type Option func(*Prover)

// WithLogger sets the logger. Search traces are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prover) { p.logger = logger }
}

// WithTracer sets the tracer for equation spans. The default uses the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Prover) { p.tracer = tracer }
}

// WithWorkers sets the number of equations proven concurrently by ProveAll.
func WithWorkers(n int) Option {
	return func(p *Prover) { p.workers = n }
}

// WithMaxIterations sets the expansion budget of each search.
func WithMaxIterations(n int) Option {
	return func(p *Prover) { p.maxIterations = n }
}

// WithObserver registers an observer of every search. A search finishes after its proof
// is checked, so a rejected proof is reported as a failure.
func WithObserver(obs search.Observer) Option {
	return func(p *Prover) { p.observer = obs }
}

// New returns a prover for catalogue c.
func New(c *rules.Catalogue, opts ...Option) *Prover {
	p := &Prover{
		catalogue:     c,
		logger:        zap.NewNop(),
		tracer:        otel.Tracer(tracerName),
		workers:       1,
		maxIterations: search.DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	searchOpts := []search.Option{
		search.WithMaxIterations(p.maxIterations),
		search.WithLogger(p.logger.Named("search")),
	}
	if p.observer != nil {
		searchOpts = append(searchOpts, search.WithObserver(expansions{p.observer}))
	}
	host := Host{Catalogue: c.WithLogger(p.logger.Named("rules"))}
	p.engine = search.New[logic.Term, proof.Proof](host, searchOpts...)
	return p
}

// Catalogue returns the rules used by the prover.
func (p *Prover) Catalogue() *rules.Catalogue {
	return p.catalogue
}

// Outcome is the result of proving an equation.
type Outcome struct {
	Equation logic.Equation
	// Proof is nil if the search failed.
	Proof    proof.Proof
	Steps    []search.RewriteStep[logic.Term]
	Stats    search.Stats
	Duration time.Duration
	Err      error
}

// Explain renders the proof as a chain of equalities, or the failure reason.
func (o Outcome) Explain() string {
	if o.Err != nil {
		return fmt.Sprintf("%v: %v", o.Equation, o.Err)
	}
	return proof.Explain(o.Proof)
}

func (o Outcome) String() string {
	status := "proved"
	if o.Err != nil {
		status = o.Err.Error()
	}
	return fmt.Sprintf("%v: %s (%d steps, %d expanded, %d terms)",
		o.Equation, status, len(o.Steps), o.Stats.Expanded, o.Stats.Vertices)
}

// Prove searches a proof for eq. The returned error is also recorded in the outcome.
func (p *Prover) Prove(ctx context.Context, eq logic.Equation) (Outcome, error) {
	_, span := p.tracer.Start(ctx, "prover.Prove",
		trace.WithAttributes(attribute.String("equation", eq.String())))
	defer span.End()

	start := time.Now()
	res, err := p.engine.FindProof(eq.Lhs, eq.Rhs)
	out := Outcome{
		Equation: eq,
		Stats:    res.Stats,
		Duration: time.Since(start),
	}
	if err == nil {
		if err = proof.CheckEquation(res.Proof, eq.Lhs, eq.Rhs, p.catalogue); err == nil {
			out.Proof = res.Proof
			out.Steps = res.Steps
		}
	}
	if p.observer != nil {
		p.observer.Finished(res.Stats, err)
	}
	span.SetAttributes(
		attribute.Int("search.expanded", res.Stats.Expanded),
		attribute.Int("search.vertices", res.Stats.Vertices),
		attribute.Int("proof.steps", len(out.Steps)))
	fields := []zap.Field{
		zap.Stringer("equation", eq),
		zap.Int("expanded", res.Stats.Expanded),
		zap.Int("vertices", res.Stats.Vertices),
		zap.Duration("duration", out.Duration),
	}
	if err != nil {
		out.Err = errors.New("%v: %v", eq, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Info("not proved", append(fields, zap.Error(err))...)
		return out, out.Err
	}
	span.SetStatus(codes.Ok, "")
	p.logger.Info("proved", append(fields, zap.Int("steps", len(out.Steps)))...)
	return out, nil
}

// expansions forwards expansions to an observer, leaving Finished to the prover.
type expansions struct {
	search.Observer
}

func (expansions) Finished(search.Stats, error) {}

// ProveString parses an equation like "add(0, X) = X" and proves it.
func (p *Prover) ProveString(ctx context.Context, text string) (Outcome, error) {
	eq, err := parser.ParseEquation(text)
	if err != nil {
		return Outcome{Err: err}, err
	}
	return p.Prove(ctx, eq)
}

// ProveAll proves every equation concurrently, returning outcomes in input order.
//
// Search failures are reported in each outcome. The returned error is only set if ctx
// was done before every equation was attempted.
func (p *Prover) ProveAll(ctx context.Context, eqs []logic.Equation) ([]Outcome, error) {
	runID := uuid.New()
	logger := p.logger.With(zap.Stringer("run_id", runID))
	ctx, span := p.tracer.Start(ctx, "prover.ProveAll",
		trace.WithAttributes(
			attribute.String("run_id", runID.String()),
			attribute.Int("equations", len(eqs))))
	defer span.End()
	logger.Info("batch started", zap.Int("equations", len(eqs)), zap.Int("workers", p.workers))

	outs := make([]Outcome, len(eqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, eq := range eqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outs[i] = Outcome{Equation: eq, Err: err}
				return err
			}
			outs[i], _ = p.Prove(gctx, eq)
			return nil
		})
	}
	err := g.Wait()

	var proved int
	for _, out := range outs {
		if out.Err == nil {
			proved++
		}
	}
	span.SetAttributes(attribute.Int("proved", proved))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("batch interrupted", zap.Int("proved", proved), zap.Error(err))
		return outs, err
	}
	span.SetStatus(codes.Ok, "")
	logger.Info("batch finished", zap.Int("proved", proved), zap.Int("failed", len(eqs)-proved))
	return outs, nil
}
