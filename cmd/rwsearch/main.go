// Command rwsearch proves equations between terms by searching rewrites from a catalogue
// of rules.
//
// Usage:
//
//	rwsearch prove --rules peano.hcl "add(s(z), z) = s(z)"
//	rwsearch batch --rules peano.hcl equations.txt
//	rwsearch parse equations.txt
//	rwsearch repl --rules peano.hcl
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brunokim/rewrite-search/config"
	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/prover"
	"github.com/brunokim/rewrite-search/rules"
	"github.com/brunokim/rewrite-search/search"
	"github.com/brunokim/rewrite-search/telemetry"
)

var (
	// Global flags
	configPath    string
	verbose       bool
	ruleFiles     []string
	maxIterations int
	traceSpans    bool

	// Set up before every command
	cfg     *config.Config
	logger  *zap.Logger
	tracing *telemetry.Tracing
)

// newRootCmd builds the command tree, with flags bound to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rwsearch",
		Short: "Proves equations by bidirectional rewrite search",
		Long: `rwsearch proves that two terms are equal by rewriting both of them with
a catalogue of rules, until the rewrites meet.

Rules are written in HCL, and equations are written as "lhs = rhs".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "rwsearch.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log search traces")
	rootCmd.PersistentFlags().StringSliceVarP(&ruleFiles, "rules", "r", nil, "HCL rule files, loaded in order")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", search.DefaultMaxIterations, "Expansions allowed per equation")
	rootCmd.PersistentFlags().BoolVar(&traceSpans, "trace", false, "Print trace spans to stderr")

	rootCmd.AddCommand(newProveCmd(), newBatchCmd(), newParseCmd(), newREPLCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = maxIterations
	}
	if len(ruleFiles) > 0 {
		cfg.Catalogues = ruleFiles
	}
	if err := cfg.Validate(); err != nil {
		return errors.New("invalid config %s: %v", configPath, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.GetLogLevel())
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = zapCfg.Build()
	if err != nil {
		return errors.New("failed to initialize logger: %v", err)
	}

	if traceSpans {
		tracing, err = telemetry.Stdout(cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}
	} else {
		tracing = telemetry.Disabled()
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if tracing != nil {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush spans", zap.Error(err))
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// newProver loads the configured catalogues into a prover.
func newProver(opts ...prover.Option) (*prover.Prover, error) {
	if len(cfg.Catalogues) == 0 {
		return nil, errors.New("no rules given: use --rules or set catalogues in %s", configPath)
	}
	c, err := rules.LoadFiles(cfg.Catalogues...)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded rules", zap.Strings("files", cfg.Catalogues), zap.Int("rules", c.Len()))
	opts = append([]prover.Option{
		prover.WithLogger(logger),
		prover.WithTracer(tracing.Tracer("rwsearch")),
		prover.WithMaxIterations(cfg.MaxIterations),
		prover.WithWorkers(cfg.Workers),
	}, opts...)
	return prover.New(c, opts...), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
