package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/metrics"
	"github.com/brunokim/rewrite-search/parser"
	"github.com/brunokim/rewrite-search/prover"
)

var (
	metricsAddr string
	workers     int
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Proves every equation in a file",
		Long: `Proves every equation in a file concurrently. Equations are terminated by '.',
and '%' starts a comment.

Prints one line per equation, in file order, and fails if any equation wasn't proven.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve /metrics while proving")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Equations proven concurrently")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	bs, err := os.ReadFile(args[0])
	if err != nil {
		return errors.New("failed to read %s: %v", args[0], err)
	}
	eqs, err := parser.ParseEquations(string(bs))
	if err != nil {
		return errors.New("%s: %v", args[0], err)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	p, err := newProver(prover.WithObserver(m.Observer()))
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx := cmd.Context()
	if timeout := cfg.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	outs, err := p.ProveAll(ctx, eqs)
	var failed int
	for _, out := range outs {
		if out.Err != nil {
			failed++
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if err != nil {
		return errors.New("batch interrupted: %v", err)
	}
	if failed > 0 {
		return errors.New("%d of %d equations not proven", failed, len(eqs))
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}
