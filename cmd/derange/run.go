package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/optable/derange/internal/census"
	"github.com/optable/derange/internal/config"
	"github.com/optable/derange/pkg/derangement"
	"github.com/optable/derange/pkg/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// newRunCmd represents the run command
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Shuffle the board many times and report the running average",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(cmd)
			logger := getLogger(cfg)
			exitOnErr(logger, err, "invalid configuration")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			var reg *prometheus.Registry
			if cfg.MetricsAddr != "" {
				reg = prometheus.NewRegistry()
				srv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
				go func() {
					logger.Info("serving metrics", "addr", cfg.MetricsAddr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error(err, "metrics server stopped")
					}
				}()
				defer srv.Close()
			}

			s, err := newSession(cfg, logger, registerer(reg))
			exitOnErr(logger, err, "failed to create session")

			n := cfg.N()
			_, err = s.SetSize(n)
			exitOnErr(logger, err, "failed to deal the board")

			logger.V(1).Info("running", "items", n, "trials", cfg.Trials)
			snap, err := s.Run(ctx, cfg.Trials)
			if errors.Is(err, context.Canceled) {
				logger.Info("interrupted", "trials", snap.Count)
			} else {
				exitOnErr(logger, err, "failed to run trials")
			}

			report(cmd.OutOrStdout(), cfg, snap, s.Distinct())

			if reg != nil && ctx.Err() == nil {
				logger.Info("run complete, metrics stay available until interrupted")
				<-ctx.Done()
			}
		},
	}

	runCmd.Flags().Int("trials", config.DefaultTrials, "number of shuffles")
	runCmd.Flags().Bool("count-initial", false, "count the initial deal as a trial")
	runCmd.Flags().Int("history", config.DefaultHistory, "number of per-trial points to retain")
	runCmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address, e.g. :2112")

	return runCmd
}

// registerer avoids handing a typed nil to newSession
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func report(w io.Writer, cfg config.Config, snap ledger.Snapshot, distinct uint64) {
	n := cfg.N()
	if width := cfg.Width(); width > 0 {
		fmt.Fprintf(w, "%-20s%d (%dx%d)\n", "items", n, width, width)
	} else {
		fmt.Fprintf(w, "%-20s%d\n", "items", n)
	}
	fmt.Fprintf(w, "%-20s%d\n", "trials", snap.Count)
	fmt.Fprintf(w, "%-20s%d\n", "non-derangements", snap.NonDerangements)
	if snap.HasAverage {
		fmt.Fprintf(w, "%-20s%.6f\n", "running average", snap.Average)
	} else {
		fmt.Fprintf(w, "%-20s%s\n", "running average", "n/a")
	}
	fmt.Fprintf(w, "%-20s%.6f\n", "expected", derangement.NonDerangementProbability(n))
	fmt.Fprintf(w, "%-20s%.6f\n", "limit 1-1/e", derangement.Limit)
	fmt.Fprintf(w, "%-20s%d of %s\n", "distinct", distinct, census.Possible(n))
}
