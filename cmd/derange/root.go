package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/optable/derange/internal/census"
	"github.com/optable/derange/internal/config"
	"github.com/optable/derange/internal/hash"
	"github.com/optable/derange/internal/metrics"
	"github.com/optable/derange/pkg/prng"
	"github.com/optable/derange/pkg/log"
	"github.com/optable/derange/pkg/position"
	"github.com/optable/derange/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"
)

// newRootCmd builds the command tree. Every call returns fresh
// commands, so parsed flag state never leaks from one execution to the next.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "derange",
		Short: "derange shuffles boards and counts derangements",
		Long: `derange repeatedly shuffles a board of items and tracks how often at least
one item lands back home. The frequency tends to 1 - 1/e as the board grows.`,
		SilenceUsage: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().IntP("verbose", "v", 0, "Verbosity level, 0 for info level messages, 1 for debug messages, and 2 for trace level message.")
	rootCmd.PersistentFlags().Int("board", config.DefaultBoard, "side of the square board, the board holds board*board items")
	rootCmd.PersistentFlags().Int("items", 0, "number of items, overrides --board")
	rootCmd.PersistentFlags().String("seed", "", "hex seed for a reproducible run, random when empty")
	rootCmd.PersistentFlags().String("hash", config.DefaultHash, "fingerprint hash for the permutation census (murmur3, metro, highway)")

	runCmd := newRunCmd()
	rootCmd.AddCommand(runCmd, newShowCmd(), newVersionCmd())
	// running trials is what derange is for
	rootCmd.Run = runCmd.Run

	return rootCmd
}

// Execute builds the command tree and runs it against os.Args.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exitOnErr(logger logr.Logger, err error, msg string) {
	if err != nil {
		logger.Error(err, msg)
		os.Exit(1)
	}
}

// loadConfig reads the config file then applies the flags that were set
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbosity, _ = flags.GetInt("verbose")
	}
	if flags.Changed("board") {
		cfg.Board, _ = flags.GetInt("board")
		cfg.Items = 0
	}
	if flags.Changed("items") {
		cfg.Items, _ = flags.GetInt("items")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetString("seed")
	}
	if flags.Changed("hash") {
		cfg.Hash, _ = flags.GetString("hash")
	}
	if flags.Lookup("trials") != nil && flags.Changed("trials") {
		cfg.Trials, _ = flags.GetInt("trials")
	}
	if flags.Lookup("count-initial") != nil && flags.Changed("count-initial") {
		cfg.CountInitial, _ = flags.GetBool("count-initial")
	}
	if flags.Lookup("history") != nil && flags.Changed("history") {
		cfg.History, _ = flags.GetInt("history")
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}

	return cfg, cfg.Validate()
}

// censusSalt keys the census hasher, census fingerprints never leave the process
var censusSalt = blake3.Sum256([]byte("derange permutation census"))

// newSession wires a session from cfg. reg may be nil.
func newSession(cfg config.Config, logger logr.Logger, reg prometheus.Registerer) (*session.Session, error) {
	seed, err := cfg.SeedBytes()
	if err != nil {
		return nil, err
	}
	var src prng.Source
	if seed != nil {
		src = prng.NewDRBG(seed)
	} else {
		src = prng.NewCrypto()
	}

	t, err := hash.Parse(cfg.Hash)
	if err != nil {
		return nil, err
	}
	h, err := hash.New(t, censusSalt[:])
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithSource(src),
		session.WithCountInitial(cfg.CountInitial),
		session.WithHistory(cfg.History),
		session.WithCensus(census.New(h, uint(max(cfg.Trials, 1)))),
		session.WithLogger(logger.WithName("session")),
	}
	if width := cfg.Width(); width > 0 {
		opts = append(opts, session.WithLayout(func(int) position.LayoutFunc {
			return position.Grid(width)
		}))
	}
	if reg != nil {
		m, err := metrics.New(reg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, session.WithMetrics(m))
	}

	return session.New(opts...), nil
}

func getLogger(cfg config.Config) logr.Logger {
	return log.GetLogger(cfg.Verbosity)
}
