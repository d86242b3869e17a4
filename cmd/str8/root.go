package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/str8"
	"github.com/pavanmanishd/str8/internal/config"
	"github.com/pavanmanishd/str8/internal/logging"
	"github.com/pavanmanishd/str8/metrics"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	configPath string
	logLevel   string
	showMetric bool

	cfg    *config.Config
	logger *zap.Logger
	arena  *str8.Arena
	alloc  str8.Allocator
	reg    *prometheus.Registry
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "str8",
		Short: "Exercise growable zero-terminated byte strings",
		Long: `str8 drives the str8 string library from the command line.

Buffers come from the heap by default, or from a bounded arena when
arena.enabled is set in the config file or STR8_ARENA_ENABLED=true.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level")
	root.PersistentFlags().BoolVar(&a.showMetric, "metrics", false, "print allocation metrics after the command")

	root.AddCommand(newDemoCmd(a), newCatCmd(a), newFindCmd(a))
	return root, a
}

// execute runs root and then tears down whatever setup built, so a failed
// command still dumps its metrics and releases its arena.
func execute(root *cobra.Command, a *app) error {
	err := root.Execute()
	return errors.Join(err, a.teardown(root.OutOrStdout()))
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.showMetric {
		cfg.Metrics.Enabled = true
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.reg = prometheus.NewRegistry()
	var inner str8.Allocator = str8.HeapAllocator{Limit: cfg.Heap.Limit}
	name := "heap"
	if cfg.Arena.Enabled {
		a.arena, err = str8.NewArenaWithLimit(cfg.Arena.ChunkSize, cfg.Arena.Limit)
		if err != nil {
			return fmt.Errorf("failed to create arena: %w", err)
		}
		inner, name = a.arena, "arena"
		a.reg.MustRegister(metrics.NewArenaCollector("cli", a.arena))
	}
	a.alloc = metrics.NewAllocator(name, inner, a.reg)

	a.logger.Debug("configured",
		zap.String("command", cmd.Name()),
		zap.String("allocator", name),
		zap.Int("heap_limit", cfg.Heap.Limit),
		zap.Bool("metrics", cfg.Metrics.Enabled))
	return nil
}

func (a *app) teardown(w io.Writer) error {
	var err error
	if a.cfg != nil && a.cfg.Metrics.Enabled && a.reg != nil {
		err = writeMetrics(w, a.reg)
	}
	if a.arena != nil {
		if a.logger != nil {
			a.logger.Debug("releasing arena", logging.ArenaField("arena", a.arena.Metrics()))
		}
		a.arena.Release()
		a.arena = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

// newString builds a String from the configured allocator.
func (a *app) newString(s string) (*str8.String, error) {
	str, err := str8.NewWithAllocator(a.alloc, []byte(s))
	if err != nil {
		a.logger.Error("allocation failed", zap.Int("len", len(s)), zap.Error(err))
		return nil, err
	}
	return str, nil
}

// writeMetrics encodes every gathered family in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
