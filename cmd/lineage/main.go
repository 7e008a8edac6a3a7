package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LdDl/cell-lineage/internal/config"
	"github.com/LdDl/cell-lineage/internal/framesource"
	"github.com/LdDl/cell-lineage/lineage"
)

var (
	verbose bool
	logger  *zap.Logger
)

type trackOptions struct {
	framesPath string
	configPath string
	tolerance  float64
	workers    int
	minLength  int
	maxLength  int
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lineage",
		Short: "Cell lineage tracking over segmented frame sequences",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(newTrackCmd())
	return rootCmd
}

func newTrackCmd() *cobra.Command {
	opts := trackOptions{}
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Build lineages of cells from frames file",
		Long: `Reads shapes of every frame from YAML file, links them into lineages
and prints one line per lineage followed by summary.

Example:
  lineage track --frames frames.yaml --tolerance 0.2 --min-length 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(cmd, opts)
		},
	}
	flags := trackCmd.Flags()
	flags.StringVar(&opts.framesPath, "frames", "", "Path to YAML file with shapes per frame")
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML settings file")
	flags.Float64Var(&opts.tolerance, "tolerance", config.DefaultIntersectTolerance, "Minimal match score to link shapes of consecutive frames")
	flags.IntVar(&opts.workers, "workers", 0, "Number of workers for matching stage (0 means settings file or GOMAXPROCS)")
	flags.IntVar(&opts.minLength, "min-length", 0, "Drop lineages shorter than this (0 disables)")
	flags.IntVar(&opts.maxLength, "max-length", 0, "Drop lineages longer than this (0 disables)")
	_ = trackCmd.MarkFlagRequired("frames")
	return trackCmd
}

func runTrack(cmd *cobra.Command, opts trackOptions) error {
	cfg := config.Empty()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return errors.Wrap(err, "can't load settings")
		}
	}
	flags := cmd.Flags()
	tolerance := cfg.GetIntersectTolerance()
	if flags.Changed("tolerance") {
		tolerance = opts.tolerance
	}
	workers := cfg.GetWorkers()
	if opts.workers > 0 {
		workers = opts.workers
	}
	filter := cfg.GetLengthFilter()
	if opts.minLength > 0 {
		filter.MinOn, filter.Min = true, opts.minLength
	}
	if opts.maxLength > 0 {
		filter.MaxOn, filter.Max = true, opts.maxLength
	}

	frames, err := framesource.Load(opts.framesPath)
	if err != nil {
		return errors.Wrap(err, "can't load frames")
	}
	logger.Info("Frames loaded",
		zap.String("path", opts.framesPath),
		zap.Int("frames", frames.FramesCount()),
		zap.Float64("tolerance", tolerance),
		zap.Int("workers", workers))

	tracker := lineage.NewLineageTracker(
		tolerance,
		lineage.WithWorkers(workers),
		lineage.WithLogger(logger),
		lineage.WithProgress(func(percent int) {
			logger.Debug("Tracking progress", zap.Int("percent", percent))
		}),
	)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	areas, err := tracker.Track(ctx, frames)
	if err != nil {
		return errors.Wrap(err, "tracking failed")
	}
	areas = filter.Apply(areas)
	printLineages(cmd.OutOrStdout(), areas)
	printSummary(cmd.OutOrStdout(), lineage.Summarize(areas))
	return nil
}

func printLineages(out io.Writer, areas []*lineage.DynamicArea) {
	for _, area := range areas {
		fmt.Fprintf(out, "#%d birth=%d death=%d length=%d", area.GetIdentifier(), area.GetBirth(), area.GetDeath(), area.GetLength())
		if related := area.RelatedIdentifier(); related != 0 {
			fmt.Fprintf(out, " related=#%d", related)
		}
		fmt.Fprintf(out, " events=[%s]\n", area.KindsSequence())
	}
}

func printSummary(out io.Writer, summary lineage.Summary) {
	fmt.Fprintf(out, "lineages: %d\n", summary.Lineages)
	fmt.Fprintf(out, "touches: %d, fusions: %d, splits: %d\n", summary.Touches(), summary.GenuineFusions(), summary.GenuineSplits())
	fmt.Fprintf(out, "length: mean=%.2f std=%.2f min=%.0f max=%.0f\n", summary.MeanLength, summary.StdDevLength, summary.MinLength, summary.MaxLength)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
