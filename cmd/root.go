package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	cfgpkg "github.com/KaramelBytes/fifaviz-cli/internal/config"
	"github.com/KaramelBytes/fifaviz-cli/internal/dataset"
	"github.com/KaramelBytes/fifaviz-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "fifaviz",
	Short: "fifaviz: chart FIFA player statistics from a CSV dataset",
	Long: `fifaviz loads fifa_players.csv from the working directory, normalizes the Value and Weight
columns and writes six PNG charts (skill and value by age, skill histogram, preferred foot and
weight pies, top-club box plot), then prints the first rows of the cleaned dataset.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		out := cmd.OutOrStdout()

		ds, err := loadCleaned(cfg, cfg.InputPath)
		if err != nil {
			return err
		}
		log.Debug("dataset cleaned", slog.String("input", cfg.InputPath), slog.Int("rows", ds.Len()))
		for _, col := range []string{dataset.ColValue, dataset.ColWeight} {
			if n := missing(ds, col); n > 0 {
				fmt.Fprintf(out, "⚠ %s: %d missing values kept as NaN\n", col, n)
			}
		}

		res, err := pipeline.Run(cmd.Context(), ds, pipeline.Options{
			OutputDir:     cfg.OutputDir,
			DPI:           cfg.DPI,
			Parallel:      cfg.Parallel,
			WriteManifest: cfg.WriteManifest,
		}, log)
		if err != nil {
			return err
		}
		for _, a := range res.Charts {
			fmt.Fprintf(out, "✓ Wrote %s\n", a.Path)
		}
		if res.Manifest != "" {
			fmt.Fprintf(out, "✓ Wrote %s\n", res.Manifest)
		}
		if head := ds.Head(cfg.HeadRows); head != "" {
			fmt.Fprintln(out, head)
		}
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fifaviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() (*cfgpkg.Global, error) {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadCleaned reads the dataset at path with the configured parsing options and cleans it.
func loadCleaned(cfg *cfgpkg.Global, path string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path, dataset.LoadOptions{
		Delimiter:  cfg.DelimiterRune(),
		SheetName:  cfg.SheetName,
		SheetIndex: cfg.SheetIndex,
	})
	if err != nil {
		return nil, err
	}
	if err := ds.Clean(); err != nil {
		return nil, err
	}
	return ds, nil
}

func missing(ds *dataset.Dataset, col string) int {
	vals, err := ds.Floats(col)
	if err != nil {
		return 0
	}
	n := 0
	for _, v := range vals {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
