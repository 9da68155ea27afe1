// Package pipeline renders every chart of a cleaned dataset and writes the
// images to the output directory.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/KaramelBytes/fifaviz-cli/internal/dataset"
	"github.com/KaramelBytes/fifaviz-cli/internal/render"
	"github.com/KaramelBytes/fifaviz-cli/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Options controls where and how charts are written.
type Options struct {
	OutputDir string
	DPI       float64
	// Parallel renders charts concurrently; the dataset is only read.
	Parallel bool
	// WriteManifest adds render_manifest.json next to the images.
	WriteManifest bool
}

// Artifact is one written file.
type Artifact struct {
	File  string `json:"file"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// Result lists the files of one run in chart order.
type Result struct {
	RunID    string     `json:"run_id"`
	Charts   []Artifact `json:"charts"`
	Manifest string     `json:"-"`
}

// Run renders every chart returned by Charts. Files written before a failure are kept.
func Run(ctx context.Context, ds *dataset.Dataset, opt Options, log *slog.Logger) (*Result, error) {
	return RunCharts(ctx, ds, Charts(), opt, log)
}

// RunCharts renders the given charts in order, or concurrently when opt.Parallel is set.
func RunCharts(ctx context.Context, ds *dataset.Dataset, charts []Chart, opt Options, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if !ds.Cleaned() {
		return nil, fmt.Errorf("dataset %s is not cleaned", ds.Name)
	}
	dir := opt.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	ropt := render.Options{DPI: opt.DPI}
	res := &Result{RunID: uuid.NewString(), Charts: make([]Artifact, len(charts))}
	log = log.With(slog.String("run_id", res.RunID))

	one := func(i int) error {
		c := charts[i]
		data, err := c.Build(ds, ropt)
		if err != nil {
			return fmt.Errorf("render %s: %w", c.File, err)
		}
		path := filepath.Join(dir, c.File)
		if err := utils.SafeWriteFile(path, data); err != nil {
			return fmt.Errorf("save %s: %w", c.File, err)
		}
		res.Charts[i] = Artifact{File: c.File, Path: path, Bytes: len(data)}
		log.Debug("chart written", slog.String("file", path), slog.Int("bytes", len(data)))
		return nil
	}

	if opt.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range charts {
			i := i // per-iteration copy; go directive lowered to 1.21 for the local toolchain
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return one(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range charts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := one(i); err != nil {
				return nil, err
			}
		}
	}

	if opt.WriteManifest {
		path, err := writeManifest(dir, ds, opt, res)
		if err != nil {
			return nil, err
		}
		res.Manifest = path
	}
	log.Info("charts rendered", slog.Int("count", len(res.Charts)), slog.Bool("parallel", opt.Parallel))
	return res, nil
}
