// Cascadecheck sweeps a cascade configuration across one or more viewport
// heights and reports any frame where the stacking invariants break. It
// writes a YAML report and exits non-zero when a violation is found.
//
// Usage:
//
//	cascadecheck -config cascade.yaml -heights 600,800,1080 -step 0.5 -out report.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/phanxgames/cascade"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	exitOK        = 0
	exitViolation = 1
	exitUsage     = 2
)

type result struct {
	cascade.SweepReport `yaml:",inline"`
	OK                  bool           `yaml:"ok"`
	Zones               []cascade.Zone `yaml:"zones,omitempty"`
}

type report struct {
	Config  cascade.Config `yaml:"config"`
	Step    float64        `yaml:"step"`
	Results []result       `yaml:"results"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cascadecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (defaults when empty)")
	heightsArg := fs.String("heights", "800", "comma-separated viewport heights to sweep")
	step := fs.Float64("step", 1, "scroll offset increment in pixels")
	outPath := fs.String("out", "", "write the YAML report here instead of stdout")
	withZones := fs.Bool("zones", false, "include each height's zone map in the report")
	workers := fs.Int("workers", runtime.NumCPU(), "heights swept in parallel")
	verbose := fs.Bool("v", false, "log zone map details")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	cascade.SetLogger(log)
	defer cascade.SetLogger(nil)

	cfg := cascade.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = cascade.LoadConfigFile(*configPath); err != nil {
			log.Error("load config", "path", *configPath, "err", err)
			return exitUsage
		}
	}

	heights, err := parseHeights(*heightsArg)
	if err != nil {
		log.Error("parse -heights", "err", err)
		return exitUsage
	}

	rep, err := sweepAll(ctx, cfg, heights, *step, *workers, *withZones, log)
	if err != nil {
		var ce *cascade.ConfigError
		if errors.As(err, &ce) {
			log.Error("invalid configuration", "field", ce.Field, "err", err)
		} else {
			log.Error("sweep failed", "err", err)
		}
		return exitUsage
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		log.Error("encode report", "err", err)
		return exitUsage
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, data, 0o644); err != nil {
			log.Error("write report", "path", *outPath, "err", err)
			return exitUsage
		}
	} else if _, err := stdout.Write(data); err != nil {
		return exitUsage
	}

	failed := 0
	for _, r := range rep.Results {
		if !r.OK {
			failed++
			log.Warn("invariants violated",
				"viewportHeight", r.ViewportHeight,
				"violations", len(r.Violations),
				"first", r.Violations[0].Detail)
		}
	}
	if failed > 0 {
		return exitViolation
	}
	return exitOK
}

// sweepAll runs one Sweep per height, in parallel, keeping results in input
// order.
func sweepAll(ctx context.Context, cfg cascade.Config, heights []float64, step float64,
	workers int, withZones bool, log *slog.Logger) (report, error) {
	rep := report{Config: cfg, Step: step, Results: make([]result, len(heights))}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, h := range heights {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sr, err := cascade.Sweep(cfg, h, step)
			if err != nil {
				return fmt.Errorf("height %s: %w", strconv.FormatFloat(h, 'g', -1, 64), err)
			}
			res := result{SweepReport: sr, OK: sr.OK()}
			if withZones {
				zm, err := cascade.BuildZoneMap(h, cfg)
				if err != nil {
					return err
				}
				res.Zones = zm.Zones()
			}
			log.Debug("swept", "viewportHeight", h, "samples", sr.Samples, "maxStep", sr.MaxStep)
			rep.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report{}, err
	}
	return rep, nil
}

func parseHeights(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		h, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("height %q: %w", f, err)
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		return nil, errors.New("no heights given")
	}
	return out, nil
}
