// Command fractal renders one fractal generator into an image file.
//
// Usage:
//
//	fractal -generator fern -width 600 -height 800 -seed 7 -out fern.png
//	fractal -generator mandelbrot -max-iterations 2000 -out set.tiff
//
// The output format follows the file extension (.png, .bmp, .tif, .tiff).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gogpu/fractal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("fractal: %v", err)
	}
}

// options holds the parsed command line.
type options struct {
	generator string
	width     int
	height    int
	workers   int
	caption   bool
	out       string
	verbose   bool
	seed      string
	params    fractal.Params
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("fractal", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		o             options
		iterations    string
		order         string
		maxIterations string
		shape         string
		color         string
	)
	fs.StringVar(&o.generator, "generator", "chaos", "generator name: "+strings.Join(fractal.Names(), ", "))
	fs.IntVar(&o.width, "width", 800, "image width")
	fs.IntVar(&o.height, "height", 600, "image height")
	fs.StringVar(&iterations, "iterations", "", "point count for chaos and fern")
	fs.StringVar(&order, "order", "", "H-tree recursion order (0-12)")
	fs.StringVar(&maxIterations, "max-iterations", "", "Mandelbrot escape budget")
	fs.StringVar(&o.seed, "seed", "", "random seed for reproducible output")
	fs.StringVar(&shape, "shape", "", "chaos game triangle: equilateral or random")
	fs.StringVar(&color, "color", "", "single plot color as #rrggbb")
	fs.BoolVar(&o.caption, "caption", false, "stamp the generator name into the image")
	fs.IntVar(&o.workers, "workers", 0, "Mandelbrot goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&o.out, "out", "fractal.png", "output file")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	o.params = fractal.Params{}
	for key, v := range map[string]string{
		fractal.ParamIterations:    iterations,
		fractal.ParamOrder:         order,
		fractal.ParamMaxIterations: maxIterations,
		fractal.ParamShape:         shape,
		fractal.ParamColor:         color,
	} {
		if v != "" {
			o.params[key] = v
		}
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(logger)
	defer fractal.SetLogger(nil)

	// Fail on a bad extension before spending time rendering.
	if _, err := fractal.FormatFromPath(o.out); err != nil {
		return err
	}

	opts := []fractal.RenderOption{fractal.WithWorkers(o.workers)}
	if o.seed != "" {
		seed, err := strconv.ParseUint(o.seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", o.seed, err)
		}
		opts = append(opts, fractal.WithSeed(seed))
	}

	pm, err := fractal.Render(ctx, o.generator, o.width, o.height, o.params, opts...)
	if err != nil {
		return err
	}
	if o.caption {
		fractal.DrawCaption(pm, o.generator, fractal.White)
	}
	if err := pm.Save(o.out); err != nil {
		return err
	}

	logger.Info("saved", "path", o.out, "width", pm.Width(), "height", pm.Height())
	return nil
}
