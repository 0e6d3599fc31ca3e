// Command juliabench renders a Julia-set fractal on the GPU (or a CPU
// fallback), reports per-dispatch timings and throughput, and writes the
// image as binary PGM or PNG.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	juliaset "github.com/maltsev-andrey/julia-set-cuda"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "juliabench:", err)
		os.Exit(1)
	}
}

func run() error {
	def := juliaset.DefaultConfig()
	width := flag.Int("width", def.Width, "image width in pixels")
	height := flag.Int("height", def.Height, "image height in pixels")
	iter := flag.Int("iter", def.MaxIter, "escape-time iteration cap")
	cre := flag.Float64("cre", float64(def.CRe), "julia constant, real part")
	cim := flag.Float64("cim", float64(def.CIm), "julia constant, imaginary part")
	runs := flag.Int("runs", def.Runs, "number of timed dispatches")
	workers := flag.Int("workers", 0, "CPU worker count (0 = GOMAXPROCS)")
	backend := flag.String("renderer", "auto", "backend: gpu, cpu, or auto")
	output := flag.String("o", "julia.pgm", "output image path")
	usePNG := flag.Bool("png", false, "write PNG instead of PGM")
	legacy := flag.Bool("legacy-header", false, "comma-separated PGM dimension header")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	juliaset.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg := juliaset.Config{
		Width:   *width,
		Height:  *height,
		MaxIter: *iter,
		CRe:     float32(*cre),
		CIm:     float32(*cim),
		Runs:    *runs,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r, err := selectRenderer(*backend, *workers)
	if err != nil {
		return err
	}

	groupsX := (cfg.Width + juliaset.TileWidth - 1) / juliaset.TileWidth
	groupsY := (cfg.Height + juliaset.TileHeight - 1) / juliaset.TileHeight
	fmt.Printf("rendering %dx%d julia set (c = %g%+gi, cap %d) on %s\n",
		cfg.Width, cfg.Height, cfg.CRe, cfg.CIm, cfg.MaxIter, r.Name())
	fmt.Printf("dispatch geometry: %dx%d tiles of %dx%d\n",
		groupsX, groupsY, juliaset.TileWidth, juliaset.TileHeight)

	frame, res, err := juliaset.Benchmark(r, cfg)
	if err != nil {
		return err
	}

	for i, d := range res.Runs {
		fmt.Printf("  run %2d: %8.3f ms\n", i+1, d.Seconds()*1e3)
	}
	fmt.Printf("average: %.3f ms over %d runs\n", res.Average.Seconds()*1e3, len(res.Runs))
	fmt.Printf("throughput: %.2f Mpixel/s, ~%.2f GFLOP/s (upper bound)\n",
		res.PixelsPerSec/1e6, res.GFLOPSEstimate)

	if *usePNG {
		err = juliaset.SavePNG(*output, frame)
	} else {
		err = juliaset.SavePGM(*output, frame, *legacy)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *output)
	return nil
}

// selectRenderer maps the -renderer flag to a backend. "auto" tries the
// GPU first and falls back to the CPU when device bring-up fails.
func selectRenderer(kind string, workers int) (juliaset.Renderer, error) {
	switch strings.ToLower(kind) {
	case "cpu":
		return juliaset.NewCPURenderer(workers), nil
	case "gpu":
		r, err := juliaset.NewGPURenderer()
		if err != nil {
			return nil, err
		}
		return r, nil
	case "auto":
		r, err := juliaset.NewGPURenderer()
		if err == nil {
			return r, nil
		}
		fmt.Fprintf(os.Stderr, "juliabench: GPU unavailable (%v), falling back to CPU\n", err)
		return juliaset.NewCPURenderer(workers), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (want gpu, cpu, or auto)", kind)
	}
}
