package juliaset

import (
	"errors"
	"fmt"
	"time"
)

// ErrGPUUnavailable is returned by NewGPURenderer when no usable GPU
// backend exists, either because the binary was built with the nogpu tag
// or because device bring-up failed. Callers may fall back to
// NewCPURenderer.
var ErrGPUUnavailable = errors.New("juliaset: GPU support unavailable")

// Renderer computes full-domain Julia images into a backend-owned output
// buffer. The lifecycle is strictly sequential: Setup once, Dispatch one
// or more times (each synchronized to completion before returning),
// Readback once after the final dispatch, Close unconditionally.
type Renderer interface {
	// Name identifies the backend ("gpu", "cpu").
	Name() string

	// Setup allocates the backend output buffer and any pipeline state
	// for the given configuration.
	Setup(cfg Config) error

	// Dispatch runs the kernel over the whole pixel domain, waits for
	// completion, and returns the elapsed time of this dispatch. The
	// output buffer is fully overwritten on every call, so successive
	// dispatches never observe partial results from earlier ones.
	Dispatch() (time.Duration, error)

	// Readback copies the backend output buffer into dst in one bulk
	// transfer. dst must hold Width*Height bytes.
	Readback(dst []byte) error

	// Close releases all backend resources. It must be safe to call
	// after a failed Setup or Dispatch, and more than once.
	Close()
}

// Result holds the metrics derived from one benchmark run.
//
// GFLOPSEstimate assumes every pixel runs the full iteration cap, which
// most do not (they escape early); it is a rough upper-bound diagnostic,
// never a correctness-bearing number.
type Result struct {
	// Renderer is the backend name the run executed on.
	Renderer string

	// Runs holds the elapsed time of each timed dispatch.
	Runs []time.Duration

	// Total and Average aggregate the timed dispatches.
	Total   time.Duration
	Average time.Duration

	// PixelsPerSec is pixel throughput at the average dispatch time.
	PixelsPerSec float64

	// GFLOPSEstimate is pixels x cap x 10 operations over the average
	// dispatch time, in GFLOP/s.
	GFLOPSEstimate float64
}

// Benchmark drives one measured run on r: setup, one warm-up dispatch
// with timing discarded, cfg.Runs timed dispatches, then a single bulk
// readback into a freshly allocated host frame.
//
// r is closed before Benchmark returns, on every path, so resources are
// released even when a dispatch fails mid-measurement.
func Benchmark(r Renderer, cfg Config) (*Frame, *Result, error) {
	defer r.Close()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	frame := NewFrame(cfg.Width, cfg.Height)

	if err := r.Setup(cfg); err != nil {
		return nil, nil, fmt.Errorf("%s setup: %w", r.Name(), err)
	}

	// Warm-up absorbs one-time initialization cost before measurement.
	if _, err := r.Dispatch(); err != nil {
		return nil, nil, fmt.Errorf("%s warm-up dispatch: %w", r.Name(), err)
	}

	res := &Result{Renderer: r.Name(), Runs: make([]time.Duration, 0, cfg.Runs)}
	for i := 0; i < cfg.Runs; i++ {
		elapsed, err := r.Dispatch()
		if err != nil {
			return nil, nil, fmt.Errorf("%s dispatch %d of %d: %w", r.Name(), i+1, cfg.Runs, err)
		}
		res.Runs = append(res.Runs, elapsed)
		res.Total += elapsed
		Logger().Debug("timed dispatch",
			"renderer", r.Name(), "run", i+1, "elapsed", elapsed)
	}
	res.Average = res.Total / time.Duration(cfg.Runs)

	if err := r.Readback(frame.Pix); err != nil {
		return nil, nil, fmt.Errorf("%s readback: %w", r.Name(), err)
	}

	if avg := res.Average.Seconds(); avg > 0 {
		pixels := float64(cfg.Pixels())
		res.PixelsPerSec = pixels / avg
		res.GFLOPSEstimate = pixels * float64(cfg.MaxIter) * flopsPerIter / avg / 1e9
	}
	return frame, res, nil
}
