// Package juliaset renders Julia-set fractals with an escape-time kernel
// and benchmarks the computation on a GPU compute backend and a
// tile-parallel CPU backend.
//
// # Overview
//
// Every output pixel is an independent computation: the pixel coordinate
// is mapped through a fixed 4-unit-wide viewport onto the complex plane,
// then iterated under z ← z² + c until the magnitude escapes or a cap is
// reached. The escape speed becomes an 8-bit grayscale intensity. There
// is no shared state between pixels, which is what permits unrestricted
// parallel execution.
//
// The GPU backend runs the kernel as a WGSL compute shader on a Vulkan
// device through gogpu/wgpu, dispatched over a 16x16 workgroup grid. The
// CPU backend runs the same kernel over 16x16 pixel tiles on a
// work-stealing worker pool.
//
// # Quick Start
//
//	cfg := juliaset.DefaultConfig()
//	cfg.Width, cfg.Height = 1024, 1024
//
//	var r juliaset.Renderer
//	r, err := juliaset.NewGPURenderer()
//	if err != nil {
//	    r = juliaset.NewCPURenderer(0) // fall back to all CPU cores
//	}
//
//	frame, result, err := juliaset.Benchmark(r, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.2f Mpixel/s\n", result.PixelsPerSec/1e6)
//	juliaset.SavePGM("julia.pgm", frame, false)
//
// # Logging
//
// The package is silent by default. Call [SetLogger] with a *slog.Logger
// to see adapter selection, buffer sizes and per-dispatch timings.
//
// # Builds without GPU support
//
// The nogpu build tag removes the wgpu/Vulkan backend; [NewGPURenderer]
// then returns [ErrGPUUnavailable] and only the CPU renderer is usable.
package juliaset
