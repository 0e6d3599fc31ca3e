//go:build !nogpu

package juliaset

import (
	"fmt"
	"time"

	"github.com/maltsev-andrey/julia-set-cuda/internal/gpu"
)

// GPURenderer runs the kernel as a WGSL compute shader on a Vulkan
// device through the wgpu HAL. The device-resident output buffer is
// allocated in Setup, fully overwritten by every Dispatch, and copied
// back once by Readback.
type GPURenderer struct {
	d *gpu.Dispatcher
}

// NewGPURenderer brings up the Vulkan backend, opens a device (discrete
// GPU preferred, then integrated) and compiles the compute pipeline.
// Returns an error wrapping ErrGPUUnavailable when no usable adapter is
// present; callers may fall back to NewCPURenderer.
func NewGPURenderer() (*GPURenderer, error) {
	d, err := gpu.NewDispatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGPUUnavailable, err)
	}
	return &GPURenderer{d: d}, nil
}

func (r *GPURenderer) Name() string { return "gpu" }

// Setup allocates the uniform, storage and staging buffers for cfg.
func (r *GPURenderer) Setup(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return r.d.Prepare(gpu.Params{
		Width:   uint32(cfg.Width),
		Height:  uint32(cfg.Height),
		MaxIter: uint32(cfg.MaxIter),
		CRe:     cfg.CRe,
		CIm:     cfg.CIm,
	})
}

// Dispatch runs one fence-synchronized compute pass over the domain.
func (r *GPURenderer) Dispatch() (time.Duration, error) { return r.d.Dispatch() }

// Readback copies the device buffer into dst through the staging buffer.
func (r *GPURenderer) Readback(dst []byte) error { return r.d.Readback(dst) }

// Close releases all device resources.
func (r *GPURenderer) Close() { r.d.Close() }
