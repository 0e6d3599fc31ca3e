//go:build nogpu

package juliaset

import "time"

// GPURenderer is unavailable in builds carrying the nogpu tag.
type GPURenderer struct{}

// NewGPURenderer always fails under the nogpu build tag.
func NewGPURenderer() (*GPURenderer, error) {
	return nil, ErrGPUUnavailable
}

func (r *GPURenderer) Name() string                     { return "gpu" }
func (r *GPURenderer) Setup(Config) error               { return ErrGPUUnavailable }
func (r *GPURenderer) Dispatch() (time.Duration, error) { return 0, ErrGPUUnavailable }
func (r *GPURenderer) Readback([]byte) error            { return ErrGPUUnavailable }
func (r *GPURenderer) Close()                           {}
