package juliaset

import (
	"bytes"
	"testing"
)

func TestCPURenderer_MatchesKernel(t *testing.T) {
	// 33x17 is not a multiple of the tile shape, so edge tiles are
	// exercised too.
	cfg := Config{Width: 33, Height: 17, MaxIter: 20, CRe: -0.8, CIm: 0.156, Runs: 1}

	r := NewCPURenderer(4)
	defer r.Close()
	if err := r.Setup(cfg); err != nil {
		t.Fatalf("Setup() = %v", err)
	}
	if _, err := r.Dispatch(); err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}

	got := make([]byte, cfg.Pixels())
	if err := r.Readback(got); err != nil {
		t.Fatalf("Readback() = %v", err)
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			want := Pixel(x, y, cfg)
			if got[y*cfg.Width+x] != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got[y*cfg.Width+x], want)
			}
		}
	}
}

func TestCPURenderer_DispatchBeforeSetup(t *testing.T) {
	r := NewCPURenderer(1)
	defer r.Close()

	if _, err := r.Dispatch(); err == nil {
		t.Error("Dispatch() = nil, want error before Setup")
	}
}

func TestCPURenderer_ReadbackSizeMismatch(t *testing.T) {
	r := NewCPURenderer(1)
	defer r.Close()
	cfg := Config{Width: 8, Height: 8, MaxIter: 5, Runs: 1}
	if err := r.Setup(cfg); err != nil {
		t.Fatalf("Setup() = %v", err)
	}

	if err := r.Readback(make([]byte, 10)); err == nil {
		t.Error("Readback() = nil, want error for wrong buffer size")
	}
}

func TestCPURenderer_RepeatDispatchIsStable(t *testing.T) {
	// Every dispatch fully overwrites the buffer with identical results.
	cfg := Config{Width: 32, Height: 32, MaxIter: 30, CRe: 0.285, CIm: 0.01, Runs: 1}

	r := NewCPURenderer(2)
	defer r.Close()
	if err := r.Setup(cfg); err != nil {
		t.Fatalf("Setup() = %v", err)
	}

	if _, err := r.Dispatch(); err != nil {
		t.Fatalf("first Dispatch() = %v", err)
	}
	first := make([]byte, cfg.Pixels())
	if err := r.Readback(first); err != nil {
		t.Fatalf("Readback() = %v", err)
	}

	if _, err := r.Dispatch(); err != nil {
		t.Fatalf("second Dispatch() = %v", err)
	}
	second := make([]byte, cfg.Pixels())
	if err := r.Readback(second); err != nil {
		t.Fatalf("Readback() = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("successive dispatches produced different images")
	}
}
