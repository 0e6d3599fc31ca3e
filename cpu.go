package juliaset

import (
	"fmt"
	"time"

	"github.com/maltsev-andrey/julia-set-cuda/internal/parallel"
)

// CPURenderer runs the kernel tile-parallel on a worker pool. Each 16x16
// tile is one unit of work; tiles write disjoint index ranges of the
// output buffer, so no synchronization is needed beyond waiting for all
// tiles to complete.
type CPURenderer struct {
	cfg   Config
	pool  *parallel.WorkerPool
	tiles []parallel.Tile
	buf   []byte
}

// NewCPURenderer creates a renderer backed by the given number of worker
// goroutines. workers <= 0 uses GOMAXPROCS.
func NewCPURenderer(workers int) *CPURenderer {
	return &CPURenderer{pool: parallel.NewWorkerPool(workers)}
}

func (r *CPURenderer) Name() string { return "cpu" }

// Setup allocates the working buffer and precomputes the tile cover.
func (r *CPURenderer) Setup(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cfg = cfg
	r.buf = make([]byte, cfg.Pixels())
	r.tiles = parallel.SplitDomain(cfg.Width, cfg.Height, TileWidth, TileHeight)
	Logger().Debug("cpu renderer ready",
		"workers", r.pool.Workers(), "tiles", len(r.tiles))
	return nil
}

// Dispatch renders the whole domain once and returns the elapsed time.
func (r *CPURenderer) Dispatch() (time.Duration, error) {
	if r.buf == nil {
		return 0, fmt.Errorf("cpu: dispatch before setup")
	}
	start := time.Now()
	work := make([]func(), len(r.tiles))
	for i, tile := range r.tiles {
		t := tile
		work[i] = func() { r.renderTile(t) }
	}
	r.pool.ExecuteAll(work)
	return time.Since(start), nil
}

func (r *CPURenderer) renderTile(t parallel.Tile) {
	for y := t.Y; y < t.Y+t.H; y++ {
		row := y * r.cfg.Width
		for x := t.X; x < t.X+t.W; x++ {
			r.buf[row+x] = Pixel(x, y, r.cfg)
		}
	}
}

// Readback copies the working buffer into dst in one bulk transfer.
func (r *CPURenderer) Readback(dst []byte) error {
	if len(dst) != len(r.buf) {
		return fmt.Errorf("cpu: readback into %d bytes, want %d", len(dst), len(r.buf))
	}
	copy(dst, r.buf)
	return nil
}

// Close shuts down the worker pool. Safe to call more than once.
func (r *CPURenderer) Close() { r.pool.Close() }
