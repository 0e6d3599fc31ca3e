package juliaset

import "fmt"

// Dispatch tile shape. The GPU workgroup grid and the CPU tile splitter
// both cover the pixel domain in tiles of this size, with tile counts
// rounded up so edge tiles may reach past the image; out-of-range
// coordinates are discarded, not an error.
const (
	TileWidth  = 16
	TileHeight = 16
)

// flopsPerIter is the fixed per-iteration operation weight used by the
// floating-point throughput estimate. The estimate assumes every pixel
// runs the full iteration cap, so it overstates the real rate.
const flopsPerIter = 10

// Config bundles the run parameters. It is constructed once at startup
// and passed explicitly; nothing in the package reads global state.
type Config struct {
	// Width, Height are the output image dimensions in pixels.
	Width  int
	Height int

	// MaxIter is the escape-time iteration cap.
	MaxIter int

	// CRe, CIm are the Julia constant c. Distinct values produce
	// visually distinct boundary shapes under the same recurrence.
	CRe float32
	CIm float32

	// Runs is the number of timed dispatches after the single warm-up.
	Runs int
}

// DefaultConfig returns the reference parameters: a 4096x4096 image of
// the c = -0.8 + 0.156i set at 256 iterations, timed over 10 runs.
func DefaultConfig() Config {
	return Config{
		Width:   4096,
		Height:  4096,
		MaxIter: 256,
		CRe:     -0.8,
		CIm:     0.156,
		Runs:    10,
	}
}

// Validate reports the first invalid field, or nil.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("juliaset: invalid image dimensions %dx%d", c.Width, c.Height)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("juliaset: iteration cap must be positive, got %d", c.MaxIter)
	}
	if c.Runs <= 0 {
		return fmt.Errorf("juliaset: timed run count must be positive, got %d", c.Runs)
	}
	return nil
}

// Pixels returns the total number of output samples.
func (c Config) Pixels() int { return c.Width * c.Height }
