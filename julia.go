package juliaset

// Iterate runs the escape-time recurrence z ← z² + c starting from
// z = (zr, zi) and returns the number of completed iterations before
// |z|² reaches 4, capped at maxIter. Squaring a+bi is expanded into real
// arithmetic: real part a²−b², imaginary part 2ab. The escape radius 2
// is tested as squared magnitude 4 to avoid a square root.
//
// Single precision is intentional: the output is an 8-bit image and no
// correctness contract depends on bit-exact rounding, so the kernel can
// use the fastest float path the hardware offers.
func Iterate(zr, zi, cr, ci float32, maxIter int) int {
	for iter := 0; iter < maxIter; iter++ {
		if zr*zr+zi*zi >= 4 {
			return iter
		}
		temp := zr*zr - zi*zi + cr
		zi = 2*zr*zi + ci
		zr = temp
	}
	return maxIter
}

// PlanePoint maps pixel (x, y) to the complex plane. The viewport is
// centered on the origin and spans 4 plane units at any resolution:
// doubling the image size changes only the sampling density, never the
// visible window.
func PlanePoint(x, y, width, height int) (re, im float32) {
	re = (float32(x) - float32(width)/2) * 4 / float32(width)
	im = (float32(y) - float32(height)/2) * 4 / float32(height)
	return re, im
}

// Shade maps an iteration count to an 8-bit intensity. Interior pixels
// (cap reached without escaping) are black; escaping pixels scale
// linearly with escape speed, so a near-cap escape is near-white.
// No smoothing or palette lookup.
func Shade(iter, maxIter int) byte {
	if iter >= maxIter {
		return 0
	}
	return byte(255 * iter / maxIter)
}

// Pixel computes the shaded intensity for one pixel under cfg. The CPU
// renderer runs this per pixel; it is also the scalar reference the GPU
// output can be compared against.
func Pixel(x, y int, cfg Config) byte {
	zr, zi := PlanePoint(x, y, cfg.Width, cfg.Height)
	return Shade(Iterate(zr, zi, cfg.CRe, cfg.CIm, cfg.MaxIter), cfg.MaxIter)
}
