package juliaset

import "image"

// Frame is the host-resident output buffer: one grayscale byte per
// pixel, row-major, index y*Width + x. It is owned by the single control
// thread; renderers only touch it through a bulk Readback after all
// parallel work has completed.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a zeroed frame.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]byte, width*height)}
}

// At returns the intensity at (x, y).
func (f *Frame) At(x, y int) byte { return f.Pix[y*f.Width+x] }

// Gray converts the frame to a std image for PNG encoding. The pixel
// data is copied; mutating the frame afterwards does not affect the
// returned image.
func (f *Frame) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pix)
	return img
}
