package juliaset

import "testing"

func TestNewFrame(t *testing.T) {
	f := NewFrame(7, 3)
	if f.Width != 7 || f.Height != 3 {
		t.Errorf("frame is %dx%d, want 7x3", f.Width, f.Height)
	}
	if len(f.Pix) != 21 {
		t.Errorf("len(Pix) = %d, want 21", len(f.Pix))
	}
}

func TestFrameAt(t *testing.T) {
	f := NewFrame(4, 4)
	f.Pix[2*4+3] = 200

	if got := f.At(3, 2); got != 200 {
		t.Errorf("At(3,2) = %d, want 200", got)
	}
	if got := f.At(2, 3); got != 0 {
		t.Errorf("At(2,3) = %d, want 0", got)
	}
}

func TestFrameGray(t *testing.T) {
	f := NewFrame(3, 2)
	for i := range f.Pix {
		f.Pix[i] = byte(i * 40)
	}

	img := f.Gray()
	bounds := img.Bounds()
	if bounds.Dx() != 3 || bounds.Dy() != 2 {
		t.Fatalf("Gray() bounds = %v, want 3x2", bounds)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := img.GrayAt(x, y).Y; got != f.At(x, y) {
				t.Errorf("GrayAt(%d,%d) = %d, want %d", x, y, got, f.At(x, y))
			}
		}
	}

	// The image holds a copy, not a view.
	f.Pix[0] = 255
	if img.GrayAt(0, 0).Y == 255 {
		t.Error("Gray() shares pixel storage with the frame")
	}
}
