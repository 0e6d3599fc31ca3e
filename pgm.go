package juliaset

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
)

// EncodePGM writes f as a binary PGM (P5) image: a short text header
// declaring the magic, dimensions and max sample value, followed by raw
// row-major single-byte samples with no padding.
func EncodePGM(w io.Writer, f *Frame) error {
	return encodePGM(w, f, " ")
}

// EncodePGMLegacy writes the dimension header with a comma and space
// between width and height. This deviates from the PGM grammar (which
// expects whitespace-only separation) but matches output produced by
// older tooling; use it when byte-for-byte compatibility with such
// artifacts matters.
func EncodePGMLegacy(w io.Writer, f *Frame) error {
	return encodePGM(w, f, ", ")
}

func encodePGM(w io.Writer, f *Frame, sep string) error {
	if len(f.Pix) != f.Width*f.Height {
		return fmt.Errorf("juliaset: frame holds %d samples, want %d", len(f.Pix), f.Width*f.Height)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d%s%d\n255\n", f.Width, sep, f.Height); err != nil {
		return fmt.Errorf("juliaset: write PGM header: %w", err)
	}
	if _, err := bw.Write(f.Pix); err != nil {
		return fmt.Errorf("juliaset: write PGM samples: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("juliaset: flush PGM output: %w", err)
	}
	return nil
}

// SavePGM writes f to path as binary PGM, overwriting any existing file.
// The legacy flag selects the comma-separated header variant.
func SavePGM(path string, f *Frame, legacy bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("juliaset: open %s: %w", path, err)
	}
	enc := EncodePGM
	if legacy {
		enc = EncodePGMLegacy
	}
	if err := enc(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// SavePNG writes f to path as a grayscale PNG.
func SavePNG(path string, f *Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("juliaset: open %s: %w", path, err)
	}
	if err := png.Encode(file, f.Gray()); err != nil {
		file.Close()
		return fmt.Errorf("juliaset: encode PNG: %w", err)
	}
	return file.Close()
}
