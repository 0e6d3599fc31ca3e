package parallel

import "testing"

func TestSplitDomain_ExactFit(t *testing.T) {
	tiles := SplitDomain(64, 32, 16, 16)

	if len(tiles) != 8 {
		t.Fatalf("len(tiles) = %d, want 8", len(tiles))
	}
	for _, tile := range tiles {
		if tile.W != 16 || tile.H != 16 {
			t.Errorf("tile at (%d,%d) is %dx%d, want 16x16", tile.X, tile.Y, tile.W, tile.H)
		}
	}
}

func TestSplitDomain_EdgeClamp(t *testing.T) {
	// 33x17 needs 3x2 tiles with clamped right and bottom edges.
	tiles := SplitDomain(33, 17, 16, 16)

	if len(tiles) != 6 {
		t.Fatalf("len(tiles) = %d, want 6", len(tiles))
	}
	for _, tile := range tiles {
		if tile.X+tile.W > 33 {
			t.Errorf("tile at (%d,%d) reaches x=%d, past width 33", tile.X, tile.Y, tile.X+tile.W)
		}
		if tile.Y+tile.H > 17 {
			t.Errorf("tile at (%d,%d) reaches y=%d, past height 17", tile.X, tile.Y, tile.Y+tile.H)
		}
	}
}

func TestSplitDomain_CoversEveryPixelOnce(t *testing.T) {
	const width, height = 45, 29
	tiles := SplitDomain(width, height, 16, 16)

	covered := make([]int, width*height)
	for _, tile := range tiles {
		for y := tile.Y; y < tile.Y+tile.H; y++ {
			for x := tile.X; x < tile.X+tile.W; x++ {
				covered[y*width+x]++
			}
		}
	}
	for i, n := range covered {
		if n != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times, want 1", i%width, i/width, n)
		}
	}
}

func TestSplitDomain_SmallerThanTile(t *testing.T) {
	tiles := SplitDomain(4, 4, 16, 16)

	if len(tiles) != 1 {
		t.Fatalf("len(tiles) = %d, want 1", len(tiles))
	}
	if tiles[0].W != 4 || tiles[0].H != 4 {
		t.Errorf("tile is %dx%d, want 4x4", tiles[0].W, tiles[0].H)
	}
}

func TestSplitDomain_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name         string
		w, h, tw, th int
	}{
		{"zero width", 0, 10, 16, 16},
		{"negative height", 10, -1, 16, 16},
		{"zero tile", 10, 10, 0, 16},
	} {
		if tiles := SplitDomain(tc.w, tc.h, tc.tw, tc.th); tiles != nil {
			t.Errorf("%s: SplitDomain returned %d tiles, want nil", tc.name, len(tiles))
		}
	}
}
