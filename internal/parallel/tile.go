package parallel

// Tile is a rectangular sub-grid of the pixel domain rendered as one
// unit of work.
type Tile struct {
	X, Y int // top-left pixel
	W, H int // extent, clamped to the domain
}

// SplitDomain covers a width x height domain with tileW x tileH tiles.
// Tile counts round up so the cover reaches the edges; edge tiles are
// clamped so every pixel belongs to exactly one tile.
func SplitDomain(width, height, tileW, tileH int) []Tile {
	if width <= 0 || height <= 0 || tileW <= 0 || tileH <= 0 {
		return nil
	}
	cols := (width + tileW - 1) / tileW
	rows := (height + tileH - 1) / tileH

	tiles := make([]Tile, 0, cols*rows)
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			t := Tile{X: tx * tileW, Y: ty * tileH, W: tileW, H: tileH}
			if t.X+t.W > width {
				t.W = width - t.X
			}
			if t.Y+t.H > height {
				t.H = height - t.Y
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}
