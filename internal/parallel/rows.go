package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in b.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows splits height rows into consecutive bands of at most rows rows.
// The last band is shorter if height is not divisible by rows.
func SplitRows(height, rows int) []Band {
	if rows <= 0 {
		panic("parallel: band height must be positive")
	}
	if height <= 0 {
		return nil
	}

	bands := make([]Band, 0, (height+rows-1)/rows)
	for y := 0; y < height; y += rows {
		bands = append(bands, Band{Y0: y, Y1: min(y+rows, height)})
	}
	return bands
}

// BandHeight picks a band height giving each of workers several bands, so
// work stealing can even out rows of very different cost.
func BandHeight(height, workers int) int {
	const bandsPerWorker = 4
	if workers <= 0 {
		workers = 1
	}
	return max(1, height/(workers*bandsPerWorker))
}
