package fractal

import (
	"context"
	"fmt"
	"math"
)

// AffineMap is one map of an iterated function system:
// (x, y) -> (A*x + B*y + E, C*x + D*y + F), chosen with probability Weight.
type AffineMap struct {
	A, B, C, D, E, F float64
	Weight           float64
}

// Apply transforms p.
func (m AffineMap) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.E,
		Y: m.C*p.X + m.D*p.Y + m.F,
	}
}

// BarnsleyMaps are the four maps of the classic fern, in selection order:
// stem, successively smaller leaflets, largest left-hand leaflet, largest
// right-hand leaflet.
var BarnsleyMaps = []AffineMap{
	{A: 0, B: 0, C: 0, D: 0.16, E: 0, F: 0, Weight: 0.01},
	{A: 0.85, B: 0.04, C: -0.04, D: 0.85, E: 0, F: 1.6, Weight: 0.85},
	{A: 0.20, B: -0.26, C: 0.23, D: 0.22, E: 0, F: 1.6, Weight: 0.07},
	{A: -0.15, B: 0.28, C: 0.26, D: 0.24, E: 0, F: 0.44, Weight: 0.07},
}

// BarnsleyBounds is the logical extent of the fern attractor.
var BarnsleyBounds = Rect{
	Min: Pt(-2.182, 0),
	Max: Pt(2.6558, 9.9983),
}

// weightTolerance is how far map weights may drift from summing to one.
const weightTolerance = 1e-9

// ValidateIFS reports ErrWeights unless every weight is in (0, 1] and the
// weights sum to one.
func ValidateIFS(maps []AffineMap) error {
	sum := 0.0
	for i, m := range maps {
		if !(m.Weight > 0 && m.Weight <= 1) {
			return fmt.Errorf("%w: map %d has weight %v", ErrWeights, i, m.Weight)
		}
		sum += m.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: sum is %v", ErrWeights, sum)
	}
	return nil
}

// cumulative returns the running sums of the map weights. The last entry is
// forced to exactly 1 so every r in [0, 1) selects a map.
func cumulative(maps []AffineMap) []float64 {
	thresholds := make([]float64, len(maps))
	acc := 0.0
	for i, m := range maps {
		acc += m.Weight
		thresholds[i] = acc
	}
	if n := len(thresholds); n > 0 {
		thresholds[n-1] = 1
	}
	return thresholds
}

// choose returns the first map whose cumulative threshold exceeds r. A value
// equal to a threshold falls through to the next map.
func choose(thresholds []float64, r float64) int {
	for i, t := range thresholds {
		if r < t {
			return i
		}
	}
	return len(thresholds) - 1
}

// Fern plots the attractor of an iterated function system, by default the
// Barnsley fern.
type Fern struct {
	// Maps is the function system. Nil means BarnsleyMaps.
	Maps []AffineMap

	// Bounds is the logical region mapped onto the whole pixmap. The zero
	// value means BarnsleyBounds.
	Bounds Rect

	// Iterations is the number of points computed. Non-positive means
	// DefaultFernIterations.
	Iterations int

	// Color is the point color. The zero value means Green.
	Color RGBA

	// Rand supplies map choices. Nil means an unseeded source.
	Rand Source
}

// Name implements Generator.
func (f *Fern) Name() string { return "fern" }

// Render implements Generator. Points that fall outside the pixmap are
// skipped, not clamped.
func (f *Fern) Render(ctx context.Context, pm *Pixmap) error {
	maps := f.Maps
	if maps == nil {
		maps = BarnsleyMaps
	}
	if err := ValidateIFS(maps); err != nil {
		return err
	}
	bounds := f.Bounds
	if bounds == (Rect{}) {
		bounds = BarnsleyBounds
	}
	iterations := f.Iterations
	if iterations <= 0 {
		iterations = DefaultFernIterations
	}

	thresholds := cumulative(maps)
	rng := sourceOrEntropy(f.Rand)
	c := colorOr(f.Color, Green).NRGBA()
	w, h := pm.Width(), pm.Height()

	var p Point
	for i := 0; i < iterations; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		p = maps[choose(thresholds, rng.Float64())].Apply(p)
		if x, y, ok := bounds.ToCanvas(p, w, h); ok {
			pm.set8(x, y, c)
		}
	}
	return nil
}
