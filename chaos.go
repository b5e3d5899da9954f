package fractal

import (
	"context"
	"image/color"
	"math"
)

// cancelCheckInterval is how many points the stochastic generators plot
// between context checks.
const cancelCheckInterval = 4096

// ChaosGame plots the attractor of the chaos game for an arbitrary polygon.
// With three vertices the attractor is the Sierpiński triangle.
//
// Each step picks a vertex uniformly at random, moves the current point
// halfway toward it and plots the result. No warm-up iterations are skipped,
// so the first few points may lie off the attractor.
type ChaosGame struct {
	// Vertices are the contraction targets, at least three. Nil means
	// EquilateralTriangle for the pixmap being rendered.
	Vertices []Point

	// Iterations is the number of points plotted. Non-positive means
	// DefaultChaosIterations.
	Iterations int

	// Colors maps a vertex index to the color used for points contracted
	// toward it. Nil means every point uses Color.
	Colors func(vertex int) RGBA

	// Color is the fixed color used when Colors is nil. The zero value
	// means White.
	Color RGBA

	// Start is the seed point. Nil means the first vertex.
	Start *Point

	// Rand supplies vertex choices. Nil means an unseeded source.
	Rand Source
}

// Name implements Generator.
func (g *ChaosGame) Name() string { return "chaos" }

// Render implements Generator.
func (g *ChaosGame) Render(ctx context.Context, pm *Pixmap) error {
	vertices := g.Vertices
	if vertices == nil {
		vertices = EquilateralTriangle(pm.Width(), pm.Height())
	}
	if len(vertices) < 3 {
		Logger().Debug("fractal: chaos game needs at least 3 vertices", "vertices", len(vertices))
		return nil
	}

	iterations := g.Iterations
	if iterations <= 0 {
		iterations = DefaultChaosIterations
	}

	// Colors are resolved once; the palette stays fixed for the render.
	palette := make([]color.NRGBA, len(vertices))
	for i := range palette {
		if g.Colors != nil {
			palette[i] = g.Colors(i).NRGBA()
		} else {
			palette[i] = colorOr(g.Color, White).NRGBA()
		}
	}

	rng := sourceOrEntropy(g.Rand)
	p := vertices[0]
	if g.Start != nil {
		p = *g.Start
	}

	for i := 0; i < iterations; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		v := rng.IntN(len(vertices))
		p = p.Midpoint(vertices[v])
		pm.plot(p, palette[v])
	}
	return nil
}

// EquilateralTriangle returns the triangle the original page drew: apex
// centered 10 pixels below the top edge, sides half the canvas width.
func EquilateralTriangle(width, height int) []Point {
	side := float64(width) / 2
	base := side * math.Cos(math.Pi/6)
	apex := Pt(float64(width)/2, 10)
	return []Point{
		apex,
		Pt(apex.X-side/2, base),
		Pt(apex.X+side/2, base),
	}
}

// RandomTriangle returns three vertices drawn uniformly from the canvas.
func RandomTriangle(src Source, width, height int) []Point {
	vertices := make([]Point, 3)
	for i := range vertices {
		vertices[i] = Pt(src.Float64()*float64(width), src.Float64()*float64(height))
	}
	return vertices
}

// TriColor is the original three-vertex palette: red, white, green.
func TriColor(vertex int) RGBA {
	switch vertex % 3 {
	case 0:
		return Red
	case 1:
		return White
	default:
		return Green
	}
}
