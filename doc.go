// Package fractal renders classic fractals into an in-memory RGBA pixmap.
//
// # Overview
//
// Four independent generators share one output abstraction, the [Pixmap]:
//
//   - [ChaosGame]: the chaos game over an N-vertex polygon (Sierpiński
//     triangle for three vertices)
//   - [HTree]: recursively nested "H" shapes
//   - [Fern]: an affine iterated function system, the Barnsley fern by default
//   - [Mandelbrot]: escape-time Mandelbrot set with smooth coloring
//
// Every generator is a plain struct implementing [Generator]. Zero or invalid
// budgets fall back to documented defaults instead of failing.
//
// # Quick Start
//
//	pm := fractal.NewPixmap(800, 600)
//	m := &fractal.Mandelbrot{MaxIterations: 500}
//	if err := m.Render(ctx, pm); err != nil {
//	    return err
//	}
//	pm.Save("mandelbrot.png")
//
// Hosts that read parameters from text fields use the registry:
//
//	pm, err := fractal.Render(ctx, "fern", 800, 600,
//	    fractal.Params{"iterations": field.Value()},
//	    fractal.WithSeed(7))
//
// # Determinism
//
// The chaos game and the fern consume a [Source]. Pass one built with
// [NewSource], or use [WithSeed], to get byte-identical output across runs.
// The Mandelbrot generator has no randomness.
//
// # Coordinate System
//
// Pixmap coordinates have the origin at the top-left, x to the right and y
// downward. Logical spaces (the fern, the complex plane) have y upward and are
// flipped when mapped onto the pixmap.
package fractal
