package fractal

import (
	"context"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/fractal/internal/parallel"
)

// Viewport is the region of the complex plane mapped onto the pixmap.
// Real values grow to the right, imaginary values grow upward.
type Viewport struct {
	RealMin, RealMax float64
	ImagMin, ImagMax float64
}

// Default real range of the Mandelbrot view.
const (
	defaultRealMin = -2.5
	defaultRealMax = 1.0
)

// DefaultViewport returns real [-2.5, 1.0] with an imaginary range centered
// on the real axis and sized to keep the pixmap's aspect ratio.
func DefaultViewport(width, height int) Viewport {
	realRange := defaultRealMax - defaultRealMin
	imagHalf := 0.0
	if width > 0 {
		imagHalf = realRange * float64(height) / float64(width) / 2
	}
	return Viewport{
		RealMin: defaultRealMin,
		RealMax: defaultRealMax,
		ImagMin: -imagHalf,
		ImagMax: imagHalf,
	}
}

// escapeEpsilon keeps log(log(|z|)) finite.
const escapeEpsilon = 1e-10

// Escape iterates z = z² + c from z = 0 for at most maxIter steps.
// If the orbit leaves the radius-2 disc, escaped is true, iter is the
// zero-based step at which it left and nu is the smooth iteration count
// iter + 1 - log2(log|z|). Otherwise nu is maxIter.
func Escape(cx, cy float64, maxIter int) (nu float64, iter int, escaped bool) {
	var zx, zy, zx2, zy2 float64
	for iter = 0; iter < maxIter; iter++ {
		zy = 2*zx*zy + cy
		zx = zx2 - zy2 + cx
		zx2 = zx * zx
		zy2 = zy * zy
		if zx2+zy2 > 4 {
			mod := math.Max(math.Sqrt(zx2+zy2), escapeEpsilon)
			return float64(iter) + 1 - math.Log(math.Log(mod))/math.Ln2, iter, true
		}
	}
	return float64(maxIter), maxIter, false
}

// EscapeColor maps a smooth iteration count to a color. Hue follows
// nu/maxIter around the wheel; lightness rises toward 0.5 as nu grows.
func EscapeColor(nu float64, maxIter int) RGBA {
	nu = math.Max(nu, 0)
	m := float64(maxIter)
	hue := math.Mod(360*nu/m, 360)
	lightness := 0.5 * (1 - math.Exp(-nu/(0.2*m)))
	return HSL(hue, 1, lightness)
}

// Mandelbrot renders the Mandelbrot set with escape-time smooth coloring.
// Points that never escape are black.
type Mandelbrot struct {
	// MaxIterations bounds the orbit length. Non-positive means
	// DefaultMandelbrotIterations.
	MaxIterations int

	// Viewport is the plotted region. Nil means DefaultViewport.
	Viewport *Viewport

	// Workers is the number of goroutines rendering row bands. Zero or
	// negative means the package's shared pool of GOMAXPROCS workers, which
	// stays up between renders. A positive count gets a pool of its own for
	// the duration of the render.
	Workers int
}

// sharedPool serves every Mandelbrot render that does not ask for a specific
// worker count. It is started on first use and never closed.
var sharedPool = sync.OnceValue(func() *parallel.WorkerPool {
	return parallel.NewWorkerPool(0)
})

// pool returns the pool for m and a function releasing it.
func (m *Mandelbrot) pool() (*parallel.WorkerPool, func()) {
	if m.Workers <= 0 {
		return sharedPool(), func() {}
	}
	p := parallel.NewWorkerPool(m.Workers)
	return p, p.Close
}

// Name implements Generator.
func (m *Mandelbrot) Name() string { return "mandelbrot" }

// Render implements Generator. Rows are split into bands rendered
// concurrently; every band checks ctx once per row.
func (m *Mandelbrot) Render(ctx context.Context, pm *Pixmap) error {
	w, h := pm.Width(), pm.Height()
	if w == 0 || h == 0 {
		return nil
	}

	maxIter := m.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMandelbrotIterations
	}
	vp := DefaultViewport(w, h)
	if m.Viewport != nil {
		vp = *m.Viewport
	}
	grid := newPlaneGrid(vp, w, h)

	pool, release := m.pool()
	defer release()

	bands := parallel.SplitRows(h, parallel.BandHeight(h, pool.Workers()))
	work := make([]func(context.Context) error, len(bands))
	for i, band := range bands {
		work[i] = func(ctx context.Context) error {
			for py := band.Y0; py < band.Y1; py++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				cy := grid.imag(py)
				for px := 0; px < w; px++ {
					pm.set8(px, py, escapeNRGBA(grid.real(px), cy, maxIter))
				}
			}
			return nil
		}
	}
	return pool.Run(ctx, work)
}

var opaqueBlack = color.NRGBA{A: 255}

func escapeNRGBA(cx, cy float64, maxIter int) color.NRGBA {
	nu, _, escaped := Escape(cx, cy, maxIter)
	if !escaped {
		return opaqueBlack
	}
	return EscapeColor(nu, maxIter).NRGBA()
}

// planeGrid maps pixel indices to complex coordinates. Pixel 0 sits on
// RealMin/ImagMax and the last pixel on RealMax/ImagMin. Imaginary parts are
// measured from the viewport's center row so rows py and h-1-py get exactly
// mirrored values when the viewport is centered on the real axis.
type planeGrid struct {
	realMin, dx float64
	imagMid, dy float64
	midRow      float64
}

func newPlaneGrid(vp Viewport, w, h int) planeGrid {
	g := planeGrid{
		realMin: vp.RealMin,
		imagMid: (vp.ImagMin + vp.ImagMax) / 2,
		midRow:  float64(h-1) / 2,
	}
	if w > 1 {
		g.dx = (vp.RealMax - vp.RealMin) / float64(w-1)
	}
	if h > 1 {
		g.dy = (vp.ImagMax - vp.ImagMin) / float64(h-1)
	}
	return g
}

func (g planeGrid) real(px int) float64 {
	return g.realMin + float64(px)*g.dx
}

func (g planeGrid) imag(py int) float64 {
	return g.imagMid + (g.midRow-float64(py))*g.dy
}
