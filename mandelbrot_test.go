package fractal

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
)

func TestEscape_Membership(t *testing.T) {
	tests := []struct {
		name        string
		cx, cy      float64
		wantEscaped bool
		maxIter     int // escape must happen before this many iterations
	}{
		{"origin", 0, 0, false, 0},
		{"period-2 bulb", -1, 0, false, 0},
		{"main cardioid", -0.1, 0.1, false, 0},
		{"far outside", 2, 2, true, 2},
		{"outside on the axis", 1, 0, true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu, iter, escaped := Escape(tt.cx, tt.cy, 800)
			if escaped != tt.wantEscaped {
				t.Fatalf("Escape(%v, %v) escaped = %v, want %v", tt.cx, tt.cy, escaped, tt.wantEscaped)
			}
			if !escaped {
				if iter != 800 || nu != 800 {
					t.Errorf("interior point: iter = %d, nu = %v, want 800", iter, nu)
				}
				return
			}
			if iter >= tt.maxIter {
				t.Errorf("escaped at iteration %d, want < %d", iter, tt.maxIter)
			}
			if math.IsNaN(nu) || math.IsInf(nu, 0) {
				t.Errorf("smooth count = %v, want finite", nu)
			}
		})
	}
}

func TestEscape_SmoothCount(t *testing.T) {
	// c = 2+2i leaves on the first step with |z| = sqrt(8).
	nu, iter, _ := Escape(2, 2, 100)
	want := 1 - math.Log(math.Log(math.Sqrt(8)))/math.Ln2
	if iter != 0 || math.Abs(nu-want) > 1e-12 {
		t.Errorf("Escape(2, 2) = (%v, %d), want (%v, 0)", nu, iter, want)
	}
}

func TestEscapeColor(t *testing.T) {
	c := EscapeColor(0, 800)
	if c != Black {
		t.Errorf("EscapeColor(0) = %v, want black (zero lightness)", c)
	}

	// Lightness grows toward 0.5 and never exceeds it.
	prev := -1.0
	for _, nu := range []float64{1, 10, 100, 400, 799} {
		c := EscapeColor(nu, 800)
		l := (max(c.R, c.G, c.B) + min(c.R, c.G, c.B)) / 2
		if l <= prev || l > 0.5+1e-9 {
			t.Errorf("EscapeColor(%v) lightness = %v after %v", nu, l, prev)
		}
		prev = l
		if c.A != 1 {
			t.Errorf("EscapeColor(%v) alpha = %v, want 1", nu, c.A)
		}
	}
}

func TestDefaultViewport(t *testing.T) {
	vp := DefaultViewport(700, 400)
	if vp.RealMin != -2.5 || vp.RealMax != 1.0 {
		t.Errorf("real range = [%v, %v], want [-2.5, 1]", vp.RealMin, vp.RealMax)
	}
	if vp.ImagMin != -vp.ImagMax || math.Abs(vp.ImagMax-1.0) > 1e-12 {
		t.Errorf("imag range = [%v, %v], want [-1, 1]", vp.ImagMin, vp.ImagMax)
	}
}

func TestPlaneGrid_Corners(t *testing.T) {
	vp := Viewport{RealMin: -2, RealMax: 2, ImagMin: -1, ImagMax: 1}
	g := newPlaneGrid(vp, 5, 3)
	if g.real(0) != -2 || g.real(4) != 2 {
		t.Errorf("real edges = %v, %v, want -2, 2", g.real(0), g.real(4))
	}
	if g.imag(0) != 1 || g.imag(1) != 0 || g.imag(2) != -1 {
		t.Errorf("imag rows = %v, %v, %v, want 1, 0, -1", g.imag(0), g.imag(1), g.imag(2))
	}

	one := newPlaneGrid(vp, 1, 1)
	if one.real(0) != -2 || one.imag(0) != 0 {
		t.Errorf("1x1 grid maps to (%v, %v)", one.real(0), one.imag(0))
	}
}

func TestMandelbrot_Symmetry(t *testing.T) {
	for _, size := range [][2]int{{64, 48}, {63, 47}} {
		w, h := size[0], size[1]
		pm := NewPixmap(w, h)
		m := &Mandelbrot{MaxIterations: 200, Workers: 3}
		if err := m.Render(context.Background(), pm); err != nil {
			t.Fatalf("Render() = %v", err)
		}
		for py := range h {
			for px := range w {
				a, b := pm.GetPixel(px, py), pm.GetPixel(px, h-1-py)
				if a != b {
					t.Fatalf("%dx%d: pixel (%d, %d) = %v, mirror = %v", w, h, px, py, a, b)
				}
			}
		}
	}
}

func TestMandelbrot_Deterministic(t *testing.T) {
	render := func(workers int) []byte {
		pm := NewPixmap(80, 60)
		m := &Mandelbrot{MaxIterations: 300, Workers: workers}
		if err := m.Render(context.Background(), pm); err != nil {
			t.Fatalf("Render() = %v", err)
		}
		return pm.Data()
	}
	serial := render(1)
	if !bytes.Equal(serial, render(1)) {
		t.Error("two serial renders differ")
	}
	if !bytes.Equal(serial, render(8)) {
		t.Error("parallel render differs from serial render")
	}
}

func TestMandelbrot_InteriorAndExterior(t *testing.T) {
	pm := NewPixmap(71, 41)
	m := &Mandelbrot{MaxIterations: 500}
	if err := m.Render(context.Background(), pm); err != nil {
		t.Fatalf("Render() = %v", err)
	}

	// Column 50 of 71 over [-2.5, 1] is c = 0, row 20 is the real axis.
	if c := pm.GetPixel(50, 20); c != Black {
		t.Errorf("c = 0 rendered %v, want black", c)
	}
	// Top-left corner is far outside the set.
	if c := pm.GetPixel(0, 0); c == Black {
		t.Error("c = -2.5+1.0i rendered black")
	}
	for i := 3; i < len(pm.Data()); i += 4 {
		if pm.Data()[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, pm.Data()[i])
		}
	}
}

func TestMandelbrot_DefaultIterations(t *testing.T) {
	// Zero and negative budgets render exactly like the documented default
	// rather than an all-black or all-escaped image.
	want := NewPixmap(40, 30)
	if err := (&Mandelbrot{MaxIterations: DefaultMandelbrotIterations}).Render(context.Background(), want); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	black := countColor(want, Black)
	if black == 0 || black == 40*30 {
		t.Fatalf("default render has %d black pixels, want a mix", black)
	}

	for _, n := range []int{0, -5} {
		got := NewPixmap(40, 30)
		if err := (&Mandelbrot{MaxIterations: n}).Render(context.Background(), got); err != nil {
			t.Fatalf("Render() = %v", err)
		}
		if !bytes.Equal(got.Data(), want.Data()) {
			t.Errorf("MaxIterations %d did not fall back to %d", n, DefaultMandelbrotIterations)
		}
	}
}

func TestMandelbrot_Degenerate(t *testing.T) {
	for _, pm := range []*Pixmap{NewPixmap(1, 1), NewPixmap(0, 0), NewPixmap(1, 30), NewPixmap(30, 1)} {
		if err := (&Mandelbrot{MaxIterations: 50}).Render(context.Background(), pm); err != nil {
			t.Errorf("Render(%dx%d) = %v", pm.Width(), pm.Height(), err)
		}
	}
}

func TestMandelbrot_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pm := NewPixmap(64, 64)
	err := (&Mandelbrot{MaxIterations: 1000}).Render(ctx, pm)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() = %v, want context.Canceled", err)
	}
}

func TestMandelbrot_SharedPool(t *testing.T) {
	m := &Mandelbrot{MaxIterations: 50}
	first, release := m.pool()
	release()
	if err := m.Render(context.Background(), NewPixmap(20, 20)); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	second, _ := m.pool()
	if first != second || !second.IsRunning() {
		t.Error("renders without a worker count should reuse one running pool")
	}

	own, release := (&Mandelbrot{Workers: 2}).pool()
	if own == first || own.Workers() != 2 {
		t.Error("an explicit worker count should get its own pool")
	}
	release()
	if own.IsRunning() {
		t.Error("a dedicated pool should be closed after the render")
	}
}

func TestMandelbrot_ConcurrentRenders(t *testing.T) {
	want := NewPixmap(48, 32)
	if err := (&Mandelbrot{MaxIterations: 100, Workers: 1}).Render(context.Background(), want); err != nil {
		t.Fatalf("Render() = %v", err)
	}

	const renders = 6
	got := make([]*Pixmap, renders)
	errs := make(chan error, renders)
	for i := range got {
		got[i] = NewPixmap(48, 32)
		go func() {
			errs <- (&Mandelbrot{MaxIterations: 100}).Render(context.Background(), got[i])
		}()
	}
	for range renders {
		if err := <-errs; err != nil {
			t.Fatalf("Render() = %v", err)
		}
	}
	for i, pm := range got {
		if !bytes.Equal(pm.Data(), want.Data()) {
			t.Errorf("concurrent render %d differs from the serial render", i)
		}
	}
}
