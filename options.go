package fractal

// RenderOption configures Lookup and Render.
//
// Example:
//
//	pm, err := fractal.Render(ctx, "fern", 800, 600, nil,
//	    fractal.WithSeed(42),
//	    fractal.WithBackground(fractal.Black))
type RenderOption func(*renderOptions)

type renderOptions struct {
	rand       Source
	workers    int
	background RGBA
	hasSeed    bool
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		background: Black,
	}
}

func applyRenderOptions(opts []RenderOption) renderOptions {
	o := defaultRenderOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithSeed makes the stochastic generators reproducible. It takes precedence
// over a "seed" parameter.
func WithSeed(seed uint64) RenderOption {
	return func(o *renderOptions) {
		o.rand = NewSource(seed)
		o.hasSeed = true
	}
}

// WithRand injects a random source directly.
func WithRand(src Source) RenderOption {
	return func(o *renderOptions) {
		o.rand = src
		o.hasSeed = src != nil
	}
}

// WithWorkers sets the number of goroutines the Mandelbrot generator uses.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = n
	}
}

// WithBackground sets the color Render clears the pixmap with.
func WithBackground(c RGBA) RenderOption {
	return func(o *renderOptions) {
		o.background = c
	}
}
