package fractal

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// Generator draws one fractal into a pixmap.
//
// Render must only write inside the pixmap and must return ctx.Err() if it
// stops early because ctx ended.
type Generator interface {
	Name() string
	Render(ctx context.Context, pm *Pixmap) error
}

// Factory builds a generator for a width×height pixmap from raw host
// parameters. Invalid parameters are replaced by defaults, never reported.
type Factory func(width, height int, p Params, o *Config) Generator

// Config carries the options a factory may honor.
type Config struct {
	// Rand is the random source for stochastic generators. It is nil unless
	// the caller asked for a seed, in which case every call of Lookup with
	// the same seed yields the same stream.
	Rand Source

	// Workers is the goroutine count for parallel generators.
	Workers int
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{} // folded name or alias -> factory
	canonical  = map[string]string{}  // folded name -> name as registered
)

// foldName normalizes a generator name for lookup.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register makes a generator available under name and its aliases. Names are
// matched case-insensitively. Registering a name twice replaces the factory.
// An alias never replaces another generator's name; such aliases are skipped
// with a warning.
func Register(name string, f Factory, aliases ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := foldName(name)
	registry[key] = f
	canonical[key] = name

	for _, alias := range aliases {
		ak := foldName(alias)
		if owner, ok := canonical[ak]; ok && ak != key {
			Logger().Warn("fractal: alias shadows a generator name, ignored",
				"alias", alias, "generator", owner)
			continue
		}
		registry[ak] = f
	}
}

// Names returns the canonical names of all registered generators, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(canonical))
	for _, n := range canonical {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Lookup builds the generator registered under name for a width×height
// pixmap.
func Lookup(name string, width, height int, p Params, opts ...RenderOption) (Generator, error) {
	registryMu.RLock()
	f, ok := registry[foldName(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}

	o := applyRenderOptions(opts)
	cfg := &Config{Rand: o.rand, Workers: o.workers}
	if !o.hasSeed {
		if seed, ok := p.seed(); ok {
			cfg.Rand = NewSource(seed)
		}
	}
	return f(width, height, p, cfg), nil
}

// Render creates a width×height pixmap cleared to the background color and
// draws the named generator into it. On cancellation the partially drawn
// pixmap is returned with the error.
func Render(ctx context.Context, name string, width, height int, p Params, opts ...RenderOption) (*Pixmap, error) {
	g, err := Lookup(name, width, height, p, opts...)
	if err != nil {
		return nil, err
	}

	o := applyRenderOptions(opts)
	pm := NewPixmap(width, height)
	pm.Clear(o.background)

	start := time.Now()
	if err := g.Render(ctx, pm); err != nil {
		return pm, fmt.Errorf("fractal: render %s: %w", g.Name(), err)
	}
	Logger().Debug("fractal: rendered",
		"generator", g.Name(),
		"width", pm.Width(),
		"height", pm.Height(),
		"elapsed", time.Since(start))
	return pm, nil
}

func init() {
	Register("chaos", newChaosGame, "sierpinski", "chaos-game")
	Register("htree", newHTree, "h-tree")
	Register("fern", newFern, "barnsley", "barnsley-fern")
	Register("mandelbrot", newMandelbrot)
}

// Shapes accepted by the chaos game "shape" parameter.
const (
	ShapeEquilateral = "equilateral"
	ShapeRandom      = "random"
)

func newChaosGame(width, height int, p Params, o *Config) Generator {
	g := &ChaosGame{
		Iterations: p.count(ParamIterations, DefaultChaosIterations),
		Colors:     TriColor,
		Rand:       o.Rand,
	}
	if _, ok := p[ParamColor]; ok {
		g.Colors = nil
		g.Color = p.Color(ParamColor, White)
	}

	switch shape := foldName(p[ParamShape]); shape {
	case ShapeRandom:
		g.Rand = sourceOrEntropy(g.Rand)
		g.Vertices = RandomTriangle(g.Rand, width, height)
	case "", ShapeEquilateral:
		g.Vertices = EquilateralTriangle(width, height)
	default:
		logDefault(ParamShape, shape, ShapeEquilateral)
		g.Vertices = EquilateralTriangle(width, height)
	}
	return g
}

func newHTree(width, height int, p Params, _ *Config) Generator {
	return &HTree{
		Order: p.order(ParamOrder, DefaultHTreeOrder),
		Color: p.Color(ParamColor, White),
	}
}

func newFern(width, height int, p Params, o *Config) Generator {
	return &Fern{
		Iterations: p.count(ParamIterations, DefaultFernIterations),
		Color:      p.Color(ParamColor, Green),
		Rand:       o.Rand,
	}
}

func newMandelbrot(width, height int, p Params, o *Config) Generator {
	return &Mandelbrot{
		MaxIterations: p.count(ParamMaxIterations, DefaultMandelbrotIterations),
		Workers:       o.Workers,
	}
}
