package fractal

import "context"

// HTree draws nested "H" shapes. Each H is two verticals joined by a
// horizontal bar; the four tips of the verticals seed the next, half-size
// level.
type HTree struct {
	// Center of the outermost H. Nil means the pixmap center.
	Center *Point

	// Half is the half-extent of the outermost H. Non-positive means
	// min(width, height)/4. Recursion stops once Half drops below 1.
	Half float64

	// Order is the recursion depth. Zero draws nothing, negative means
	// DefaultHTreeOrder and values above MaxHTreeOrder are clamped.
	Order int

	// Color is the stroke color. The zero value means White.
	Color RGBA
}

// Name implements Generator.
func (t *HTree) Name() string { return "htree" }

// Render implements Generator.
func (t *HTree) Render(ctx context.Context, pm *Pixmap) error {
	_, err := t.Draw(ctx, pm)
	return err
}

// Draw renders the tree and reports how many segments were drawn.
func (t *HTree) Draw(ctx context.Context, pm *Pixmap) (int, error) {
	order := t.Order
	switch {
	case order < 0:
		order = DefaultHTreeOrder
	case order > MaxHTreeOrder:
		logClamped(ParamOrder, order, MaxHTreeOrder)
		order = MaxHTreeOrder
	}

	center := Pt(float64(pm.Width())/2, float64(pm.Height())/2)
	if t.Center != nil {
		center = *t.Center
	}
	half := t.Half
	if half <= 0 {
		half = float64(min(pm.Width(), pm.Height())) / 4
	}

	d := hTreeDrawer{ctx: ctx, pm: pm, color: colorOr(t.Color, White)}
	err := d.draw(center, half, order)
	return d.segments, err
}

type hTreeDrawer struct {
	ctx      context.Context
	pm       *Pixmap
	color    RGBA
	segments int
}

func (d *hTreeDrawer) draw(c Point, half float64, order int) error {
	if order == 0 || half < 1 {
		return nil
	}
	if order >= 3 {
		if err := d.ctx.Err(); err != nil {
			return err
		}
	}

	x0, x1 := c.X-half, c.X+half
	y0, y1 := c.Y-half, c.Y+half
	d.pm.DrawLine(Pt(x0, y0), Pt(x0, y1), d.color)
	d.pm.DrawLine(Pt(x1, y0), Pt(x1, y1), d.color)
	d.pm.DrawLine(Pt(x0, c.Y), Pt(x1, c.Y), d.color)
	d.segments += 3

	for _, corner := range [...]Point{{x0, y0}, {x0, y1}, {x1, y0}, {x1, y1}} {
		if err := d.draw(corner, half/2, order-1); err != nil {
			return err
		}
	}
	return nil
}

// HTreeSegments returns the number of segments an H-tree of the given order
// draws when Half is large enough that no level is cut off: 4^order - 1.
func HTreeSegments(order int) int {
	if order <= 0 {
		return 0
	}
	order = min(order, MaxHTreeOrder)
	return 1<<(2*order) - 1
}
