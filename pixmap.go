package fractal

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Pixmap is the pixel buffer every generator draws into.
// Pixels are stored as non-premultiplied RGBA, 4 bytes per pixel, row-major.
// All writes are bounds checked; writes outside the buffer are dropped.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates an opaque black pixmap. Non-positive dimensions yield an
// empty 0×0 pixmap that accepts (and drops) every write.
func NewPixmap(width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	p := &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	for i := 3; i < len(p.data); i += 4 {
		p.data[i] = 255
	}
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.set8(x, y, c.NRGBA())
}

// set8 writes an in-bounds pixel. Callers check bounds.
func (p *Pixmap) set8(x, y int, c color.NRGBA) {
	i := (y*p.width + x) * 4
	s := p.data[i : i+4 : i+4]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
	s[3] = c.A
}

// GetPixel returns the color of a single pixel, or Transparent outside the
// pixmap.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	return FromColor(p.nrgbaAt(x, y))
}

func (p *Pixmap) nrgbaAt(x, y int) color.NRGBA {
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// plot rounds pt to the nearest pixel and sets it.
func (p *Pixmap) plot(pt Point, c color.NRGBA) {
	x, y, ok := pt.Round()
	if !ok || x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.set8(x, y, c)
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	n := c.NRGBA()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = n.R
		p.data[i+1] = n.G
		p.data[i+2] = n.B
		p.data[i+3] = n.A
	}
}

// FillRect fills the w×h rectangle whose top-left corner is (x, y).
// The rectangle is clamped to the pixmap first.
func (p *Pixmap) FillRect(x, y, w, h int, c RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(p.Bounds())
	if w <= 0 || h <= 0 || r.Empty() {
		return
	}
	n := c.NRGBA()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			p.set8(px, py, n)
		}
	}
}

// pixelHalf is the distance from a pixel center to its edge. A coordinate
// belongs to the pixel it rounds to, so pixel i covers [i-0.5, i+0.5).
const pixelHalf = 0.5

// DrawLine rasterizes the segment p0-p1 with Bresenham's algorithm.
// Endpoints are rounded to the nearest pixel, the same way plotted points
// are; a zero-length segment plots a single pixel. The segment is first
// clipped to the area covered by the pixmap's pixels.
func (p *Pixmap) DrawLine(p0, p1 Point, c RGBA) {
	if p.width == 0 {
		return
	}
	area := Rect{
		Min: Pt(-pixelHalf, -pixelHalf),
		Max: Pt(float64(p.width)-pixelHalf, float64(p.height)-pixelHalf),
	}
	var ok bool
	p0, p1, ok = clipSegment(p0, p1, area)
	if !ok {
		return
	}
	n := c.NRGBA()

	x0, y0, _ := p0.Round()
	x1, y1, _ := p1.Round()
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && x0 < p.width && y0 >= 0 && y0 < p.height {
			p.set8(x0, y0, n)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Outcodes for clipSegment.
const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func outcode(pt Point, r Rect) int {
	code := 0
	switch {
	case pt.X < r.Min.X:
		code |= outLeft
	case pt.X > r.Max.X:
		code |= outRight
	}
	switch {
	case pt.Y < r.Min.Y:
		code |= outTop
	case pt.Y > r.Max.Y:
		code |= outBottom
	}
	return code
}

// clipSegment clips a segment to r (Cohen-Sutherland).
func clipSegment(a, b Point, r Rect) (Point, Point, bool) {
	for _, v := range [...]float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}
	ca, cb := outcode(a, r), outcode(b, r)
	for {
		switch {
		case ca|cb == 0:
			return a, b, true
		case ca&cb != 0:
			return a, b, false
		}

		out := ca
		if out == 0 {
			out = cb
		}
		var pt Point
		switch {
		case out&outTop != 0:
			pt = Point{X: a.X + (b.X-a.X)*(r.Min.Y-a.Y)/(b.Y-a.Y), Y: r.Min.Y}
		case out&outBottom != 0:
			pt = Point{X: a.X + (b.X-a.X)*(r.Max.Y-a.Y)/(b.Y-a.Y), Y: r.Max.Y}
		case out&outLeft != 0:
			pt = Point{X: r.Min.X, Y: a.Y + (b.Y-a.Y)*(r.Min.X-a.X)/(b.X-a.X)}
		default:
			pt = Point{X: r.Max.X, Y: a.Y + (b.Y-a.Y)*(r.Max.X-a.X)/(b.X-a.X)}
		}

		if out == ca {
			a, ca = pt, outcode(pt, r)
		} else {
			b, cb = pt, outcode(pt, r)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ToImage copies the pixmap into an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	return p.nrgbaAt(x, y)
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.set8(x, y, color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// Format identifies an output encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes the pixmap to w in the given format.
func (p *Pixmap) Encode(w io.Writer, f Format) error {
	img := p.ToImage()
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("fractal: encode %s: %w", f, err)
	}
	return nil
}

// Save writes the pixmap to path, choosing the format from its extension.
func (p *Pixmap) Save(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("fractal: create file: %w", err)
	}
	if err := p.Encode(file, f); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
