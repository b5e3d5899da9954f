package fractal

import (
	"image/color"
	"math"
	"strings"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Color converts c to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return c.NRGBA()
}

// NRGBA returns c as 8-bit non-premultiplied components.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// to8 maps a [0, 1] component to a byte, rounding to nearest.
func to8(v float64) uint8 {
	v = v*255 + 0.5
	if v < 0 || v != v {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)

// colorOr returns c, or def when c is the zero value.
func colorOr(c, def RGBA) RGBA {
	if c == (RGBA{}) {
		return def
	}
	return c
}

// HSL creates an opaque color from HSL values.
// h is hue in degrees (any value, wrapped into [0, 360)), s is saturation
// [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB(r+m, g+m, b+m)
}

// ParseHex parses a color picker value such as "#0f0", "#00ff00" or
// "00ff00cc". ok is false when s is not a valid hex color.
func ParseHex(s string) (c RGBA, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	digits := make([]uint32, len(s))
	for i := 0; i < len(s); i++ {
		d, valid := hexDigit(s[i])
		if !valid {
			return RGBA{}, false
		}
		digits[i] = d
	}

	var r, g, b uint32
	a := uint32(255)
	switch len(s) {
	case 3, 4:
		r, g, b = digits[0]*17, digits[1]*17, digits[2]*17
		if len(s) == 4 {
			a = digits[3] * 17
		}
	case 6, 8:
		r, g, b = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]
		if len(s) == 8 {
			a = digits[6]<<4 | digits[7]
		}
	default:
		return RGBA{}, false
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

func hexDigit(ch byte) (uint32, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return uint32(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return uint32(ch-'a') + 10, true
	case 'A' <= ch && ch <= 'F':
		return uint32(ch-'A') + 10, true
	}
	return 0, false
}
