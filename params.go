package fractal

import (
	"strconv"
	"strings"
)

// Documented defaults substituted for missing or invalid parameters.
const (
	DefaultChaosIterations      = 100000
	DefaultFernIterations       = 100000
	DefaultHTreeOrder           = 6
	DefaultMandelbrotIterations = 800

	// MaxHTreeOrder caps H-tree recursion; larger orders are clamped.
	MaxHTreeOrder = 12
)

// Parameter keys understood by the built-in generators.
const (
	ParamIterations    = "iterations"
	ParamOrder         = "order"
	ParamMaxIterations = "maxIterations"
	ParamSeed          = "seed"
	ParamShape         = "shape"
	ParamColor         = "color"
)

// Params holds raw parameter values as a host reads them from its controls.
// Values are parsed on demand; invalid values fall back to defaults.
type Params map[string]string

// ParseCount parses a positive iteration budget. Empty, non-numeric, zero and
// negative input yield def.
func ParseCount(raw string, def int) int {
	n, ok := parseInt(raw)
	if !ok || n <= 0 {
		return def
	}
	return n
}

// ParseOrder parses a recursion order. Zero is valid; empty, non-numeric and
// negative input yield def.
func ParseOrder(raw string, def int) int {
	n, ok := parseInt(raw)
	if !ok || n < 0 {
		return def
	}
	return n
}

// parseInt accepts integers and, like a browser number field, decimal input
// which is truncated toward zero.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != f || f > 1<<31 || f < -(1<<31) {
		return 0, false
	}
	return int(f), true
}

// count returns the positive budget stored under key, logging substitutions.
func (p Params) count(key string, def int) int {
	raw, ok := p[key]
	n := ParseCount(raw, def)
	if ok && n == def && strings.TrimSpace(raw) != strconv.Itoa(def) {
		logDefault(key, raw, def)
	}
	return n
}

// order returns the recursion order stored under key, logging substitutions.
func (p Params) order(key string, def int) int {
	raw, ok := p[key]
	n := ParseOrder(raw, def)
	if ok && n == def && strings.TrimSpace(raw) != strconv.Itoa(def) {
		logDefault(key, raw, def)
	}
	return n
}

// Color returns the color stored under key, or def when absent or malformed.
func (p Params) Color(key string, def RGBA) RGBA {
	raw, ok := p[key]
	if !ok {
		return def
	}
	c, valid := ParseHex(raw)
	if !valid {
		logDefault(key, raw, def)
		return def
	}
	return c
}

// seed returns the "seed" parameter if it is a valid unsigned integer.
func (p Params) seed() (uint64, bool) {
	raw, ok := p[ParamSeed]
	if !ok {
		return 0, false
	}
	s, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		logDefault(ParamSeed, raw, "unseeded")
		return 0, false
	}
	return s, true
}
