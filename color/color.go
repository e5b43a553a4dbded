// Package color defines the colour values used by flag stripes and the
// reduce-strain transform applied to them before display.
//
// A Color is always the canonical upper-case "#RRGGBB" form.  Values are
// created with Parse, so code that holds a Color may assume it is well formed.
package color

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/constraints"
)

// ErrInvalidColorFormat is returned (wrapped) by Parse for strings that are
// not six-digit hex colours.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Color is an opaque RGB colour in "#RRGGBB" form.
type Color string

// Parse validates s as a "#rrggbb" hex colour (either case) and returns its
// canonical form.
func Parse(s string) (Color, error) {
	// colorful also accepts the short "#rgb" form; flag catalogs don't.
	if len(s) != 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	r, g, b := c.RGB255()
	return fromRGB(r, g, b), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func fromRGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}

// RGB returns the 8-bit channels of c.  The zero Color decodes as black.
func (c Color) RGB() (r, g, b uint8) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return 0, 0, 0
	}
	return col.RGB255()
}

func (c Color) String() string {
	return string(c)
}

// ReduceStrain maps c onto a calmer palette.  Near-gray colours keep their
// gray level, limited to [0.20, 0.85]; everything else has its HSL lightness
// clamped to [0.30, 0.80] and its saturation to [0.50, 0.80].
//
// The arithmetic is single precision so that output is pixel-identical with
// other renderers of the same catalog.
func ReduceStrain(c Color) Color {
	r8, g8, b8 := c.RGB()
	r := float32(r8) / 255
	g := float32(g8) / 255
	b := float32(b8) / 255

	if abs(r-g) < 0.02 && abs(r-b) < 0.02 && abs(g-b) < 0.02 {
		l := clamp((r+g+b)/3, 0.2, 0.85)
		v := to255(l)
		return fromRGB(v, v, v)
	}

	h, s, l := rgbToHSL(r, g, b)
	l = clamp(l, 0.3, 0.8)
	s = clamp(s, 0.5, 0.8)
	r, g, b = hslToRGB(h, s, l)
	return fromRGB(to255(r), to255(g), to255(b))
}

// rgbToHSL returns hue in degrees [0, 360) and saturation and lightness in
// [0, 1].
func rgbToHSL(r, g, b float32) (h, s, l float32) {
	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2

	delta := hi - lo
	if delta == 0 {
		return 0, 0, l
	}
	s = delta / (1 - abs(2*l-1))

	switch hi {
	case r:
		h = remEuclid((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	return h * 60, s, l
}

func hslToRGB(h, s, l float32) (r, g, b float32) {
	c := (1 - abs(2*l-1)) * s
	x := c * (1 - abs(float32(math.Mod(float64(h/60), 2))-1))
	m := l - c/2

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

// to255 scales v in [0, 1] to a channel value, rounding half away from zero.
func to255(v float32) uint8 {
	return uint8(clamp(math.Round(float64(v*255)), 0, 255))
}

func remEuclid(x, y float32) float32 {
	r := float32(math.Mod(float64(x), float64(y)))
	if r < 0 {
		r += abs(y)
	}
	return r
}

func clamp[T constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

func abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
