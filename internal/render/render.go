// Package render lays out a flag as a list of drawable primitives.
//
// Project does not draw anything itself.  The resulting Drawing is handed to
// an output surface (package svg or raster) which maps stripes and symbols to
// concrete drawing operations and resolves symbol assets.
package render

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"

	"github.com/cptaffe/pridemix/color"
	"github.com/cptaffe/pridemix/pride"
)

// Canvas size in logical units.
const (
	Width  = 250
	Height = 150
)

// MaxSoftness is the largest accepted Options.Softness.
const MaxSoftness = 49

// dimmed is the opacity of a flag that does not mix well with the other
// selected flag.
const dimmed = 0.4

// Options control how a flag is drawn.
type Options struct {
	ShowSymbols  bool
	ReduceStrain bool

	// Softness widens the transition zone of gradient stripes, from 0
	// (sharp) to MaxSoftness (spread over the whole width).
	Softness float64

	// Blur is a blur radius passed through to the output surface.
	Blur float64
}

// DefaultOptions returns the options flags are shown with initially.
func DefaultOptions() Options {
	return Options{ShowSymbols: true, Softness: 40}
}

// Validate checks that the numeric options are in range.  NaN is never in
// range.
func (o Options) Validate() error {
	if !(o.Softness >= 0 && o.Softness <= MaxSoftness) {
		return fmt.Errorf("softness %g outside [0, %d]", o.Softness, MaxSoftness)
	}
	if !(o.Blur >= 0) || math.IsInf(o.Blur, 1) {
		return fmt.Errorf("blur %g is not a finite, non-negative radius", o.Blur)
	}
	return nil
}

// Drawing is a flag laid out on the canvas, in paint order: all stripes,
// then all symbols.
type Drawing struct {
	Width, Height int
	Stripes       []Stripe
	Symbols       []Symbol

	Blur    float64
	Opacity float64
}

// Stripe is one horizontal band of the flag.
type Stripe struct {
	Y, Height float64
	Gradient  Gradient

	// Literal is set when the stripe has a single colour and can be filled
	// without a gradient.
	Literal color.Color
}

// Gradient is a horizontal linear gradient.  X1, X2, Y1 and Y2 are
// percentages of the stripe's bounding box.
type Gradient struct {
	ID             string
	X1, X2, Y1, Y2 float64
	Stops          []Stop
}

// Stop is a gradient colour stop.  Offset is a percentage.
type Stop struct {
	Offset float64
	Color  color.Color
}

// Symbol is a symbol image placed on the canvas.
type Symbol struct {
	Src                 string
	X, Y, Width, Height int

	// Transform, if not nil, maps the symbol's local coordinates to the
	// canvas.
	Transform *matrix.Matrix
}

// Mirrored reports whether the symbol's transform flips it horizontally.
func (s Symbol) Mirrored() bool {
	return s.Transform != nil && s.Transform[0]*s.Transform[3]-s.Transform[1]*s.Transform[2] < 0
}

// Origin returns the top left corner at which the symbol's image must be
// drawn in the coordinate system of its Transform, so that after the
// transform the image covers the rectangle X, Y, Width, Height.
func (s Symbol) Origin() (x, y float64) {
	if s.Transform == nil {
		return float64(s.X), float64(s.Y)
	}
	inv := s.Transform.Inv()
	x0, y0 := inv.Apply(float64(s.X), float64(s.Y))
	x1, y1 := inv.Apply(float64(s.X+s.Width), float64(s.Y+s.Height))
	return min(x0, x1), min(y0, y1)
}

// Project lays out f on the canvas.  If other is not nil it is the flag f
// would be mixed with; the drawing is dimmed when the two are not
// Compatible.
func Project(f pride.Flag, opts Options, other *pride.Flag) Drawing {
	d := Drawing{
		Width:   Width,
		Height:  Height,
		Blur:    opts.Blur,
		Opacity: 1,
	}
	if other != nil && !pride.Compatible(f, *other) {
		d.Opacity = dimmed
	}

	n := len(f.Stripes)
	stripeHeight := float64(Height) / float64(n)
	hardness := MaxSoftness - opts.Softness
	for i, colors := range f.Stripes {
		s := Stripe{
			Y:      stripeHeight * float64(i),
			Height: stripeHeight,
			Gradient: Gradient{
				ID: fmt.Sprintf("grad%d", i),
				X1: hardness,
				X2: 100 - hardness,
			},
		}
		for j, c := range colors {
			if opts.ReduceStrain {
				c = color.ReduceStrain(c)
			}
			var offset float64
			if len(colors) > 1 {
				offset = float64(j) / float64(len(colors)-1) * 100
			}
			s.Gradient.Stops = append(s.Gradient.Stops, Stop{Offset: offset, Color: c})
		}
		if len(s.Gradient.Stops) == 1 {
			s.Literal = s.Gradient.Stops[0].Color
		}
		d.Stripes = append(d.Stripes, s)
	}

	if !opts.ShowSymbols {
		return d
	}
	for _, p := range f.Symbols {
		r := p.Rect(Width)
		sym := Symbol{
			Src:    p.Symbol.Src,
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
		}
		if p.Flipped() {
			// Mirror about the y axis, then move the mirrored image back
			// onto the canvas at the rectangle's x.
			m := matrix.Scale(-1, 1).Translate(float64(r.X), 0)
			sym.Transform = &m
		}
		d.Symbols = append(d.Symbols, sym)
	}
	return d
}

// TransformString formats m as an SVG transform attribute value.  Pure
// horizontal flips use the translate/scale form.
func TransformString(m matrix.Matrix) string {
	if m[0] == -1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[5] == 0 {
		return fmt.Sprintf("translate(%g,0) scale(-1,1)", m[4])
	}
	return fmt.Sprintf("matrix(%g,%g,%g,%g,%g,%g)", m[0], m[1], m[2], m[3], m[4], m[5])
}
