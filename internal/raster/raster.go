// Package raster draws a render.Drawing into an image.
//
// Gradient stripes are evaluated per pixel column the way an SVG renderer
// evaluates a horizontal linearGradient with pad spreading.  Symbols are
// scaled into their rectangles, flipped where the drawing asks for it, and
// composited on top.
package raster

import (
	"context"
	"errors"
	"image"
	stdcolor "image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/cptaffe/pridemix/color"
	"github.com/cptaffe/pridemix/internal/logger"
	"github.com/cptaffe/pridemix/internal/render"
)

// Loader provides the image for a symbol asset key.
type Loader interface {
	Load(src string) (image.Image, error)
}

// Dir loads symbol assets from a directory.  SVG assets cannot be decoded,
// so for "name.svg" Dir looks for "name.png" instead.
type Dir string

// Load implements Loader.
func (d Dir) Load(src string) (image.Image, error) {
	if filepath.Base(src) != src {
		return nil, errors.New("invalid asset name " + src)
	}
	if ext := filepath.Ext(src); strings.EqualFold(ext, ".svg") {
		src = strings.TrimSuffix(src, ext) + ".png"
	}
	return imaging.Open(filepath.Join(string(d), src))
}

// Draw rasterises d at one pixel per canvas unit.  Symbols whose asset
// cannot be loaded are skipped with a warning; assets may be nil.
func Draw(ctx context.Context, d render.Drawing, assets Loader) *image.NRGBA {
	log := logger.L(ctx)
	img := imaging.New(d.Width, d.Height, stdcolor.NRGBA{})

	for _, s := range d.Stripes {
		y0, y1 := pixelSpan(s.Y, s.Y+s.Height, d.Height)
		if y0 >= y1 {
			continue
		}
		row := gradientRow(s, d.Width)
		for y := y0; y < y1; y++ {
			for x, c := range row {
				img.SetNRGBA(x, y, c)
			}
		}
	}

	for _, sym := range d.Symbols {
		if assets == nil {
			break
		}
		if sym.Width <= 0 || sym.Height <= 0 {
			continue
		}
		src, err := assets.Load(sym.Src)
		if err != nil {
			log.Warn("load symbol", zap.String("src", sym.Src), zap.Error(err))
			continue
		}
		fitted := imaging.Resize(src, sym.Width, sym.Height, imaging.Lanczos)
		if sym.Mirrored() {
			fitted = imaging.FlipH(fitted)
		}
		img = imaging.Overlay(img, fitted, image.Pt(sym.X, sym.Y), 1)
	}

	if d.Blur > 0 {
		img = imaging.Blur(img, d.Blur)
	}
	if d.Opacity < 1 {
		blank := imaging.New(d.Width, d.Height, stdcolor.NRGBA{})
		img = imaging.Overlay(blank, img, image.Pt(0, 0), d.Opacity)
	}
	return img
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// pixelSpan returns the pixel rows whose centres lie in [top, bottom).
func pixelSpan(top, bottom float64, limit int) (int, int) {
	first := int(top + 0.5)
	last := int(bottom + 0.5)
	return max(first, 0), min(last, limit)
}

// gradientRow evaluates the stripe's fill at the centre of each pixel column.
func gradientRow(s render.Stripe, width int) []stdcolor.NRGBA {
	row := make([]stdcolor.NRGBA, width)
	if s.Literal != "" {
		c := nrgba(s.Literal)
		for x := range row {
			row[x] = c
		}
		return row
	}

	g := s.Gradient
	for x := range row {
		pct := (float64(x) + 0.5) / float64(width) * 100
		var t float64
		switch {
		case pct <= g.X1:
			t = 0
		case pct >= g.X2:
			t = 100
		default:
			t = (pct - g.X1) / (g.X2 - g.X1) * 100
		}
		row[x] = sample(g.Stops, t)
	}
	return row
}

// sample returns the colour of the gradient at offset t (a percentage).
func sample(stops []render.Stop, t float64) stdcolor.NRGBA {
	switch {
	case len(stops) == 0:
		return stdcolor.NRGBA{}
	case t <= stops[0].Offset:
		return nrgba(stops[0].Color)
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return nrgba(b.Color)
		}
		return lerp(nrgba(a.Color), nrgba(b.Color), (t-a.Offset)/span)
	}
	return nrgba(stops[len(stops)-1].Color)
}

func nrgba(c color.Color) stdcolor.NRGBA {
	r, g, b := c.RGB()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func lerp(a, b stdcolor.NRGBA, t float64) stdcolor.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return stdcolor.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
