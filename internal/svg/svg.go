// Package svg serialises a render.Drawing as an SVG document.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cptaffe/pridemix/internal/render"
)

// Resolver maps a symbol asset key, e.g. "heart.svg", to an href usable
// in an <image> element.
type Resolver interface {
	Resolve(src string) (href string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(src string) (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(src string) (string, bool) {
	return f(src)
}

// Write writes d to w as a standalone SVG document.  id prefixes every
// element id so that several flags can share one HTML page.  Symbols that
// assets cannot resolve are left out; assets may be nil.
func Write(w io.Writer, d render.Drawing, id string, assets Resolver) error {
	_, err := io.WriteString(w, Format(d, id, assets))
	return err
}

// Format returns the SVG document for d.  See Write.
func Format(d render.Drawing, id string, assets Resolver) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		escape(id), d.Width, d.Height, d.Width, d.Height)

	sb.WriteString("<defs>\n")
	for _, s := range d.Stripes {
		if s.Literal == "" {
			writeGradient(&sb, id, s.Gradient)
		}
	}
	if d.Blur > 0 {
		fmt.Fprintf(&sb, `<filter id="%s-blur"><feGaussianBlur stdDeviation="%g"/></filter>`+"\n", escape(id), d.Blur)
	}
	sb.WriteString("</defs>\n")

	sb.WriteString("<g")
	if d.Blur > 0 {
		fmt.Fprintf(&sb, ` filter="url(#%s-blur)"`, escape(id))
	}
	if d.Opacity != 1 {
		fmt.Fprintf(&sb, ` opacity="%g"`, d.Opacity)
	}
	sb.WriteString(">\n")

	for _, s := range d.Stripes {
		fill := string(s.Literal)
		if fill == "" {
			fill = fmt.Sprintf("url(#%s-%s)", escape(id), s.Gradient.ID)
		}
		fmt.Fprintf(&sb, `<rect y="%g" width="%d" height="%g" fill="%s"/>`+"\n", s.Y, d.Width, s.Height, fill)
	}
	for _, sym := range d.Symbols {
		if assets == nil {
			break
		}
		href, ok := assets.Resolve(sym.Src)
		if !ok {
			continue
		}
		writeImage(&sb, sym, href)
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func writeGradient(sb *strings.Builder, id string, g render.Gradient) {
	fmt.Fprintf(sb, `<linearGradient id="%s-%s" x1="%g%%" x2="%g%%" y1="%g%%" y2="%g%%">`,
		escape(id), g.ID, g.X1, g.X2, g.Y1, g.Y2)
	for _, s := range g.Stops {
		fmt.Fprintf(sb, `<stop offset="%g%%" stop-color="%s"/>`, s.Offset, s.Color)
	}
	sb.WriteString("</linearGradient>\n")
}

// writeImage emits an <image> for sym.  A transformed symbol is positioned
// in the local frame of its transform.
func writeImage(sb *strings.Builder, sym render.Symbol, href string) {
	x, y := sym.Origin()
	transform := ""
	if sym.Transform != nil {
		transform = fmt.Sprintf(` transform="%s"`, render.TransformString(*sym.Transform))
	}
	fmt.Fprintf(sb, `<image href="%s" x="%g" y="%g" width="%d" height="%d"%s/>`+"\n",
		escape(href), x, y, sym.Width, sym.Height, transform)
}

func escape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s)) //nolint:errcheck
	return sb.String()
}
