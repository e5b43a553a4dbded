package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cptaffe/pridemix/catalog"
	"github.com/cptaffe/pridemix/internal/logger"
	"github.com/cptaffe/pridemix/internal/raster"
	"github.com/cptaffe/pridemix/internal/render"
	"github.com/cptaffe/pridemix/internal/svg"
	"github.com/cptaffe/pridemix/pride"
)

// Sentinel usage errors.
var (
	ErrUsage    = errors.New("want one or two flag names")
	ErrFormat   = errors.New("unknown output format")
	ErrTerminal = errors.New("refusing to write PNG to a terminal")
)

// params is everything run needs, gathered from the command line.
type params struct {
	catalog string
	assets  string
	format  string
	out     string
	other   string
	lucky   bool
	list    bool
	names   []string
	opts    render.Options
	rand    *rand.Rand
}

func run(ctx context.Context, p params, stdout io.Writer) error {
	l := logger.L(ctx)

	if p.format != "svg" && p.format != "png" {
		return fmt.Errorf("%w %q", ErrFormat, p.format)
	}

	cat, err := loadCatalog(ctx, p.catalog)
	if err != nil {
		return err
	}
	if p.list {
		return writeList(stdout, cat)
	}

	f, err := pick(cat, p)
	if err != nil {
		return err
	}
	var other *pride.Flag
	if p.other != "" {
		o, err := cat.Lookup(p.other)
		if err != nil {
			return err
		}
		other = &o
	}
	d := render.Project(f, p.opts, other)
	l.Info("rendering",
		zap.Stringer("flag", f),
		zap.Int("stripes", len(d.Stripes)),
		zap.Int("symbols", len(d.Symbols)),
		zap.Float64("opacity", d.Opacity),
		zap.String("format", p.format))

	if p.out == "" || p.out == "-" {
		return write(ctx, stdout, d, p)
	}
	file, err := os.Create(p.out)
	if err != nil {
		return err
	}
	if err := write(ctx, file, d, p); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// write encodes d to w in the requested format.
func write(ctx context.Context, w io.Writer, d render.Drawing, p params) error {
	if p.format == "svg" {
		var assets svg.Resolver
		if p.assets != "" {
			assets = dirResolver(p.assets)
		}
		return svg.Write(w, d, "pridemix", assets)
	}

	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return ErrTerminal
	}
	var assets raster.Loader
	if p.assets != "" {
		assets = raster.Dir(p.assets)
	}
	return raster.Encode(w, raster.Draw(ctx, d, assets))
}

func loadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return catalog.Load(ctx, file)
}

// pick returns the flag to draw: a random compatible mix, a single flag, or
// the mix of two named flags.
func pick(cat *catalog.Catalog, p params) (pride.Flag, error) {
	if p.lucky {
		a, b, err := cat.RandomPair(p.rand)
		if err != nil {
			return pride.Flag{}, err
		}
		return pride.Mix(a, b)
	}
	if len(p.names) < 1 || len(p.names) > 2 {
		return pride.Flag{}, ErrUsage
	}
	a, err := cat.Lookup(p.names[0])
	if err != nil {
		return pride.Flag{}, err
	}
	if len(p.names) == 1 {
		return a, nil
	}
	b, err := cat.Lookup(p.names[1])
	if err != nil {
		return pride.Flag{}, err
	}
	return pride.Mix(a, b)
}

// dirResolver links symbol images that exist in dir.
func dirResolver(dir string) svg.Resolver {
	return svg.ResolverFunc(func(src string) (string, bool) {
		if filepath.Base(src) != src {
			return "", false
		}
		path := filepath.Join(dir, src)
		if _, err := os.Stat(path); err != nil {
			return "", false
		}
		return path, true
	})
}

func writeList(w io.Writer, cat *catalog.Catalog) error {
	for _, c := range cat.Categories() {
		flags := cat.InCategory(c.Key)
		if len(flags) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", c.Title); err != nil {
			return err
		}
		for _, f := range flags {
			if _, err := fmt.Fprintf(w, "\t%-20s %-12s %d stripes\n", f.FullName, f.Name, len(f.Stripes)); err != nil {
				return err
			}
		}
	}
	return nil
}
