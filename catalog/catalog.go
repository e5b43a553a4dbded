// Package catalog loads the set of known flags.
//
// A catalog file is a JSON array of pride.Entry records.  Every entry is
// validated when the catalog is loaded; once built, a Catalog is read-only
// and may be shared between goroutines.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cptaffe/pridemix/internal/logger"
	"github.com/cptaffe/pridemix/pride"
)

// Sentinel errors.
var (
	ErrDuplicate = errors.New("duplicate flag")
	ErrNotFound  = errors.New("no such flag")
	ErrNoPair    = errors.New("no compatible pair")
)

//go:embed flags.json
var defaultJSON []byte

// Category is a category tag together with its display title.
type Category struct {
	Key   string
	Title string
}

// categories lists the known categories in display order.
var categories = []Category{
	{"sexual orientation", "Sexual Orientation"},
	{"gender identity", "Gender Identity / Sex"},
	{"romantic orientation", "Romantic Orientation"},
	{"other", "Other Identities"},
}

// Catalog is an immutable, ordered set of flags.
type Catalog struct {
	flags []pride.Flag // sorted by FullName
}

// Load reads a JSON catalog from r.  Entries that fail validation are all
// reported together; use multierr.Errors to list them.
func Load(ctx context.Context, r io.Reader) (*Catalog, error) {
	var entries []pride.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var errs error
	seen := make(map[string]int, len(entries))
	flags := make([]pride.Flag, 0, len(entries))
	for i, e := range entries {
		f, err := pride.FromEntry(e)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("catalog entry %d: %w", i, err))
			continue
		}
		if j, ok := seen[f.FullName]; ok {
			errs = multierr.Append(errs, fmt.Errorf("catalog entry %d: %w %q (also entry %d)", i, ErrDuplicate, f.FullName, j))
			continue
		}
		seen[f.FullName] = i
		flags = append(flags, f)
	}
	if errs != nil {
		return nil, errs
	}

	c := New(flags)
	logger.L(ctx).Debug("loaded catalog", zap.Int("flags", len(c.flags)))
	return c, nil
}

// New returns a catalog holding flags, ordered by full name.
func New(flags []pride.Flag) *Catalog {
	coll := collate.New(language.English, collate.IgnoreCase)
	sorted := slices.Clone(flags)
	slices.SortStableFunc(sorted, func(a, b pride.Flag) int {
		return coll.CompareString(a.FullName, b.FullName)
	})
	return &Catalog{flags: sorted}
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(context.Background(), bytes.NewReader(defaultJSON))
})

// Default returns the built-in catalog.  It is parsed on first use.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Len returns the number of flags in c.
func (c *Catalog) Len() int {
	return len(c.flags)
}

// Flags returns all flags ordered by full name.
func (c *Catalog) Flags() []pride.Flag {
	return slices.Clone(c.flags)
}

// Categories returns the known categories in display order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(categories)
}

// InCategory returns the flags tagged with key, ordered by full name.
func (c *Catalog) InCategory(key string) []pride.Flag {
	var out []pride.Flag
	for _, f := range c.flags {
		if f.HasCategory(key) {
			out = append(out, f)
		}
	}
	return out
}

// Search returns the flags whose full name contains query, ignoring case.
// An empty query matches everything.
func (c *Catalog) Search(query string) []pride.Flag {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	var out []pride.Flag
	for _, f := range c.flags {
		if strings.Contains(fold.String(f.FullName), q) {
			out = append(out, f)
		}
	}
	return out
}

// Lookup finds a flag by full name or, failing that, by short name.  Case
// is ignored.
func (c *Catalog) Lookup(name string) (pride.Flag, error) {
	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(name))
	for _, f := range c.flags {
		if fold.String(f.FullName) == key {
			return f, nil
		}
	}
	for _, f := range c.flags {
		if fold.String(f.Name) == key {
			return f, nil
		}
	}
	return pride.Flag{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// RandomPair picks two different flags that are compatible with each other.
func (c *Catalog) RandomPair(r *rand.Rand) (pride.Flag, pride.Flag, error) {
	for _, i := range r.Perm(len(c.flags)) {
		a := c.flags[i]
		var partners []pride.Flag
		for _, b := range c.flags {
			if b.Name != a.Name && pride.Compatible(a, b) {
				partners = append(partners, b)
			}
		}
		if len(partners) > 0 {
			return a, partners[r.IntN(len(partners))], nil
		}
	}
	return pride.Flag{}, pride.Flag{}, ErrNoPair
}
