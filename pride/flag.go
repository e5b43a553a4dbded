// Package pride defines pride flag records and the engine that mixes two
// flags into a composite one.
//
// A Flag is a stack of horizontal stripes.  Catalog flags have one colour per
// stripe; a mixed flag has gradient stripes whose stops run from the left
// operand's colour(s) to the right operand's colour(s).  Flags are values:
// nothing in this package mutates a Flag after construction, and Mix always
// returns a new one.
package pride

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cptaffe/pridemix/color"
)

// Sentinel errors.
var (
	ErrEmptyFlag    = errors.New("flag has no stripes")
	ErrMissingField = errors.New("missing field")
)

// Flag is one pride flag, either from the catalog or produced by Mix.
//
// Flags are shared freely, e.g. between a catalog and its callers.  The
// Stripes and Symbols slices must not be modified; use NewFlag to build a
// changed copy.
type Flag struct {
	// FullName is the display name, e.g. "Transgender".  Catalogs are
	// searched and sorted by it.
	FullName string

	// Name is the short label, e.g. "Trans".  Two flags with the same Name
	// are the same flag as far as Mix is concerned.
	Name string

	// Stripes lists the horizontal stripes from top to bottom.  A stripe
	// with several colours is a left-to-right gradient band.
	Stripes [][]color.Color

	// Symbols lists the symbol images drawn over the stripes, in paint
	// order.
	Symbols []Placement

	categories map[string]struct{}
}

// NewFlag returns a Flag with the given names, stripes, categories and
// symbols.  The slices are copied.
func NewFlag(fullName, name string, stripes [][]color.Color, categories []string, symbols []Placement) Flag {
	f := Flag{
		FullName:   fullName,
		Name:       name,
		Stripes:    cloneStripes(stripes),
		Symbols:    slices.Clone(symbols),
		categories: make(map[string]struct{}, len(categories)),
	}
	for _, c := range categories {
		f.categories[c] = struct{}{}
	}
	return f
}

// Categories returns the flag's category tags in sorted order.
func (f Flag) Categories() []string {
	out := make([]string, 0, len(f.categories))
	for c := range f.categories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// HasCategory reports whether f is tagged with category.
func (f Flag) HasCategory(category string) bool {
	_, ok := f.categories[category]
	return ok
}

// Equal reports whether f and g describe the same flag.
func (f Flag) Equal(g Flag) bool {
	if f.FullName != g.FullName || f.Name != g.Name {
		return false
	}
	if !slices.EqualFunc(f.Stripes, g.Stripes, slices.Equal[[]color.Color]) {
		return false
	}
	if !slices.Equal(f.Symbols, g.Symbols) {
		return false
	}
	return slices.Equal(f.Categories(), g.Categories())
}

func (f Flag) String() string {
	return fmt.Sprintf("%s (%d stripes)", f.FullName, len(f.Stripes))
}

func cloneStripes(stripes [][]color.Color) [][]color.Color {
	out := make([][]color.Color, len(stripes))
	for i, s := range stripes {
		out[i] = slices.Clone(s)
	}
	return out
}

// Entry is one flag as it appears in a catalog file.
type Entry struct {
	FullName   string   `json:"full_name"`
	Name       string   `json:"name"`
	Lines      []string `json:"lines"`
	Categories []string `json:"categories"`
	Symbol     *Symbol  `json:"symbol,omitempty"`

	// Symbols is used by catalogs that place more than one symbol on a
	// flag.  It is drawn after Symbol.
	Symbols []Symbol `json:"symbols,omitempty"`
}

// FromEntry converts a catalog entry into a Flag with one single-colour
// stripe per line and every symbol in the Single position.
func FromEntry(e Entry) (Flag, error) {
	if e.FullName == "" {
		return Flag{}, fmt.Errorf("%w: full_name", ErrMissingField)
	}
	if e.Name == "" {
		return Flag{}, fmt.Errorf("%s: %w: name", e.FullName, ErrMissingField)
	}
	if len(e.Lines) == 0 {
		return Flag{}, fmt.Errorf("%s: %w", e.FullName, ErrEmptyFlag)
	}

	stripes := make([][]color.Color, len(e.Lines))
	for i, line := range e.Lines {
		c, err := color.Parse(line)
		if err != nil {
			return Flag{}, fmt.Errorf("%s: line %d: %w", e.FullName, i, err)
		}
		stripes[i] = []color.Color{c}
	}

	var symbols []Placement
	if e.Symbol != nil {
		symbols = append(symbols, Placement{Symbol: *e.Symbol, Position: Single})
	}
	for _, s := range e.Symbols {
		symbols = append(symbols, Placement{Symbol: s, Position: Single})
	}

	return NewFlag(e.FullName, e.Name, stripes, e.Categories, symbols), nil
}
