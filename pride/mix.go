package pride

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cptaffe/pridemix/color"
)

// Mix combines a and b into one flag whose stripes fade from a's colours on
// the left to b's colours on the right.
//
// Flags with different stripe counts are aligned first.  If exactly one
// count is odd, that flag's middle stripe is doubled; then every stripe of
// both flags is repeated until each has lcm(n1, n2) stripes.  Stripe i of the
// result holds a's colours at i followed by b's colours at i.
//
// Mixing a flag with itself (equal Name) returns a unchanged.  Mix is defined
// for any two non-empty flags; use Compatible to find out whether the result
// will look balanced.
func Mix(a, b Flag) (Flag, error) {
	if len(a.Stripes) == 0 {
		return Flag{}, fmt.Errorf("mix %q: %w", a.FullName, ErrEmptyFlag)
	}
	if len(b.Stripes) == 0 {
		return Flag{}, fmt.Errorf("mix %q: %w", b.FullName, ErrEmptyFlag)
	}
	if a.Name == b.Name {
		return a, nil
	}

	sa, sb := a.Stripes, b.Stripes
	switch {
	case len(sa)%2 == 1 && len(sb)%2 == 0:
		sa = duplicateMiddle(sa)
	case len(sa)%2 == 0 && len(sb)%2 == 1:
		sb = duplicateMiddle(sb)
	}

	n := lcm(len(sa), len(sb))
	sa = repeatEach(sa, n/len(sa))
	sb = repeatEach(sb, n/len(sb))

	stripes := make([][]color.Color, n)
	for i := range stripes {
		stripes[i] = slices.Concat(sa[i], sb[i])
	}

	fullName := a.FullName
	if a.FullName != b.FullName {
		fullName = a.FullName + " " + b.FullName
	}

	categories := maps.Clone(a.categories)
	if categories == nil {
		categories = make(map[string]struct{}, len(b.categories))
	}
	maps.Copy(categories, b.categories)

	symbols := make([]Placement, 0, len(a.Symbols)+len(b.Symbols))
	for _, p := range a.Symbols {
		symbols = append(symbols, Placement{Symbol: p.Symbol, Position: MergedLeft})
	}
	for _, p := range b.Symbols {
		symbols = append(symbols, Placement{Symbol: p.Symbol, Position: MergedRight})
	}

	return Flag{
		FullName:   fullName,
		Name:       a.Name + " " + b.Name,
		Stripes:    stripes,
		Symbols:    symbols,
		categories: categories,
	}, nil
}

// Compatible reports whether a and b mix into a balanced flag: after the
// same middle-stripe doubling Mix performs, one stripe count must divide
// the other.  Flags without stripes are never compatible.
func Compatible(a, b Flag) bool {
	n1, n2 := len(a.Stripes), len(b.Stripes)
	if n1 == 0 || n2 == 0 {
		return false
	}
	switch {
	case n1%2 == 1 && n2%2 == 0:
		n1++
	case n1%2 == 0 && n2%2 == 1:
		n2++
	}
	return n2%n1 == 0 || n1%n2 == 0
}

// duplicateMiddle returns a copy of stripes with the stripe at len/2
// repeated once, directly after itself.
func duplicateMiddle(stripes [][]color.Color) [][]color.Color {
	mid := len(stripes) / 2
	out := make([][]color.Color, 0, len(stripes)+1)
	out = append(out, stripes[:mid+1]...)
	out = append(out, stripes[mid:]...)
	return out
}

// repeatEach returns stripes with every stripe repeated factor times in a
// contiguous block.
func repeatEach(stripes [][]color.Color, factor int) [][]color.Color {
	out := make([][]color.Color, 0, len(stripes)*factor)
	for _, s := range stripes {
		for range factor {
			out = append(out, s)
		}
	}
	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
