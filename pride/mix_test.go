package pride

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cptaffe/pridemix/color"
)

func stripes(hex ...string) [][]color.Color {
	out := make([][]color.Color, len(hex))
	for i, h := range hex {
		out[i] = []color.Color{color.MustParse(h)}
	}
	return out
}

func testFlag(name string, n int) Flag {
	hex := make([]string, n)
	for i := range hex {
		hex[i] = fmt.Sprintf("#%02X0000", i)
	}
	return NewFlag(name+" flag", name, stripes(hex...), []string{name}, nil)
}

func TestMixSelf(t *testing.T) {
	a := NewFlag("Transgender", "Trans",
		stripes("#5BCEFA", "#F5A9B8", "#FFFFFF", "#F5A9B8", "#5BCEFA"),
		[]string{"gender identity"},
		[]Placement{{Symbol: Symbol{Src: "heart.svg"}, Position: Single}})

	got, err := Mix(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(a, got); d != "" {
		t.Errorf("self mix changed the flag (-want +got):\n%s", d)
	}
}

func TestMixSameNameDifferentRecords(t *testing.T) {
	a := testFlag("Pan", 3)
	b := testFlag("Pan", 6)
	got, err := Mix(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(a) {
		t.Errorf("Mix returned %v, want left operand %v", got, a)
	}
}

func TestMixThreeAndSix(t *testing.T) {
	a := NewFlag("A", "a", stripes("#FF0000", "#FFFFFF", "#0000FF"), nil, nil)
	b := NewFlag("B", "b", stripes("#000000", "#FFFFFF", "#000000", "#FFFFFF", "#000000", "#FFFFFF"), nil, nil)

	got, err := Mix(a, b)
	if err != nil {
		t.Fatal(err)
	}

	// a: 3 -> 4 stripes (white doubled), each repeated 3 times.
	// b: 6 stripes, each repeated twice.
	left := []string{"#FF0000", "#FF0000", "#FF0000", "#FFFFFF", "#FFFFFF", "#FFFFFF",
		"#FFFFFF", "#FFFFFF", "#FFFFFF", "#0000FF", "#0000FF", "#0000FF"}
	right := []string{"#000000", "#000000", "#FFFFFF", "#FFFFFF", "#000000", "#000000",
		"#FFFFFF", "#FFFFFF", "#000000", "#000000", "#FFFFFF", "#FFFFFF"}
	want := make([][]color.Color, 12)
	for i := range want {
		want[i] = []color.Color{color.Color(left[i]), color.Color(right[i])}
	}
	if d := cmp.Diff(want, got.Stripes); d != "" {
		t.Errorf("unexpected stripes (-want +got):\n%s", d)
	}
}

func TestMixStripeCount(t *testing.T) {
	for n1 := 1; n1 <= 9; n1++ {
		for n2 := 1; n2 <= 9; n2++ {
			a, b := testFlag("a", n1), testFlag("b", n2)
			got, err := Mix(a, b)
			if err != nil {
				t.Fatal(err)
			}

			p1, p2 := n1, n2
			if p1%2 != p2%2 {
				if p1%2 == 1 {
					p1++
				} else {
					p2++
				}
			}
			if len(got.Stripes) != lcm(p1, p2) {
				t.Errorf("Mix(%d, %d): %d stripes, want lcm(%d, %d)", n1, n2, len(got.Stripes), p1, p2)
			}
			if len(got.Stripes)%p1 != 0 || len(got.Stripes)%p2 != 0 {
				t.Errorf("Mix(%d, %d): %d stripes not a common multiple", n1, n2, len(got.Stripes))
			}
			for i, s := range got.Stripes {
				if len(s) != 2 {
					t.Errorf("Mix(%d, %d): stripe %d has %d colors", n1, n2, i, len(s))
				}
			}
		}
	}
}

func TestMixDuplicatesMiddle(t *testing.T) {
	a := NewFlag("A", "a", stripes("#000001", "#000002", "#000003", "#000004", "#000005"), nil, nil)
	b := NewFlag("B", "b", stripes("#FFFFFF", "#EEEEEE"), nil, nil)

	got, err := Mix(a, b)
	if err != nil {
		t.Fatal(err)
	}
	var left []color.Color
	for _, s := range got.Stripes {
		left = append(left, s[0])
	}
	want := []color.Color{"#000001", "#000002", "#000003", "#000003", "#000004", "#000005"}
	if d := cmp.Diff(want, left); d != "" {
		t.Errorf("unexpected left colours (-want +got):\n%s", d)
	}
}

func TestMixMetadata(t *testing.T) {
	heart := Symbol{Src: "heart.svg", MergedLeft: Rect{10, 20, 30, 40}}
	ring := Symbol{Src: "ring.svg", Mirror: true}
	a := NewFlag("Same", "A", stripes("#111111", "#222222"), []string{"x", "y"},
		[]Placement{{Symbol: heart, Position: Single}})
	b := NewFlag("Same", "B", stripes("#333333", "#444444"), []string{"y", "z"},
		[]Placement{{Symbol: ring, Position: Single}})

	got, err := Mix(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.FullName != "Same" {
		t.Errorf("FullName = %q, want %q", got.FullName, "Same")
	}
	if got.Name != "A B" {
		t.Errorf("Name = %q, want %q", got.Name, "A B")
	}
	if d := cmp.Diff([]string{"x", "y", "z"}, got.Categories()); d != "" {
		t.Errorf("unexpected categories (-want +got):\n%s", d)
	}
	wantSymbols := []Placement{
		{Symbol: heart, Position: MergedLeft},
		{Symbol: ring, Position: MergedRight},
	}
	if d := cmp.Diff(wantSymbols, got.Symbols); d != "" {
		t.Errorf("unexpected symbols (-want +got):\n%s", d)
	}

	c := NewFlag("Other", "C", stripes("#555555"), nil, nil)
	got, err = Mix(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if got.FullName != "Same Other" {
		t.Errorf("FullName = %q, want %q", got.FullName, "Same Other")
	}
}

func TestMixDoesNotModifyInputs(t *testing.T) {
	a := testFlag("a", 3)
	b := testFlag("b", 4)
	a0 := NewFlag(a.FullName, a.Name, a.Stripes, a.Categories(), a.Symbols)
	b0 := NewFlag(b.FullName, b.Name, b.Stripes, b.Categories(), b.Symbols)

	got, err := Mix(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got.Stripes[0][0] = "#ABCDEF"

	if !a.Equal(a0) || !b.Equal(b0) {
		t.Error("Mix modified its inputs")
	}
}

func TestMixEmpty(t *testing.T) {
	empty := NewFlag("Empty", "e", nil, nil, nil)
	for _, pair := range [][2]Flag{{empty, testFlag("a", 3)}, {testFlag("a", 3), empty}} {
		_, err := Mix(pair[0], pair[1])
		if !errors.Is(err, ErrEmptyFlag) {
			t.Errorf("Mix with empty flag: got %v, want ErrEmptyFlag", err)
		}
	}
}

func TestCompatible(t *testing.T) {
	cases := []struct {
		n1, n2 int
		want   bool
	}{
		{3, 6, false}, // 4 and 6
		{3, 5, false},
		{3, 9, true},
		{5, 2, true}, // 6 and 2
		{5, 6, true},
		{7, 4, true}, // 8 and 4
		{4, 6, false},
		{6, 6, true},
		{1, 2, true},
		{1, 7, true},
		{0, 3, false},
	}
	for _, c := range cases {
		a, b := testFlag("a", c.n1), testFlag("b", c.n2)
		if got := Compatible(a, b); got != c.want {
			t.Errorf("Compatible(%d, %d) = %t, want %t", c.n1, c.n2, got, c.want)
		}
	}
}

func TestCompatibleSymmetric(t *testing.T) {
	for n1 := 0; n1 <= 12; n1++ {
		for n2 := 0; n2 <= 12; n2++ {
			a, b := testFlag("a", n1), testFlag("b", n2)
			if Compatible(a, b) != Compatible(b, a) {
				t.Errorf("Compatible not symmetric for %d, %d", n1, n2)
			}
		}
	}
}
