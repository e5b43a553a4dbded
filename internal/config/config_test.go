package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/cptaffe/pridemix/internal/render"
)

func TestParse(t *testing.T) {
	content := `
# gentle on the eyes
reduce-strain on
  softness 30
blur 2.5

symbols off
`
	got, err := Parse(content, render.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := render.Options{ShowSymbols: false, ReduceStrain: true, Softness: 30, Blur: 2.5}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected options (-want +got):\n%s", d)
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse("# nothing here\n", render.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got != render.DefaultOptions() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestParseErrors(t *testing.T) {
	content := "symbols maybe\ncolour red\nsoftness\nblur x\nsoftness 10\n"
	got, err := Parse(content, render.DefaultOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("error %v does not wrap ErrSyntax", err)
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("got %d errors, want 4: %v", n, err)
	}
	for _, line := range []string{"line 1:", "line 2:", "line 3:", "line 4:"} {
		if !strings.Contains(err.Error(), line) {
			t.Errorf("error does not mention %q: %v", line, err)
		}
	}
	if got != render.DefaultOptions() {
		t.Errorf("options changed on error: %+v", got)
	}
}

func TestParseOutOfRange(t *testing.T) {
	if _, err := Parse("softness 60\n", render.DefaultOptions()); err == nil {
		t.Error("softness 60 accepted")
	}
	if _, err := Parse("blur -1\n", render.DefaultOptions()); err == nil {
		t.Error("negative blur accepted")
	}
}

func TestParseNotANumber(t *testing.T) {
	for _, content := range []string{"softness NaN\n", "blur NaN\n", "blur Inf\n", "softness NaN\nblur Inf\n"} {
		got, err := Parse(content, render.DefaultOptions())
		if err == nil {
			t.Errorf("Parse(%q) accepted %+v", content, got)
		}
		if got != render.DefaultOptions() {
			t.Errorf("Parse(%q) changed options to %+v", content, got)
		}
	}
}
