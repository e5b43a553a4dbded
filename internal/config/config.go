// Package config parses render-options files.
//
// The format is line oriented.  Blank lines and lines starting with '#' are
// ignored; every other line is a key followed by a value:
//
//	# gentle on the eyes
//	reduce-strain on
//	softness 30
//	blur 2
//	symbols off
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/cptaffe/pridemix/internal/render"
)

// ErrSyntax is wrapped by every error Parse returns.
var ErrSyntax = errors.New("syntax error")

// Parse applies the settings in content on top of base.  Every bad line is
// reported; the returned options are only meaningful when err is nil.
func Parse(content string, base render.Options) (render.Options, error) {
	opts := base
	var errs error
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := parseLine(line, &opts); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w: %v", i+1, ErrSyntax, err))
		}
	}
	if errs != nil {
		return base, errs
	}
	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}

func parseLine(line string, opts *render.Options) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("want \"key value\", got %q", line)
	}
	key, val := fields[0], fields[1]
	var err error
	switch key {
	case "symbols":
		opts.ShowSymbols, err = parseSwitch(val)
	case "reduce-strain":
		opts.ReduceStrain, err = parseSwitch(val)
	case "softness":
		opts.Softness, err = strconv.ParseFloat(val, 64)
	case "blur":
		opts.Blur, err = strconv.ParseFloat(val, 64)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}
