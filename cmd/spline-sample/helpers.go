package main

import (
	"fmt"
	"strconv"
	"strings"

	spline "github.com/tphakala/go-spline3d"
)

// parseColumns parses "X,Y,Z" or "X=0,Y,Z=1.5" into column selections. An
// entry without a name ("=2") always uses its default.
func parseColumns(s string) ([]spline.Column, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cols := make([]spline.Column, len(parts))
	for i, p := range parts {
		name, def, found := strings.Cut(strings.TrimSpace(p), "=")
		cols[i].Name = strings.TrimSpace(name)
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(def), 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: invalid default %q", name, def)
		}
		cols[i].Default = v
	}
	return cols, nil
}

// buildConfig assembles a curve configuration from flag values.
func buildConfig(columns, attributes, timeColumn string, scale float64, cyclic bool) (*spline.Config, error) {
	cols, err := parseColumns(columns)
	if err != nil {
		return nil, err
	}
	attrs, err := parseColumns(attributes)
	if err != nil {
		return nil, err
	}

	cfg := &spline.Config{
		Columns:    cols,
		Attributes: attrs,
		Time:       spline.TimeSpec{Column: timeColumn, Scale: scale},
		Boundary:   spline.Natural,
	}
	if cyclic {
		cfg.Boundary = spline.Cyclic
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
