package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	spline "github.com/tphakala/go-spline3d"
	"github.com/tphakala/go-spline3d/internal/export"
)

// parseColumns parses "X,Y,Z" or "X=0,Y,Z=1.5" into column selections.
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

// wavOptions maps flag values to rendering options.
func wavOptions(rateKHz float64, bits int, xyz bool, loops int) export.WAVOptions {
	opts := export.WAVOptions{
		SampleRate: int(rateKHz * kHzToHz),
		BitDepth:   bits,
		Channels:   2,
		Loops:      loops,
	}
	if xyz {
		opts.Channels = 3
	}
	return opts
}

// render samples one pass over c and writes it to path as WAV.
func render(c *spline.SplineCurve, path string, samples int, opts export.WAVOptions) (err error) {
	frames, err := export.Sample(c, export.Options{
		Count:    samples,
		Start:    c.Start(),
		End:      c.End(),
		Closed:   c.Boundary() == spline.Cyclic,
		Parallel: true,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// Close errors matter here: the encoder patches the header on close.
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return export.WriteWAV(f, frames, opts)
}
