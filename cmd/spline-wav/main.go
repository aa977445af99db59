// Command spline-wav renders a curve as audio for an oscilloscope in X/Y
// mode: the left channel carries X, the right channel Y, and an optional
// third channel Z.
//
// Usage:
//
//	spline-wav -cyclic -loops 200 ring.csv ring.wav
//	spline-wav -n 4800 -rate 96 -bits 24 -xyz knot.csv knot.wav
//	spline-wav -scene demo.yaml -curve coil coil.wav
//
// One pass over the curve lasts n samples; at 48 kHz and the default 480
// samples the figure is redrawn 100 times per second.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	spline "github.com/tphakala/go-spline3d"
	"github.com/tphakala/go-spline3d/internal/export"
	"github.com/tphakala/go-spline3d/internal/scene"
	"github.com/tphakala/go-spline3d/internal/table"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	columns := flag.String("columns", defaultColumns, "Spatial columns as NAME[=DEFAULT],... (at most 3)")
	timeColumn := flag.String("time", defaultTime, "Parameter column; synthesized as row*scale when absent")
	scale := flag.Float64("scale", defaultScale, "Parameter scale")
	cyclic := flag.Bool("cyclic", false, "Fit a closed, periodic curve")
	delimiter := flag.String("delim", defaultDelimiter, "Field delimiter: comma, tab, semicolon, auto")
	samples := flag.Int("n", defaultSamples, "Audio samples per pass over the curve")
	loops := flag.Int("loops", defaultLoops, "Number of passes")
	rateKHz := flag.Float64("rate", defaultRateKHz, "Sample rate in kHz")
	bits := flag.Int("bits", export.DefaultBitDepth, "Bit depth: 16, 24 or 32")
	xyz := flag.Bool("xyz", false, "Write Z as a third channel")
	scenePath := flag.String("scene", "", "Take the curve from a YAML scene")
	curveName := flag.String("curve", "", "Curve to render from the scene (default: last built)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	needed := minRequiredArgs
	if *scenePath != "" {
		needed = sceneRequiredArgs
	}
	if len(args) < needed {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.csv output.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -scene scene.yaml [-curve name] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}
	outputPath := args[len(args)-1]

	var (
		c   *spline.SplineCurve
		err error
	)
	if *scenePath != "" {
		c, err = curveFromScene(*scenePath, *curveName)
	} else {
		c, err = curveFromCSV(args[0], *columns, *timeColumn, *delimiter, *scale, *cyclic)
	}
	if err != nil {
		return err
	}
	if !c.Ready() {
		return fmt.Errorf("curve has %d samples, need at least 3", c.Len())
	}

	opts := wavOptions(*rateKHz, *bits, *xyz, *loops)
	if *verbose {
		log.Printf("Curve: %d knots on [%g, %g], %s", c.Len(), c.Start(), c.End(), c.Boundary())
		log.Printf("Output: %s (%d Hz, %d-bit, %d channels, %d x %d samples)",
			outputPath, opts.SampleRate, opts.BitDepth, opts.Channels, *loops, *samples)
	}

	if err := render(c, outputPath, *samples, opts); err != nil {
		return err
	}

	fmt.Printf("Rendered %s: %.2fs\n", filepath.Base(outputPath),
		float64(*samples * *loops)/float64(opts.SampleRate))
	return nil
}

// curveFromCSV builds a curve from a delimited text file.
func curveFromCSV(path, columns, timeColumn, delimiter string, scale float64, cyclic bool) (*spline.SplineCurve, error) {
	cols, err := parseColumns(columns)
	if err != nil {
		return nil, err
	}
	cfg := &spline.Config{
		Columns:  cols,
		Time:     spline.TimeSpec{Column: timeColumn, Scale: scale},
		Boundary: spline.Natural,
	}
	if cyclic {
		cfg.Boundary = spline.Cyclic
	}

	delim, err := table.ParseDelim(delimiter)
	if err != nil {
		return nil, err
	}
	src, err := table.Open(path, delim)
	if err != nil {
		return nil, err
	}
	c, err := spline.New(src, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// curveFromScene builds a scene and picks the named curve, or the last one in
// build order.
func curveFromScene(path, name string) (*spline.SplineCurve, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	built, err := s.Build()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = built.Names[len(built.Names)-1]
	}
	c, ok := built.Curves[name]
	if !ok {
		return nil, fmt.Errorf("%w %q in %s", spline.ErrUnknownReference, name, path)
	}
	return c, nil
}
