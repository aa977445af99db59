// Command spline-sample fits a spline through the samples of a CSV file and
// writes position and moving frame at evenly spaced parameters.
//
// Usage:
//
//	spline-sample -n 500 path.csv frames.csv
//	spline-sample -cyclic -columns R,S,U=0.5 -time time -scale 0.01 loop.csv -
//	spline-sample -scene demo.yaml outdir
//
// Output columns are T,X,Y,Z,TX,TY,TZ,NX,NY,NZ,BX,BY,BZ followed by any
// attribute columns.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

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
	attributes := flag.String("attrs", "", "Extra attribute columns as NAME[=DEFAULT],...")
	timeColumn := flag.String("time", defaultTime, "Parameter column; synthesized as row*scale when absent")
	scale := flag.Float64("scale", defaultScale, "Parameter scale")
	cyclic := flag.Bool("cyclic", false, "Fit a closed, periodic curve")
	delimiter := flag.String("delim", defaultDelimiter, "Field delimiter: comma, tab, semicolon, auto")
	samples := flag.Int("n", defaultSamples, "Number of output samples")
	parallel := flag.Bool("parallel", true, "Evaluate samples concurrently")
	scenePath := flag.String("scene", "", "Build every curve of a YAML scene; the argument is the output directory")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.csv [output.csv|-]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -scene scene.yaml outdir\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}

	start := time.Now()
	opts := export.Options{Count: *samples, Parallel: *parallel}

	if *scenePath != "" {
		if err := sampleScene(*scenePath, args[0], opts, *verbose); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Done in %v", time.Since(start))
		}
		return nil
	}

	cfg, err := buildConfig(*columns, *attributes, *timeColumn, *scale, *cyclic)
	if err != nil {
		return err
	}
	delim, err := table.ParseDelim(*delimiter)
	if err != nil {
		return err
	}

	inputPath := args[0]
	outputPath := stdoutPath
	if len(args) > 1 {
		outputPath = args[1]
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Boundary: %s", cfg.Boundary)
		log.Printf("Samples: %d (parallel=%v)", *samples, *parallel)
	}

	src, err := table.Open(inputPath, delim)
	if err != nil {
		return err
	}
	c, err := spline.New(src, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	if !c.Ready() {
		log.Printf("Warning: %s has %d samples, output is degenerate", inputPath, c.Len())
	}

	if err := sampleCurve(c, outputPath, opts); err != nil {
		return err
	}

	if *verbose {
		log.Printf("Fitted %d knots on [%g, %g] in %v", c.Len(), c.Start(), c.End(), time.Since(start))
	}
	return nil
}

// sampleCurve evaluates c on its knot range and writes the frame table.
func sampleCurve(c *spline.SplineCurve, outputPath string, opts export.Options) (err error) {
	opts.Start, opts.End = c.Start(), c.End()
	opts.Closed = c.Boundary() == spline.Cyclic

	frames, err := export.Sample(c, opts)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outputPath != stdoutPath {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		w = f
	}

	return export.WriteCSV(w, frames, c.Attributes())
}

// sampleScene builds every curve of the scene and writes one frame table per
// curve into outDir.
func sampleScene(path, outDir string, opts export.Options, verbose bool) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	built, err := s.Build()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, outputDirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, name := range built.Names {
		c := built.Curves[name]
		out := filepath.Join(outDir, name+outputSuffix)
		if verbose {
			log.Printf("Curve %s: %d samples, %s -> %s", name, c.Len(), c.Boundary(), out)
		}
		if err := sampleCurve(c, out, opts); err != nil {
			return fmt.Errorf("curve %q: %w", name, err)
		}
	}
	return nil
}
