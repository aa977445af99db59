// Package scene loads YAML descriptions of several curves, some of which ride
// others, and builds them in dependency order.
//
// A scene file looks like:
//
//	curves:
//	  - name: ring
//	    file: ring.csv
//	    boundary: cyclic
//	  - name: coil
//	    reference: ring
//	    time: {scale: 0.05}
//	    columns:
//	      - {name: R, default: 0}
//	      - {name: S, default: 0}
//	      - {name: U, default: 0.2}
//	    data: |
//	      R,S
//	      0,0.2
//	      ...
//
// Relative file paths are resolved against the directory of the scene file.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	spline "github.com/tphakala/go-spline3d"
	"github.com/tphakala/go-spline3d/internal/table"
)

// Scene is a set of named curve descriptions.
type Scene struct {
	Curves []CurveSpec `yaml:"curves"`

	dir string
}

// CurveSpec describes one curve. Exactly one of File and Data is set.
type CurveSpec struct {
	Name string `yaml:"name"`

	// File is a delimited text file with a header row.
	File string `yaml:"file,omitempty"`

	// Data is inline delimited text with a header row.
	Data string `yaml:"data,omitempty"`

	// Delimiter is "comma", "tab", "semicolon" or "auto" (default).
	Delimiter string `yaml:"delimiter,omitempty"`

	// Columns selects the X, Y, Z axes. Empty selects columns X, Y, Z.
	Columns []ColumnSpec `yaml:"columns,omitempty"`

	Attributes []ColumnSpec `yaml:"attributes,omitempty"`
	Time       TimeSpec     `yaml:"time,omitempty"`

	// Boundary is "natural" (default) or "cyclic".
	Boundary string `yaml:"boundary,omitempty"`

	// Reference names the curve this curve rides.
	Reference string `yaml:"reference,omitempty"`
}

// ColumnSpec selects a column with a fallback value.
type ColumnSpec struct {
	Name    string  `yaml:"name"`
	Default float64 `yaml:"default,omitempty"`
}

// TimeSpec selects the parameter column. An empty column selects "T"; a
// missing scale is 1.
type TimeSpec struct {
	Column string   `yaml:"column,omitempty"`
	Scale  *float64 `yaml:"scale,omitempty"`
}

// ErrEmpty is returned for a scene without curves.
var ErrEmpty = errors.New("scene: no curves")

// Load reads and validates the scene file at path.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Decode reads and validates a scene. Unknown keys are rejected. Relative
// file paths are resolved against the working directory.
func Decode(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names, sources, boundaries and references, and rejects
// reference cycles.
func (s *Scene) Validate() error {
	if len(s.Curves) == 0 {
		return ErrEmpty
	}

	seen := make(map[string]bool, len(s.Curves))
	for i, c := range s.Curves {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("scene: curve %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("scene: duplicate curve name %q", c.Name)
		}
		seen[c.Name] = true

		if (c.File == "") == (c.Data == "") {
			return fmt.Errorf("scene: curve %q: exactly one of file and data must be set", c.Name)
		}
		if _, err := c.Config(); err != nil {
			return fmt.Errorf("scene: curve %q: %w", c.Name, err)
		}
		if _, err := table.ParseDelim(c.Delimiter); err != nil {
			return fmt.Errorf("scene: curve %q: %w", c.Name, err)
		}
	}

	for _, c := range s.Curves {
		if c.Reference != "" && !seen[c.Reference] {
			return fmt.Errorf("scene: curve %q: %w %q", c.Name, spline.ErrUnknownReference, c.Reference)
		}
	}

	_, err := s.Order()
	return err
}

// Order returns curve indices such that every curve follows its reference.
// Among independent curves the file order is kept.
func (s *Scene) Order() ([]int, error) {
	index := make(map[string]int, len(s.Curves))
	for i, c := range s.Curves {
		index[c.Name] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(s.Curves))
	order := make([]int, 0, len(s.Curves))

	var visit func(i int, path []string) error
	visit = func(i int, path []string) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("scene: %w: %s", spline.ErrReferenceCycle,
				strings.Join(append(path, s.Curves[i].Name), " -> "))
		}
		state[i] = visiting
		if ref := s.Curves[i].Reference; ref != "" {
			j, ok := index[ref]
			if !ok {
				return fmt.Errorf("scene: curve %q: %w %q", s.Curves[i].Name, spline.ErrUnknownReference, ref)
			}
			if err := visit(j, append(path, s.Curves[i].Name)); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range s.Curves {
		if err := visit(i, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Built holds the curves of a scene.
type Built struct {
	// Names lists the curves in build order.
	Names  []string
	Curves map[string]*spline.SplineCurve
}

// Build reads every curve's samples and fits the curves, references first.
func (s *Scene) Build() (*Built, error) {
	order, err := s.Order()
	if err != nil {
		return nil, err
	}

	b := &Built{
		Names:  make([]string, 0, len(order)),
		Curves: make(map[string]*spline.SplineCurve, len(order)),
	}
	for _, i := range order {
		spec := &s.Curves[i]
		c, err := s.build(spec, b.Curves)
		if err != nil {
			return nil, fmt.Errorf("scene: curve %q: %w", spec.Name, err)
		}
		b.Names = append(b.Names, spec.Name)
		b.Curves[spec.Name] = c
	}
	return b, nil
}

func (s *Scene) build(spec *CurveSpec, built map[string]*spline.SplineCurve) (*spline.SplineCurve, error) {
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}
	if spec.Reference != "" {
		cfg.Reference = built[spec.Reference]
	}

	delim, err := table.ParseDelim(spec.Delimiter)
	if err != nil {
		return nil, err
	}

	var src *table.Table
	if spec.Data != "" {
		src, err = table.Read(strings.NewReader(spec.Data), delim)
	} else {
		path := spec.File
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		src, err = table.Open(path, delim)
	}
	if err != nil {
		return nil, err
	}

	return spline.New(src, cfg)
}

// Config returns the curve configuration without its reference.
func (c *CurveSpec) Config() (*spline.Config, error) {
	cfg := spline.DefaultConfig()

	b, err := spline.ParseBoundary(c.Boundary)
	if err != nil {
		return nil, err
	}
	cfg.Boundary = b

	if len(c.Columns) > 0 {
		cfg.Columns = columns(c.Columns)
	}
	cfg.Attributes = columns(c.Attributes)

	if c.Time.Column != "" {
		cfg.Time.Column = c.Time.Column
	}
	if c.Time.Scale != nil {
		cfg.Time.Scale = *c.Time.Scale
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func columns(specs []ColumnSpec) []spline.Column {
	if len(specs) == 0 {
		return nil
	}
	out := make([]spline.Column, len(specs))
	for i, s := range specs {
		out[i] = spline.Column{Name: s.Name, Default: s.Default}
	}
	return out
}
