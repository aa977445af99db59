package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spline "github.com/tphakala/go-spline3d"
	"github.com/tphakala/go-spline3d/internal/export"
	"github.com/tphakala/go-spline3d/internal/table"
)

func TestParseColumns(t *testing.T) {
	tests := []struct {
		in      string
		want    []spline.Column
		wantErr bool
	}{
		{"", nil, false},
		{"X,Y,Z", []spline.Column{{Name: "X"}, {Name: "Y"}, {Name: "Z"}}, false},
		{" X = 1 , Y,=2.5", []spline.Column{{Name: "X", Default: 1}, {Name: "Y"}, {Default: 2.5}}, false},
		{"X=abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColumns(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildConfig(t *testing.T) {
	cfg, err := buildConfig("X,Y", "W=1", "time", 0.5, true)
	require.NoError(t, err)
	assert.Equal(t, spline.Cyclic, cfg.Boundary)
	assert.Equal(t, spline.TimeSpec{Column: "time", Scale: 0.5}, cfg.Time)
	assert.Equal(t, []spline.Column{{Name: "W", Default: 1}}, cfg.Attributes)

	_, err = buildConfig("A,B,C,D", "", "T", 1, false)
	assert.ErrorIs(t, err, spline.ErrInvalidConfig)

	_, err = buildConfig("X", "", "T", 0, false)
	assert.ErrorIs(t, err, spline.ErrInvalidConfig)
}

func TestSampleCurve_WritesFrames(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte("T,X,Y,W\n0,0,0,1\n1,1,1,2\n2,2,0,3\n3,3,1,4\n"), 0o644))

	cfg, err := buildConfig(defaultColumns, "W", defaultTime, defaultScale, false)
	require.NoError(t, err)
	src, err := table.Open(in, table.Detect)
	require.NoError(t, err)
	c, err := spline.New(src, cfg)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.csv")
	require.NoError(t, sampleCurve(c, out, export.Options{Count: 7}))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 8)
	assert.Equal(t, "W", records[0][len(records[0])-1])
	assert.Equal(t, []string{"0", "0", "0", "0"}, records[1][:4])
	assert.Equal(t, []string{"3", "3", "1", "0"}, records[7][:4])
	assert.Equal(t, "4", records[7][len(records[7])-1])
}

func TestSampleScene(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(`curves:
  - name: base
    data: |
      T,X,Y
      0,0,0
      1,1,1
      2,2,0
  - name: rider
    reference: base
    columns: [{name: A}, {name: B, default: 0.1}]
    data: |
      T,A
      0,0
      1,0
      2,0
`), 0o644))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, sampleScene(scenePath, outDir, export.Options{Count: 5}, false))

	for _, name := range []string{"base", "rider"} {
		_, err := os.Stat(filepath.Join(outDir, name+outputSuffix))
		assert.NoError(t, err, name)
	}
}
