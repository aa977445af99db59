package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	samples, err := Sample(lineCurve{}, Options{Count: 2, Start: 0, End: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samples, []string{"heat"}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, append(append([]string{}, FrameHeader...), "heat"), records[0])

	last := records[2]
	require.Len(t, last, len(FrameHeader)+1)
	parse := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		return v
	}
	f := samples[1].Frame
	assert.Equal(t, 1.0, parse(last[0]))
	assert.Equal(t, []float64{f.P.X, f.P.Y, f.P.Z}, []float64{parse(last[1]), parse(last[2]), parse(last[3])})
	assert.Equal(t, []float64{f.T.X, f.T.Y, f.T.Z}, []float64{parse(last[4]), parse(last[5]), parse(last[6])})
	assert.Equal(t, []float64{f.N.X, f.N.Y, f.N.Z}, []float64{parse(last[7]), parse(last[8]), parse(last[9])})
	assert.Equal(t, []float64{f.B.X, f.B.Y, f.B.Z}, []float64{parse(last[10]), parse(last[11]), parse(last[12])})
	assert.Equal(t, 10.0, parse(last[13]))
}

func TestWriteCSV_NoSamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))
	assert.Equal(t, "T,X,Y,Z,TX,TY,TZ,NX,NY,NZ,BX,BY,BZ\n", buf.String())
}

func TestWriteCSV_AttributeMismatch(t *testing.T) {
	samples, err := Sample(lineCurve{}, Options{Count: 2, End: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteCSV(&buf, samples, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample 0")
}
