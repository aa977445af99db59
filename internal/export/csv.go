package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// FrameHeader is the column layout written by WriteCSV before any attribute
// columns: parameter, position, tangent, normal, binormal.
var FrameHeader = []string{
	"T",
	"X", "Y", "Z",
	"TX", "TY", "TZ",
	"NX", "NY", "NZ",
	"BX", "BY", "BZ",
}

// WriteCSV writes one row per sample with the FrameHeader columns followed by
// one column per attribute name.
func WriteCSV(w io.Writer, samples []FrameSample, attributes []string) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(FrameHeader)+len(attributes))
	header = append(header, FrameHeader...)
	header = append(header, attributes...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}

	row := make([]string, len(header))
	for i, s := range samples {
		if len(s.Attributes) != len(attributes) {
			return fmt.Errorf("export: sample %d has %d attributes, header has %d", i, len(s.Attributes), len(attributes))
		}
		f := s.Frame
		vals := [...]float64{
			s.T,
			f.P.X, f.P.Y, f.P.Z,
			f.T.X, f.T.Y, f.T.Z,
			f.N.X, f.N.Y, f.N.Z,
			f.B.X, f.B.Y, f.B.Z,
		}
		for k, v := range vals {
			row[k] = formatFloat(v)
		}
		for k, v := range s.Attributes {
			row[len(vals)+k] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing sample %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, floatFormat, floatPrecision, floatBits)
}
