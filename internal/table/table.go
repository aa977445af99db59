// Package table reads delimited text into named string columns.
//
// The first line is the header. Every following line is one row; missing
// trailing fields read as empty strings and surplus fields are ignored, so each
// column always holds exactly RowCount entries.
package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Delim selects the field separator.
type Delim int

const (
	// Comma separates fields with ','.
	Comma Delim = iota

	// Tab separates fields with '\t'.
	Tab

	// Semicolon separates fields with ';'.
	Semicolon

	// Detect inspects the header line and picks tab, semicolon or comma.
	Detect
)

// Rune returns the separator rune. Detect maps to comma.
func (d Delim) Rune() rune {
	switch d {
	case Tab:
		return '\t'
	case Semicolon:
		return ';'
	default:
		return ','
	}
}

// ParseDelim maps a command-line name (",", "comma", "tab", ";", "auto", ...)
// to a Delim.
func ParseDelim(s string) (Delim, error) {
	switch strings.ToLower(s) {
	case ",", "comma", "csv":
		return Comma, nil
	case "\t", "\\t", "tab", "tsv":
		return Tab, nil
	case ";", "semicolon":
		return Semicolon, nil
	case "", "auto", "detect":
		return Detect, nil
	default:
		return Comma, fmt.Errorf("unknown delimiter %q", s)
	}
}

// ErrNoHeader is returned when the input has no header line.
var ErrNoHeader = errors.New("table: missing header line")

// Table holds parsed columns keyed by header name.
type Table struct {
	header  map[string]int
	names   []string
	columns [][]string
	rows    int
}

// Read parses delimited text from r.
func Read(r io.Reader, delim Delim) (*Table, error) {
	br := bufio.NewReader(r)
	if delim == Detect {
		peek, _ := br.Peek(detectPeekSize)
		delim = detect(peek)
	}

	cr := csv.NewReader(br)
	cr.Comma = delim.Rune()
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("table: reading header: %w", err)
	}

	t := &Table{
		header:  make(map[string]int, len(head)),
		names:   make([]string, len(head)),
		columns: make([][]string, len(head)),
	}
	for i, name := range head {
		name = strings.TrimSpace(name)
		t.names[i] = name
		// first occurrence wins on duplicate names
		if _, dup := t.header[name]; !dup {
			t.header[name] = i
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: row %d: %w", t.rows, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		for c := range t.columns {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			t.columns[c] = append(t.columns[c], v)
		}
		t.rows++
	}

	return t, nil
}

// Open reads the file at path.
func Open(path string, delim Delim) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Column returns the entries of the named column, or false if the header has no
// such column.
func (t *Table) Column(name string) ([]string, bool) {
	i, ok := t.header[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return t.rows
}

// Names returns the header names in file order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// detect picks the separator that occurs most often in the header line.
func detect(peek []byte) Delim {
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := Comma, strings.Count(line, ",")
	if n := strings.Count(line, "\t"); n > bestCount {
		best, bestCount = Tab, n
	}
	if n := strings.Count(line, ";"); n > bestCount {
		best = Semicolon
	}
	return best
}

// detectPeekSize bounds how much input Detect inspects.
const detectPeekSize = 4096
