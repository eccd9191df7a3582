package cmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the inferred value type of a table column.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "string"
	}
}

// Column is a single named column. Values always holds the raw cells as
// received; exactly one typed slice (matching Kind) is populated alongside
// it, except for KindString where Values is the typed form.
type Column struct {
	Name   string
	Kind   Kind
	Values []string

	Ints   []int64
	Floats []float64
	Bools  []bool
	Times  []time.Time
}

// Table is a column-oriented result set materialized from one response.
// It is owned by the caller and never shared or reused by the client.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the column names in response order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// Strings returns the raw cells of the named column.
func (t *Table) Strings(name string) ([]string, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("cmap: no column %q", name)
	}
	return c.Values, nil
}

// Float64s returns the named column as float64 values. It accepts columns
// inferred as float or int.
func (t *Table) Float64s(name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("cmap: no column %q", name)
	}
	switch c.Kind {
	case KindFloat:
		return c.Floats, nil
	case KindInt:
		out := make([]float64, len(c.Ints))
		for i, v := range c.Ints {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cmap: column %q is %s, not numeric", name, c.Kind)
	}
}

// Ints returns the named column as int64 values.
func (t *Table) Ints(name string) ([]int64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("cmap: no column %q", name)
	}
	if c.Kind != KindInt {
		return nil, fmt.Errorf("cmap: column %q is %s, not int", name, c.Kind)
	}
	return c.Ints, nil
}

// WriteCSV writes the table back out as CSV, header row first, cells exactly
// as they were received.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	rec := make([]string, len(t.cols))
	for r := 0; r < t.rows; r++ {
		for c := range t.cols {
			rec[c] = t.cols[c].Values[r]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// cell helpers used by the typed facade operations.

func (t *Table) cellString(name string, row int) (string, bool) {
	c, ok := t.Column(name)
	if !ok || row < 0 || row >= len(c.Values) {
		return "", false
	}
	return c.Values[row], true
}

func (t *Table) cellFloat(name string, row int) (float64, bool) {
	s, ok := t.cellString(name, row)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (t *Table) cellInt(name string, row int) (int64, bool) {
	s, ok := t.cellString(name, row)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		// some responses carry integral ids as "123.0"
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
	return v, true
}

// readTable materializes a delimited tabular payload: header row defines the
// column names, every following row is data. Parsing is fully in-memory; no
// staging files are created.
func readTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &MalformedResponseError{Err: errors.New("empty body")}
	}

	header := records[0]
	rows := records[1:]

	t := &Table{
		cols:  make([]Column, len(header)),
		index: make(map[string]int, len(header)),
		rows:  len(rows),
	}
	for i, name := range header {
		t.cols[i] = Column{Name: name, Values: make([]string, len(rows))}
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
		for r, rec := range rows {
			t.cols[i].Values[r] = rec[i]
		}
	}
	for i := range t.cols {
		inferColumn(&t.cols[i])
	}
	return t, nil
}

// inferColumn assigns the first kind whose parser accepts every cell, in the
// order int, float, bool, time, string. Empty cells demote int/bool/time;
// float represents them as NaN. Columns with no rows stay string.
func inferColumn(c *Column) {
	if len(c.Values) == 0 {
		c.Kind = KindString
		return
	}
	if ints, ok := tryInts(c.Values); ok {
		c.Kind, c.Ints = KindInt, ints
		return
	}
	if floats, ok := tryFloats(c.Values); ok {
		c.Kind, c.Floats = KindFloat, floats
		return
	}
	if bools, ok := tryBools(c.Values); ok {
		c.Kind, c.Bools = KindBool, bools
		return
	}
	if times, ok := tryTimes(c.Values); ok {
		c.Kind, c.Times = KindTime, times
		return
	}
	c.Kind = KindString
}

func tryInts(vals []string) ([]int64, bool) {
	out := make([]int64, len(vals))
	for i, s := range vals {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func tryFloats(vals []string) ([]float64, bool) {
	out := make([]float64, len(vals))
	seen := false
	for i, s := range vals {
		s = strings.TrimSpace(s)
		if s == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
		seen = true
	}
	return out, seen
}

func tryBools(vals []string) ([]bool, bool) {
	out := make([]bool, len(vals))
	for i, s := range vals {
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// timeLayouts are the timestamp shapes the service emits, most common first.
// Stored procedures return zone-less ISO timestamps; all times are UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func tryTimes(vals []string) ([]time.Time, bool) {
	out := make([]time.Time, len(vals))
	for i, s := range vals {
		s = strings.TrimSpace(s)
		parsed := false
		for _, layout := range timeLayouts {
			if v, err := time.Parse(layout, s); err == nil {
				out[i], parsed = v, true
				break
			}
		}
		if !parsed {
			return nil, false
		}
	}
	return out, true
}
