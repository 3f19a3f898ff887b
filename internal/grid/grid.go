// Package grid holds the rectangular cell view that header detection works on.
//
// Rows and columns are 1-indexed, matching spreadsheet conventions: the top
// left cell is (1, 1).
package grid

import (
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Empty Kind = iota
	Text
	Number
	Bool
	Other
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Text:
		return "text"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Other:
		return "other"
	}
	return "unknown"
}

// Value is a single cell value. The zero Value is Empty.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// TextValue returns a text cell. An empty string yields an Empty value.
func TextValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: Text, str: s}
}

func NumberValue(f float64) Value {
	return Value{kind: Number, num: f}
}

func BoolValue(b bool) Value {
	return Value{kind: Bool, b: b}
}

// OtherValue holds a value the reader could only render as display text,
// such as a formatted date or an error code.
func OtherValue(display string) Value {
	if display == "" {
		return Value{}
	}
	return Value{kind: Other, str: display}
}

func (v Value) Kind() Kind { return v.kind }

// Text coerces the value to trimmed text. Numbers use the shortest
// representation that round-trips, so 1.0 renders as "1".
func (v Value) Text() string {
	switch v.kind {
	case Text, Other:
		return strings.TrimSpace(v.str)
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Bool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// IsBlank reports whether the value is absent or only whitespace.
func (v Value) IsBlank() bool {
	return v.Text() == ""
}

// Grid is a read-only rectangular view of one sheet.
type Grid interface {
	Rows() int
	Cols() int
	// Cell returns the value at (row, col). Out of range positions are Empty.
	Cell(row, col int) Value
}

// Matrix is an in-memory Grid. Rows may be ragged; missing cells are Empty.
type Matrix struct {
	cells [][]Value
	cols  int
}

// NewMatrix builds a Matrix from rows of values.
func NewMatrix(rows [][]Value) *Matrix {
	m := &Matrix{cells: rows}
	for _, r := range rows {
		if len(r) > m.cols {
			m.cols = len(r)
		}
	}
	return m
}

// FromStrings builds a Matrix of text cells.
func FromStrings(rows [][]string) *Matrix {
	cells := make([][]Value, len(rows))
	for i, r := range rows {
		cells[i] = make([]Value, len(r))
		for j, s := range r {
			cells[i][j] = TextValue(s)
		}
	}
	return NewMatrix(cells)
}

func (m *Matrix) Rows() int { return len(m.cells) }

func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) Cell(row, col int) Value {
	if row < 1 || row > len(m.cells) {
		return Value{}
	}
	r := m.cells[row-1]
	if col < 1 || col > len(r) {
		return Value{}
	}
	return r[col-1]
}
