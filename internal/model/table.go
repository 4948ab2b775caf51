package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CellKind identifies which scalar a Cell holds.
type CellKind int

const (
	// CellNull is an absent value. A JSON null cell, a cell without "v",
	// a structured "v" (array or object) and an out-of-range index all read
	// as CellNull.
	CellNull CellKind = iota

	// CellString holds a string value.
	CellString

	// CellBool holds a boolean value.
	CellBool

	// CellNumber holds a numeric value. The gviz endpoint emits numbers for
	// numeric sheet columns.
	CellNumber
)

// String returns the lower-case name of the kind.
func (k CellKind) String() string {
	switch k {
	case CellNull:
		return "null"
	case CellString:
		return "string"
	case CellBool:
		return "bool"
	case CellNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Cell is a single scalar value in a Row.
// The zero Cell is a null cell.
type Cell struct {
	// Kind selects which of the value fields is meaningful.
	Kind CellKind

	// Str is the value when Kind is CellString.
	Str string

	// Bool is the value when Kind is CellBool.
	Bool bool

	// Num is the value when Kind is CellNumber.
	Num float64

	// Formatted is the display form sent by the sheet ("f"), if any.
	Formatted string
}

// StringCell returns a string cell.
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell {
	return Cell{Kind: CellBool, Bool: b}
}

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Num: n}
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// Text returns the cell value as text. Null cells return "".
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// IsTrue reports whether the cell is a boolean true or the literal string "true".
// Every other value, including "TRUE" and null, is false.
func (c Cell) IsTrue() bool {
	switch c.Kind {
	case CellBool:
		return c.Bool
	case CellString:
		return c.Str == "true"
	default:
		return false
	}
}

// cellJSON is the wire form of a gviz cell: {"v": <value>, "f": "<formatted>"}.
type cellJSON struct {
	V json.RawMessage `json:"v,omitempty"`
	F string          `json:"f,omitempty"`
}

var jsonNull = []byte("null")

// UnmarshalJSON decodes a gviz cell object or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	*c = Cell{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	var wire cellJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.Formatted = wire.F

	v := bytes.TrimSpace(wire.V)
	if len(v) == 0 || bytes.Equal(v, jsonNull) {
		return nil
	}

	switch v[0] {
	case '[', '{':
		// timeofday and other structured values stay null; f keeps the display form.
		return nil
	case '"':
		if err := json.Unmarshal(v, &c.Str); err != nil {
			return err
		}
		c.Kind = CellString
	case 't', 'f':
		if err := json.Unmarshal(v, &c.Bool); err != nil {
			return err
		}
		c.Kind = CellBool
	default:
		if err := json.Unmarshal(v, &c.Num); err != nil {
			return fmt.Errorf("unsupported cell value %s: %w", v, err)
		}
		c.Kind = CellNumber
	}
	return nil
}

// MarshalJSON encodes the cell in gviz wire form. Null cells encode as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	var v any
	switch c.Kind {
	case CellString:
		v = c.Str
	case CellBool:
		v = c.Bool
	case CellNumber:
		v = c.Num
	default:
		if c.Formatted == "" {
			return jsonNull, nil
		}
	}

	wire := cellJSON{F: c.Formatted}
	if v != nil {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		wire.V = raw
	}
	return json.Marshal(wire)
}

// Column describes one logical field of a Table.
type Column struct {
	// ID is the sheet column identifier (e.g. "A").
	ID string `json:"id"`

	// Label is the header text of the column.
	Label string `json:"label"`

	// Type is the gviz column type ("string", "boolean", "number", ...).
	Type string `json:"type"`

	// Pattern is the number or date format pattern, if any.
	Pattern string `json:"pattern,omitempty"`
}

// Row is an ordered sequence of cells. Positions are meaningful; see the
// Column* constants in member.go.
type Row struct {
	Cells []Cell `json:"c"`
}

// NewRow builds a Row from cells.
func NewRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.Cells)
}

// Cell returns the cell at index i, or a null cell when i is out of range.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}

// Table is the normalized structure parsed from a sheet response:
// ordered columns plus ordered rows.
//
// Every row is expected to have one cell per column. Rows that do not are
// kept and reported by ShapeMismatches.
type Table struct {
	Columns []Column `json:"cols"`
	Rows    []Row    `json:"rows"`
}

// NewEmptyTable returns a table with zero columns and zero rows.
func NewEmptyTable() *Table {
	return &Table{
		Columns: []Column{},
		Rows:    []Row{},
	}
}

// ColumnCount returns the number of declared columns.
func (t *Table) ColumnCount() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has neither columns nor rows.
func (t *Table) IsEmpty() bool {
	return t.ColumnCount() == 0 && t.RowCount() == 0
}

// ColumnLabels returns the column labels in order.
func (t *Table) ColumnLabels() []string {
	if t == nil {
		return nil
	}
	labels := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[i] = col.Label
	}
	return labels
}

// ShapeMismatches returns the indices of rows whose cell count differs
// from the column count.
func (t *Table) ShapeMismatches() []int {
	if t == nil {
		return nil
	}
	var mismatched []int
	for i, row := range t.Rows {
		if row.Len() != len(t.Columns) {
			mismatched = append(mismatched, i)
		}
	}
	return mismatched
}
