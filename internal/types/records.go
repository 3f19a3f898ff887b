package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table column titles for each Records shape.
var (
	SheetCountColumns    = []string{"#", "File", "Sheets"}
	SheetInfoColumns     = []string{"Index", "Sheet"}
	FileStructureColumns = []string{"Sheet", "Columns", "Header row"}
	HeaderColumns        = []string{"Column", "Name"}
	MappingReportColumns = []string{"Sheet", "Columns", "Group"}
	MappingGroupColumns  = []string{"#", "Name"}
)

const (
	UniqueLabel   = "Unique"
	UnmappedLabel = "No header"

	descriptionNameLimit = 20
	descriptionNameCount = 3
)

// ColumnLetter converts a 1-based column number to its spreadsheet name
// (1 -> A, 27 -> AA).
func ColumnLetter(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Sprint(col)
	}
	return name
}

// Records renders the header as (column letter, name) rows.
func (h HeaderMatch) Records() [][]any {
	rows := make([][]any, 0, len(h.Cells))
	for _, c := range h.Cells {
		rows = append(rows, []any{ColumnLetter(c.Column), c.Text})
	}
	return rows
}

func SheetCountRecords(counts []SheetCount) [][]any {
	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		var count any = c.Count
		if c.Err != nil {
			count = "Error: " + c.Err.Error()
		}
		rows = append(rows, []any{c.Index, filepath.Base(c.Path), count})
	}
	return rows
}

func SheetInfoRecords(sheets []SheetInfo) [][]any {
	rows := make([][]any, 0, len(sheets))
	for _, s := range sheets {
		rows = append(rows, []any{s.Index, s.Name})
	}
	return rows
}

// HeaderRowLabel describes where the header of a sheet was found.
func (s SheetStructure) HeaderRowLabel() string {
	switch {
	case s.Err != nil:
		return "Error: " + s.Err.Error()
	case s.Header.Found():
		return fmt.Sprintf("Row %d", s.Header.Row)
	}
	return "Not found"
}

func (f *FileStructure) Records() [][]any {
	rows := make([][]any, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		rows = append(rows, []any{s.Name, s.ColumnCount(), s.HeaderRowLabel()})
	}
	return rows
}

func (g MappingGroup) Label() string {
	return fmt.Sprintf("Group %d", g.Number)
}

// Description lists the first few header names of the group, shortening
// long names.
func (g MappingGroup) Description() string {
	names := make([]string, 0, descriptionNameCount)
	for i, h := range g.Headers {
		if i == descriptionNameCount {
			break
		}
		name := h.Text
		if r := []rune(name); len(r) > descriptionNameLimit {
			name = string(r[:descriptionNameLimit]) + "..."
		}
		names = append(names, name)
	}
	desc := strings.Join(names, ", ")
	if extra := len(g.Headers) - descriptionNameCount; extra > 0 {
		desc += fmt.Sprintf(" (+%d more)", extra)
	}
	return desc
}

// Records renders the shared header of the group as (position, name) rows.
func (g MappingGroup) Records() [][]any {
	rows := make([][]any, 0, len(g.Headers))
	for i, h := range g.Headers {
		rows = append(rows, []any{i + 1, h.Text})
	}
	return rows
}

// Records lists grouped sheets first, then unique sheets, then sheets
// without a header.
func (r *MappingReport) Records() [][]any {
	var rows [][]any
	for _, g := range r.Groups {
		for _, s := range g.Sheets {
			rows = append(rows, []any{s, len(g.Headers), g.Label()})
		}
	}
	for _, s := range r.Unique {
		rows = append(rows, []any{s.Name, s.ColumnCount(), UniqueLabel})
	}
	for _, s := range r.Unmapped {
		rows = append(rows, []any{s.Name, 0, UnmappedLabel})
	}
	return rows
}
