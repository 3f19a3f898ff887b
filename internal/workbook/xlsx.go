package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nconklindev/tabscope/internal/grid"

	"github.com/xuri/excelize/v2"
)

type xlsxBook struct {
	f *excelize.File
}

func openXLSX(path string) (*xlsxBook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &xlsxBook{f: f}, nil
}

func (b *xlsxBook) SheetNames() []string {
	return b.f.GetSheetList()
}

// Sheet streams at most maxRows rows of the sheet. Two row iterators run in
// lockstep, one with display text and one with stored values, so cells are
// typed without loading the whole worksheet.
func (b *xlsxBook) Sheet(name string, maxRows int) (grid.Grid, error) {
	if idx, err := b.f.GetSheetIndex(name); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}

	display, err := b.f.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	defer display.Close()

	stored, err := b.f.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	defer stored.Close()

	var cells [][]grid.Value
	for (maxRows <= 0 || len(cells) < maxRows) && display.Next() && stored.Next() {
		rowNum := len(cells) + 1

		cols, err := display.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %q row %d: %w", name, rowNum, err)
		}
		raw, err := stored.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q row %d: %w", name, rowNum, err)
		}

		values := make([]grid.Value, len(cols))
		for i, s := range cols {
			if s == "" {
				continue
			}
			var r string
			if i < len(raw) {
				r = raw[i]
			}
			values[i] = cellValue(s, r)
		}
		cells = append(cells, values)
	}
	if err := display.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if err := stored.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	return grid.NewMatrix(cells), nil
}

// cellValue types a cell from its display text and its stored value.
// Booleans are stored as 1 or 0. A number is kept as Number only when its
// text form matches the display, so text such as "007" is not rewritten.
// Numbers shown through a number format (dates, currency) become Other.
func cellValue(display, stored string) grid.Value {
	if (display == "TRUE" && stored == "1") || (display == "FALSE" && stored == "0") {
		return grid.BoolValue(display == "TRUE")
	}
	f, err := strconv.ParseFloat(stored, 64)
	if err != nil {
		return grid.TextValue(display)
	}
	if n := grid.NumberValue(f); n.Text() == strings.TrimSpace(display) {
		return n
	}
	if stored == display {
		return grid.TextValue(display)
	}
	// Long fractions are displayed rounded to 15 digits
	if f, err := strconv.ParseFloat(display, 64); err == nil {
		if n := grid.NumberValue(f); n.Text() == display {
			return n
		}
	}
	return grid.OtherValue(display)
}

func (b *xlsxBook) Close() error {
	return b.f.Close()
}
