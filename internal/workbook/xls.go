package workbook

import (
	"fmt"
	"os"

	"github.com/nconklindev/tabscope/internal/grid"

	"github.com/extrame/xls"
)

const xlsCharset = "utf-8"

type xlsBook struct {
	file *os.File
	wb   *xls.WorkBook
}

func openXLS(path string) (book *xlsBook, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	// The BIFF parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			file.Close()
			book, err = nil, fmt.Errorf("open workbook: corrupt xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(file, xlsCharset)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &xlsBook{file: file, wb: wb}, nil
}

func (b *xlsBook) SheetNames() []string {
	names := make([]string, 0, b.wb.NumSheets())
	for i := 0; i < b.wb.NumSheets(); i++ {
		if s := b.wb.GetSheet(i); s != nil {
			names = append(names, s.Name)
		}
	}
	return names
}

func (b *xlsBook) Sheet(name string, maxRows int) (g grid.Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("read sheet %q: corrupt xls: %v", name, r)
		}
	}()

	for i := 0; i < b.wb.NumSheets(); i++ {
		s := b.wb.GetSheet(i)
		if s == nil || s.Name != name {
			continue
		}

		n := int(s.MaxRow) + 1
		if maxRows > 0 && n > maxRows {
			n = maxRows
		}

		cells := make([][]grid.Value, n)
		for r := 0; r < n; r++ {
			row := sheetRow(s, r)
			if row == nil {
				continue
			}
			last := max(row.LastCol(), 0)
			values := make([]grid.Value, last)
			for c := max(row.FirstCol(), 0); c < last; c++ {
				values[c] = xlsValue(row.Col(c))
			}
			cells[r] = values
		}
		return grid.NewMatrix(cells), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// sheetRow returns row r of s, or nil when the sheet stores no record for
// that row. WorkSheet.Row dereferences missing rows instead of returning nil.
func sheetRow(s *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return s.Row(r)
}

// xlsValue wraps a cell rendered by the BIFF reader. The reader only exposes
// display text, so "007" stays "007" rather than becoming a number.
func xlsValue(s string) grid.Value {
	return grid.TextValue(s)
}

func (b *xlsBook) Close() error {
	return b.file.Close()
}
