// Package workbook reads spreadsheet files into grids.
//
// Modern Office Open XML workbooks (.xlsx, .xlsm and their templates) are
// read with excelize; legacy BIFF workbooks (.xls) with extrame/xls.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nconklindev/tabscope/internal/grid"
	"github.com/nconklindev/tabscope/internal/types"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrSheetNotFound     = errors.New("sheet not found")
)

// Workbook is an open spreadsheet file.
type Workbook interface {
	// SheetNames lists the sheets in workbook order.
	SheetNames() []string
	// Sheet loads the named sheet. Only the first maxRows rows are read;
	// zero or less reads every row.
	Sheet(name string, maxRows int) (grid.Grid, error)
	Close() error
}

type format int

const (
	formatXLSX format = iota + 1
	formatXLS
)

var formats = map[string]format{
	".xlsx": formatXLSX,
	".xlsm": formatXLSX,
	".xltx": formatXLSX,
	".xltm": formatXLSX,
	".xls":  formatXLS,
}

// Extensions returns the supported file extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// IsSupported reports whether path has a readable workbook extension.
func IsSupported(path string) bool {
	_, ok := formats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Open opens the workbook at path, picking the reader by extension.
func Open(path string) (Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch formats[ext] {
	case formatXLSX:
		return openXLSX(path)
	case formatXLS:
		return openXLS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// CountSheets returns the number of sheets in the workbook at path.
func CountSheets(path string) (int, error) {
	wb, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer wb.Close()

	return len(wb.SheetNames()), nil
}

// ListSheets returns the sheets of the workbook at path with their 1-based
// positions.
func ListSheets(path string) ([]types.SheetInfo, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	names := wb.SheetNames()
	sheets := make([]types.SheetInfo, len(names))
	for i, name := range names {
		sheets[i] = types.SheetInfo{Index: i + 1, Name: name}
	}
	return sheets, nil
}
