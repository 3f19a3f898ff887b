// Package header finds the header row of a sheet.
package header

import (
	"github.com/nconklindev/tabscope/internal/grid"
	"github.com/nconklindev/tabscope/internal/types"
)

const (
	// DefaultMaxRows bounds how far down a sheet Locate looks.
	DefaultMaxRows = 50
	// MinRunLength is the number of consecutive filled cells that marks a
	// header row.
	MinRunLength = 4
)

// Locate finds the header row of a sheet: the first row, within the first
// maxRows rows, holding a run of at least MinRunLength consecutive non-blank
// cells. The leftmost qualifying run of that row is returned. A maxRows of
// zero or less means DefaultMaxRows.
func Locate(g grid.Grid, maxRows int) (types.HeaderMatch, bool) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	lastRow := min(maxRows, g.Rows())
	cols := g.Cols()

	for row := 1; row <= lastRow; row++ {
		var run []types.HeaderCell

		for col := 1; col <= cols; col++ {
			text := g.Cell(row, col).Text()
			if text != "" {
				run = append(run, types.HeaderCell{Column: col, Text: text})
				continue
			}
			if len(run) >= MinRunLength {
				return types.HeaderMatch{Row: row, Cells: run}, true
			}
			run = nil
		}

		// Run reaching the last column
		if len(run) >= MinRunLength {
			return types.HeaderMatch{Row: row, Cells: run}, true
		}
	}

	return types.HeaderMatch{}, false
}
