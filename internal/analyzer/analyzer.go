// Package analyzer runs header detection and mapping comparison over
// workbook files.
package analyzer

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/nconklindev/tabscope/internal/header"
	"github.com/nconklindev/tabscope/internal/mapping"
	"github.com/nconklindev/tabscope/internal/types"
	"github.com/nconklindev/tabscope/internal/workbook"
)

var logger = log.New(io.Discard)

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// AnalyzeFile detects the header of every sheet in the workbook at path.
// A sheet that cannot be read is recorded with its error and the remaining
// sheets are still analyzed. Only failing to open the file is an error.
func AnalyzeFile(path string, maxRows int) (*types.FileStructure, error) {
	if maxRows <= 0 {
		maxRows = header.DefaultMaxRows
	}

	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return analyze(wb, path, maxRows), nil
}

func analyze(wb workbook.Workbook, path string, maxRows int) *types.FileStructure {
	fs := &types.FileStructure{Path: path}
	for _, name := range wb.SheetNames() {
		sheet := types.SheetStructure{Name: name}

		g, err := wb.Sheet(name, maxRows)
		if err != nil {
			logger.Warn("Skipping unreadable sheet", "file", path, "sheet", name, "err", err)
			sheet.Err = err
			fs.Sheets = append(fs.Sheets, sheet)
			continue
		}

		if match, ok := header.Locate(g, maxRows); ok {
			sheet.Header = match
			logger.Debug("Header found", "sheet", name, "row", match.Row, "columns", len(match.Cells))
		} else {
			logger.Debug("No header found", "sheet", name, "rows_scanned", min(maxRows, g.Rows()))
		}
		fs.Sheets = append(fs.Sheets, sheet)
	}

	return fs
}

// CompareMappings groups the sheets of fs by header sequence. Groups are
// numbered in order of their first sheet.
func CompareMappings(fs *types.FileStructure) *types.MappingReport {
	headers := make([]mapping.SheetHeader, len(fs.Sheets))
	for i, s := range fs.Sheets {
		headers[i] = mapping.SheetHeader{ID: s.Name, Header: s.Header}
	}
	grouping := mapping.GroupSheets(headers)

	report := &types.MappingReport{Path: fs.Path}
	for i, g := range grouping.Matched() {
		first, _ := fs.Sheet(g.Sheets[0])
		report.Groups = append(report.Groups, types.MappingGroup{
			Number:  i + 1,
			Sheets:  g.Sheets,
			Headers: first.Header.Cells,
		})
	}
	for _, name := range grouping.Unique() {
		s, _ := fs.Sheet(name)
		report.Unique = append(report.Unique, s)
	}
	for _, name := range grouping.Unmapped() {
		s, _ := fs.Sheet(name)
		report.Unmapped = append(report.Unmapped, s)
	}

	logger.Debug("Compared mappings", "file", fs.Path, "groups", len(report.Groups),
		"unique", len(report.Unique), "unmapped", len(report.Unmapped))
	return report
}

// AnalyzeAndCompare is AnalyzeFile followed by CompareMappings.
func AnalyzeAndCompare(path string, maxRows int) (*types.FileStructure, *types.MappingReport, error) {
	fs, err := AnalyzeFile(path, maxRows)
	if err != nil {
		return nil, nil, err
	}
	return fs, CompareMappings(fs), nil
}

// CountAll counts the sheets of every file, reading up to workers files at a
// time. Results follow the order of files. A file that cannot be read gets
// its error in its own entry; the other files are unaffected. Cancelling ctx
// marks files not yet started with the context error.
func CountAll(ctx context.Context, files []string, workers int) []types.SheetCount {
	if workers <= 0 {
		workers = 1
	}

	results := make([]types.SheetCount, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		results[i] = types.SheetCount{Index: i + 1, Path: path}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			count, err := workbook.CountSheets(path)
			if err != nil {
				logger.Warn("Could not count sheets", "file", path, "err", err)
				results[i].Err = fmt.Errorf("count sheets: %w", err)
				return nil
			}
			results[i].Count = count
			return nil
		})
	}

	// Workers never return errors; failures live in the results
	_ = g.Wait()
	return results
}
