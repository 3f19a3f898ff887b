package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nconklindev/tabscope/internal/workbook"
)

func sampleWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		anchor string
		row    []any
	}{
		{"Jan", "A2", []any{"ID", "Name", "Date", "Amount"}},
		{"Feb", "B1", []any{"id", "name", "DATE", "amount"}},
		{"Summary", "A1", []any{"Total", "Count", "Average", "Max"}},
		{"Notes", "A1", []any{"Prepared by"}},
	}
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(s.name, s.anchor, &s.row))
	}

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCmd(BuildInfo{Version: "test"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCountCommand(t *testing.T) {
	path := sampleWorkbook(t)

	out, err := run(t, "count", path, "notes.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "sample.xlsx")
	assert.Contains(t, out, "4 sheets in 1 files")
}

func TestCountCommandNothingToCount(t *testing.T) {
	_, err := run(t, "count", "notes.txt")
	assert.Error(t, err)
}

func TestSheetsCommand(t *testing.T) {
	out, err := run(t, "sheets", sampleWorkbook(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Total sheets: 4")
	assert.Contains(t, out, "Summary")
}

func TestColumnsCommand(t *testing.T) {
	path := sampleWorkbook(t)

	out, err := run(t, "columns", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Sheets found: 4")
	assert.Contains(t, out, "Row 2")
	assert.Contains(t, out, "Not found")

	out, err = run(t, "columns", path, "--sheet", "Feb")
	require.NoError(t, err)
	assert.Contains(t, out, "Header row: 1 | Columns: 4")
	assert.Contains(t, out, "amount")

	out, err = run(t, "columns", path, "--sheet", "Notes")
	require.NoError(t, err)
	assert.Contains(t, out, "No header found")

	_, err = run(t, "columns", path, "--sheet", "Missing")
	assert.ErrorIs(t, err, workbook.ErrSheetNotFound)
}

func TestCompareCommand(t *testing.T) {
	path := sampleWorkbook(t)

	out, err := run(t, "compare", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Groups with identical mapping: 1 | Unique sheets: 1 | No header: 1")
	assert.Contains(t, out, "Group 1")

	out, err = run(t, "compare", path, "--group", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "Feb")
	assert.NotContains(t, out, "Summary")

	_, err = run(t, "compare", path, "--group", "2")
	assert.Error(t, err)
}

func TestMaxRowsFlag(t *testing.T) {
	out, err := run(t, "columns", sampleWorkbook(t), "--sheet", "Jan", "--max-rows", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No header found")
}

func TestInvalidFlagValue(t *testing.T) {
	_, err := run(t, "count", sampleWorkbook(t), "--workers", "0")
	assert.Error(t, err)
}

func TestUnsupportedFile(t *testing.T) {
	_, err := run(t, "sheets", "table.csv")
	assert.ErrorIs(t, err, workbook.ErrUnsupportedFormat)
}
