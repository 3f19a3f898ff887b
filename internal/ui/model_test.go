package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nconklindev/tabscope/internal/session"
	"github.com/nconklindev/tabscope/internal/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		row  []any
	}{
		{"Jan", []any{"ID", "Name", "Date", "Amount"}},
		{"Summary", []any{"Total", "Count", "Average", "Max"}},
		{"Feb", []any{"id", "name", "date", "amount"}},
		{"Notes", []any{"Prepared by"}},
	}
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(s.name, "A1", &s.row))
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newModel(t *testing.T, files ...string) Model {
	t.Helper()
	return InitialModel(Options{Dir: t.TempDir(), Session: session.New(files...), MaxRows: 50, Workers: 2})
}

func TestInitialModel(t *testing.T) {
	path := writeWorkbook(t)
	m := newModel(t, path)

	assert.Equal(t, viewFiles, m.view)
	assert.Contains(t, m.sizes, path)
	assert.Contains(t, m.View(), "book.xlsx")
}

func TestCompareFlow(t *testing.T) {
	path := writeWorkbook(t)
	m := newModel(t, path)

	m = press(t, m, runes("m"))
	assert.Equal(t, viewLoading, m.view)

	m = press(t, m, reportCmd(path, 50)())
	require.Equal(t, viewCompare, m.view)
	require.Len(t, m.compareRows, 4)
	assert.Equal(t, compareRow{sheet: "Jan", columns: 4, group: 1}, m.compareRows[0])
	assert.Equal(t, compareRow{sheet: "Feb", columns: 4, group: 1}, m.compareRows[1])
	assert.Equal(t, compareRow{sheet: "Summary", columns: 4, group: 0}, m.compareRows[2])
	assert.Equal(t, compareRow{sheet: "Notes", columns: 0, group: -1}, m.compareRows[3])
	assert.Contains(t, m.View(), "Groups with identical mapping: 1")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGroupDetail, m.view)
	assert.Equal(t, []string{"Jan", "Feb"}, m.group.Sheets)
	assert.Contains(t, m.View(), "Shared column mapping")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewCompare, m.view)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewCompare, m.view, "unique sheets have no group details")
	assert.Contains(t, m.status, "unique")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewFiles, m.view)
}

func TestColumnsFlow(t *testing.T) {
	path := writeWorkbook(t)
	m := newModel(t, path)

	m = press(t, m, runes("c"))
	assert.Equal(t, viewLoading, m.view)

	m = press(t, m, structureCmd(path, 50)())
	require.Equal(t, viewColumns, m.view)
	assert.Contains(t, m.View(), "Row 1")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewSheetDetail, m.view)
	assert.Equal(t, "Jan", m.detail.Name)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewColumns, m.view)

	// Notes has no header
	for range 3 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewColumns, m.view)
	assert.Contains(t, m.status, "No header found")
}

func TestSheetsFlow(t *testing.T) {
	path := writeWorkbook(t)
	m := newModel(t, path)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewLoading, m.view)

	m = press(t, m, sheetsCmd(path)())
	require.Equal(t, viewSheets, m.view)
	require.Len(t, m.sheets, 4)
	assert.Contains(t, m.View(), "Total sheets: 4")

	// Cursor stops at the last sheet
	for range 10 {
		m = press(t, m, runes("j"))
	}
	assert.Equal(t, 3, m.cursor())
}

func TestCountsMsg(t *testing.T) {
	path := writeWorkbook(t)
	m := newModel(t, path)

	m = press(t, m, runes("n"))
	assert.Equal(t, viewLoading, m.view)

	m = press(t, m, countCmd([]string{path}, 1)())
	assert.Equal(t, viewFiles, m.view)
	assert.Equal(t, 4, m.counts[path].Count)
	assert.Contains(t, m.View(), "4 sheets")
}

func TestCountWithEmptyList(t *testing.T) {
	m := newModel(t)

	m = press(t, m, runes("n"))
	assert.Equal(t, viewFiles, m.view)
	assert.Equal(t, "Add at least one file", m.status)
}

func TestRemoveAndClear(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx")
	m := newModel(t, a, b)

	m = press(t, m, runes("x"))
	assert.Equal(t, []string{b}, m.session.Files())
	assert.True(t, strings.HasPrefix(m.status, "Removed"))

	m = press(t, m, runes("X"))
	assert.Zero(t, m.session.Len())
}

func TestErrorView(t *testing.T) {
	m := newModel(t)

	m = press(t, m, sheetsMsg{err: errors.New("corrupt workbook")})
	require.Equal(t, viewError, m.view)
	assert.Contains(t, m.View(), "corrupt workbook")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewFiles, m.view)
}

func TestBuildCompareRows(t *testing.T) {
	report := &types.MappingReport{
		Groups: []types.MappingGroup{
			{Number: 1, Sheets: []string{"A", "B"}, Headers: make([]types.HeaderCell, 5)},
			{Number: 2, Sheets: []string{"C", "D"}, Headers: make([]types.HeaderCell, 4)},
		},
		Unmapped: []types.SheetStructure{{Name: "E"}},
	}

	rows := buildCompareRows(report)
	assert.Equal(t, []compareRow{
		{"A", 5, 1}, {"B", 5, 1}, {"C", 4, 2}, {"D", 4, 2}, {"E", 0, -1},
	}, rows)
}

func TestGroupStyleCyclesColors(t *testing.T) {
	first := GroupStyle(1).GetBackground()
	assert.Equal(t, first, GroupStyle(len(groupColors)+1).GetBackground())
	assert.NotEqual(t, first, GroupStyle(2).GetBackground())
}
