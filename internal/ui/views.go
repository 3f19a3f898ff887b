package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nconklindev/tabscope/internal/types"
)

// visibleRange returns the slice of an n item list to draw so that the
// cursor stays on screen.
func (m Model) visibleRange(n int) (int, int) {
	size := m.height - 14
	if size < 5 {
		size = 5
	}
	if n <= size {
		return 0, n
	}
	start := m.cursor() - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}

func (m Model) line(i int, text string) string {
	if i == m.cursor() {
		return SelectedStyle.Render("> " + text)
	}
	return "  " + text
}

func (m Model) footer(s *strings.Builder, help string) {
	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(SuccessStyle.Render(m.status))
		s.WriteString("\n")
	}
	s.WriteString(HelpStyle.Render(help))
}

func (m Model) viewFiles() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 Tabscope - Excel Sheet Inspector"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Add Excel files, then count or inspect their sheets"))
	s.WriteString("\n\n")

	files := m.session.Files()
	if len(files) == 0 {
		s.WriteString(DimStyle.Render("No files yet. Press a to add workbooks."))
		s.WriteString("\n")
	}

	start, end := m.visibleRange(len(files))
	for i := start; i < end; i++ {
		path := files[i]

		size := ""
		if n, ok := m.sizes[path]; ok {
			size = humanize.Bytes(uint64(n))
		}

		count := ""
		if c, ok := m.counts[path]; ok {
			if c.Err != nil {
				count = ErrorStyle.Render("error")
			} else {
				count = fmt.Sprintf("%d sheets", c.Count)
			}
		}

		s.WriteString(m.line(i, fmt.Sprintf("%2d. %s  %s  %s", i+1, path, DimStyle.Render(size), count)))
		s.WriteString("\n")
	}

	m.footer(&s, "a: add files • n: count sheets • s: sheets • c: columns • m: compare mappings • x: remove • X: clear • q: quit")

	return BoxStyle.Render(s.String())
}

func (m Model) viewPicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 Add Files"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Select Excel files (%d in list)", m.session.Len())))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")

	m.footer(&s, "enter: add file • q: back to list • ctrl+c: quit")

	return s.String()
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 Working..."))
	s.WriteString("\n\n")
	s.WriteString(m.spinner.View() + " " + m.loading)
	if m.selectedFile != "" {
		s.WriteString("\n")
		s.WriteString(DimStyle.Render(filepath.Base(m.selectedFile)))
	}

	return BoxStyle.Render(s.String())
}

func (m Model) viewSheets() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📑 Sheets of " + filepath.Base(m.selectedFile)))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Total sheets: %d", len(m.sheets))))
	s.WriteString("\n\n")

	start, end := m.visibleRange(len(m.sheets))
	for i := start; i < end; i++ {
		sh := m.sheets[i]
		s.WriteString(m.line(i, fmt.Sprintf("%3d  %s", sh.Index, sh.Name)))
		s.WriteString("\n")
	}

	m.footer(&s, "↑/↓: navigate • c: copy name • C: copy all names • esc: back • q: quit")

	return BoxStyle.Render(s.String())
}

func (m Model) viewColumns() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🧭 Column Structure of " + filepath.Base(m.selectedFile)))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Sheets found: %d", len(m.structure.Sheets))))
	s.WriteString("\n\n")

	width := nameWidth(m.structure.Sheets)
	s.WriteString(DimStyle.Render(fmt.Sprintf("  %-*s  %7s  %s", width, "Sheet", "Columns", "Header row")))
	s.WriteString("\n")

	start, end := m.visibleRange(len(m.structure.Sheets))
	for i := start; i < end; i++ {
		sh := m.structure.Sheets[i]
		s.WriteString(m.line(i, fmt.Sprintf("%-*s  %7d  %s", width, sh.Name, sh.ColumnCount(), sh.HeaderRowLabel())))
		s.WriteString("\n")
	}

	m.footer(&s, "↑/↓: navigate • enter: show sheet columns • esc: back • q: quit")

	return BoxStyle.Render(s.String())
}

func (m Model) viewSheetDetail() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🧭 Columns of " + m.detail.Name))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Header row: %d | Total columns: %d",
		m.detail.Header.Row, m.detail.ColumnCount())))
	s.WriteString("\n\n")

	cells := m.detail.Header.Cells
	start, end := m.visibleRange(len(cells))
	for i := start; i < end; i++ {
		c := cells[i]
		s.WriteString(m.line(i, fmt.Sprintf("%-4s %s", types.ColumnLetter(c.Column), c.Text)))
		s.WriteString("\n")
	}

	m.footer(&s, "↑/↓: navigate • c: copy all columns • esc: back • q: quit")

	return BoxStyle.Render(s.String())
}

func (m Model) viewCompare() string {
	var s strings.Builder

	r := m.report
	s.WriteString(TitleStyle.Render("🔗 Column Mapping Comparison of " + filepath.Base(m.selectedFile)))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Groups with identical mapping: %d | Unique sheets: %d | No header: %d",
		len(r.Groups), len(r.Unique), len(r.Unmapped))))
	s.WriteString("\n\n")

	width := 5
	for _, row := range m.compareRows {
		width = max(width, lipgloss.Width(row.sheet))
	}
	s.WriteString(DimStyle.Render(fmt.Sprintf("  %-*s  %7s  %s", width, "Sheet", "Columns", "Group")))
	s.WriteString("\n")

	start, end := m.visibleRange(len(m.compareRows))
	for i := start; i < end; i++ {
		row := m.compareRows[i]

		var label string
		switch {
		case row.group > 0:
			g := r.Groups[row.group-1]
			label = fmt.Sprintf("%s (%d sheets)", g.Label(), len(g.Sheets))
		case row.group == 0:
			label = types.UniqueLabel
		default:
			label = types.UnmappedLabel
		}

		text := fmt.Sprintf("%-*s  %7d  %s", width, row.sheet, row.columns, label)
		if row.group > 0 {
			text = GroupStyle(row.group).Render(text)
		}
		s.WriteString(m.line(i, text))
		s.WriteString("\n")
	}

	if len(r.Groups) > 0 {
		s.WriteString("\n")
		for _, g := range r.Groups {
			s.WriteString(GroupStyle(g.Number).Render(" "+g.Label()+" ") + " " + DimStyle.Render(g.Description()))
			s.WriteString("\n")
		}
	}

	m.footer(&s, "↑/↓: navigate • enter: group details • esc: back • q: quit")

	return BoxStyle.Render(s.String())
}

func (m Model) viewGroupDetail() string {
	var s strings.Builder

	g := m.group
	s.WriteString(TitleStyle.Render(fmt.Sprintf("🔗 %s (%d sheets)", g.Label(), len(g.Sheets))))
	s.WriteString("\n\n")

	s.WriteString(SelectedStyle.Render("Sheets with identical mapping:"))
	s.WriteString("\n")
	for _, name := range g.Sheets {
		s.WriteString("  • " + name + "\n")
	}
	s.WriteString("\n")

	s.WriteString(SelectedStyle.Render("Shared column mapping:"))
	s.WriteString("\n")
	start, end := m.visibleRange(len(g.Headers))
	for i := start; i < end; i++ {
		s.WriteString(m.line(i, fmt.Sprintf("%3d  %s", i+1, g.Headers[i].Text)))
		s.WriteString("\n")
	}

	m.footer(&s, "↑/↓: navigate • c: copy columns • esc: back • q: quit")

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("esc: back to list • q: quit"))

	return BoxStyle.Render(s.String())
}

func nameWidth(sheets []types.SheetStructure) int {
	width := 5
	for _, sh := range sheets {
		width = max(width, lipgloss.Width(sh.Name))
	}
	return width
}
