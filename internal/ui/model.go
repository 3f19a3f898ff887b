package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nconklindev/tabscope/internal/analyzer"
	"github.com/nconklindev/tabscope/internal/session"
	"github.com/nconklindev/tabscope/internal/types"
	"github.com/nconklindev/tabscope/internal/workbook"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewFiles view = iota
	viewPicker
	viewLoading
	viewSheets
	viewColumns
	viewSheetDetail
	viewCompare
	viewGroupDetail
	viewError
)

// Options configures the initial model.
type Options struct {
	Dir     string
	Session *session.Session
	MaxRows int
	Workers int
}

type Model struct {
	view       view
	opts       Options
	session    *session.Session
	filepicker filepicker.Model
	spinner    spinner.Model
	loading    string

	counts map[string]types.SheetCount
	sizes  map[string]int64

	cursors      map[view]int
	selectedFile string
	sheets       []types.SheetInfo
	structure    *types.FileStructure
	report       *types.MappingReport
	compareRows  []compareRow
	detail       types.SheetStructure
	group        types.MappingGroup

	status string
	err    error
	width  int
	height int
}

// compareRow is one line of the mapping comparison. group is the 1-based
// group number, 0 for a unique sheet and -1 for a sheet without header.
type compareRow struct {
	sheet   string
	columns int
	group   int
}

type countsMsg struct {
	counts []types.SheetCount
}

type sheetsMsg struct {
	sheets []types.SheetInfo
	err    error
}

type structureMsg struct {
	fs  *types.FileStructure
	err error
}

type reportMsg struct {
	fs     *types.FileStructure
	report *types.MappingReport
	err    error
}

func InitialModel(opts Options) Model {
	if opts.Session == nil {
		opts.Session = session.New()
	}
	if opts.Dir == "" {
		opts.Dir, _ = os.Getwd()
	}

	fp := filepicker.New()
	fp.AllowedTypes = workbook.Extensions()
	fp.CurrentDirectory = opts.Dir

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))

	m := Model{
		view:       viewFiles,
		opts:       opts,
		session:    opts.Session,
		filepicker: fp,
		spinner:    sp,
		counts:     make(map[string]types.SheetCount),
		sizes:      make(map[string]int64),
		cursors:    make(map[view]int),
	}
	for _, f := range m.session.Files() {
		m.recordSize(f)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) recordSize(path string) {
	if info, err := os.Stat(path); err == nil {
		m.sizes[path] = info.Size()
	}
}

func (m Model) listLen() int {
	switch m.view {
	case viewFiles:
		return m.session.Len()
	case viewSheets:
		return len(m.sheets)
	case viewColumns:
		if m.structure != nil {
			return len(m.structure.Sheets)
		}
	case viewSheetDetail:
		return len(m.detail.Header.Cells)
	case viewCompare:
		return len(m.compareRows)
	case viewGroupDetail:
		return len(m.group.Headers)
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	n := m.listLen()
	c := m.cursors[m.view] + delta
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursors[m.view] = c
}

func (m Model) cursor() int {
	return m.cursors[m.view]
}

func (m Model) currentFile() (string, bool) {
	files := m.session.Files()
	c := m.cursors[viewFiles]
	if c < 0 || c >= len(files) {
		return "", false
	}
	return files[c], true
}

// open switches to v with its cursor at the top.
func (m *Model) open(v view) {
	m.view = v
	m.cursors[v] = 0
}

func (m Model) startLoading(label string, cmd tea.Cmd) (Model, tea.Cmd) {
	m.view = viewLoading
	m.loading = label
	m.status = ""
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) fail(err error) (Model, tea.Cmd) {
	logger.Debug("UI operation failed", "err", err)
	m.err = err
	m.view = viewError
	return m, nil
}

func (m Model) copy(text, what string) Model {
	if err := clipboard.WriteAll(text); err != nil {
		m.status = "Clipboard unavailable: " + err.Error()
		return m
	}
	m.status = "Copied " + what
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Subtract space for title, subtitle, help text, and padding
		height := msg.Height - 14
		if height < 5 {
			height = 5 // Minimum height
		}
		m.filepicker.SetHeight(height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.view != viewLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case countsMsg:
		for _, c := range msg.counts {
			m.counts[c.Path] = c
		}
		m.view = viewFiles
		m.status = fmt.Sprintf("Counted sheets in %d files", len(msg.counts))
		return m, nil

	case sheetsMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.sheets = msg.sheets
		m.open(viewSheets)
		return m, nil

	case structureMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.structure = msg.fs
		m.open(viewColumns)
		return m, nil

	case reportMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.structure = msg.fs
		m.report = msg.report
		m.compareRows = buildCompareRows(msg.report)
		m.open(viewCompare)
		return m, nil
	}

	// Handle filepicker updates
	if m.view == viewPicker {
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		if added, _ := m.session.Add(path); added > 0 {
			files := m.session.Files()
			m.recordSize(files[len(files)-1])
			m.status = "Added " + filepath.Base(path)
		} else {
			m.status = filepath.Base(path) + " is already in the list"
		}
	}
	if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
		m.status = filepath.Base(path) + " is not an Excel workbook"
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.view {
	case viewLoading:
		return m, nil

	case viewPicker:
		if key == "q" {
			m.view = viewFiles
			return m, nil
		}
		return m.updatePicker(msg)

	case viewError:
		switch key {
		case "q":
			return m, tea.Quit
		case "esc", "enter":
			m.err = nil
			m.view = viewFiles
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	}

	switch m.view {
	case viewFiles:
		return m.handleFilesKey(key)

	case viewSheets:
		switch key {
		case "c":
			if len(m.sheets) > 0 {
				return m.copy(m.sheets[m.cursor()].Name, "sheet name"), nil
			}
		case "C":
			names := make([]string, len(m.sheets))
			for i, s := range m.sheets {
				names[i] = s.Name
			}
			return m.copy(strings.Join(names, "\n"), fmt.Sprintf("all %d sheet names", len(names))), nil
		}

	case viewColumns:
		if key == "enter" && m.structure != nil && len(m.structure.Sheets) > 0 {
			sheet := m.structure.Sheets[m.cursor()]
			if !sheet.Header.Found() {
				m.status = fmt.Sprintf("No header found in %q (no run of 4+ filled cells)", sheet.Name)
				return m, nil
			}
			m.detail = sheet
			m.status = ""
			m.open(viewSheetDetail)
			return m, nil
		}

	case viewSheetDetail:
		if key == "c" {
			return m.copy(headerText(m.detail.Header.Cells), fmt.Sprintf("%d columns", len(m.detail.Header.Cells))), nil
		}

	case viewCompare:
		if key == "enter" && len(m.compareRows) > 0 {
			row := m.compareRows[m.cursor()]
			if row.group <= 0 {
				m.status = fmt.Sprintf("%q has a unique column mapping", row.sheet)
				return m, nil
			}
			m.group = m.report.Groups[row.group-1]
			m.status = ""
			m.open(viewGroupDetail)
			return m, nil
		}

	case viewGroupDetail:
		if key == "c" {
			return m.copy(headerText(m.group.Headers), m.group.Label()+" columns"), nil
		}
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.status = ""
		m.view = parentOf(m.view)
	}
	return m, nil
}

func (m Model) handleFilesKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "a":
		m.view = viewPicker
		m.status = ""
		return m, m.filepicker.Init()
	case "X":
		m.session.Clear()
		clear(m.counts)
		m.cursors[viewFiles] = 0
		m.status = "List cleared"
		return m, nil
	case "n":
		if m.session.Len() == 0 {
			m.status = "Add at least one file"
			return m, nil
		}
		return m.startLoading("Counting sheets...", countCmd(m.session.Files(), m.opts.Workers))
	}

	path, ok := m.currentFile()
	if !ok {
		if slices.Contains([]string{"x", "delete", "s", "enter", "c", "m"}, key) {
			m.status = "Select a file from the list"
		}
		return m, nil
	}

	switch key {
	case "x", "delete":
		m.session.Remove(path)
		delete(m.counts, path)
		m.moveCursor(0)
		m.status = "Removed " + filepath.Base(path)
	case "s", "enter":
		m.selectedFile = path
		return m.startLoading("Reading sheets...", sheetsCmd(path))
	case "c":
		m.selectedFile = path
		return m.startLoading("Analyzing column structure...", structureCmd(path, m.opts.MaxRows))
	case "m":
		m.selectedFile = path
		return m.startLoading("Comparing column mappings...", reportCmd(path, m.opts.MaxRows))
	}
	return m, nil
}

func parentOf(v view) view {
	switch v {
	case viewSheetDetail:
		return viewColumns
	case viewGroupDetail:
		return viewCompare
	}
	return viewFiles
}

func countCmd(files []string, workers int) tea.Cmd {
	return func() tea.Msg {
		return countsMsg{counts: analyzer.CountAll(context.Background(), files, workers)}
	}
}

func sheetsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		sheets, err := workbook.ListSheets(path)
		return sheetsMsg{sheets: sheets, err: err}
	}
}

func structureCmd(path string, maxRows int) tea.Cmd {
	return func() tea.Msg {
		fs, err := analyzer.AnalyzeFile(path, maxRows)
		return structureMsg{fs: fs, err: err}
	}
}

func reportCmd(path string, maxRows int) tea.Cmd {
	return func() tea.Msg {
		fs, report, err := analyzer.AnalyzeAndCompare(path, maxRows)
		return reportMsg{fs: fs, report: report, err: err}
	}
}

func buildCompareRows(r *types.MappingReport) []compareRow {
	var rows []compareRow
	for _, g := range r.Groups {
		for _, s := range g.Sheets {
			rows = append(rows, compareRow{sheet: s, columns: len(g.Headers), group: g.Number})
		}
	}
	for _, s := range r.Unique {
		rows = append(rows, compareRow{sheet: s.Name, columns: s.ColumnCount()})
	}
	for _, s := range r.Unmapped {
		rows = append(rows, compareRow{sheet: s.Name, group: -1})
	}
	return rows
}

// headerText renders header cells one per line as "A: Name".
func headerText(cells []types.HeaderCell) string {
	lines := make([]string, len(cells))
	for i, c := range cells {
		lines[i] = types.ColumnLetter(c.Column) + ": " + c.Text
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	switch m.view {
	case viewFiles:
		return m.viewFiles()
	case viewPicker:
		return m.viewPicker()
	case viewLoading:
		return m.viewLoading()
	case viewSheets:
		return m.viewSheets()
	case viewColumns:
		return m.viewColumns()
	case viewSheetDetail:
		return m.viewSheetDetail()
	case viewCompare:
		return m.viewCompare()
	case viewGroupDetail:
		return m.viewGroupDetail()
	case viewError:
		return m.viewError()
	}
	return ""
}
