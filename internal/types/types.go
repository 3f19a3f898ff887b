package types

// HeaderCell is one detected header column. Column is 1-based.
type HeaderCell struct {
	Column int
	Text   string
}

// HeaderMatch is the header run found in a sheet. The zero value means no
// header was found.
type HeaderMatch struct {
	Row   int
	Cells []HeaderCell
}

// Found reports whether the match holds a header run.
func (h HeaderMatch) Found() bool {
	return h.Row > 0 && len(h.Cells) > 0
}

// Texts returns the header names in column order.
func (h HeaderMatch) Texts() []string {
	texts := make([]string, len(h.Cells))
	for i, c := range h.Cells {
		texts[i] = c.Text
	}
	return texts
}

type SheetInfo struct {
	Index int // 1-based position in the workbook
	Name  string
}

// SheetStructure is the header analysis of one sheet. Err is set when the
// sheet could not be read; such a sheet has no header.
type SheetStructure struct {
	Name   string
	Header HeaderMatch
	Err    error
}

func (s SheetStructure) ColumnCount() int {
	return len(s.Header.Cells)
}

type FileStructure struct {
	Path   string
	Sheets []SheetStructure
}

// Sheet returns the structure of the named sheet.
func (f *FileStructure) Sheet(name string) (SheetStructure, bool) {
	for _, s := range f.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetStructure{}, false
}

// SheetCount is the number of sheets in one file, or the error that
// prevented counting them.
type SheetCount struct {
	Index int // 1-based position in the session
	Path  string
	Count int
	Err   error
}

// MappingGroup is a set of two or more sheets sharing a header sequence.
type MappingGroup struct {
	Number  int // 1-based
	Sheets  []string
	Headers []HeaderCell // taken from the first sheet of the group
}

type MappingReport struct {
	Path     string
	Groups   []MappingGroup
	Unique   []SheetStructure
	Unmapped []SheetStructure
}

// GroupOf returns the group containing the named sheet.
func (r *MappingReport) GroupOf(sheet string) (MappingGroup, bool) {
	for _, g := range r.Groups {
		for _, s := range g.Sheets {
			if s == sheet {
				return g, true
			}
		}
	}
	return MappingGroup{}, false
}
