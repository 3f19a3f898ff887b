package header

import (
	"reflect"
	"sync"
	"testing"

	"github.com/nconklindev/tabscope/internal/grid"
	"github.com/nconklindev/tabscope/internal/types"
)

func cells(start int, texts ...string) []types.HeaderCell {
	out := make([]types.HeaderCell, len(texts))
	for i, t := range texts {
		out[i] = types.HeaderCell{Column: start + i, Text: t}
	}
	return out
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		maxRows  int
		wantRow  int
		expected []types.HeaderCell
	}{
		{
			name:    "Empty grid",
			rows:    nil,
			wantRow: 0,
		},
		{
			name:    "Only blank cells",
			rows:    [][]string{{"", " ", ""}, {"  ", "", "", "", ""}},
			wantRow: 0,
		},
		{
			name:     "Exactly four followed by more content",
			rows:     [][]string{{"a", "b", "c", "d", "", "x", "", "y"}},
			wantRow:  1,
			expected: cells(1, "a", "b", "c", "d"),
		},
		{
			name:     "Run of three then run of five",
			rows:     [][]string{{"a", "b", "c", "", "v", "w", "x", "y", "z"}},
			wantRow:  1,
			expected: cells(5, "v", "w", "x", "y", "z"),
		},
		{
			name:     "Run ending at last column",
			rows:     [][]string{{"", "", "h1", "h2", "h3", "h4"}},
			wantRow:  1,
			expected: cells(3, "h1", "h2", "h3", "h4"),
		},
		{
			name: "Title row above header",
			rows: [][]string{
				{"A", "B", "C"},
				{"ID", "Name", "Date", "Amount", "Note"},
			},
			wantRow:  2,
			expected: cells(1, "ID", "Name", "Date", "Amount", "Note"),
		},
		{
			name: "First qualifying row wins over longer later row",
			rows: [][]string{
				{"a", "b", "c", "d"},
				{"1", "2", "3", "4", "5", "6", "7"},
			},
			wantRow:  1,
			expected: cells(1, "a", "b", "c", "d"),
		},
		{
			name:     "Leftmost run wins over longer run in same row",
			rows:     [][]string{{"a", "b", "c", "d", "", "1", "2", "3", "4", "5", "6"}},
			wantRow:  1,
			expected: cells(1, "a", "b", "c", "d"),
		},
		{
			name:     "Texts are trimmed",
			rows:     [][]string{{" ID ", "Name  ", "\tDate", "Amount"}},
			wantRow:  1,
			expected: cells(1, "ID", "Name", "Date", "Amount"),
		},
		{
			name:     "Whitespace cell breaks a run",
			rows:     [][]string{{"a", "b", "   ", "c", "d"}, {"w", "x", "y", "z"}},
			wantRow:  2,
			expected: cells(1, "w", "x", "y", "z"),
		},
		{
			name: "Header beyond scan bound",
			rows: [][]string{
				{"title"},
				{""},
				{"a", "b", "c", "d"},
			},
			maxRows: 2,
			wantRow: 0,
		},
		{
			name: "Header on scan bound",
			rows: [][]string{
				{"title"},
				{"a", "b", "c", "d"},
			},
			maxRows:  2,
			wantRow:  2,
			expected: cells(1, "a", "b", "c", "d"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(grid.FromStrings(tt.rows), tt.maxRows)
			if ok != (tt.wantRow > 0) {
				t.Fatalf("Locate() found = %v; want %v", ok, tt.wantRow > 0)
			}
			if got.Row != tt.wantRow {
				t.Errorf("Locate() row = %d; want %d", got.Row, tt.wantRow)
			}
			if !reflect.DeepEqual(got.Cells, tt.expected) {
				t.Errorf("Locate() cells = %v; want %v", got.Cells, tt.expected)
			}
		})
	}
}

func TestLocateTypedValues(t *testing.T) {
	g := grid.NewMatrix([][]grid.Value{
		{grid.TextValue("Year"), grid.NumberValue(2023), grid.NumberValue(2024.5), grid.BoolValue(true), grid.OtherValue("2024-01-31")},
	})

	got, ok := Locate(g, 0)
	if !ok {
		t.Fatal("Locate() found no header")
	}
	expected := cells(1, "Year", "2023", "2024.5", "TRUE", "2024-01-31")
	if !reflect.DeepEqual(got.Cells, expected) {
		t.Errorf("Locate() cells = %v; want %v", got.Cells, expected)
	}
}

func TestLocateDefaultBound(t *testing.T) {
	rows := make([][]string, DefaultMaxRows+1)
	rows[DefaultMaxRows] = []string{"a", "b", "c", "d"}

	if _, ok := Locate(grid.FromStrings(rows), 0); ok {
		t.Errorf("Locate() should not look past row %d", DefaultMaxRows)
	}

	rows[DefaultMaxRows-1] = []string{"a", "b", "c", "d"}
	got, ok := Locate(grid.FromStrings(rows), -1)
	if !ok || got.Row != DefaultMaxRows {
		t.Errorf("Locate() = %v, %v; want row %d", got, ok, DefaultMaxRows)
	}
}

func TestLocateIsRepeatable(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"Report"},
		{"ID", "Name", "Date", "Amount"},
	})

	first, _ := Locate(g, 0)

	var wg sync.WaitGroup
	results := make([]types.HeaderMatch, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Locate(g, 0)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if !reflect.DeepEqual(r, first) {
			t.Errorf("call %d = %v; want %v", i, r, first)
		}
	}
}
