// Package mapping groups sheets whose detected headers name the same columns
// in the same order.
package mapping

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nconklindev/tabscope/internal/types"
)

// Signature is the normalized header sequence of a sheet: each header text
// trimmed and lowercased, in column order. Column positions are not part of
// it, so the same headers shifted right still match.
type Signature []string

// SignatureOf derives the signature of a header match. An empty match yields
// an empty signature.
func SignatureOf(h types.HeaderMatch) Signature {
	if !h.Found() {
		return nil
	}
	sig := make(Signature, len(h.Cells))
	for i, c := range h.Cells {
		sig[i] = strings.ToLower(strings.TrimSpace(c.Text))
	}
	return sig
}

func (s Signature) Equal(other Signature) bool {
	return slices.Equal(s, other)
}

// key is an unambiguous map key for the signature.
func (s Signature) key() string {
	return fmt.Sprintf("%q", []string(s))
}

// SheetHeader pairs a sheet identifier with its detected header.
type SheetHeader struct {
	ID     string
	Header types.HeaderMatch
}

// Group is every sheet sharing one signature, in encounter order.
type Group struct {
	Signature Signature
	Sheets    []string
}

// Grouping is the result of GroupSheets. Groups are ordered by the first
// sheet seen with each signature.
type Grouping struct {
	Groups   []Group
	unmapped []string
}

// GroupSheets groups sheets by signature. Sheets without a header are kept
// out of every group and reported by Unmapped.
func GroupSheets(sheets []SheetHeader) Grouping {
	var g Grouping
	index := make(map[string]int)

	for _, s := range sheets {
		if !s.Header.Found() {
			g.unmapped = append(g.unmapped, s.ID)
			continue
		}
		sig := SignatureOf(s.Header)
		k := sig.key()
		i, ok := index[k]
		if !ok {
			i = len(g.Groups)
			index[k] = i
			g.Groups = append(g.Groups, Group{Signature: sig})
		}
		g.Groups[i].Sheets = append(g.Groups[i].Sheets, s.ID)
	}

	return g
}

// Matched returns the groups holding two or more sheets.
func (g Grouping) Matched() []Group {
	var out []Group
	for _, grp := range g.Groups {
		if len(grp.Sheets) >= 2 {
			out = append(out, grp)
		}
	}
	return out
}

// Unique returns the sheets whose signature no other sheet shares.
func (g Grouping) Unique() []string {
	var out []string
	for _, grp := range g.Groups {
		if len(grp.Sheets) == 1 {
			out = append(out, grp.Sheets[0])
		}
	}
	return out
}

// Unmapped returns the sheets that had no header.
func (g Grouping) Unmapped() []string {
	return slices.Clone(g.unmapped)
}
