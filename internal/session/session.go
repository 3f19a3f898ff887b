// Package session tracks the workbooks a user has queued for inspection.
package session

import (
	"path/filepath"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/nconklindev/tabscope/internal/workbook"
)

// Session is an ordered, duplicate-free list of workbook paths. The zero
// value is an empty session. It is not safe for concurrent use.
type Session struct {
	files []string
}

func New(paths ...string) *Session {
	s := &Session{}
	s.Add(paths...)
	return s
}

// normalize cleans a path and puts it in NFC form so that the same file
// dropped from different sources compares equal.
func normalize(path string) string {
	return norm.NFC.String(filepath.Clean(path))
}

// Add queues workbook paths. Paths with unsupported extensions and paths
// already queued are skipped.
func (s *Session) Add(paths ...string) (added, skipped int) {
	for _, p := range paths {
		if p == "" || !workbook.IsSupported(p) {
			skipped++
			continue
		}
		p = normalize(p)
		if slices.Contains(s.files, p) {
			skipped++
			continue
		}
		s.files = append(s.files, p)
		added++
	}
	return added, skipped
}

// Remove drops path from the session and reports whether it was queued.
func (s *Session) Remove(path string) bool {
	i := slices.Index(s.files, normalize(path))
	if i < 0 {
		return false
	}
	s.files = slices.Delete(s.files, i, i+1)
	return true
}

func (s *Session) Clear() {
	s.files = nil
}

// Files returns a copy of the queued paths in insertion order.
func (s *Session) Files() []string {
	return slices.Clone(s.files)
}

func (s *Session) Len() int {
	return len(s.files)
}
