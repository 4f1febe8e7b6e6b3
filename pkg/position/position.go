// Package position maps byte offsets in source text to human-facing line
// and column numbers for change reports and logs.
package position

import (
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Place is a zero-based line and column in source text. Column counts
// grapheme clusters, not bytes, so multi-byte text reports sensibly.
type Place struct {
	Line      int
	Character int
}

// Resolve returns the Place of the given byte offset in src. Offsets past
// the end of src resolve to the end of the last line.
func Resolve(src string, offset int) Place {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Place{Line: line, Character: graphemeCount(before[lineStart:])}
}

func graphemeCount(s string) int {
	segments, err := textseg.TokenCount([]byte(s), textseg.ScanGraphemeClusters)
	if err != nil {
		return len(s)
	}
	return segments
}
