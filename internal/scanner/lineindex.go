package scanner

import "sort"

// lineIndex maps byte offsets to 1-based line numbers via a newline-offset
// table computed once per document, so line lookup never rescans the text.
type lineIndex struct {
	newlines []int
}

func newLineIndex(content string) *lineIndex {
	var offsets []int
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return &lineIndex{newlines: offsets}
}

// lineAt returns the 1-based line number containing the byte offset.
func (li *lineIndex) lineAt(offset int) int {
	return sort.SearchInts(li.newlines, offset) + 1
}
