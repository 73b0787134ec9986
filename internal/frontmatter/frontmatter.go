// Package frontmatter extracts YAML front-matter metadata from document
// content. Malformed front matter degrades to empty metadata rather than
// failing the document.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the classification-relevant subset of a document's front
// matter. Unknown keys are ignored.
type Metadata struct {
	Title          string   `yaml:"title"`
	Tags           []string `yaml:"tags"`
	Classification string   `yaml:"classification"`
	Audience       string   `yaml:"audience"`
}

const delimiter = "---"

// Parse extracts front matter from content and returns the metadata plus
// the body with the front-matter block removed. Content without a leading
// front-matter block returns empty metadata and the content unchanged.
// A block that fails to parse as YAML is treated as absent.
func Parse(content string) (Metadata, string) {
	var meta Metadata

	trimmed := strings.TrimPrefix(content, "\uFEFF")
	if !strings.HasPrefix(trimmed, delimiter+"\n") && !strings.HasPrefix(trimmed, delimiter+"\r\n") {
		return meta, content
	}

	rest := trimmed[len(delimiter):]
	rest = strings.TrimLeft(rest, "\r\n")

	end := findClosingDelimiter(rest)
	if end < 0 {
		return meta, content
	}

	block := rest[:end]
	body := rest[end:]
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = ""
	}

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return Metadata{}, content
	}
	return meta, body
}

// findClosingDelimiter locates the offset of the line consisting of the
// closing delimiter, or -1 when the block is unterminated.
func findClosingDelimiter(s string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], delimiter)
		if idx < 0 {
			return -1
		}
		abs := offset + idx
		atLineStart := abs == 0 || s[abs-1] == '\n'
		lineEnd := abs + len(delimiter)
		atLineEnd := lineEnd >= len(s) || s[lineEnd] == '\n' || s[lineEnd] == '\r'
		if atLineStart && atLineEnd {
			return abs
		}
		offset = abs + len(delimiter)
	}
}
