package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExtractsMetadata(t *testing.T) {
	content := "---\ntitle: Integration Guide\ntags:\n  - partner\n  - api\nclassification: PARTNER\n---\n# Guide\n\nBody text.\n"

	meta, body := Parse(content)

	assert.Equal(t, "Integration Guide", meta.Title)
	assert.Equal(t, []string{"partner", "api"}, meta.Tags)
	assert.Equal(t, "PARTNER", meta.Classification)
	assert.Equal(t, "# Guide\n\nBody text.\n", body)
}

func TestParseNoFrontMatter(t *testing.T) {
	content := "# Just a heading\n"
	meta, body := Parse(content)

	assert.Equal(t, Metadata{}, meta)
	assert.Equal(t, content, body)
}

func TestParseMalformedYAMLDegradesToEmpty(t *testing.T) {
	content := "---\ntitle: [unclosed\n  bad: : :\n---\nBody\n"
	meta, body := Parse(content)

	assert.Equal(t, Metadata{}, meta)
	assert.Equal(t, content, body)
}

func TestParseUnterminatedBlock(t *testing.T) {
	content := "---\ntitle: Dangling\nno closing delimiter\n"
	meta, body := Parse(content)

	assert.Equal(t, Metadata{}, meta)
	assert.Equal(t, content, body)
}

func TestParseHorizontalRuleIsNotFrontMatter(t *testing.T) {
	// A --- later in the document is a horizontal rule, not front matter.
	content := "Intro\n---\nMore\n"
	meta, body := Parse(content)

	assert.Equal(t, Metadata{}, meta)
	assert.Equal(t, content, body)
}

func TestParseUnknownKeysIgnored(t *testing.T) {
	content := "---\ntitle: X\nauthor: someone\nweight: 4\n---\nBody\n"
	meta, body := Parse(content)

	assert.Equal(t, "X", meta.Title)
	assert.Equal(t, "Body\n", body)
}
