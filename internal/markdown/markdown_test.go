package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "basic markdown",
			input:    "# Title\n\nSome **bold** text.",
			contains: "<strong>bold</strong>",
		},
		{
			name:     "raw html passthrough",
			input:    "before <em>inline</em> after",
			contains: "<em>inline</em>",
		},
		{
			name:     "script tags stripped",
			input:    "hello <script>alert(1)</script> world",
			excludes: "<script>",
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: "<table>",
		},
		{
			name:     "image kept",
			input:    `<img src="/uploads/123-photo.png" alt="photo">`,
			contains: "/uploads/123-photo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.input)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if tt.contains != "" && !strings.Contains(string(out), tt.contains) {
				t.Errorf("Render(%q) = %q, missing %q", tt.input, out, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(string(out), tt.excludes) {
				t.Errorf("Render(%q) = %q, should not contain %q", tt.input, out, tt.excludes)
			}
		})
	}
}

func TestExtractTOC(t *testing.T) {
	content := `# Introduction

Some text here.

## Getting Started

More text.

### Details

#### Too Deep

#NoSpace

  ## Indented Heading

Done.`

	toc := ExtractTOC(content)

	want := []Heading{
		{Level: 1, Text: "Introduction", Anchor: "introduction"},
		{Level: 2, Text: "Getting Started", Anchor: "getting-started"},
		{Level: 3, Text: "Details", Anchor: "details"},
		{Level: 2, Text: "Indented Heading", Anchor: "indented-heading"},
	}

	if len(toc) != len(want) {
		t.Fatalf("ExtractTOC returned %d entries, want %d: %+v", len(toc), len(want), toc)
	}
	for i, w := range want {
		if toc[i] != w {
			t.Errorf("toc[%d] = %+v, want %+v", i, toc[i], w)
		}
	}
}

func TestExtractTOCEmpty(t *testing.T) {
	if toc := ExtractTOC("plain text\nno headings here"); len(toc) != 0 {
		t.Errorf("ExtractTOC = %+v, want empty", toc)
	}
	if toc := ExtractTOC(""); len(toc) != 0 {
		t.Errorf("ExtractTOC on empty input = %+v, want empty", toc)
	}
}
