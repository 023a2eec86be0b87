// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders post bodies to HTML and extracts a
// best-effort table of contents.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/oblog-go/internal/util"
)

// md converts markdown to HTML. Raw HTML is passed through (post bodies
// can be rich-text editor output with embedded tags) and sanitized
// afterwards.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// sanitizer strips anything outside safe user-generated-content HTML
// from the rendered output.
var sanitizer = bluemonday.UGCPolicy()

// Render converts a post body (markdown with embedded HTML) to
// sanitized HTML safe for template injection.
func Render(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	//nolint:gosec // sanitized by bluemonday above
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// Heading is one table-of-contents entry.
type Heading struct {
	Level  int    // 1..3
	Text   string
	Anchor string
}

// ExtractTOC scans content for markdown heading markers (#, ##, ###) by
// line prefix and returns them in document order. This is a best-effort
// convenience pass, deliberately independent of the renderer's own
// anchor id generation; the anchors are not guaranteed to match the
// rendered output.
func ExtractTOC(content string) []Heading {
	var toc []Heading
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		level := 0
		for level < len(line) && line[level] == '#' {
			level++
		}
		if level == 0 || level > 3 || level == len(line) || line[level] != ' ' {
			continue
		}

		text := strings.TrimSpace(line[level:])
		if text == "" {
			continue
		}
		toc = append(toc, Heading{
			Level:  level,
			Text:   text,
			Anchor: util.Slugify(text),
		})
	}
	return toc
}
