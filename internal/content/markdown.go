package content

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	// Fragments wrap markdown in the site's card markup.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// isMarkdown reports whether name is a markdown fragment.
func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// toHTML converts markdown fragments and passes HTML through.
func toHTML(name string, data []byte) (string, error) {
	if !isMarkdown(name) {
		return string(data), nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert(data, &buf); err != nil {
		return "", fmt.Errorf("convert %s: %w", name, err)
	}
	return buf.String(), nil
}
