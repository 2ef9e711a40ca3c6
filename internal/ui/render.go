package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/five82/notesnav/internal/dom"
)

// minRenderWidth keeps wrapping sane on very narrow terminals.
const minRenderWidth = 20

// anchor is the line range a card occupies in rendered output.
type anchor struct {
	key        string
	start, end int
}

// rendered is a panel laid out as terminal lines.
type rendered struct {
	lines   []string
	anchors []anchor
}

func (r rendered) content() string { return strings.Join(r.lines, "\n") }

func (r rendered) anchorFor(key string) (anchor, bool) {
	for _, a := range r.anchors {
		if a.key == key {
			return a, true
		}
	}
	return anchor{}, false
}

// visible returns the keys of cards overlapping lines [top, top+height).
func (r rendered) visible(top, height int) []string {
	var keys []string
	bottom := top + height
	for _, a := range r.anchors {
		if a.start < bottom && a.end > top {
			keys = append(keys, a.key)
		}
	}
	return keys
}

var (
	cardMatcher = dom.Any(dom.Class("content-card"), dom.Class("topic-card"), dom.Class("category-card"))

	inlineTags = map[atom.Atom]bool{
		atom.A: true, atom.Span: true, atom.Strong: true, atom.B: true, atom.Em: true,
		atom.I: true, atom.Code: true, atom.Small: true, atom.Mark: true, atom.Sup: true,
		atom.Sub: true, atom.Abbr: true, atom.U: true, atom.S: true, atom.Label: true,
		atom.Time: true, atom.Br: true,
	}
	skippedTags = map[atom.Atom]bool{
		atom.Script: true, atom.Style: true, atom.Button: true, atom.Input: true,
		atom.Select: true, atom.Textarea: true, atom.Template: true, atom.Noscript: true,
	}
)

type renderer struct {
	width   int
	styles  Styles
	mark    string
	marking bool
	out     rendered
}

// renderPanel lays out panel for a terminal of the given width. Hidden
// elements and controls are skipped; the card whose key is mark is drawn
// highlighted.
func renderPanel(panel *html.Node, width int, styles Styles, mark string) rendered {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	r := &renderer{width: width, styles: styles, mark: mark}
	if panel != nil {
		r.children(panel, 0)
	}
	for len(r.out.lines) > 0 && r.out.lines[len(r.out.lines)-1] == "" {
		r.out.lines = r.out.lines[:len(r.out.lines)-1]
	}
	for i := range r.out.anchors {
		r.out.anchors[i].end = min(r.out.anchors[i].end, len(r.out.lines))
	}
	return r.out
}

func skipped(n *html.Node) bool {
	if skippedTags[n.DataAtom] || dom.Hidden(n) {
		return true
	}
	role, _ := dom.Attr(n, "role")
	return role == "tablist"
}

func isInline(n *html.Node) bool {
	return n.Type == html.TextNode || (n.Type == html.ElementNode && inlineTags[n.DataAtom])
}

// children renders n's children, joining runs of inline content into
// paragraphs.
func (r *renderer) children(n *html.Node, indent int) {
	var run strings.Builder
	flush := func() {
		if text := collapse(run.String()); text != "" {
			r.paragraph(text, indent, r.textStyle(r.styles.Text), "")
		}
		run.Reset()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && skipped(c) {
			continue
		}
		if isInline(c) {
			run.WriteString(inlineRaw(c))
			continue
		}
		flush()
		if c.Type == html.ElementNode {
			r.element(c, indent)
		}
	}
	flush()
}

func (r *renderer) element(n *html.Node, indent int) {
	if cardMatcher(n) {
		r.card(n, indent)
		return
	}
	switch n.DataAtom {
	case atom.H1, atom.H2:
		r.blank()
		r.paragraph(dom.Text(n), indent, r.textStyle(r.styles.Heading), "")
		r.blank()
	case atom.H3, atom.H4, atom.H5, atom.H6:
		r.blank()
		r.paragraph(dom.Text(n), indent, r.textStyle(r.styles.Subheading), "")
	case atom.P, atom.Dt, atom.Dd, atom.Figcaption:
		r.paragraph(inlineText(n), indent, r.textStyle(r.styles.Text), "")
		r.blank()
	case atom.Ul, atom.Ol:
		r.list(n, indent)
		if indent == 0 {
			r.blank()
		}
	case atom.Table:
		r.table(n, indent)
		r.blank()
	case atom.Pre:
		for _, line := range strings.Split(strings.TrimRight(rawText(n), "\n"), "\n") {
			r.emit(strings.Repeat(" ", indent+2) + r.textStyle(r.styles.InfoText).Render(line))
		}
		r.blank()
	case atom.Blockquote:
		r.children(n, indent+2)
		r.blank()
	case atom.Hr:
		r.emit(r.styles.FaintText.Render(strings.Repeat("─", r.width-indent)))
	default:
		r.children(n, indent)
	}
}

func (r *renderer) card(n *html.Node, indent int) {
	key := dom.Key(n)
	prev := r.marking
	if key != "" && key == r.mark {
		r.marking = true
	}
	start := len(r.out.lines)
	r.children(n, indent)
	end := len(r.out.lines)
	r.marking = prev
	if end > start {
		r.out.anchors = append(r.out.anchors, anchor{key: key, start: start, end: end})
	}
	r.blank()
}

func (r *renderer) list(n *html.Node, indent int) {
	ordered := n.DataAtom == atom.Ol
	count := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li || skipped(li) {
			continue
		}
		count++
		bullet := "• "
		if ordered {
			bullet = strconv.Itoa(count) + ". "
		}
		if text := inlineText(li); text != "" {
			r.paragraph(text, indent, r.textStyle(r.styles.Text), bullet)
		}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && !isInline(c) && !skipped(c) {
				r.element(c, indent+runewidth.StringWidth(bullet))
			}
		}
	}
}

func (r *renderer) table(n *html.Node, indent int) {
	sep := r.styles.FaintText.Render(" │ ")
	for _, tr := range dom.FindAll(n, dom.Tag("tr")) {
		var cells []string
		header := false
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
				continue
			}
			header = header || c.DataAtom == atom.Th
			cells = append(cells, dom.Text(c))
		}
		if len(cells) == 0 {
			continue
		}
		style := r.textStyle(r.styles.Text)
		if header {
			style = style.Bold(true)
		}
		width := r.width - indent
		line := runewidth.Truncate(strings.Join(cells, " | "), width, "…")
		parts := strings.Split(line, " | ")
		for i, p := range parts {
			parts[i] = style.Render(p)
		}
		r.emit(strings.Repeat(" ", indent) + strings.Join(parts, sep))
	}
}

// paragraph wraps text to the available width with a hanging prefix.
func (r *renderer) paragraph(text string, indent int, style lipgloss.Style, prefix string) {
	text = collapse(text)
	if text == "" {
		return
	}
	pw := runewidth.StringWidth(prefix)
	width := r.width - indent - pw
	if width < 8 {
		width = 8
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)
	lead := strings.Repeat(" ", indent)
	for i, line := range strings.Split(wrapped, "\n") {
		p := strings.Repeat(" ", pw)
		if i == 0 {
			p = prefix
		}
		r.emit(lead + r.styles.MutedText.Render(p) + style.Render(strings.TrimRight(line, " ")))
	}
}

func (r *renderer) textStyle(s lipgloss.Style) lipgloss.Style {
	if r.marking {
		return s.Background(r.styles.Mark.GetBackground()).Foreground(r.styles.Mark.GetForeground())
	}
	return s
}

func (r *renderer) emit(line string) {
	r.out.lines = append(r.out.lines, line)
}

func (r *renderer) blank() {
	if n := len(r.out.lines); n > 0 && r.out.lines[n-1] != "" {
		r.out.lines = append(r.out.lines, "")
	}
}

// inlineText is the text of n excluding nested block content.
func inlineText(n *html.Node) string {
	return collapse(inlineRaw(n))
}

func inlineRaw(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if skipped(c) {
				return
			}
			if c.DataAtom == atom.Br {
				b.WriteByte(' ')
				return
			}
			if c != n && !inlineTags[c.DataAtom] {
				return
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// rawText keeps whitespace, for preformatted blocks.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
			return
		case html.ElementNode:
			if c.DataAtom == atom.Br {
				b.WriteByte('\n')
				return
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
