// Package dom wraps an x/net/html tree with the small set of queries and
// mutations the reader needs: lookup by id or attribute, class toggling,
// attribute edits, text extraction and rendering back to markup.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element, or the root when there is none.
func (d *Document) Body() *html.Node {
	if body := Find(d.root, Tag("body")); body != nil {
		return body
	}
	return d.root
}

// ByID returns the first element with the given id.
func (d *Document) ByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return Find(d.root, AttrEquals("id", id))
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{root: CloneNode(d.root)}
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// SetInnerHTML replaces the children of n with the parsed markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), contextFor(n))
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, child := range nodes {
		n.AppendChild(child)
	}
	return nil
}

// contextFor returns a context element acceptable to html.ParseFragment.
func contextFor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom}
	}
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render node: %w", err)
		}
	}
	return buf.String(), nil
}

// OuterHTML renders n itself.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render node: %w", err)
	}
	return buf.String(), nil
}

// CloneNode deep-copies n and its subtree. The copy is detached.
func CloneNode(n *html.Node) *html.Node {
	dup := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dup.AppendChild(CloneNode(c))
	}
	return dup
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// NewElement creates a detached element with attributes given as key/value pairs.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Attr returns the value of an attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the id attribute or "".
func ID(n *html.Node) string {
	v, _ := Attr(n, "id")
	return v
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// Classes returns the class list.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, have := range Classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds c to the class list once.
func AddClass(n *html.Node, c string) {
	if HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(Classes(n), c), " ")))
}

// RemoveClass removes every occurrence of c.
func RemoveClass(n *html.Node, c string) {
	if !HasClass(n, c) {
		return
	}
	var kept []string
	for _, have := range Classes(n) {
		if have != c {
			kept = append(kept, have)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// Hidden reports whether n carries the hidden attribute.
func Hidden(n *html.Node) bool {
	_, ok := Attr(n, "hidden")
	return ok
}

// inlineAtoms are the elements that do not break a run of text.
var inlineAtoms = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Bdi: true, atom.Bdo: true,
	atom.Cite: true, atom.Code: true, atom.Data: true, atom.Dfn: true, atom.Em: true,
	atom.I: true, atom.Kbd: true, atom.Label: true, atom.Mark: true, atom.Q: true,
	atom.S: true, atom.Samp: true, atom.Small: true, atom.Span: true, atom.Strong: true,
	atom.Sub: true, atom.Sup: true, atom.Time: true, atom.U: true, atom.Var: true,
}

// Text returns the text content of n with whitespace collapsed. Text nodes
// are joined as-is; block elements and line breaks separate words.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
			return
		case html.ElementNode:
			if c.DataAtom == atom.Script || c.DataAtom == atom.Style {
				return
			}
		}
		block := c.Type == html.ElementNode && !inlineAtoms[c.DataAtom]
		if block {
			b.WriteByte(' ')
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Key returns a stable identifier for an element: its id when present,
// otherwise the element path from the nearest ancestor with an id.
func Key(n *html.Node) string {
	if id := ID(n); id != "" {
		return id
	}
	var parts []string
	cur := n
	for cur != nil && cur.Type == html.ElementNode {
		if id := ID(cur); id != "" {
			parts = append(parts, "#"+id)
			break
		}
		parts = append(parts, cur.Data+"["+strconv.Itoa(elementIndex(cur))+"]")
		cur = cur.Parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// elementIndex is the position of n among its same-tag element siblings.
func elementIndex(n *html.Node) int {
	idx := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.Data == n.Data {
			idx++
		}
	}
	return idx
}
