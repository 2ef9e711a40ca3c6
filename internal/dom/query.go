package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Matcher selects element nodes.
type Matcher func(*html.Node) bool

// Tag matches any of the given element names.
func Tag(names ...string) Matcher {
	return func(n *html.Node) bool {
		for _, name := range names {
			if strings.EqualFold(n.Data, name) {
				return true
			}
		}
		return false
	}
}

// Class matches elements carrying class c.
func Class(c string) Matcher {
	return func(n *html.Node) bool { return HasClass(n, c) }
}

// HasAttr matches elements carrying the attribute.
func HasAttr(key string) Matcher {
	return func(n *html.Node) bool {
		_, ok := Attr(n, key)
		return ok
	}
}

// AttrEquals matches elements whose attribute equals val.
func AttrEquals(key, val string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return ok && v == val
	}
}

// Any matches when one of ms matches.
func Any(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// All matches when every one of ms matches.
func All(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// FindAll returns every element under root (root included) matching m, in
// document order.
func FindAll(root *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if m(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first element under root matching m.
func Find(root *html.Node, m Matcher) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if m(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits element nodes depth-first in document order. Returning false
// from fn skips the node's children.
func Walk(root *html.Node, fn func(*html.Node) bool) {
	if root == nil {
		return
	}
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if !fn(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
}

// Closest returns n or its nearest ancestor matching m.
func Closest(n *html.Node, m Matcher) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && m(cur) {
			return cur
		}
	}
	return nil
}

// Contains reports whether n is root or a descendant of root.
func Contains(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}
