// Package search finds text in the loaded notes document.
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/nav"
)

// Defaults for Options.
const (
	DefaultMinQuery   = 2
	DefaultMaxResults = 10
	ExcerptRunes      = 100
	ContainerID       = "content-container"
	untitled          = "Content"
)

var (
	textBearing = dom.Any(dom.Tag("h2", "h3", "h4", "p", "li"), dom.Class("topic-card"), dom.Class("category-card"))
	cardMatcher = dom.Any(dom.Class("content-card"), dom.Class("topic-card"), dom.Class("category-card"))
	headings    = dom.Tag("h2", "h3", "h4")
)

// Result is one matching card.
type Result struct {
	Title   string
	Excerpt string
	// Path is the selection path of the panels enclosing the card.
	Path   string
	Target nav.Selection
	// Node is the card element.
	Node *html.Node
}

// Options tune a Searcher.
type Options struct {
	MinQuery   int
	MaxResults int
}

// Searcher runs case-insensitive substring queries.
type Searcher struct {
	minQuery   int
	maxResults int
}

// New returns a Searcher; zero options take the defaults.
func New(opts Options) *Searcher {
	s := &Searcher{minQuery: opts.MinQuery, maxResults: opts.MaxResults}
	if s.minQuery <= 0 {
		s.minQuery = DefaultMinQuery
	}
	if s.maxResults <= 0 {
		s.maxResults = DefaultMaxResults
	}
	return s
}

// MinQuery returns the shortest accepted query in runes.
func (s *Searcher) MinQuery() int { return s.minQuery }

// Accepts reports whether query is long enough to run.
func (s *Searcher) Accepts(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= s.minQuery
}

// Search returns up to MaxResults cards whose text contains query, in
// document order. Each card appears once; elements outside a card or a tab
// panel are ignored.
func (s *Searcher) Search(doc *dom.Document, query string) []Result {
	query = strings.TrimSpace(query)
	if !s.Accepts(query) {
		return nil
	}
	needle := strings.ToLower(query)
	scope := doc.ByID(ContainerID)
	if scope == nil {
		scope = doc.Body()
	}

	type hit struct {
		card *html.Node
		elem *html.Node
	}
	var hits []*hit
	byCard := make(map[*html.Node]*hit)
	for _, el := range dom.FindAll(scope, textBearing) {
		if !strings.Contains(strings.ToLower(dom.Text(el)), needle) {
			continue
		}
		card := dom.Closest(el, cardMatcher)
		if card == nil {
			continue
		}
		if h, ok := byCard[card]; ok {
			// Prefer a specific element over the card itself for the excerpt.
			if h.elem == card && el != card {
				h.elem = el
			}
			continue
		}
		if len(hits) >= s.maxResults || nav.PanelPath(card).Tab == "" {
			continue
		}
		h := &hit{card: card, elem: el}
		byCard[card] = h
		hits = append(hits, h)
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		target := nav.PanelPath(h.card)
		results = append(results, Result{
			Title:   title(h.elem, h.card),
			Excerpt: Excerpt(dom.Text(h.elem), ExcerptRunes),
			Path:    target.Path(),
			Target:  target,
			Node:    h.card,
		})
	}
	return results
}

func title(el, card *html.Node) string {
	if headings(el) {
		if t := dom.Text(el); t != "" {
			return t
		}
	}
	if h := dom.Find(card, headings); h != nil {
		if t := dom.Text(h); t != "" {
			return t
		}
	}
	return untitled
}

// Excerpt returns the first n runes of text, with "..." when truncated.
func Excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// Highlight wraps every case-insensitive occurrence of query in text with
// mark, preserving the original casing.
func Highlight(text, query string, mark func(string) string) string {
	query = strings.TrimSpace(query)
	if query == "" || mark == nil {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, mark)
}
