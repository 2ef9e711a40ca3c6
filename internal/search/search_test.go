package search

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/nav"
)

const page = `<html><body>
<header><div class="content-card"><h2>Site header mentions Godavari</h2></div></header>
<main id="content-container">
<section class="tab-content" id="current-affairs">
  <div class="content-card">
    <h2>Current Affairs</h2>
    <div class="topic-card" id="ca-irrigation">
      <h3>Irrigation Projects</h3>
      <p>The Kaleshwaram scheme draws water from the Godavari.</p>
    </div>
  </div>
  <p>Loose paragraph about Godavari outside any card.</p>
</section>
<section class="tab-content" id="group1" hidden>
  <div class="sub-tab-content" id="group1-mains">
    <div class="paper-content-section" id="group1-mains-paper2">
      <div class="topic-card"><p>Kakatiyas built tanks fed by the Godavari.</p></div>
    </div>
  </div>
</section>
<section class="tab-content" id="combined" hidden>
  <div class="category-card"><h3>Geography</h3><ul><li>Godavari basin</li></ul></div>
</section>
</main></body></html>`

func parse(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestSearch_UniqueMatch(t *testing.T) {
	doc := parse(t, page)
	results := New(Options{}).Search(doc, "kaleshwaram")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	r := results[0]
	if r.Path != "current-affairs" || r.Target != (nav.Selection{Tab: "current-affairs"}) {
		t.Fatalf("path = %q target = %+v", r.Path, r.Target)
	}
	if dom.ID(r.Node) != "ca-irrigation" {
		t.Fatalf("card = %q, want ca-irrigation", dom.ID(r.Node))
	}
	if r.Title != "Irrigation Projects" {
		t.Fatalf("title = %q", r.Title)
	}
	if r.Excerpt != "The Kaleshwaram scheme draws water from the Godavari." {
		t.Fatalf("excerpt = %q", r.Excerpt)
	}
}

func TestSearch_DocumentOrderOnePerCard(t *testing.T) {
	doc := parse(t, page)
	results := New(Options{}).Search(doc, "GODAVARI")
	var paths []string
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	want := "current-affairs,group1/group1-mains/group1-mains-paper2,combined"
	if strings.Join(paths, ",") != want {
		t.Fatalf("paths = %v, want %s", paths, want)
	}
	if results[2].Title != "Geography" || results[2].Excerpt != "Godavari basin" {
		t.Fatalf("category result = %+v", results[2])
	}
	if results[1].Title != untitled {
		t.Fatalf("untitled card title = %q", results[1].Title)
	}
}

func TestSearch_HeadingTitle(t *testing.T) {
	doc := parse(t, page)
	results := New(Options{}).Search(doc, "current aff")
	if len(results) != 1 || results[0].Title != "Current Affairs" {
		t.Fatalf("results = %+v", results)
	}
}

func TestSearch_WordSplitByInlineMarkup(t *testing.T) {
	doc := parse(t, `<html><body><main id="content-container">
<section class="tab-content" id="history">
  <div class="topic-card" id="movement">
    <h3>Separate <em>State</em>hood</h3>
    <p>The <strong>Tel</strong>angana movement gathered pace in 1969.</p>
  </div>
</section>
</main></body></html>`)
	results := New(Options{}).Search(doc, "telangana")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Title != "Separate Statehood" {
		t.Fatalf("title = %q", results[0].Title)
	}
	if results[0].Excerpt != "The Telangana movement gathered pace in 1969." {
		t.Fatalf("excerpt = %q", results[0].Excerpt)
	}
}

func TestSearch_MinQueryAndCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><main id="content-container"><section class="tab-content" id="t">`)
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<div class="content-card"><p>entry %d shared</p></div>`, i)
	}
	b.WriteString(`</section></main></body></html>`)
	doc := parse(t, b.String())

	s := New(Options{})
	if got := s.Search(doc, " s "); got != nil {
		t.Fatalf("short query returned %d results", len(got))
	}
	if got := s.Search(doc, "shared"); len(got) != DefaultMaxResults {
		t.Fatalf("got %d results, want %d", len(got), DefaultMaxResults)
	}
	if got := New(Options{MaxResults: 3, MinQuery: 4}).Search(doc, "entr"); len(got) != 3 {
		t.Fatalf("custom cap got %d", len(got))
	}
	if New(Options{MinQuery: 4}).Accepts("abc") {
		t.Fatalf("Accepts(abc) with min 4")
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("short", 100); got != "short" {
		t.Fatalf("Excerpt = %q", got)
	}
	long := strings.Repeat("తె", 60)
	got := Excerpt(long, 100)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != 103 {
		t.Fatalf("Excerpt rune length = %d", len([]rune(got)))
	}
}

func TestHighlight(t *testing.T) {
	mark := func(s string) string { return "[" + s + "]" }
	if got := Highlight("Godavari and godavari", "GODAVARI", mark); got != "[Godavari] and [godavari]" {
		t.Fatalf("Highlight = %q", got)
	}
	if got := Highlight("a+b", "+", mark); got != "a[+]b" {
		t.Fatalf("Highlight special = %q", got)
	}
	if got := Highlight("text", "", mark); got != "text" {
		t.Fatalf("Highlight empty = %q", got)
	}
}

func TestFlash(t *testing.T) {
	f := NewFlash(0)
	if f.Duration() != DefaultFlash {
		t.Fatalf("Duration = %v", f.Duration())
	}
	first := f.Begin("ca-irrigation")
	second := f.Begin("ca-welfare")
	if f.Clear(first) {
		t.Fatalf("stale token cleared highlight")
	}
	if key, ok := f.Active(); !ok || key != "ca-welfare" {
		t.Fatalf("Active = %q %v", key, ok)
	}
	if !f.Clear(second) {
		t.Fatalf("current token did not clear")
	}
	if _, ok := f.Active(); ok {
		t.Fatalf("highlight still active")
	}
	if NewFlash(time.Second).Duration() != time.Second {
		t.Fatalf("custom duration ignored")
	}
}
