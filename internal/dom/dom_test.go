package dom

import (
	"strings"
	"testing"
)

const page = `<!DOCTYPE html><html><body>
<div id="wrap" class="panel">
  <button class="tab active" data-tab="a" aria-selected="true">A</button>
  <button class="tab" data-tab="b">B</button>
  <section id="a" class="tab-content"><h2>Alpha</h2><p>First   para</p><script>ignored()</script></section>
  <section id="b" class="tab-content" hidden><ul><li>one</li><li>two</li></ul></section>
</div>
</body></html>`

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseString(markup)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	return doc
}

func TestByIDAndText(t *testing.T) {
	doc := mustParse(t, page)
	a := doc.ByID("a")
	if a == nil {
		t.Fatalf("ByID(a) returned nil")
	}
	if got := Text(a); got != "Alpha First para" {
		t.Fatalf("Text = %q, want %q", got, "Alpha First para")
	}
	if doc.ByID("") != nil {
		t.Fatalf("ByID(\"\") should be nil")
	}
	if doc.ByID("missing") != nil {
		t.Fatalf("ByID(missing) should be nil")
	}
}

func TestText_InlineAndBlockBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"word split by inline tag", `<p id="x">The <strong>Tel</strong>angana movement</p>`, "The Telangana movement"},
		{"nested inline", `<p id="x"><em>Ka<b>lesh</b></em>waram</p>`, "Kaleshwaram"},
		{"adjacent blocks", `<div id="x"><h3>Title</h3><p>Body</p></div>`, "Title Body"},
		{"list items", `<ul id="x"><li>one</li><li>two</li></ul>`, "one two"},
		{"line break", `<p id="x">first<br>second</p>`, "first second"},
		{"table cells", `<table id="x"><tr><td>a</td><td>b</td></tr></table>`, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, "<html><body>"+tt.markup+"</body></html>")
			if got := Text(doc.ByID("x")); got != tt.want {
				t.Fatalf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindAllMatchers(t *testing.T) {
	doc := mustParse(t, page)
	tabs := FindAll(doc.Root(), HasAttr("data-tab"))
	if len(tabs) != 2 {
		t.Fatalf("found %d tabs, want 2", len(tabs))
	}
	if v, _ := Attr(tabs[1], "data-tab"); v != "b" {
		t.Fatalf("second tab = %q, want b", v)
	}
	items := FindAll(doc.Root(), Any(Tag("li"), Tag("h2")))
	if len(items) != 3 {
		t.Fatalf("found %d headings/items, want 3", len(items))
	}
	active := Find(doc.Root(), All(Class("tab"), Class("active")))
	if active != tabs[0] {
		t.Fatalf("active tab mismatch")
	}
}

func TestClassAndAttrMutation(t *testing.T) {
	doc := mustParse(t, page)
	b := doc.ByID("b")
	AddClass(b, "active")
	AddClass(b, "active")
	if got := strings.Join(Classes(b), " "); got != "tab-content active" {
		t.Fatalf("classes = %q", got)
	}
	RemoveClass(b, "active")
	RemoveClass(b, "tab-content")
	if _, ok := Attr(b, "class"); ok {
		t.Fatalf("class attribute should be removed when empty")
	}
	if !Hidden(b) {
		t.Fatalf("b should be hidden")
	}
	RemoveAttr(b, "hidden")
	if Hidden(b) {
		t.Fatalf("b should not be hidden")
	}
	SetAttr(b, "aria-selected", "false")
	SetAttr(b, "aria-selected", "true")
	if v, _ := Attr(b, "aria-selected"); v != "true" {
		t.Fatalf("aria-selected = %q", v)
	}
}

func TestClosestAndContains(t *testing.T) {
	doc := mustParse(t, page)
	li := Find(doc.Root(), Tag("li"))
	panel := Closest(li, Class("tab-content"))
	if ID(panel) != "b" {
		t.Fatalf("Closest panel = %q, want b", ID(panel))
	}
	if !Contains(doc.ByID("wrap"), li) {
		t.Fatalf("wrap should contain li")
	}
	if Contains(doc.ByID("a"), li) {
		t.Fatalf("a should not contain li")
	}
	if Closest(li, Class("nope")) != nil {
		t.Fatalf("Closest should return nil when nothing matches")
	}
}

func TestSetInnerHTML(t *testing.T) {
	doc := mustParse(t, page)
	a := doc.ByID("a")
	if err := SetInnerHTML(a, `<div class="content-card"><h3>New</h3></div>`); err != nil {
		t.Fatalf("SetInnerHTML returned error: %v", err)
	}
	inner, err := InnerHTML(a)
	if err != nil {
		t.Fatalf("InnerHTML returned error: %v", err)
	}
	if inner != `<div class="content-card"><h3>New</h3></div>` {
		t.Fatalf("InnerHTML = %q", inner)
	}
	if Find(a, Tag("h3")).Parent.Parent != a {
		t.Fatalf("injected nodes should be attached to a")
	}
}

func TestCloneIsDetached(t *testing.T) {
	doc := mustParse(t, page)
	dup := doc.Clone()
	AddClass(dup.ByID("a"), "printed")
	if HasClass(doc.ByID("a"), "printed") {
		t.Fatalf("mutating the clone changed the original")
	}
	section := CloneNode(doc.ByID("b"))
	if section.Parent != nil {
		t.Fatalf("cloned node should be detached")
	}
	Remove(doc.ByID("b"))
	if doc.ByID("b") != nil {
		t.Fatalf("Remove did not detach b")
	}
	if Text(section) != "one two" {
		t.Fatalf("clone text = %q", Text(section))
	}
}

func TestKey(t *testing.T) {
	doc := mustParse(t, page)
	if got := Key(doc.ByID("a")); got != "a" {
		t.Fatalf("Key = %q, want a", got)
	}
	lis := FindAll(doc.Root(), Tag("li"))
	if got := Key(lis[1]); got != "#b/ul[0]/li[1]" {
		t.Fatalf("Key = %q, want #b/ul[0]/li[1]", got)
	}
}

func TestNewElementAndRender(t *testing.T) {
	el := NewElement("section", "class", "tab-content", "id", "x")
	SetAttr(el, "hidden", "")
	out, err := OuterHTML(el)
	if err != nil {
		t.Fatalf("OuterHTML returned error: %v", err)
	}
	if out != `<section class="tab-content" id="x" hidden=""></section>` {
		t.Fatalf("OuterHTML = %q", out)
	}
}
