package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/theme"
)

const panelMarkup = `<section id="panel">
<div class="content-card" id="intro">
  <h2>Irrigation Projects</h2>
  <p>The Kaleshwaram lift <strong>irrigation</strong> scheme draws water from the Godavari.</p>
  <ul>
    <li>Medigadda barrage</li>
    <li>Annaram barrage
      <ol><li>Stage one</li></ol>
    </li>
  </ul>
  <button class="bookmark-btn">Bookmark</button>
  <div hidden><p>secret text</p></div>
</div>
<div class="topic-card" id="table">
  <table><tr><th>Paper</th><th>Marks</th></tr><tr><td>General Studies</td><td>150</td></tr></table>
</div>
</section>`

func renderMarkup(t *testing.T, markup string, width int, mark string) rendered {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	panel := doc.ByID("panel")
	if panel == nil {
		t.Fatal("no #panel element")
	}
	return renderPanel(panel, width, GetTheme(theme.Light, "").Styles(), mark)
}

func plain(r rendered) []string {
	out := make([]string, len(r.lines))
	for i, line := range r.lines {
		out[i] = ansi.Strip(line)
	}
	return out
}

func TestRenderPanel_Blocks(t *testing.T) {
	r := renderMarkup(t, panelMarkup, 80, "")
	text := strings.Join(plain(r), "\n")

	for _, want := range []string{
		"Irrigation Projects",
		"The Kaleshwaram lift irrigation scheme draws water from the Godavari.",
		"• Medigadda barrage",
		"• Annaram barrage",
		"1. Stage one",
		"Paper │ Marks",
		"General Studies │ 150",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q:\n%s", want, text)
		}
	}
	for _, unwanted := range []string{"secret text", "Bookmark"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("rendered text contains %q", unwanted)
		}
	}
}

func TestRenderPanel_Preformatted(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "code block",
			markup: "<section id=\"panel\"><h2>Code</h2><pre><code>func f() int {\n return 42\n}</code></pre></section>",
			want:   []string{"func f() int {", "return 42", "}"},
		},
		{
			name:   "highlighted spans",
			markup: "<section id=\"panel\"><pre><span>x</span> := <span>1</span>\ny := 2</pre></section>",
			want:   []string{"x := 1", "y := 2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := plain(renderMarkup(t, tt.markup, 80, ""))
			text := strings.Join(lines, "\n")
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Fatalf("rendered text missing %q:\n%s", want, text)
				}
			}
			if len(lines) < len(tt.want) {
				t.Fatalf("got %d lines, want line breaks kept:\n%s", len(lines), text)
			}
		})
	}
}

func TestRenderPanel_WrapsToWidth(t *testing.T) {
	r := renderMarkup(t, panelMarkup, 30, "")
	for _, line := range r.lines {
		if w := ansi.StringWidth(line); w > 30 {
			t.Fatalf("line %q is %d cells wide", ansi.Strip(line), w)
		}
	}
}

func TestRenderPanel_Anchors(t *testing.T) {
	r := renderMarkup(t, panelMarkup, 80, "")
	intro, ok := r.anchorFor("intro")
	if !ok {
		t.Fatal("no anchor for #intro")
	}
	table, ok := r.anchorFor("table")
	if !ok {
		t.Fatal("no anchor for #table")
	}
	if intro.start >= intro.end || table.start < intro.end {
		t.Fatalf("anchors out of order: intro %+v table %+v", intro, table)
	}
	lines := plain(r)
	if !strings.Contains(strings.Join(lines[table.start:table.end], "\n"), "General Studies") {
		t.Fatalf("table anchor does not cover its rows: %+v", table)
	}

	if got := r.visible(table.start, 1); len(got) != 1 || got[0] != "table" {
		t.Fatalf("visible at table start = %v", got)
	}
	if got := r.visible(0, len(r.lines)); len(got) != 2 {
		t.Fatalf("visible over all lines = %v", got)
	}
}

func TestRenderPanel_MarkChangesOnlyMarkedCard(t *testing.T) {
	plainRender := renderMarkup(t, panelMarkup, 80, "")
	marked := renderMarkup(t, panelMarkup, 80, "table")

	intro, _ := plainRender.anchorFor("intro")
	table, _ := plainRender.anchorFor("table")
	for i := intro.start; i < intro.end; i++ {
		if plainRender.lines[i] != marked.lines[i] {
			t.Fatalf("unmarked line %d changed", i)
		}
	}
	changed := false
	for i := table.start; i < table.end; i++ {
		if ansi.Strip(plainRender.lines[i]) != ansi.Strip(marked.lines[i]) {
			t.Fatalf("marked line %d text changed", i)
		}
		if plainRender.lines[i] != marked.lines[i] {
			changed = true
		}
	}
	if !changed {
		t.Fatal("marked card was not restyled")
	}
}

func TestRenderPanel_Nil(t *testing.T) {
	r := renderPanel(nil, 80, GetTheme(theme.Dark, "").Styles(), "")
	if len(r.lines) != 0 || len(r.anchors) != 0 {
		t.Fatalf("nil panel rendered %+v", r)
	}
}
