package nav

import (
	"golang.org/x/net/html"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/site"
)

// Crumb is one breadcrumb segment.
type Crumb struct {
	Label string
	Icon  string
	Link  string
}

// Breadcrumb derives the trail from Home to the deepest active level.
func (c *Controller) Breadcrumb() []Crumb {
	return Breadcrumb(c.sel, c.manifest)
}

// Breadcrumb is the pure form of Controller.Breadcrumb.
func Breadcrumb(sel Selection, m site.Manifest) []Crumb {
	home := m.HomeLabel()
	crumbs := []Crumb{{Label: home.Name, Icon: home.Icon, Link: "#"}}
	if sel.Tab == "" {
		return crumbs
	}
	tab := m.Label(sel.Tab, "")
	crumbs = append(crumbs, Crumb{Label: tab.Name, Icon: tab.Icon, Link: "#" + sel.Tab})
	if sel.SubTab == "" {
		return crumbs
	}
	link := "#" + sel.Tab + "-" + sel.SubTab
	sub := m.Label(sel.SubTab, sel.Tab)
	crumbs = append(crumbs, Crumb{Label: sub.Name, Icon: sub.Icon, Link: link})
	if sel.Paper == "" {
		return crumbs
	}
	paper := m.Label(sel.Paper, sel.SubTab)
	return append(crumbs, Crumb{Label: paper.Name, Icon: paper.Icon, Link: link})
}

// NavItem is one entry of a quick-nav row.
type NavItem struct {
	ID     string
	Label  string
	Icon   string
	Active bool
}

// QuickNav lists the siblings at each active level.
type QuickNav struct {
	Tabs    []NavItem
	SubTabs []NavItem
	Papers  []NavItem
}

// QuickNav derives the sibling rows for the current selection.
func (c *Controller) QuickNav() QuickNav {
	var q QuickNav
	for _, tab := range c.manifest.Tabs {
		q.Tabs = append(q.Tabs, NavItem{
			ID:     tab.ID,
			Label:  tab.Name,
			Icon:   tab.Icon,
			Active: !c.sel.Placeholder && tab.ID == c.sel.Tab,
		})
	}
	if c.sel.Placeholder || c.sel.Tab == "" {
		return q
	}
	tabPanel := c.doc.ByID(c.sel.Tab)
	q.SubTabs = c.items(subTabLevel, tabPanel, c.sel.Tab, c.sel.SubTab)
	if c.sel.SubTab != "" {
		subPanel := dom.Find(tabPanel, dom.AttrEquals("id", c.sel.SubTab))
		q.Papers = c.items(paperLevel, subPanel, c.sel.SubTab, c.sel.Paper)
	}
	return q
}

func (c *Controller) items(l level, scope *html.Node, parent, active string) []NavItem {
	var out []NavItem
	for _, n := range l.controls(scope) {
		id, _ := dom.Attr(n, l.attr)
		label := c.manifest.Label(id, parent)
		if _, named := c.manifest.Names[id]; !named {
			if text := dom.Text(n); text != "" {
				label.Name = text
			}
		}
		out = append(out, NavItem{ID: id, Label: label.Name, Icon: label.Icon, Active: id == active})
	}
	return out
}

// TabIndex returns the position of the active tab, or -1.
func (q QuickNav) TabIndex() int { return activeIndex(q.Tabs) }

// SubTabIndex returns the position of the active sub-tab, or -1.
func (q QuickNav) SubTabIndex() int { return activeIndex(q.SubTabs) }

// PaperIndex returns the position of the active paper, or -1.
func (q QuickNav) PaperIndex() int { return activeIndex(q.Papers) }

func activeIndex(items []NavItem) int {
	for i, item := range items {
		if item.Active {
			return i
		}
	}
	return -1
}
