package nav

import (
	"golang.org/x/net/html"

	"github.com/five82/notesnav/internal/dom"
)

// Attribute and class names of the document contract.
const (
	AttrTab    = "data-tab"
	AttrSubTab = "data-sub-tab"
	AttrPaper  = "data-paper"

	ClassTabPanel    = "tab-content"
	ClassSubTabPanel = "sub-tab-content"
	ClassPaperPanel  = "paper-content-section"

	classActive  = "active"
	attrSelected = "aria-selected"
	attrHidden   = "hidden"
)

// level describes one tier of the hierarchy in the document.
type level struct {
	attr  string
	panel string
}

var (
	tabLevel    = level{attr: AttrTab, panel: ClassTabPanel}
	subTabLevel = level{attr: AttrSubTab, panel: ClassSubTabPanel}
	paperLevel  = level{attr: AttrPaper, panel: ClassPaperPanel}
)

// lookup finds the control and panel for id under scope.
func (l level) lookup(scope *html.Node, id string) (control, panel *html.Node) {
	control = dom.Find(scope, dom.AttrEquals(l.attr, id))
	panel = dom.Find(scope, dom.AttrEquals("id", id))
	return control, panel
}

// first returns the first control id in document order under scope.
func (l level) first(scope *html.Node) string {
	if scope == nil {
		return ""
	}
	node := dom.Find(scope, dom.HasAttr(l.attr))
	v, _ := dom.Attr(node, l.attr)
	return v
}

// controls returns every control under scope in document order.
func (l level) controls(scope *html.Node) []*html.Node {
	if scope == nil {
		return nil
	}
	return dom.FindAll(scope, dom.HasAttr(l.attr))
}

// clear deactivates every control and hides every panel of this level under scope.
func (l level) clear(scope *html.Node) {
	for _, n := range dom.FindAll(scope, dom.HasAttr(l.attr)) {
		deactivateControl(n)
	}
	for _, n := range dom.FindAll(scope, dom.Class(l.panel)) {
		hidePanel(n)
	}
}

func activateControl(n *html.Node) {
	dom.AddClass(n, classActive)
	dom.SetAttr(n, attrSelected, "true")
}

func deactivateControl(n *html.Node) {
	dom.RemoveClass(n, classActive)
	dom.SetAttr(n, attrSelected, "false")
}

func showPanel(n *html.Node) {
	dom.AddClass(n, classActive)
	dom.RemoveAttr(n, attrHidden)
}

func hidePanel(n *html.Node) {
	dom.RemoveClass(n, classActive)
	dom.SetAttr(n, attrHidden, "")
}

// clearAll resets every level of the document.
func clearAll(root *html.Node) {
	tabLevel.clear(root)
	subTabLevel.clear(root)
	paperLevel.clear(root)
}

// projectTab makes control and panel the only active tab. Lower levels are
// reset document-wide so no stale sub-tab stays marked.
func projectTab(root, control, panel *html.Node) {
	clearAll(root)
	activateControl(control)
	showPanel(panel)
}

// projectSubTab activates a sub-tab inside the tab panel.
func projectSubTab(tabPanel, control, panel *html.Node) {
	subTabLevel.clear(tabPanel)
	paperLevel.clear(tabPanel)
	activateControl(control)
	showPanel(panel)
}

// projectPaper activates a paper inside the sub-tab panel.
func projectPaper(subPanel, control, panel *html.Node) {
	paperLevel.clear(subPanel)
	activateControl(control)
	showPanel(panel)
}

// PanelPath derives the selection path of the panels enclosing n.
func PanelPath(n *html.Node) Selection {
	var sel Selection
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		switch {
		case dom.HasClass(cur, ClassPaperPanel) && sel.Paper == "":
			sel.Paper = dom.ID(cur)
		case dom.HasClass(cur, ClassSubTabPanel) && sel.SubTab == "":
			sel.SubTab = dom.ID(cur)
		case dom.HasClass(cur, ClassTabPanel) && sel.Tab == "":
			sel.Tab = dom.ID(cur)
		}
	}
	if sel.SubTab == "" {
		sel.Paper = ""
	}
	if sel.Tab == "" {
		return Selection{}
	}
	return sel
}
