package nav

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/site"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for navigation diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithTransition sets the loading indicator duration.
func WithTransition(d time.Duration) Option {
	return func(c *Controller) { c.indicator = NewIndicator(d) }
}

// WithAutoSettle settles the indicator on a timer after every transition,
// for hosts without an event loop of their own.
func WithAutoSettle() Option {
	return func(c *Controller) { c.autoSettle = true }
}

// Controller owns the current Selection and keeps the document in step with
// it. All methods must be called from a single goroutine.
type Controller struct {
	doc        *dom.Document
	manifest   site.Manifest
	sel        Selection
	history    *History
	indicator  *Indicator
	autoSettle bool
	log        zerolog.Logger
	observers  []func(Selection)
}

// NewController binds a controller to a loaded document. Nothing is selected
// until Start is called.
func NewController(doc *dom.Document, m site.Manifest, opts ...Option) *Controller {
	c := &Controller{
		doc:       doc,
		manifest:  m,
		history:   NewHistory(),
		indicator: NewIndicator(DefaultTransition),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection { return c.sel }

// Document returns the document the controller projects onto.
func (c *Controller) Document() *dom.Document { return c.doc }

// Manifest returns the site manifest.
func (c *Controller) Manifest() site.Manifest { return c.manifest }

// History returns the session history.
func (c *Controller) History() *History { return c.history }

// Indicator returns the loading indicator.
func (c *Controller) Indicator() *Indicator { return c.indicator }

// Hash returns the deep link for the current selection, including '#'.
func (c *Controller) Hash() string { return "#" + c.sel.Hash() }

// OnChange registers fn to run after every committed transition.
func (c *Controller) OnChange(fn func(Selection)) {
	c.observers = append(c.observers, fn)
}

// Start performs the initial load. An empty or unknown hash selects the
// default tab. The history is seeded with a single entry.
func (c *Controller) Start(hash string) {
	tab, sub := ParseHash(hash, c.manifest.TabIDs())
	if !c.manifest.IsTab(tab) {
		if tab != "" {
			c.log.Debug().Str("hash", hash).Msg("unknown start hash, using default tab")
		}
		tab, sub = c.manifest.DefaultTab, ""
	}
	if !c.selectTab(tab) {
		return
	}
	seed := "#" + tab
	if sub != "" && c.selectSubTab(sub) {
		seed = "#" + tab + "-" + sub
	}
	c.history.Replace(seed)
	c.commit()
}

// SelectTab activates a tab, then its default sub-tab if the panel declares
// one. Unknown ids produce a placeholder selection with nothing active.
func (c *Controller) SelectTab(id string) bool {
	if !c.selectTab(id) {
		return false
	}
	c.history.Push("#" + id)
	c.commit()
	return true
}

// SelectSubTab activates a sub-tab of the current tab.
func (c *Controller) SelectSubTab(id string) bool {
	if !c.selectSubTab(id) {
		return false
	}
	c.history.Push("#" + c.sel.Hash())
	c.commit()
	return true
}

// SelectPaperTab activates a paper of the current sub-tab. The hash does not
// change.
func (c *Controller) SelectPaperTab(id string) bool {
	if !c.selectPaper(id) {
		return false
	}
	c.commit()
	return true
}

// HandleHistoryNavigation re-enters the selection named by hash without
// recording a new history entry.
func (c *Controller) HandleHistoryNavigation(hash string) bool {
	tab, sub := ParseHash(hash, c.manifest.TabIDs())
	if tab == "" {
		tab = c.manifest.DefaultTab
	}
	if !c.selectTab(tab) {
		return false
	}
	if sub != "" {
		c.selectSubTab(sub)
	}
	c.commit()
	return true
}

// Select re-enters a full selection (tab, sub-tab and paper) as one
// transition. Used when jumping to a search result or bookmark.
func (c *Controller) Select(target Selection) bool {
	if !c.selectTab(target.Tab) {
		return false
	}
	if target.SubTab != "" && c.selectSubTab(target.SubTab) && target.Paper != "" {
		c.selectPaper(target.Paper)
	}
	c.history.Push("#" + c.sel.Hash())
	c.commit()
	return true
}

// Back moves one entry back in the session history. The cursor stays put
// when the entry no longer resolves.
func (c *Controller) Back() bool {
	hash, ok := c.history.Back()
	if !ok {
		return false
	}
	if !c.HandleHistoryNavigation(hash) {
		c.history.Forward()
		return false
	}
	return true
}

// Forward moves one entry forward in the session history.
func (c *Controller) Forward() bool {
	hash, ok := c.history.Forward()
	if !ok {
		return false
	}
	if !c.HandleHistoryNavigation(hash) {
		c.history.Back()
		return false
	}
	return true
}

// Reset swaps in a reloaded document and projects the current selection onto
// it. Levels that no longer exist are dropped.
func (c *Controller) Reset(doc *dom.Document) {
	prev := c.sel
	c.doc = doc
	c.sel = Selection{}
	tab := prev.Tab
	if tab == "" {
		tab = c.manifest.DefaultTab
	}
	if !c.selectTab(tab) {
		c.selectTab(c.manifest.DefaultTab)
	}
	if prev.SubTab != "" && c.selectSubTab(prev.SubTab) && prev.Paper != "" {
		c.selectPaper(prev.Paper)
	}
	c.notify()
}

// ActivePanel returns the deepest revealed panel, or nil for a placeholder.
func (c *Controller) ActivePanel() *html.Node {
	if c.sel.Placeholder || c.sel.Tab == "" {
		return nil
	}
	panel := c.doc.ByID(c.sel.Tab)
	if c.sel.SubTab != "" {
		if sub := dom.Find(panel, dom.AttrEquals("id", c.sel.SubTab)); sub != nil {
			panel = sub
		}
	}
	if c.sel.Paper != "" {
		if paper := dom.Find(panel, dom.AttrEquals("id", c.sel.Paper)); paper != nil {
			panel = paper
		}
	}
	return panel
}

func (c *Controller) selectTab(id string) bool {
	if !c.manifest.IsTab(id) {
		clearAll(c.doc.Root())
		c.sel = c.sel.WithTab(id, false)
		c.log.Debug().Str("tab", id).Msg("unknown tab, showing placeholder")
		return true
	}
	control, panel := tabLevel.lookup(c.doc.Root(), id)
	if control == nil || panel == nil {
		c.log.Debug().Str("tab", id).Msg("tab not found in document")
		return false
	}
	projectTab(c.doc.Root(), control, panel)
	c.sel = c.sel.WithTab(id, true)
	if sub := subTabLevel.first(panel); sub != "" {
		c.selectSubTab(sub)
	}
	return true
}

func (c *Controller) selectSubTab(id string) bool {
	if c.sel.Tab == "" || c.sel.Placeholder {
		c.log.Debug().Str("sub_tab", id).Msg("no active tab for sub-tab")
		return false
	}
	tabPanel := c.doc.ByID(c.sel.Tab)
	if tabPanel == nil {
		return false
	}
	control, panel := subTabLevel.lookup(tabPanel, id)
	if control == nil || panel == nil {
		c.log.Debug().Str("tab", c.sel.Tab).Str("sub_tab", id).Msg("sub-tab not found in active tab")
		return false
	}
	projectSubTab(tabPanel, control, panel)
	c.sel = c.sel.WithSubTab(id)
	if paper := paperLevel.first(panel); paper != "" {
		c.selectPaper(paper)
	}
	return true
}

func (c *Controller) selectPaper(id string) bool {
	if c.sel.SubTab == "" {
		c.log.Debug().Str("paper", id).Msg("no active sub-tab for paper")
		return false
	}
	subPanel := dom.Find(c.doc.ByID(c.sel.Tab), dom.AttrEquals("id", c.sel.SubTab))
	if subPanel == nil {
		return false
	}
	control, panel := paperLevel.lookup(subPanel, id)
	if control == nil || panel == nil {
		c.log.Debug().Str("sub_tab", c.sel.SubTab).Str("paper", id).Msg("paper not found in active sub-tab")
		return false
	}
	projectPaper(subPanel, control, panel)
	c.sel = c.sel.WithPaper(id)
	return true
}

// commit starts the indicator and notifies observers.
func (c *Controller) commit() {
	token := c.indicator.Begin()
	if c.autoSettle {
		c.indicator.AutoSettle(token)
	}
	c.log.Debug().Str("path", c.sel.Path()).Bool("placeholder", c.sel.Placeholder).Msg("selection changed")
	c.notify()
}

func (c *Controller) notify() {
	for _, fn := range c.observers {
		fn(c.sel)
	}
}
