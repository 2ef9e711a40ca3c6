// Package nav implements tabbed navigation over a loaded notes document.
//
// # Overview
//
// A notes site is organised as three nested levels:
//
//	tab (data-tab)            -> .tab-content#<tab>
//	  sub-tab (data-sub-tab)  -> .sub-tab-content#<subTab>
//	    paper (data-paper)    -> .paper-content-section#<paper>
//
// The Controller owns the current Selection and projects it onto the
// document by toggling the active class, aria-selected and hidden. It never
// creates or removes nodes.
//
// # Transitions
//
// Selection.WithTab, WithSubTab and WithPaper are pure: selecting a level
// clears every level below it. The Controller wraps them with the document
// projection and the defaults a panel declares:
//
//	SelectTab("group1")
//	  → group1 active, first sub-tab of its panel active
//	  → history push "#group1"
//	SelectSubTab("group1-mains")
//	  → first paper of the sub-tab panel active
//	  → history push "#group1-group1-mains"
//	SelectPaperTab("group1-mains-paper2")
//	  → hash unchanged
//
// An id missing from the manifest yields a placeholder selection with every
// level deactivated. A known id without document nodes is a no-op that is
// logged at debug level.
//
// # History
//
// History is the session stack of hashes. Back and Forward move the cursor
// and re-enter through HandleHistoryNavigation, which never pushes.
//
// # Loading indicator
//
// Every committed transition calls Indicator.Begin. Hosts settle it with the
// returned token after Indicator.Duration; a newer Begin makes older tokens
// inert. Controllers built WithAutoSettle settle on a timer instead, and the
// host calls Indicator.Stop when it is done.
//
// # Concurrency
//
// The Controller is not safe for concurrent use. The UI drives it from the
// Bubble Tea update loop. Indicator is safe for concurrent use so AutoSettle
// can run from a timer goroutine.
package nav
