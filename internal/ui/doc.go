// Package ui provides the terminal reader for a notes site.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a nav.Controller and renders
// whichever panel the controller has revealed. All navigation goes through
// the controller so the history, breadcrumb and progress tracking stay in
// step with what is on screen.
//
// # Package Structure
//
//   - app.go: Model, messages, Init/Update/View and Run
//   - input.go: keyboard and mouse handling
//   - content.go: viewport sizing, panel rendering cache, jumps to cards
//   - render.go: HTML panel to wrapped terminal lines, with card anchors
//   - header.go: title bar, tab bars, breadcrumb and status line
//   - search.go, bookmarks.go, help.go: overlays
//   - theme.go, style_helpers.go, keys.go: palettes, styles and key bindings
//
// # Event Flow
//
//  1. Run creates the Model and starts the program in the alternate screen.
//  2. A key or click selects a tab, sub-tab or paper on the controller.
//  3. The active panel is rendered (or fetched from the LRU cache) into the
//     viewport, and the cards on screen are recorded as viewed.
//  4. A settle message ends the transition indicator after its duration.
//  5. A periodic tick picks up reloaded content from state.Store.
//
// # External Dependencies
//
//   - nav: selection state, history, breadcrumb and quick-nav rows
//   - search, bookmarks, progress, printer, theme, prefs: reader features
//   - state: reloaded site snapshots
package ui
