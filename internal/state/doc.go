// Package state holds the most recently loaded site for the reader.
//
// # Overview
//
// A background reloader (the content watcher) and the UI run in separate
// goroutines. Store is where they meet: the reloader calls Update after
// every load attempt and the UI reads Snapshot on its own schedule.
//
//	Reloader:                      UI:
//	┌──────────────────┐          ┌──────────────────────┐
//	│ loader.Load()    │          │ store.Generation()   │
//	│      ↓           │          │      ↓ (changed)     │
//	│ store.Update()   │─────────→│ store.Snapshot()     │
//	│      ↓           │ (mutex)  │      ↓               │
//	│ wait for change  │          │ controller.Reset()   │
//	└──────────────────┘          └──────────────────────┘
//
// # Generations
//
// Every successful Update increments Snapshot.Generation. The UI remembers
// the generation it is showing and adopts a new document only when the
// number moves, so a failed reload never disturbs the current view.
//
// # Update Semantics
//
//	// Success: replace the site
//	store.Update(site, nil)
//	→ snapshot.Site = site
//	→ snapshot.Generation++
//	→ snapshot.LastError = nil
//
//	// Failure: keep the old site, record the error
//	store.Update(nil, err)
//	→ snapshot.Site = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// # Sharing
//
// Snapshot copies the Site value and its Failed list, but the parsed
// document is shared between snapshots. Navigation mutates the document it
// projects onto, so a consumer must Clone the document before handing it to
// a controller.
//
// The zero Store is ready to use.
package state
