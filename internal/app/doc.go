// Package app is the composition root of notesnav.
//
// Open reads the config, opens the key-value store and loads the site, then
// builds the navigation controller and the services around it (bookmarks,
// reading progress, search and printing). The CLI commands use a Session
// directly; Run adds background reloading and hands the session to the
// terminal UI.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read ~/.config/notesnav/config.toml
//	       ├─────> logging.New()        File logger
//	       ├─────> kv.Open()            Bookmarks, progress, theme
//	       ├─────> content.Loader       Manifest, shell and fragments
//	       ├─────> state.Store{}        Shared with reloaders and the UI
//	       └─────> nav.NewController()  Works on its own copy of the document
//
//	Run():  Start(hash) ──> StartReloading() ──> ui.Run() (blocks)
//
// # Reloading
//
// Directory content is watched with fsnotify; remote content is polled when
// ui.poll_seconds is set. Failed reloads keep the previous site and the
// poller doubles its interval per consecutive failure, up to ten minutes.
// The UI notices a new store generation on its next tick and resets the
// controller onto a fresh copy.
package app
