// Package content loads a notes site into a single document.
//
// A site is a shell page plus HTML or markdown fragments named by its
// site.yaml manifest. Loader fetches the fragments concurrently from a
// Source (a directory, the embedded sample site or an HTTP base URL) and
// injects each into its container. A fragment that cannot be fetched is
// replaced by an error card so the rest of the site remains usable.
//
// Watch reports changes to a site directory so callers can reload it.
package content
