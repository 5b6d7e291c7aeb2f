// Package prefs owns the user preferences document: the last nickname and
// last selected server, persisted as a small JSON file next to the binary.
//
// The store is an explicitly injected object, not an ambient singleton.
// Loading never fails (missing or corrupt files produce the zero value) and
// saving is best-effort from the launch flow's perspective: a failed save is
// logged and swallowed, never downgrading a successful launch.
package prefs
