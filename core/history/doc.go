// Package history persists launch attempts to an optional local database.
//
// The connection is soft: when it cannot be established the agent runs
// without history, and a nil Store records nothing. The default driver is a
// sqlite file next to the binary; mysql is supported for shared setups.
package history
