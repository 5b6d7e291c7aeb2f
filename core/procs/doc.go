// Package procs provides the process registry: best-effort enumeration and
// termination of OS processes matching a name predicate.
//
// Iterating and killing are best-effort. A process that disappears between
// listing and termination, or whose termination is denied by the OS, is
// skipped rather than escalated: callers only need confidence that no
// conflicting instance keeps running, not perfection.
//
// The Registry interface exists so the launch supervisor can be tested
// without touching the real process table; a testify mock lives in mocks/.
package procs
