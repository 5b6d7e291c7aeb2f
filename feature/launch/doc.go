// Package launch supervises the game-client executable on behalf of the
// desktop shell.
//
// Each launch attempt is a fixed state machine, terminal on either branch:
//
//	ValidatingInput -> ReconcilingProcesses -> Spawning -> ConfirmingLiveness -> Succeeded | Failed
//
// Conflicting client instances are killed before spawning, a settle delay
// keeps the new instance from racing a dying one for shared resources, and
// a short liveness window distinguishes a client that crashed on startup
// (captured stderr excerpt) from one that came up.
//
// Attempts run on their own goroutine behind a single-slot ticket; the shell
// receives an immediate acknowledgment and can query the last terminal
// outcome. There is no cancellation: once spawned, an attempt runs to the
// end of its liveness check.
package launch
