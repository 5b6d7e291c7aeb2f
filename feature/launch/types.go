package launch

import (
	"errors"
	"fmt"
	"time"
)

// ServerOverride selects a specific server instead of the canonical default.
type ServerOverride struct {
	IP     string `json:"ip"`
	Port   int    `json:"port"`
	Number int    `json:"number"`
}

// Request is one launch request as it arrives from the shell.
type Request struct {
	Nickname string          `json:"nickname"`
	Server   *ServerOverride `json:"server,omitempty"`
}

// Outcome is the terminal result of one launch attempt.
type Outcome struct {
	AttemptID  string    `json:"attempt_id"`
	Succeeded  bool      `json:"succeeded"`
	Message    string    `json:"message"`
	PID        *int      `json:"pid,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Stage is one step of the launch state machine. Each attempt moves through
// the stages strictly in order and terminates after ConfirmingLiveness.
type Stage int

const (
	StageValidatingInput Stage = iota
	StageReconcilingProcesses
	StageSpawning
	StageConfirmingLiveness
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageValidatingInput:
		return "validating_input"
	case StageReconcilingProcesses:
		return "reconciling_processes"
	case StageSpawning:
		return "spawning"
	case StageConfirmingLiveness:
		return "confirming_liveness"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Sentinel errors for precondition failures. These short-circuit before any
// side effect occurs.
var (
	// ErrEmptyNickname is returned when the nickname is empty after trimming.
	ErrEmptyNickname = errors.New("nickname is empty")

	// ErrLauncherMissing is returned when the game-client executable does
	// not exist on disk.
	ErrLauncherMissing = errors.New("game client executable not found")
)
