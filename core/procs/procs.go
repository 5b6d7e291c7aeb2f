package procs

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// Proc is the fixed record shape returned by the registry for one process.
type Proc struct {
	PID  int32
	Name string
}

// TermStatus is the outcome of a termination attempt. Not-found and
// access-denied are ordinary result variants, not errors: the caller only
// needs "no conflicting instance is confirmed running".
type TermStatus int

const (
	// TermOK indicates the process was terminated.
	TermOK TermStatus = iota
	// TermNotFound indicates the process had already disappeared.
	TermNotFound
	// TermDenied indicates the OS refused the termination.
	TermDenied
)

// String returns a human-readable status name.
func (s TermStatus) String() string {
	switch s {
	case TermOK:
		return "ok"
	case TermNotFound:
		return "not found"
	case TermDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Registry enumerates and terminates OS processes.
type Registry interface {
	// Snapshot lists the currently running processes. Entries whose name
	// cannot be resolved are omitted.
	Snapshot(ctx context.Context) ([]Proc, error)
	// Terminate kills the process with the given pid.
	Terminate(ctx context.Context, pid int32) TermStatus
}

// KillMatching terminates every process whose name contains substr,
// case-insensitively. Processes that vanish between listing and kill, or
// whose termination is denied, are skipped silently. Returns the number of
// processes confirmed killed.
func KillMatching(ctx context.Context, r Registry, substr string, log *zap.Logger) int {
	snapshot, err := r.Snapshot(ctx)
	if err != nil {
		log.Warn("Process snapshot failed", zap.Error(err))
		return 0
	}

	needle := strings.ToLower(substr)
	killed := 0
	for _, p := range snapshot {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		log.Info("Terminating conflicting process",
			zap.String("name", p.Name),
			zap.Int32("pid", p.PID),
		)
		switch st := r.Terminate(ctx, p.PID); st {
		case TermOK:
			killed++
		default:
			log.Debug("Termination skipped",
				zap.Int32("pid", p.PID),
				zap.String("status", st.String()),
			)
		}
	}
	return killed
}

// systemRegistry is the OS-backed Registry implementation.
type systemRegistry struct{}

// NewRegistry returns a Registry backed by the OS process table.
func NewRegistry() Registry {
	return systemRegistry{}
}

func (systemRegistry) Snapshot(ctx context.Context) ([]Proc, error) {
	list, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Proc, 0, len(list))
	for _, p := range list {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Zombies and processes we cannot inspect carry no usable name.
			continue
		}
		out = append(out, Proc{PID: p.Pid, Name: name})
	}
	return out, nil
}

func (systemRegistry) Terminate(ctx context.Context, pid int32) TermStatus {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return TermNotFound
	}
	if err := p.KillWithContext(ctx); err != nil {
		if running, rerr := p.IsRunningWithContext(ctx); rerr == nil && !running {
			return TermNotFound
		}
		return TermDenied
	}
	return TermOK
}
