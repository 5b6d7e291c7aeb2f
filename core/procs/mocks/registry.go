package mocks

import (
	"context"

	"launcher-agent/core/procs"

	"github.com/stretchr/testify/mock"
)

// Registry is a mock implementation of procs.Registry
type Registry struct {
	mock.Mock
}

func (m *Registry) Snapshot(ctx context.Context) ([]procs.Proc, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procs.Proc), args.Error(1)
}

func (m *Registry) Terminate(ctx context.Context, pid int32) procs.TermStatus {
	args := m.Called(ctx, pid)
	return args.Get(0).(procs.TermStatus)
}
