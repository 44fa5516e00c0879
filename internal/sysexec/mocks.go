package sysexec

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock for the Runner interface. It lives in a
// non-test file so every package exercising command execution can share
// it.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	callArgs := make([]interface{}, 0, len(args)+2)
	callArgs = append(callArgs, ctx, name)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	return result.Get(0).(Result), result.Error(1)
}
