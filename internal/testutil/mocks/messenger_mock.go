package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mira/gradekeeper/internal/telemetry"
)

// MockMessenger is a mock implementation of telemetry.Messenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(ctx context.Context, msg telemetry.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// RecordingEmitter captures emitted events for assertions.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []telemetry.Args
}

func (e *RecordingEmitter) Emit(action, url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, telemetry.Args{URL: url, Action: action})
}

func (e *RecordingEmitter) Events() []telemetry.Args {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]telemetry.Args, len(e.events))
	copy(out, e.events)
	return out
}
