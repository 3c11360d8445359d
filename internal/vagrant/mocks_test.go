package vagrant

import (
	"context"
	"sync"
)

// mockRunner is a mock implementation of the Runner interface for testing.
type mockRunner struct {
	mu sync.Mutex

	// Configurable behavior
	runFunc    func(dir string, args ...string) (string, error)
	streamFunc func(dir string, fn func(line string), args ...string) error

	// Call tracking
	runCalls    [][]string
	streamCalls [][]string
}

// newMockRunner creates a mock runner whose commands all succeed with
// empty output.
func newMockRunner() *mockRunner {
	m := &mockRunner{}

	m.runFunc = func(dir string, args ...string) (string, error) {
		return "", nil
	}

	m.streamFunc = func(dir string, fn func(line string), args ...string) error {
		return nil
	}

	return m
}

// newMockRunnerWithOutput creates a mock runner whose Run always
// succeeds with the given stdout.
func newMockRunnerWithOutput(output string) *mockRunner {
	m := newMockRunner()
	m.runFunc = func(dir string, args ...string) (string, error) {
		return output, nil
	}
	return m
}

func (m *mockRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCalls = append(m.runCalls, append([]string{}, args...))
	return m.runFunc(dir, args...)
}

func (m *mockRunner) Stream(ctx context.Context, dir string, fn func(line string), args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamCalls = append(m.streamCalls, append([]string{}, args...))
	return m.streamFunc(dir, fn, args...)
}

// lastRun returns the argument vector of the most recent Run call.
func (m *mockRunner) lastRun() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.runCalls) == 0 {
		return nil
	}
	return m.runCalls[len(m.runCalls)-1]
}
