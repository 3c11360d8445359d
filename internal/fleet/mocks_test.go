package fleet

import (
	"context"
	"sync"

	"github.com/jbweber/drover/internal/status"
	"github.com/jbweber/drover/internal/vagrant"
)

// mockMachineClient is a mock implementation of the machineClient
// interface for testing.
type mockMachineClient struct {
	mu sync.Mutex

	// Configurable behavior
	upFunc      func(ctx context.Context, target string, opts *vagrant.UpOptions) error
	haltFunc    func(ctx context.Context, target string, force bool) error
	destroyFunc func(ctx context.Context, target string) error
	statusFunc  func(ctx context.Context, target string) ([]vagrant.MachineStatus, error)
	boxListFunc func(ctx context.Context) ([]vagrant.Box, error)
	boxAddFunc  func(ctx context.Context, name, url string, opts *vagrant.BoxAddOptions) error

	// Call tracking
	upCalls      []*vagrant.UpOptions
	haltCalls    []bool // force flags
	destroyCalls int
	statusCalls  int
	boxListCalls int
	boxAddCalls  []string // format: "name url", url omitted when empty
}

// newMockMachineClient creates a new mock machine client with default
// behavior.
func newMockMachineClient() *mockMachineClient {
	return &mockMachineClient{
		// Default: up succeeds
		upFunc: func(ctx context.Context, target string, opts *vagrant.UpOptions) error {
			return nil
		},
		// Default: halt succeeds
		haltFunc: func(ctx context.Context, target string, force bool) error {
			return nil
		},
		// Default: destroy succeeds
		destroyFunc: func(ctx context.Context, target string) error {
			return nil
		},
		// Default: a single running machine
		statusFunc: func(ctx context.Context, target string) ([]vagrant.MachineStatus, error) {
			return []vagrant.MachineStatus{
				{Name: "default", State: status.StateRunning, Provider: "virtualbox"},
			}, nil
		},
		// Default: no boxes installed
		boxListFunc: func(ctx context.Context) ([]vagrant.Box, error) {
			return []vagrant.Box{}, nil
		},
		// Default: add succeeds
		boxAddFunc: func(ctx context.Context, name, url string, opts *vagrant.BoxAddOptions) error {
			return nil
		},
	}
}

func (m *mockMachineClient) Up(ctx context.Context, target string, opts *vagrant.UpOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upCalls = append(m.upCalls, opts)
	return m.upFunc(ctx, target, opts)
}

func (m *mockMachineClient) Halt(ctx context.Context, target string, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.haltCalls = append(m.haltCalls, force)
	return m.haltFunc(ctx, target, force)
}

func (m *mockMachineClient) Destroy(ctx context.Context, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyCalls++
	return m.destroyFunc(ctx, target)
}

func (m *mockMachineClient) Status(ctx context.Context, target string) ([]vagrant.MachineStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	return m.statusFunc(ctx, target)
}

func (m *mockMachineClient) BoxList(ctx context.Context) ([]vagrant.Box, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boxListCalls++
	return m.boxListFunc(ctx)
}

func (m *mockMachineClient) BoxAdd(ctx context.Context, name, url string, opts *vagrant.BoxAddOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := name
	if url != "" {
		call += " " + url
	}
	m.boxAddCalls = append(m.boxAddCalls, call)
	return m.boxAddFunc(ctx, name, url, opts)
}

// scriptedRunner is a canned vagrant.Runner keyed by subcommand, for
// exercising the public entry points end to end without a vagrant
// binary.
type scriptedRunner struct {
	mu      sync.Mutex
	replies map[string]string
	calls   [][]string
}

func (r *scriptedRunner) key(args []string) string {
	if len(args) > 1 && (args[0] == "box" || args[0] == "sandbox" || args[0] == "snapshot") {
		return args[0] + " " + args[1]
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func (r *scriptedRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	return r.replies[r.key(args)], nil
}

func (r *scriptedRunner) Stream(ctx context.Context, dir string, fn func(line string), args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	return nil
}

// mockSandboxer is a mock implementation of the sandboxer interface
// for testing.
type mockSandboxer struct {
	mu sync.Mutex

	// Configurable behavior
	onFunc func(ctx context.Context, target string) error

	// Call tracking
	onCalls int
}

// newMockSandboxer creates a new mock sandboxer with default behavior.
func newMockSandboxer() *mockSandboxer {
	return &mockSandboxer{
		// Default: enabling the sandbox succeeds
		onFunc: func(ctx context.Context, target string) error {
			return nil
		},
	}
}

func (m *mockSandboxer) On(ctx context.Context, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCalls++
	return m.onFunc(ctx, target)
}
