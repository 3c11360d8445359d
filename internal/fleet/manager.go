package fleet

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jbweber/drover/api/v1alpha1"
	"github.com/jbweber/drover/internal/status"
	"github.com/jbweber/drover/internal/vagrant"
)

// Manager runs manifest-driven lifecycle operations over vagrant
// environments.
type Manager struct {
	logger     zerolog.Logger
	clientOpts []vagrant.Option
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger operations report progress through.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClientOptions appends options applied to every vagrant client
// the Manager creates.
func WithClientOptions(opts ...vagrant.Option) Option {
	return func(m *Manager) {
		m.clientOpts = append(m.clientOpts, opts...)
	}
}

// NewManager creates a Manager. Without WithLogger the Manager works
// silently.
func NewManager(opts ...Option) *Manager {
	m := &Manager{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Report describes the outcome of a fleet operation on one
// environment.
type Report struct {
	// Name is the environment name from the manifest.
	Name string `json:"name" yaml:"name"`

	// Dir is the resolved environment directory.
	Dir string `json:"dir" yaml:"dir"`

	// Phase summarizes the machine states.
	Phase v1alpha1.EnvironmentPhase `json:"phase" yaml:"phase"`

	// Machines is the observed per-machine state.
	Machines []vagrant.MachineStatus `json:"machines,omitempty" yaml:"machines,omitempty"`
}

// reportFor records the observed statuses on the environment and
// summarizes them as a Report.
func reportFor(env *v1alpha1.Environment, dir string, statuses []vagrant.MachineStatus) *Report {
	records := make([]v1alpha1.MachineStatusRecord, 0, len(statuses))
	states := make([]status.State, 0, len(statuses))
	for _, s := range statuses {
		records = append(records, v1alpha1.MachineStatusRecord{
			Name:     s.Name,
			State:    string(s.State),
			Provider: s.Provider,
		})
		states = append(states, s.State)
	}
	env.SetMachineStatuses(records)
	env.SetPhase(status.PhaseFor(states))
	env.UpdateObservedGeneration()

	return &Report{
		Name:     env.GetName(),
		Dir:      dir,
		Phase:    env.GetPhase(),
		Machines: statuses,
	}
}

// ResolveDir returns the environment directory for a manifest: the
// spec's dir when set, with relative paths taken against the
// manifest's own directory, otherwise the manifest's directory itself.
func ResolveDir(manifestPath string, env *v1alpha1.Environment) string {
	base := filepath.Dir(manifestPath)
	dir := env.Spec.Dir
	switch {
	case dir == "":
		return base
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(base, dir)
	}
}
