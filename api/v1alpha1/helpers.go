package v1alpha1

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// GroupName is the API group for drover resources.
	GroupName = "drover.cofront.xyz"

	// Version is the API version.
	Version = "v1alpha1"

	// EnvironmentKind is the kind string for Environment resources.
	EnvironmentKind = "Environment"
)

// defaultMachineName is what vagrant calls the only machine of a
// single-machine environment.
const defaultMachineName = "default"

// NewEnvironment creates a new Environment with TypeMeta and ObjectMeta defaults.
func NewEnvironment(name string) *Environment {
	now := Time{Time: time.Now()}

	return &Environment{
		TypeMeta: TypeMeta{
			APIVersion: GroupName + "/" + Version,
			Kind:       EnvironmentKind,
		},
		ObjectMeta: ObjectMeta{
			Name:              name,
			UID:               uuid.New().String(),
			CreationTimestamp: now,
			Generation:        1,
		},
		Status: EnvironmentStatus{
			Phase: EnvPhasePending,
		},
	}
}

// SetDefaultAPIVersion ensures the environment has the correct apiVersion and kind.
// Useful when loading from files that might be missing these fields.
func SetDefaultAPIVersion(env *Environment) {
	if env.APIVersion == "" {
		env.APIVersion = GroupName + "/" + Version
	}
	if env.Kind == "" {
		env.Kind = EnvironmentKind
	}
}

// IsMultiMachine returns true when the environment defines named machines.
func (e *Environment) IsMultiMachine() bool {
	return len(e.Spec.Machines) > 0
}

// MachineNames returns the machine names in spec order. A
// single-machine environment reports vagrant's default name.
func (e *Environment) MachineNames() []string {
	if len(e.Spec.Machines) == 0 {
		return []string{defaultMachineName}
	}
	names := make([]string, len(e.Spec.Machines))
	for i, m := range e.Spec.Machines {
		names[i] = m.Name
	}
	return names
}

// PrimaryMachine returns the machine marked primary, or nil when none is.
func (e *Environment) PrimaryMachine() *MachineSpec {
	for i := range e.Spec.Machines {
		if e.Spec.Machines[i].Primary {
			return &e.Spec.Machines[i]
		}
	}
	return nil
}

// BoxFor returns the box for the named machine with default fallback.
func (e *Environment) BoxFor(name string) string {
	for i := range e.Spec.Machines {
		if e.Spec.Machines[i].Name == name && e.Spec.Machines[i].Box != "" {
			return e.Spec.Machines[i].Box
		}
	}
	return e.Spec.Box
}

// GetName returns the environment name from metadata.
func (e *Environment) GetName() string {
	return e.Name
}

// SetPhase sets the environment phase in status.
func (e *Environment) SetPhase(phase EnvironmentPhase) {
	e.Status.Phase = phase
}

// GetPhase returns the current environment phase.
func (e *Environment) GetPhase() EnvironmentPhase {
	return e.Status.Phase
}

// SetMachineStatuses replaces the observed per-machine states and
// stamps the sync time.
func (e *Environment) SetMachineStatuses(records []MachineStatusRecord) {
	e.Status.Machines = records
	e.Status.LastSyncTime = Time{Time: time.Now()}
}

// UpdateObservedGeneration updates the status.observedGeneration to match metadata.generation.
func (e *Environment) UpdateObservedGeneration() {
	e.Status.ObservedGeneration = e.Generation
}

// Normalize sanitizes user input to consistent formats.
// This is called automatically before validation.
func (e *Environment) Normalize() {
	// Normalize environment name to lowercase
	e.Name = strings.ToLower(strings.TrimSpace(e.Name))

	e.Spec.Box = strings.TrimSpace(e.Spec.Box)
	e.Spec.BoxURL = strings.TrimSpace(e.Spec.BoxURL)
	e.Spec.Provider = strings.TrimSpace(e.Spec.Provider)

	// Normalize machine names and hostnames to lowercase
	for i := range e.Spec.Machines {
		m := &e.Spec.Machines[i]
		m.Name = strings.ToLower(strings.TrimSpace(m.Name))
		m.Hostname = strings.ToLower(strings.TrimSpace(m.Hostname))
		m.Box = strings.TrimSpace(m.Box)
	}
}
