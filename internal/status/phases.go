package status

import (
	"github.com/jbweber/drover/api/v1alpha1"
)

// PhaseFor reduces the observed machine states of an environment to a
// single environment phase:
//
//   - no machines observed: Pending
//   - every machine running: Running
//   - some machines running: Degraded
//   - no machine created: Pending
//   - otherwise (created but not running): Stopped
//
// Suspended machines count as not running.
func PhaseFor(states []State) v1alpha1.EnvironmentPhase {
	if len(states) == 0 {
		return v1alpha1.EnvPhasePending
	}

	running := 0
	created := 0
	for _, s := range states {
		if s.IsRunning() {
			running++
		}
		if s.IsCreated() {
			created++
		}
	}

	switch {
	case running == len(states):
		return v1alpha1.EnvPhaseRunning
	case running > 0:
		return v1alpha1.EnvPhaseDegraded
	case created == 0:
		return v1alpha1.EnvPhasePending
	default:
		return v1alpha1.EnvPhaseStopped
	}
}

// IsTerminal returns true if the phase is terminal (Stopped or Failed).
// Terminal phases mean no machine is running and nothing will transition
// without another lifecycle operation.
func IsTerminal(phase v1alpha1.EnvironmentPhase) bool {
	return phase == v1alpha1.EnvPhaseStopped || phase == v1alpha1.EnvPhaseFailed
}

// IsRunning returns true if every machine in the environment is up.
func IsRunning(phase v1alpha1.EnvironmentPhase) bool {
	return phase == v1alpha1.EnvPhaseRunning
}

// IsDegraded returns true if only part of the environment is up.
func IsDegraded(phase v1alpha1.EnvironmentPhase) bool {
	return phase == v1alpha1.EnvPhaseDegraded
}
