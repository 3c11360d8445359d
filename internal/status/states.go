// Package status defines the machine state tokens vagrant reports and
// maps observed machine states onto environment-level phases.
//
// Vagrant adds state names as it and its providers evolve, so State is
// an open string type rather than a closed enum. The constants below
// cover the states the common providers emit; unknown states pass
// through untouched.
package status

// State is a machine state token from `vagrant status`.
type State string

const (
	StateRunning    State = "running"     // vagrant up
	StateNotCreated State = "not_created" // vagrant destroy
	StatePoweroff   State = "poweroff"    // vagrant halt
	StateAborted    State = "aborted"     // guest died outside vagrant's control
	StateSaved      State = "saved"       // vagrant suspend
	StateStopped    State = "stopped"     // lxc
	StateFrozen     State = "frozen"      // lxc
	StateShutoff    State = "shutoff"     // libvirt
	StatePaused     State = "paused"      // libvirt
)

// Normalize maps provider-specific state names onto the common set so
// callers can compare states without caring which provider backs the
// machine. States from unrecognized providers pass through unchanged.
func Normalize(s State, provider string) State {
	if provider != "libvirt" {
		return s
	}
	switch s {
	case StateShutoff:
		return StatePoweroff
	case StatePaused:
		return StateSaved
	default:
		return s
	}
}

// IsRunning reports whether the machine is up.
func (s State) IsRunning() bool {
	return s == StateRunning
}

// IsCreated reports whether the machine exists at all. An empty state
// counts as not created; status output omits the state kind only when
// vagrant has nothing to report for the target.
func (s State) IsCreated() bool {
	return s != "" && s != StateNotCreated
}

// IsDown reports whether the machine exists but is powered off.
func (s State) IsDown() bool {
	switch s {
	case StatePoweroff, StateAborted, StateStopped, StateShutoff:
		return true
	default:
		return false
	}
}

// IsSuspended reports whether the machine's execution state is saved.
func (s State) IsSuspended() bool {
	switch s {
	case StateSaved, StateFrozen, StatePaused:
		return true
	default:
		return false
	}
}
