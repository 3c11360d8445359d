package v1alpha1

// Environment represents a vagrant environment managed by drover: one
// directory with a Vagrantfile and the machines defined in it.
//
// This resource separates desired state (Spec) from observed state (Status),
// following Kubernetes API conventions. It can be used standalone via the
// drover CLI or as a Custom Resource Definition in a Kubernetes cluster.
//
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=env;envs
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Provider",type=string,JSONPath=`.spec.provider`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`
type Environment struct {
	// TypeMeta contains the API version and kind.
	TypeMeta `json:",inline" yaml:",inline"`

	// ObjectMeta contains metadata like name, labels, annotations.
	// +optional
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Spec defines the desired state of the Environment.
	Spec EnvironmentSpec `json:"spec" yaml:"spec"`

	// Status defines the observed state of the Environment.
	// Populated by drover during lifecycle operations.
	// +optional
	Status EnvironmentStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// EnvironmentSpec defines the desired state of an Environment.
//
// +k8s:deepcopy-gen=true
type EnvironmentSpec struct {
	// Dir is the environment directory holding the Vagrantfile.
	// Defaults to the directory containing the manifest.
	// +optional
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Box is the default box for every machine, e.g. "generic/alpine319".
	Box string `json:"box" yaml:"box" validate:"required"`

	// BoxURL is the location to fetch the box from when it is not
	// installed, for boxes not hosted on Vagrant Cloud.
	// +optional
	BoxURL string `json:"boxURL,omitempty" yaml:"boxURL,omitempty"`

	// BoxVersion constrains the box version.
	// +optional
	BoxVersion string `json:"boxVersion,omitempty" yaml:"boxVersion,omitempty"`

	// Provider selects the backing provider for every machine.
	// Empty leaves the choice to vagrant.
	// +optional
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// Machines defines the machines in the environment. An empty list
	// describes a single-machine environment named "default".
	// +optional
	Machines []MachineSpec `json:"machines,omitempty" yaml:"machines,omitempty" validate:"omitempty,dive"`

	// Provision controls provisioner runs during environment bring-up.
	// +optional
	Provision ProvisionSpec `json:"provision,omitempty" yaml:"provision,omitempty"`

	// Sandbox enables sahara sandbox mode after the environment is up,
	// so changes can be rolled back.
	// +optional
	Sandbox bool `json:"sandbox,omitempty" yaml:"sandbox,omitempty"`
}

// MachineSpec defines one machine in a multi-machine environment.
//
// +k8s:deepcopy-gen=true
type MachineSpec struct {
	// Name is the machine name used in the Vagrantfile and on the
	// vagrant command line.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Box overrides the environment's default box for this machine.
	// +optional
	Box string `json:"box,omitempty" yaml:"box,omitempty"`

	// Primary marks the machine vagrant targets when no name is given.
	// At most one machine may be primary.
	// +optional
	Primary bool `json:"primary,omitempty" yaml:"primary,omitempty"`

	// CPUs is the number of virtual CPUs to allocate.
	// Zero leaves the provider default.
	// +optional
	// +kubebuilder:validation:Minimum=1
	CPUs int `json:"cpus,omitempty" yaml:"cpus,omitempty" validate:"omitempty,min=1"`

	// MemoryMB is the amount of memory to allocate in mebibytes.
	// Zero leaves the provider default.
	// +optional
	// +kubebuilder:validation:Minimum=1
	MemoryMB int `json:"memoryMB,omitempty" yaml:"memoryMB,omitempty" validate:"omitempty,min=1"`

	// Hostname sets the guest hostname.
	// +optional
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`

	// PrivateIP assigns a private network address, e.g. "192.168.56.10".
	// +optional
	PrivateIP string `json:"privateIP,omitempty" yaml:"privateIP,omitempty" validate:"omitempty,ip"`
}

// ProvisionSpec controls provisioner behavior during bring-up.
//
// +k8s:deepcopy-gen=true
type ProvisionSpec struct {
	// Run forces provisioners to run (true) or not run (false).
	// Nil leaves the decision to vagrant.
	// +optional
	Run *bool `json:"run,omitempty" yaml:"run,omitempty"`

	// With restricts provisioning to the named provisioners.
	// +optional
	With []string `json:"with,omitempty" yaml:"with,omitempty"`

	// Script is an inline shell script installed as a "shell"
	// provisioner in the generated Vagrantfile.
	// +optional
	Script string `json:"script,omitempty" yaml:"script,omitempty"`
}

// EnvironmentStatus defines the observed state of an Environment.
//
// +k8s:deepcopy-gen=true
type EnvironmentStatus struct {
	// Phase represents the current lifecycle phase of the environment.
	// +optional
	// +kubebuilder:validation:Enum=Pending;Starting;Running;Degraded;Stopped;Failed
	Phase EnvironmentPhase `json:"phase,omitempty" yaml:"phase,omitempty"`

	// Machines are the per-machine states observed at the last sync.
	// +optional
	Machines []MachineStatusRecord `json:"machines,omitempty" yaml:"machines,omitempty"`

	// LastSyncTime is when the status was last reconciled against
	// vagrant.
	// +optional
	LastSyncTime Time `json:"lastSyncTime,omitempty" yaml:"lastSyncTime,omitempty"`

	// ObservedGeneration reflects the generation most recently observed by drover.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty" yaml:"observedGeneration,omitempty"`
}

// EnvironmentPhase represents the lifecycle phase of an Environment.
type EnvironmentPhase string

const (
	// EnvPhasePending means no machine in the environment has been
	// created yet.
	EnvPhasePending EnvironmentPhase = "Pending"

	// EnvPhaseStarting means the environment is being brought up.
	EnvPhaseStarting EnvironmentPhase = "Starting"

	// EnvPhaseRunning means every machine in the environment is running.
	EnvPhaseRunning EnvironmentPhase = "Running"

	// EnvPhaseDegraded means some machines are running and some are not.
	EnvPhaseDegraded EnvironmentPhase = "Degraded"

	// EnvPhaseStopped means the machines exist but none is running.
	EnvPhaseStopped EnvironmentPhase = "Stopped"

	// EnvPhaseFailed means a lifecycle operation failed and the
	// environment needs intervention.
	EnvPhaseFailed EnvironmentPhase = "Failed"
)

// MachineStatusRecord is the observed state of one machine.
//
// +k8s:deepcopy-gen=true
type MachineStatusRecord struct {
	// Name is the machine name.
	Name string `json:"name" yaml:"name"`

	// State is the normalized machine state token, e.g. "running".
	State string `json:"state" yaml:"state"`

	// Provider backs the machine.
	// +optional
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// DeepCopy creates a deep copy of Environment.
func (in *Environment) DeepCopy() *Environment {
	if in == nil {
		return nil
	}
	out := new(Environment)
	out.TypeMeta = *in.TypeMeta.DeepCopy()
	out.ObjectMeta = *in.ObjectMeta.DeepCopy()
	out.Spec = *in.Spec.DeepCopy()
	out.Status = *in.Status.DeepCopy()
	return out
}

// DeepCopy creates a deep copy of EnvironmentSpec.
func (in *EnvironmentSpec) DeepCopy() *EnvironmentSpec {
	if in == nil {
		return nil
	}
	out := new(EnvironmentSpec)
	*out = *in

	// Deep copy Machines slice
	if in.Machines != nil {
		out.Machines = make([]MachineSpec, len(in.Machines))
		for i := range in.Machines {
			out.Machines[i] = *in.Machines[i].DeepCopy()
		}
	}

	// Deep copy Provision
	out.Provision = *in.Provision.DeepCopy()

	return out
}

// DeepCopy creates a deep copy of MachineSpec.
func (in *MachineSpec) DeepCopy() *MachineSpec {
	if in == nil {
		return nil
	}
	out := new(MachineSpec)
	*out = *in
	return out
}

// DeepCopy creates a deep copy of ProvisionSpec.
func (in *ProvisionSpec) DeepCopy() *ProvisionSpec {
	if in == nil {
		return nil
	}
	out := new(ProvisionSpec)
	*out = *in

	// Deep copy Run pointer
	if in.Run != nil {
		run := *in.Run
		out.Run = &run
	}

	// Deep copy With slice
	if in.With != nil {
		out.With = make([]string, len(in.With))
		copy(out.With, in.With)
	}

	return out
}

// DeepCopy creates a deep copy of EnvironmentStatus.
func (in *EnvironmentStatus) DeepCopy() *EnvironmentStatus {
	if in == nil {
		return nil
	}
	out := new(EnvironmentStatus)
	*out = *in

	// Deep copy Machines slice
	if in.Machines != nil {
		out.Machines = make([]MachineStatusRecord, len(in.Machines))
		for i := range in.Machines {
			out.Machines[i] = *in.Machines[i].DeepCopy()
		}
	}

	return out
}

// DeepCopy creates a deep copy of MachineStatusRecord.
func (in *MachineStatusRecord) DeepCopy() *MachineStatusRecord {
	if in == nil {
		return nil
	}
	out := new(MachineStatusRecord)
	*out = *in
	return out
}
