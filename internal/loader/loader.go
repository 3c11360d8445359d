// Package loader provides functions for loading Environment resources
// from YAML files.
package loader

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jbweber/drover/api/v1alpha1"
	"github.com/jbweber/drover/internal/naming"
)

var validate = validator.New()

// LoadFromFile loads an Environment resource from a YAML file.
// The file must be in the drover.cofront.xyz/v1alpha1 format.
func LoadFromFile(path string) (*v1alpha1.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads an Environment resource from YAML bytes.
// The YAML must be in the drover.cofront.xyz/v1alpha1 format.
func LoadFromYAML(data []byte) (*v1alpha1.Environment, error) {
	var env v1alpha1.Environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	// Validate that apiVersion and kind are present
	if env.APIVersion == "" {
		return nil, fmt.Errorf("missing required field: apiVersion")
	}
	if env.Kind == "" {
		return nil, fmt.Errorf("missing required field: kind")
	}

	// Validate apiVersion matches expected
	expectedAPIVersion := v1alpha1.GroupName + "/" + v1alpha1.Version
	if env.APIVersion != expectedAPIVersion {
		return nil, fmt.Errorf("unsupported apiVersion: %s (expected: %s)", env.APIVersion, expectedAPIVersion)
	}

	// Validate kind
	if env.Kind != v1alpha1.EnvironmentKind {
		return nil, fmt.Errorf("unsupported kind: %s (expected: %s)", env.Kind, v1alpha1.EnvironmentKind)
	}

	// Set defaults for fields that may be omitted
	applyDefaults(&env)

	// Validate the spec
	if err := validateSpec(&env); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &env, nil
}

// SaveToFile saves an Environment resource to a YAML file.
func SaveToFile(env *v1alpha1.Environment, path string) error {
	// Ensure TypeMeta is set
	v1alpha1.SetDefaultAPIVersion(env)

	data, err := yaml.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal environment to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(env *v1alpha1.Environment) {
	// Set initial phase if not set
	if env.Status.Phase == "" {
		env.Status.Phase = v1alpha1.EnvPhasePending
	}

	// Normalize name and machine names to lowercase
	env.Normalize()
}

// validateSpec validates the Environment spec for required fields and
// consistency. The hand checks carry precise field paths, the struct
// tags catch the remaining shape rules such as address formats.
func validateSpec(env *v1alpha1.Environment) error {
	// Validate metadata.name
	if env.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if err := naming.ValidateMachineName(env.Name); err != nil {
		return fmt.Errorf("metadata.name: %w", err)
	}

	// Validate box
	if env.Spec.Box == "" {
		return fmt.Errorf("spec.box is required")
	}

	// Validate machines
	namesSeen := make(map[string]bool)
	ipsSeen := make(map[string]bool)
	primaries := 0
	for i, machine := range env.Spec.Machines {
		if machine.Name == "" {
			return fmt.Errorf("spec.machines[%d].name is required", i)
		}
		if err := naming.ValidateMachineName(machine.Name); err != nil {
			return fmt.Errorf("spec.machines[%d].name: %w", i, err)
		}
		if namesSeen[machine.Name] {
			return fmt.Errorf("spec.machines[%d].name %q is duplicated", i, machine.Name)
		}
		namesSeen[machine.Name] = true

		if machine.CPUs < 0 {
			return fmt.Errorf("spec.machines[%d].cpus must not be negative", i)
		}
		if machine.MemoryMB < 0 {
			return fmt.Errorf("spec.machines[%d].memoryMB must not be negative", i)
		}

		if machine.Hostname != "" {
			if err := naming.ValidateHostname(machine.Hostname); err != nil {
				return fmt.Errorf("spec.machines[%d].hostname: %w", i, err)
			}
		}

		if machine.PrivateIP != "" {
			if ipsSeen[machine.PrivateIP] {
				return fmt.Errorf("spec.machines[%d].privateIP %q is duplicated", i, machine.PrivateIP)
			}
			ipsSeen[machine.PrivateIP] = true
		}

		if machine.Primary {
			primaries++
		}
	}

	if primaries > 1 {
		return fmt.Errorf("spec.machines declares %d primary machines, at most one is allowed", primaries)
	}

	if err := validate.Struct(env.Spec); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("spec field %s failed %s validation", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("spec validation: %w", err)
	}

	return nil
}
