package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/vagrant"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

// FormatStatuses formats a list of machine statuses as YAML
func (f *YAMLFormatter) FormatStatuses(statuses []vagrant.MachineStatus) (string, error) {
	if len(statuses) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(statuses)
}

// FormatBoxes formats a list of installed boxes as YAML
func (f *YAMLFormatter) FormatBoxes(boxes []vagrant.Box) (string, error) {
	if len(boxes) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(boxes)
}

// FormatPlugins formats a list of installed plugins as YAML
func (f *YAMLFormatter) FormatPlugins(plugins []vagrant.Plugin) (string, error) {
	if len(plugins) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(plugins)
}

// FormatSSHConfig formats an ssh configuration as YAML
func (f *YAMLFormatter) FormatSSHConfig(cfg vagrant.SSHConfig) (string, error) {
	if len(cfg) == 0 {
		return "{}\n", nil
	}
	return marshalYAML(cfg)
}

// FormatSnapshots formats a list of snapshot names as YAML
func (f *YAMLFormatter) FormatSnapshots(snapshots []string) (string, error) {
	if len(snapshots) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(snapshots)
}

// FormatMachineInfos formats a list of merged machine details as YAML
func (f *YAMLFormatter) FormatMachineInfos(infos []fleet.MachineInfo) (string, error) {
	if len(infos) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(infos)
}

// FormatReport formats an environment report as YAML
func (f *YAMLFormatter) FormatReport(report *fleet.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}
	return marshalYAML(report)
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return string(data), nil
}
