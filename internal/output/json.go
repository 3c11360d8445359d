package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/vagrant"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// FormatStatuses formats a list of machine statuses as JSON
func (f *JSONFormatter) FormatStatuses(statuses []vagrant.MachineStatus) (string, error) {
	if len(statuses) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(statuses)
}

// FormatBoxes formats a list of installed boxes as JSON
func (f *JSONFormatter) FormatBoxes(boxes []vagrant.Box) (string, error) {
	if len(boxes) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(boxes)
}

// FormatPlugins formats a list of installed plugins as JSON
func (f *JSONFormatter) FormatPlugins(plugins []vagrant.Plugin) (string, error) {
	if len(plugins) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(plugins)
}

// FormatSSHConfig formats an ssh configuration as JSON
func (f *JSONFormatter) FormatSSHConfig(cfg vagrant.SSHConfig) (string, error) {
	if len(cfg) == 0 {
		return "{}\n", nil
	}
	return marshalJSON(cfg)
}

// FormatSnapshots formats a list of snapshot names as JSON
func (f *JSONFormatter) FormatSnapshots(snapshots []string) (string, error) {
	if len(snapshots) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(snapshots)
}

// FormatMachineInfos formats a list of merged machine details as JSON
func (f *JSONFormatter) FormatMachineInfos(infos []fleet.MachineInfo) (string, error) {
	if len(infos) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(infos)
}

// FormatReport formats an environment report as JSON
func (f *JSONFormatter) FormatReport(report *fleet.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}
	return marshalJSON(report)
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(data) + "\n", nil
}
