// Package output provides formatters for displaying drover results
// in different output formats (table, yaml, json).
package output

import (
	"fmt"

	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/vagrant"
)

// Format represents the output format type
type Format string

const (
	// FormatTable displays output in a human-readable table
	FormatTable Format = "table"
	// FormatYAML displays output as YAML
	FormatYAML Format = "yaml"
	// FormatJSON displays output as JSON
	FormatJSON Format = "json"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	// FormatStatuses formats a list of machine statuses
	FormatStatuses(statuses []vagrant.MachineStatus) (string, error)
	// FormatBoxes formats a list of installed boxes
	FormatBoxes(boxes []vagrant.Box) (string, error)
	// FormatPlugins formats a list of installed plugins
	FormatPlugins(plugins []vagrant.Plugin) (string, error)
	// FormatSSHConfig formats an ssh configuration
	FormatSSHConfig(cfg vagrant.SSHConfig) (string, error)
	// FormatSnapshots formats a list of snapshot names
	FormatSnapshots(snapshots []string) (string, error)
	// FormatMachineInfos formats a list of merged machine details
	FormatMachineInfos(infos []fleet.MachineInfo) (string, error)
	// FormatReport formats an environment report
	FormatReport(report *fleet.Report) (string, error)
}

// Options contains formatting options
type Options struct {
	Format    Format
	NoHeaders bool
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if the given format string is valid
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
