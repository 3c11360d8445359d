package vagrant

import (
	"context"
	"strconv"
	"strings"

	"github.com/jbweber/drover/internal/status"
)

// MachineStatus is the observed state of one machine in an
// environment, as reported by `vagrant status`.
type MachineStatus struct {
	// Name is the machine name, "default" in single-machine
	// environments.
	Name string `json:"name" yaml:"name"`

	// State is the machine state, normalized across providers.
	State status.State `json:"state" yaml:"state"`

	// Provider backs the machine, e.g. "virtualbox". Empty when
	// vagrant reports none.
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// StatusFormat selects which status output grammar the Client parses.
// The format is always chosen explicitly; the parsers never sniff the
// output shape.
type StatusFormat string

const (
	// StatusFormatMachineReadable parses the CSV-style output of
	// `vagrant status --machine-readable`, available since vagrant 1.4.
	StatusFormatMachineReadable StatusFormat = "machine-readable"

	// StatusFormatLegacy parses the positional plain-text listing that
	// releases before 1.4 produce.
	StatusFormatLegacy StatusFormat = "legacy"
)

// StatusFormatForVersion returns the status format a vagrant release
// emits. Versions below 1.4 lack --machine-readable support. An
// unparseable version string selects the machine-readable format.
func StatusFormatForVersion(version string) StatusFormat {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	if len(parts) < 2 {
		return StatusFormatMachineReadable
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return StatusFormatMachineReadable
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return StatusFormatMachineReadable
	}
	if major < 1 || (major == 1 && minor < 4) {
		return StatusFormatLegacy
	}
	return StatusFormatMachineReadable
}

// Status returns the status of every machine in the environment, or of
// a single target when target is non-empty. An empty environment
// yields an empty slice, never an error.
func (c *Client) Status(ctx context.Context, target string) ([]MachineStatus, error) {
	args := []string{"status", "--machine-readable", target}
	if c.statusFormat == StatusFormatLegacy {
		args = []string{"status", target}
	}

	output, err := c.runner.Run(ctx, c.dir, args...)
	if err != nil {
		return nil, err
	}
	return c.decoder().decode(output)
}

func (c *Client) decoder() statusDecoder {
	if c.statusFormat == StatusFormatLegacy {
		return legacyStatusDecoder{}
	}
	return machineReadableStatusDecoder{}
}

// statusDecoder turns raw `vagrant status` output into statuses. Both
// grammars implement it; the Client picks one by its configured
// StatusFormat.
type statusDecoder interface {
	decode(output string) ([]MachineStatus, error)
}

// machineReadableStatusDecoder parses the CSV-style machine-readable
// grammar. Records for a machine arrive contiguously, so grouping is a
// single forward scan; within a group the last value of a repeated
// kind wins.
type machineReadableStatusDecoder struct{}

func (machineReadableStatusDecoder) decode(output string) ([]MachineStatus, error) {
	records, err := decodeMachineReadable(output)
	if err != nil {
		return nil, err
	}

	statuses := []MachineStatus{}
	for i := 0; i < len(records); {
		target := records[i].target
		info := make(map[string]string)
		j := i
		for j < len(records) && records[j].target == target {
			info[records[j].kind] = records[j].data
			j++
		}
		i = j

		provider := info["provider-name"]
		statuses = append(statuses, MachineStatus{
			Name:     target,
			State:    status.Normalize(status.State(info["state"]), provider),
			Provider: provider,
		})
	}
	return statuses, nil
}

// legacyStatusDecoder parses the pre-1.4 plain-text listing:
//
//	Current machine states:
//
//	web                      running (virtualbox)
//	db                       not created (virtualbox)
//
//	This environment represents multiple VMs...
//
// Machine lines sit between the header and the first following blank
// line. The provider is the trailing parenthesized token when present;
// everything between the name and the provider is the state. Spaces in
// legacy state names become underscores so both grammars report the
// same tokens.
type legacyStatusDecoder struct{}

func (legacyStatusDecoder) decode(output string) ([]MachineStatus, error) {
	lines := strings.Split(output, "\n")

	i := 0
	for ; i < len(lines); i++ {
		if strings.HasSuffix(strings.TrimSpace(lines[i]), ":") {
			i++
			break
		}
	}
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}

	statuses := []MachineStatus{}
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			break
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			return nil, &ParseError{Line: lines[i], Output: output}
		}

		name := fields[0]
		rest := fields[1:]
		provider := ""
		if last := rest[len(rest)-1]; strings.HasPrefix(last, "(") && strings.HasSuffix(last, ")") {
			provider = strings.TrimSuffix(strings.TrimPrefix(last, "("), ")")
			rest = rest[:len(rest)-1]
		}

		state := strings.ReplaceAll(strings.Join(rest, " "), " ", "_")
		statuses = append(statuses, MachineStatus{
			Name:     name,
			State:    status.Normalize(status.State(state), provider),
			Provider: provider,
		})
	}
	return statuses, nil
}
