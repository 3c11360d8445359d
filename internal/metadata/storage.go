// Package metadata reads the machine state vagrant persists under an
// environment's .vagrant directory. This is the same data vagrant
// consults itself, so it is available without spawning a subprocess,
// including for machines that are currently halted.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// VagrantDirName is the directory vagrant maintains next to the
	// Vagrantfile.
	VagrantDirName = ".vagrant"

	// machinesSubdir holds one directory per machine name, each with
	// one directory per provider.
	machinesSubdir = "machines"
)

// MachineRecord is the on-disk identity of one machine, assembled from
// the files vagrant writes under
// .vagrant/machines/<name>/<provider>/. Fields are empty when vagrant
// has not written the corresponding file.
type MachineRecord struct {
	// Name is the machine name, taken from the directory layout.
	Name string `json:"name" yaml:"name"`

	// Provider is the provider directory the record came from.
	Provider string `json:"provider" yaml:"provider"`

	// ID is the provider-specific machine identifier, e.g. a
	// VirtualBox UUID or a libvirt domain name.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// IndexUUID identifies the machine in vagrant's global index.
	IndexUUID string `json:"index_uuid,omitempty" yaml:"index_uuid,omitempty"`

	// CreatorUID is the uid of the user that created the machine.
	CreatorUID string `json:"creator_uid,omitempty" yaml:"creator_uid,omitempty"`

	// VagrantCwd is the environment directory recorded at creation
	// time.
	VagrantCwd string `json:"vagrant_cwd,omitempty" yaml:"vagrant_cwd,omitempty"`
}

// Created reports whether vagrant has recorded a provider identifier
// for the machine. Destroyed machines keep their directory but lose
// the id file.
func (r *MachineRecord) Created() bool {
	return r.ID != ""
}

func machinesDir(dir string) string {
	return filepath.Join(dir, VagrantDirName, machinesSubdir)
}

// Load reads the metadata for one machine under the given environment
// directory.
func Load(dir, name, provider string) (*MachineRecord, error) {
	machineDir := filepath.Join(machinesDir(dir), name, provider)
	info, err := os.Stat(machineDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine metadata: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("machine metadata path %s is not a directory", machineDir)
	}

	return &MachineRecord{
		Name:       name,
		Provider:   provider,
		ID:         readValue(machineDir, "id"),
		IndexUUID:  readValue(machineDir, "index_uuid"),
		CreatorUID: readValue(machineDir, "creator_uid"),
		VagrantCwd: readValue(machineDir, "vagrant_cwd"),
	}, nil
}

// List reads the metadata of every machine vagrant has recorded under
// the given environment directory. An environment that has never been
// booted has no .vagrant directory; that is an empty result, not an
// error. Records come back sorted by name, then provider.
func List(dir string) ([]MachineRecord, error) {
	names, err := os.ReadDir(machinesDir(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return []MachineRecord{}, nil
		}
		return nil, fmt.Errorf("failed to list machine metadata: %w", err)
	}

	records := []MachineRecord{}
	for _, nameEntry := range names {
		if !nameEntry.IsDir() {
			continue
		}
		providers, err := os.ReadDir(filepath.Join(machinesDir(dir), nameEntry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to list providers for machine %s: %w", nameEntry.Name(), err)
		}
		for _, providerEntry := range providers {
			if !providerEntry.IsDir() {
				continue
			}
			record, err := Load(dir, nameEntry.Name(), providerEntry.Name())
			if err != nil {
				return nil, err
			}
			records = append(records, *record)
		}
	}
	return records, nil
}

// readValue reads one metadata file as a trimmed string, empty when
// the file is absent or unreadable.
func readValue(machineDir, file string) string {
	data, err := os.ReadFile(filepath.Join(machineDir, file))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
