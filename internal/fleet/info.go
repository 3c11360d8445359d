package fleet

import (
	"context"
	"fmt"

	"github.com/jbweber/drover/internal/metadata"
	"github.com/jbweber/drover/internal/status"
	"github.com/jbweber/drover/internal/vagrant"
)

// MachineInfo merges the live state of one machine with the identity
// vagrant recorded for it on disk.
type MachineInfo struct {
	// Name is the machine name.
	Name string `json:"name" yaml:"name"`

	// State is the machine state, empty when vagrant did not report
	// the machine.
	State status.State `json:"state,omitempty" yaml:"state,omitempty"`

	// Provider backs the machine.
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// ID is the provider-specific machine identifier, empty until the
	// machine is first created.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// IndexUUID identifies the machine in vagrant's global index.
	IndexUUID string `json:"index_uuid,omitempty" yaml:"index_uuid,omitempty"`
}

// Info reports every machine in the environment directory dir, merging
// live vagrant status with the metadata vagrant keeps under .vagrant/.
func (m *Manager) Info(ctx context.Context, dir string) ([]MachineInfo, error) {
	client := vagrant.New(dir, m.clientOpts...)
	return m.infoWithDeps(ctx, dir, client)
}

// infoWithDeps is the core implementation with injected dependencies.
func (m *Manager) infoWithDeps(ctx context.Context, dir string, mc machineClient) ([]MachineInfo, error) {
	statuses, err := mc.Status(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read status of %s: %w", dir, err)
	}

	records, err := metadata.List(dir)
	if err != nil {
		// Best effort, live status alone is still an answer.
		m.logger.Warn().Err(err).Str("dir", dir).Msg("failed to read machine metadata")
		records = nil
	}

	byNameProvider := make(map[string]metadata.MachineRecord, len(records))
	byName := make(map[string]metadata.MachineRecord, len(records))
	for _, r := range records {
		byNameProvider[r.Name+"/"+r.Provider] = r
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = r
		}
	}

	infos := make([]MachineInfo, 0, len(statuses))
	merged := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		info := MachineInfo{
			Name:     s.Name,
			State:    s.State,
			Provider: s.Provider,
		}
		record, ok := byNameProvider[s.Name+"/"+s.Provider]
		if !ok {
			record, ok = byName[s.Name]
		}
		if ok {
			info.ID = record.ID
			info.IndexUUID = record.IndexUUID
			if info.Provider == "" {
				info.Provider = record.Provider
			}
			merged[record.Name] = true
		}
		infos = append(infos, info)
	}

	// Machines recorded on disk can outlive the Vagrantfile that
	// declared them.
	for _, r := range records {
		if merged[r.Name] {
			continue
		}
		m.logger.Warn().
			Str("machine", r.Name).
			Msg("machine recorded on disk but missing from vagrant status")
		infos = append(infos, MachineInfo{
			Name:      r.Name,
			Provider:  r.Provider,
			ID:        r.ID,
			IndexUUID: r.IndexUUID,
		})
		merged[r.Name] = true
	}
	return infos, nil
}
