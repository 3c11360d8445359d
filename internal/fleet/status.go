package fleet

import (
	"context"
	"fmt"

	"github.com/jbweber/drover/api/v1alpha1"
	"github.com/jbweber/drover/internal/loader"
	"github.com/jbweber/drover/internal/status"
	"github.com/jbweber/drover/internal/vagrant"
)

// Status reports the state of every machine in the environment
// described by the manifest at manifestPath. Machines the manifest
// declares that vagrant does not know about are reported as not
// created.
func (m *Manager) Status(ctx context.Context, manifestPath string) (*Report, error) {
	env, err := loader.LoadFromFile(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := ResolveDir(manifestPath, env)

	client := vagrant.New(dir, m.clientOpts...)
	return m.statusWithDeps(ctx, env, dir, client)
}

// statusWithDeps is the core implementation with injected dependencies.
func (m *Manager) statusWithDeps(ctx context.Context, env *v1alpha1.Environment, dir string, mc machineClient) (*Report, error) {
	statuses, err := mc.Status(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read status of environment %s: %w", env.GetName(), err)
	}

	// A stale Vagrantfile can trail the manifest; machines vagrant has
	// never heard of are still part of the declared environment.
	seen := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		seen[s.Name] = true
	}
	for _, name := range env.MachineNames() {
		if seen[name] {
			continue
		}
		m.logger.Warn().
			Str("environment", env.GetName()).
			Str("machine", name).
			Msg("machine missing from vagrant status, reporting as not created")
		statuses = append(statuses, vagrant.MachineStatus{
			Name:  name,
			State: status.StateNotCreated,
		})
	}

	return reportFor(env, dir, statuses), nil
}
