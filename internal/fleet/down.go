package fleet

import (
	"context"
	"fmt"

	"github.com/jbweber/drover/api/v1alpha1"
	"github.com/jbweber/drover/internal/loader"
	"github.com/jbweber/drover/internal/vagrant"
)

// Down stops the environment described by the manifest at
// manifestPath. With destroy set the machines are deleted instead of
// halted.
func (m *Manager) Down(ctx context.Context, manifestPath string, destroy bool) (*Report, error) {
	env, err := loader.LoadFromFile(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := ResolveDir(manifestPath, env)

	client := vagrant.New(dir, m.clientOpts...)
	return m.downWithDeps(ctx, env, dir, destroy, client)
}

// downWithDeps is the core implementation with injected dependencies.
func (m *Manager) downWithDeps(ctx context.Context, env *v1alpha1.Environment, dir string, destroy bool, mc machineClient) (*Report, error) {
	logger := m.logger.With().Str("environment", env.GetName()).Logger()

	if destroy {
		logger.Info().Str("dir", dir).Msg("destroying environment")
		if err := mc.Destroy(ctx, ""); err != nil {
			return nil, fmt.Errorf("failed to destroy environment %s: %w", env.GetName(), err)
		}
	} else {
		logger.Info().Str("dir", dir).Msg("halting environment")
		if err := mc.Halt(ctx, "", false); err != nil {
			return nil, fmt.Errorf("failed to halt environment %s: %w", env.GetName(), err)
		}
	}

	statuses, err := mc.Status(ctx, "")
	if err != nil {
		// Best effort, the state change itself already succeeded.
		logger.Warn().Err(err).Msg("failed to read status after shutdown")
		phase := v1alpha1.EnvPhaseStopped
		if destroy {
			phase = v1alpha1.EnvPhasePending
		}
		env.SetPhase(phase)
		env.UpdateObservedGeneration()
		return &Report{Name: env.GetName(), Dir: dir, Phase: phase}, nil
	}

	report := reportFor(env, dir, statuses)
	logger.Info().Str("phase", string(report.Phase)).Msg("environment down")
	return report, nil
}
