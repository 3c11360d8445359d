package fleet

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jbweber/drover/api/v1alpha1"
	"github.com/jbweber/drover/internal/loader"
	"github.com/jbweber/drover/internal/vagrant"
	"github.com/jbweber/drover/internal/vagrantfile"
)

// Up brings the environment described by the manifest at manifestPath
// up: it renders the Vagrantfile, installs any missing boxes, starts
// every machine and reports the resulting state.
func (m *Manager) Up(ctx context.Context, manifestPath string) (*Report, error) {
	env, err := loader.LoadFromFile(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := ResolveDir(manifestPath, env)

	client := vagrant.New(dir, m.clientOpts...)
	return m.upWithDeps(ctx, env, dir, client, client.Sandbox())
}

// upWithDeps is the core implementation with injected dependencies.
func (m *Manager) upWithDeps(ctx context.Context, env *v1alpha1.Environment, dir string, mc machineClient, sb sandboxer) (*Report, error) {
	logger := m.logger.With().Str("environment", env.GetName()).Logger()
	logger.Info().Str("dir", dir).Msg("bringing environment up")

	if err := vagrantfile.Write(env, dir); err != nil {
		return nil, fmt.Errorf("failed to render Vagrantfile for environment %s: %w", env.GetName(), err)
	}

	if err := m.ensureBoxes(ctx, logger, mc, env); err != nil {
		return nil, err
	}

	opts := &vagrant.UpOptions{
		Provider:      env.Spec.Provider,
		Provision:     env.Spec.Provision.Run,
		ProvisionWith: env.Spec.Provision.With,
	}
	logger.Info().Msg("starting machines")
	if err := mc.Up(ctx, "", opts); err != nil {
		return nil, fmt.Errorf("failed to bring environment %s up: %w", env.GetName(), err)
	}

	if env.Spec.Sandbox {
		logger.Info().Msg("enabling sandbox mode")
		if err := sb.On(ctx, ""); err != nil {
			return nil, fmt.Errorf("failed to enable sandbox mode for environment %s: %w", env.GetName(), err)
		}
	}

	statuses, err := mc.Status(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read status of environment %s: %w", env.GetName(), err)
	}

	report := reportFor(env, dir, statuses)
	logger.Info().Str("phase", string(report.Phase)).Msg("environment up")
	return report, nil
}

// boxRef names one box an environment depends on, with the download
// url for the environment's default box.
type boxRef struct {
	name string
	url  string
}

// ensureBoxes installs the boxes the manifest references that are not
// yet present on the host. The environment's default box honors boxURL
// and the configured provider; per-machine override boxes are fetched
// from the public catalog by name.
func (m *Manager) ensureBoxes(ctx context.Context, logger zerolog.Logger, mc machineClient, env *v1alpha1.Environment) error {
	boxes, err := mc.BoxList(ctx)
	if err != nil {
		return fmt.Errorf("failed to list boxes: %w", err)
	}
	installed := make(map[string]bool, len(boxes))
	for _, b := range boxes {
		installed[b.Name] = true
	}

	refs := []boxRef{{name: env.Spec.Box, url: env.Spec.BoxURL}}
	for _, machine := range env.Spec.Machines {
		if machine.Box != "" {
			refs = append(refs, boxRef{name: machine.Box})
		}
	}

	for _, ref := range refs {
		if installed[ref.name] {
			continue
		}
		logger.Info().Str("box", ref.name).Msg("adding missing box")

		// --provider is a catalog constraint, invalid alongside a
		// direct url.
		var opts *vagrant.BoxAddOptions
		if ref.url == "" && env.Spec.Provider != "" {
			opts = &vagrant.BoxAddOptions{Provider: env.Spec.Provider}
		}
		if err := mc.BoxAdd(ctx, ref.name, ref.url, opts); err != nil {
			return fmt.Errorf("failed to add box %s: %w", ref.name, err)
		}
		installed[ref.name] = true
	}
	return nil
}
