package mcptools

import (
	"context"

	"github.com/jbweber/drover/internal/vagrant"
)

// controller defines the vagrant operations the MCP tools need.
// In production, this is satisfied by *vagrant.Client directly.
// In tests, this is satisfied by mock implementations.
type controller interface {
	// Status reports the state of the machines in the environment
	Status(ctx context.Context, target string) ([]vagrant.MachineStatus, error)
	// Up creates and starts machines
	Up(ctx context.Context, target string, opts *vagrant.UpOptions) error
	// Halt stops machines
	Halt(ctx context.Context, target string, force bool) error
	// Destroy stops machines and deletes their provider resources
	Destroy(ctx context.Context, target string) error
	// BoxList reports the boxes installed on the host
	BoxList(ctx context.Context) ([]vagrant.Box, error)
	// PluginList reports the plugins installed into vagrant
	PluginList(ctx context.Context) ([]vagrant.Plugin, error)
	// SSHConfig reads the generated ssh settings of a machine
	SSHConfig(ctx context.Context, target string) (vagrant.SSHConfig, error)
	// SnapshotList reports the snapshots of the environment
	SnapshotList(ctx context.Context) ([]string, error)
	// Version reports the vagrant binary version
	Version(ctx context.Context) (string, error)
}

// Factory builds a vagrant controller bound to an environment
// directory. The drover-mcp binary supplies one that constructs
// *vagrant.Client with the configured options.
type Factory func(dir string) controller

// NewClientFactory adapts a vagrant client constructor into a Factory.
func NewClientFactory(opts ...vagrant.Option) Factory {
	return func(dir string) controller {
		return vagrant.New(dir, opts...)
	}
}
