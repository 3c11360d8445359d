package fleet

import (
	"context"

	"github.com/jbweber/drover/internal/vagrant"
)

// machineClient defines the vagrant operations needed for environment
// management. This wraps operations from *vagrant.Client to allow for
// testing.
//
// In production, this is satisfied by *vagrant.Client directly.
// In tests, this is satisfied by mock implementations.
type machineClient interface {
	// Up creates and starts machines, every machine when target is empty
	Up(ctx context.Context, target string, opts *vagrant.UpOptions) error

	// Halt stops machines, forcefully when force is set
	Halt(ctx context.Context, target string, force bool) error

	// Destroy stops and deletes machines
	Destroy(ctx context.Context, target string) error

	// Status reports the state of every machine in the environment
	Status(ctx context.Context, target string) ([]vagrant.MachineStatus, error)

	// BoxList returns the boxes installed on this host
	BoxList(ctx context.Context) ([]vagrant.Box, error)

	// BoxAdd installs a box by name, from url when url is non-empty
	BoxAdd(ctx context.Context, name, url string, opts *vagrant.BoxAddOptions) error
}

// sandboxer defines the sandbox operations needed during bring-up.
// This allows for dependency injection and testing.
//
// In production, this is satisfied by *vagrant.Sandbox.
// In tests, this is satisfied by mock implementations.
type sandboxer interface {
	// On enables sandbox mode so later changes can be rolled back
	On(ctx context.Context, target string) error
}
