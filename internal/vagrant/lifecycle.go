package vagrant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`(?m)^Vagrant (.+)$`)

// Version returns the installed vagrant version, e.g. "2.4.1".
func (c *Client) Version(ctx context.Context) (string, error) {
	output, err := c.runner.Run(ctx, c.dir, "--version")
	if err != nil {
		return "", err
	}
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", &ParseError{Line: firstLine(output), Output: output}
	}
	return strings.TrimRight(m[1], "\r"), nil
}

// Init writes a Vagrantfile into the environment directory. Both
// arguments may be empty, in which case vagrant fills its defaults.
func (c *Client) Init(ctx context.Context, boxName, boxURL string) error {
	return c.run(ctx, "init", boxName, boxURL)
}

// UpOptions control Up and UpStream. The zero value adds no flags.
type UpOptions struct {
	// Provider selects the backing provider, e.g. "virtualbox".
	Provider string

	// Provision forces provisioners to run (true) or not run (false).
	// Nil leaves the decision to vagrant.
	Provision *bool

	// ProvisionWith restricts provisioning to the named provisioners.
	ProvisionWith []string
}

func (o *UpOptions) args() []string {
	if o == nil {
		return nil
	}
	args := provisionArgs(o.Provision, o.ProvisionWith)
	if o.Provider != "" {
		args = append(args, "--provider="+o.Provider)
	}
	return args
}

// ReloadOptions control Reload and ReloadStream. The zero value adds
// no flags.
type ReloadOptions struct {
	// Provision forces provisioners to run (true) or not run (false).
	// Nil leaves the decision to vagrant.
	Provision *bool

	// ProvisionWith restricts provisioning to the named provisioners.
	ProvisionWith []string
}

func (o *ReloadOptions) args() []string {
	if o == nil {
		return nil
	}
	return provisionArgs(o.Provision, o.ProvisionWith)
}

func provisionArgs(provision *bool, provisionWith []string) []string {
	var args []string
	if provision != nil {
		if *provision {
			args = append(args, "--provision")
		} else {
			args = append(args, "--no-provision")
		}
	}
	if len(provisionWith) > 0 {
		args = append(args, "--provision-with", strings.Join(provisionWith, ","))
	}
	return args
}

// Up creates and starts machines. An empty target means every machine
// in the environment. Cached ssh configuration for the target is
// invalidated whether or not the command succeeds.
func (c *Client) Up(ctx context.Context, target string, opts *UpOptions) error {
	defer c.invalidateConf(target)
	args := append([]string{"up", target}, opts.args()...)
	return c.run(ctx, args...)
}

// UpStream is Up with the raw output delivered line by line to fn as
// vagrant produces it.
func (c *Client) UpStream(ctx context.Context, target string, fn func(line string), opts *UpOptions) error {
	defer c.invalidateConf(target)
	args := append([]string{"up", target}, opts.args()...)
	return c.runner.Stream(ctx, c.dir, fn, args...)
}

// Provision runs provisioners on already-running machines, restricted
// to the named provisioners when any are given.
func (c *Client) Provision(ctx context.Context, target string, provisionWith ...string) error {
	args := []string{"provision", target}
	if len(provisionWith) > 0 {
		args = append(args, "--provision-with", strings.Join(provisionWith, ","))
	}
	return c.run(ctx, args...)
}

// Reload halts and restarts machines, picking up Vagrantfile changes.
// Cached ssh configuration for the target is invalidated.
func (c *Client) Reload(ctx context.Context, target string, opts *ReloadOptions) error {
	defer c.invalidateConf(target)
	args := append([]string{"reload", target}, opts.args()...)
	return c.run(ctx, args...)
}

// ReloadStream is Reload with the raw output delivered line by line to
// fn as vagrant produces it.
func (c *Client) ReloadStream(ctx context.Context, target string, fn func(line string), opts *ReloadOptions) error {
	defer c.invalidateConf(target)
	args := append([]string{"reload", target}, opts.args()...)
	return c.runner.Stream(ctx, c.dir, fn, args...)
}

// Suspend saves machine state to disk and stops it. Cached ssh
// configuration for the target is invalidated.
func (c *Client) Suspend(ctx context.Context, target string) error {
	defer c.invalidateConf(target)
	return c.run(ctx, "suspend", target)
}

// Resume starts suspended machines. Cached ssh configuration for the
// target is invalidated.
func (c *Client) Resume(ctx context.Context, target string) error {
	defer c.invalidateConf(target)
	return c.run(ctx, "resume", target)
}

// Halt stops machines. Force skips the guest's graceful shutdown.
// Cached ssh configuration for the target is invalidated.
func (c *Client) Halt(ctx context.Context, target string, force bool) error {
	defer c.invalidateConf(target)
	args := []string{"halt", target}
	if force {
		args = append(args, "--force")
	}
	return c.run(ctx, args...)
}

// Destroy stops and deletes machines. The confirmation prompt is
// always bypassed, as a non-interactive binding cannot answer it.
// Cached ssh configuration for the target is invalidated.
func (c *Client) Destroy(ctx context.Context, target string) error {
	defer c.invalidateConf(target)
	return c.run(ctx, "destroy", target, "--force")
}

// invalidateConf drops cached ssh configuration after an operation
// that changes machine state. An empty target can affect every machine
// in the environment, so it clears the whole cache.
func (c *Client) invalidateConf(target string) {
	if target == "" {
		c.cache.invalidateAll()
		return
	}
	c.cache.invalidate(target)
}

// PackageOptions control Package. The zero value adds no flags.
type PackageOptions struct {
	// Output is the path of the box file to write.
	Output string

	// Vagrantfile is a Vagrantfile to embed in the box.
	Vagrantfile string
}

func (o *PackageOptions) args() []string {
	if o == nil {
		return nil
	}
	var args []string
	if o.Output != "" {
		args = append(args, "--output", o.Output)
	}
	if o.Vagrantfile != "" {
		args = append(args, "--vagrantfile", o.Vagrantfile)
	}
	return args
}

// Package exports a halted machine as a reusable box.
func (c *Client) Package(ctx context.Context, target string, opts *PackageOptions) error {
	args := append([]string{"package", target}, opts.args()...)
	return c.run(ctx, args...)
}

// SSH executes command on the target machine over ssh and returns its
// output. The command must be non-empty.
func (c *Client) SSH(ctx context.Context, target, command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("ssh requires a command to execute")
	}
	return c.runner.Run(ctx, c.dir, "ssh", target, "--command", command)
}

// Validate checks the Vagrantfile in the environment directory.
func (c *Client) Validate(ctx context.Context) error {
	return c.run(ctx, "validate")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
