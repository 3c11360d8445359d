package vagrant

import (
	"context"
	"strings"
)

// SandboxStatus is the sandbox mode of a machine as reported by the
// sahara plugin.
type SandboxStatus string

const (
	SandboxOn           SandboxStatus = "on"
	SandboxOff          SandboxStatus = "off"
	SandboxUnknown      SandboxStatus = "unknown"
	SandboxNotInstalled SandboxStatus = "not installed"
)

// Sandbox exposes the sandbox subcommands the sahara plugin adds to
// vagrant. A Sandbox shares the runner and environment directory of
// the Client that created it.
type Sandbox struct {
	dir    string
	runner Runner
}

// Sandbox returns the sandbox capability for this environment. The
// sahara plugin must be installed for its operations to succeed;
// Status reports SandboxNotInstalled when it is missing.
func (c *Client) Sandbox() *Sandbox {
	return &Sandbox{dir: c.dir, runner: c.runner}
}

// On enables sandbox mode for the target machine.
func (s *Sandbox) On(ctx context.Context, target string) error {
	return s.run(ctx, "on", target)
}

// Off disables sandbox mode for the target machine.
func (s *Sandbox) Off(ctx context.Context, target string) error {
	return s.run(ctx, "off", target)
}

// Commit permanently writes the changes made since sandbox mode was
// enabled or last committed.
func (s *Sandbox) Commit(ctx context.Context, target string) error {
	return s.run(ctx, "commit", target)
}

// Rollback reverts the changes made since sandbox mode was enabled or
// last committed.
func (s *Sandbox) Rollback(ctx context.Context, target string) error {
	return s.run(ctx, "rollback", target)
}

// Status reports the sandbox mode of the target machine.
func (s *Sandbox) Status(ctx context.Context, target string) (SandboxStatus, error) {
	output, err := s.runner.Run(ctx, s.dir, "sandbox", "status", target)
	if err != nil {
		return "", err
	}
	return parseSandboxStatus(output), nil
}

func (s *Sandbox) run(ctx context.Context, args ...string) error {
	_, err := s.runner.Run(ctx, s.dir, append([]string{"sandbox"}, args...)...)
	return err
}

// parseSandboxStatus reads sahara's plain-text status line, typically
// "[default] - snapshot mode is off". A machine that is not created
// reports "[default] - machine not created", which maps to unknown.
// Without the plugin, vagrant prints its own usage text instead.
func parseSandboxStatus(output string) SandboxStatus {
	tokens := strings.Fields(output)
	if len(tokens) == 0 {
		return SandboxUnknown
	}
	if tokens[0] == "Usage:" {
		return SandboxNotInstalled
	}
	if len(tokens) >= 2 && tokens[len(tokens)-2] == "not" && tokens[len(tokens)-1] == "created" {
		return SandboxUnknown
	}
	return SandboxStatus(tokens[len(tokens)-1])
}
