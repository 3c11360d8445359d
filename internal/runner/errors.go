package runner

import (
	"fmt"
	"strings"
)

// ExecutableNotFoundError reports that the vagrant executable could not
// be located. It is returned before any subprocess is started, so
// callers can distinguish a missing installation from a failed command.
type ExecutableNotFoundError struct {
	// Name is the executable name that was searched for.
	Name string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("the %s executable cannot be found; check that it is in the system path", e.Name)
}

// CommandError reports a vagrant invocation that exited non-zero. The
// captured stderr is preserved in full for diagnosis; the message keeps
// it trimmed to a single block.
type CommandError struct {
	// Args is the filtered argument vector that was executed.
	Args []string

	// ExitCode is the subprocess exit code, -1 if killed by a signal.
	ExitCode int

	// Stderr is everything the subprocess wrote to stderr.
	Stderr string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("vagrant %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}
