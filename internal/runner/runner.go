// Package runner executes the vagrant CLI as a subprocess and turns its
// exit conditions into typed errors.
//
// The runner is deliberately thin: it resolves the executable, builds
// the argument vector, captures output, and reports failures. It knows
// nothing about what the output means; parsing lives with the callers.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultExecutable is the name searched for on PATH when no
	// explicit executable path is configured.
	DefaultExecutable = "vagrant"

	// EnvExecutable overrides the executable path without code changes.
	EnvExecutable = "DROVER_VAGRANT"
)

// maxStreamLine bounds scanner token size while streaming. Provisioner
// output can produce very long lines.
const maxStreamLine = 1024 * 1024

// pipeWaitDelay bounds how long Wait keeps the output pipes open after
// the vagrant process exits or is killed. Provider processes vagrant
// spawns can inherit the pipes and outlive it.
const pipeWaitDelay = 5 * time.Second

// ExecRunner runs vagrant commands as subprocesses. The executable path
// is resolved lazily on first use and cached for the lifetime of the
// runner; construct a new runner to re-resolve.
type ExecRunner struct {
	executable   string
	extraEnv     []string
	logger       zerolog.Logger
	stderrMirror io.Writer

	resolveOnce sync.Once
	resolved    string
	resolveErr  error
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithExecutable sets an explicit path to the vagrant executable,
// bypassing the PATH search.
func WithExecutable(path string) Option {
	return func(r *ExecRunner) {
		r.executable = path
	}
}

// WithEnv appends entries in KEY=VALUE form to the subprocess
// environment. The parent environment is always inherited.
func WithEnv(env ...string) Option {
	return func(r *ExecRunner) {
		r.extraEnv = append(r.extraEnv, env...)
	}
}

// WithLogger sets the logger used for per-invocation debug logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// WithStderrMirror additionally copies subprocess stderr to w as it is
// produced. Stderr is still captured for error reporting either way.
func WithStderrMirror(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.stderrMirror = w
	}
}

// New creates an ExecRunner with the given options.
func New(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Executable returns the resolved path to the vagrant executable.
// Resolution order: explicit WithExecutable path, the DROVER_VAGRANT
// environment variable, then a PATH search for "vagrant". The result is
// cached after the first call.
func (r *ExecRunner) Executable() (string, error) {
	r.resolveOnce.Do(func() {
		if r.executable != "" {
			r.resolved = r.executable
			return
		}
		if env := os.Getenv(EnvExecutable); env != "" {
			r.resolved = env
			return
		}
		path, err := exec.LookPath(DefaultExecutable)
		if err != nil {
			r.resolveErr = &ExecutableNotFoundError{Name: DefaultExecutable}
			return
		}
		r.resolved = path
	})
	return r.resolved, r.resolveErr
}

// Run executes vagrant with the given arguments in dir and returns its
// captured stdout. Empty argument tokens are dropped, so callers can
// pass optional values unconditionally. A non-zero exit produces a
// *CommandError; a missing executable produces a
// *ExecutableNotFoundError before any subprocess starts.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	exe, err := r.Executable()
	if err != nil {
		return "", err
	}

	filtered := filterArgs(args)
	cmd := exec.CommandContext(ctx, exe, filtered...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), r.extraEnv...)
	cmd.WaitDelay = pipeWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.stderrWriter(&stderr)

	runID := uuid.NewString()
	start := time.Now()
	r.logger.Debug().
		Str("run_id", runID).
		Str("dir", dir).
		Strs("args", filtered).
		Msg("running vagrant")

	runErr := cmd.Run()

	r.logger.Debug().
		Str("run_id", runID).
		Dur("elapsed", time.Since(start)).
		Int("exit_code", exitCode(cmd)).
		Msg("vagrant finished")

	if runErr != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", commandError(filtered, stderr.String(), runErr)
	}
	return stdout.String(), nil
}

// Stream executes vagrant with the given arguments in dir and delivers
// each stdout line to fn as it is produced, in order and without the
// trailing newline. Stderr is captured for error reporting. Stream
// blocks until the subprocess exits or ctx is canceled.
func (r *ExecRunner) Stream(ctx context.Context, dir string, fn func(line string), args ...string) error {
	exe, err := r.Executable()
	if err != nil {
		return err
	}

	filtered := filterArgs(args)
	cmd := exec.CommandContext(ctx, exe, filtered...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), r.extraEnv...)
	cmd.WaitDelay = pipeWaitDelay

	var stderr bytes.Buffer
	cmd.Stderr = r.stderrWriter(&stderr)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	runID := uuid.NewString()
	start := time.Now()
	r.logger.Debug().
		Str("run_id", runID).
		Str("dir", dir).
		Strs("args", filtered).
		Msg("streaming vagrant")

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start vagrant: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	scanErr := scanner.Err()
	waitErr := cmd.Wait()

	r.logger.Debug().
		Str("run_id", runID).
		Dur("elapsed", time.Since(start)).
		Int("exit_code", exitCode(cmd)).
		Msg("vagrant finished")

	if waitErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return commandError(filtered, stderr.String(), waitErr)
	}
	if scanErr != nil {
		return fmt.Errorf("failed to read vagrant output: %w", scanErr)
	}
	return nil
}

// stderrWriter wires the capture buffer, fanning out to the mirror
// when one is configured.
func (r *ExecRunner) stderrWriter(buf *bytes.Buffer) io.Writer {
	if r.stderrMirror != nil {
		return io.MultiWriter(buf, r.stderrMirror)
	}
	return buf
}

// filterArgs drops empty tokens so optional arguments can be passed
// unconditionally. An empty target name quietly disappears from the
// final invocation, matching how single-machine environments omit it.
func filterArgs(args []string) []string {
	filtered := make([]string, 0, len(args))
	for _, arg := range args {
		if arg != "" {
			filtered = append(filtered, arg)
		}
	}
	return filtered
}

// exitCode returns the subprocess exit code, or -1 if the process
// never ran or was killed by a signal.
func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

// commandError builds a *CommandError from a failed invocation,
// extracting the exit code when the process actually ran.
func commandError(args []string, stderr string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
		}
	}
	return fmt.Errorf("failed to run vagrant %s: %w", strings.Join(args, " "), err)
}
