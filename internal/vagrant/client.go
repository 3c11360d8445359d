package vagrant

import (
	"context"
	"os"

	"github.com/jbweber/drover/internal/runner"
	"github.com/rs/zerolog"
)

// Runner executes vagrant invocations on behalf of a Client. The
// production implementation is runner.ExecRunner; tests substitute
// their own.
type Runner interface {
	// Run executes vagrant with the given arguments in dir and returns
	// its captured stdout. Empty argument tokens are dropped.
	Run(ctx context.Context, dir string, args ...string) (string, error)

	// Stream executes vagrant with the given arguments in dir and
	// delivers stdout lines to fn in order as they are produced.
	Stream(ctx context.Context, dir string, fn func(line string), args ...string) error
}

// Client is a binding to one vagrant environment: the directory that
// holds its Vagrantfile. All operations run vagrant with that directory
// as the working directory. An empty directory means the current
// working directory of the process.
//
// The Client memoizes parsed ssh configuration per target and
// invalidates it whenever a lifecycle operation changes machine state.
// A Client is safe for concurrent use.
type Client struct {
	dir          string
	runner       Runner
	logger       zerolog.Logger
	statusFormat StatusFormat
	cache        *configCache

	// collected for the default runner built in New
	executable  string
	extraEnv    []string
	quietStderr bool
}

// Option configures a Client.
type Option func(*Client)

// WithRunner substitutes the component that executes vagrant. Intended
// for tests; overrides WithExecutable and WithEnv.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithExecutable sets an explicit path to the vagrant executable for
// the default runner.
func WithExecutable(path string) Option {
	return func(c *Client) {
		c.executable = path
	}
}

// WithEnv appends entries in KEY=VALUE form to the environment of
// every vagrant subprocess.
func WithEnv(env ...string) Option {
	return func(c *Client) {
		c.extraEnv = append(c.extraEnv, env...)
	}
}

// WithLogger sets the logger passed down to the runner.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithQuietStderr controls whether subprocess stderr stays silent.
// Quiet by default; pass false to mirror stderr to the process stderr
// as vagrant produces it, which suits interactive use.
func WithQuietStderr(quiet bool) Option {
	return func(c *Client) {
		c.quietStderr = quiet
	}
}

// WithStatusFormat selects which status output grammar Status parses.
// The default is StatusFormatMachineReadable; use
// StatusFormatForVersion to pick from a probed vagrant version.
func WithStatusFormat(format StatusFormat) Option {
	return func(c *Client) {
		c.statusFormat = format
	}
}

// New creates a Client bound to the environment directory dir.
func New(dir string, opts ...Option) *Client {
	c := &Client{
		dir:          dir,
		logger:       zerolog.Nop(),
		statusFormat: StatusFormatMachineReadable,
		cache:        newConfigCache(),
		quietStderr:  true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.runner == nil {
		ropts := []runner.Option{
			runner.WithExecutable(c.executable),
			runner.WithEnv(c.extraEnv...),
			runner.WithLogger(c.logger),
		}
		if !c.quietStderr {
			ropts = append(ropts, runner.WithStderrMirror(os.Stderr))
		}
		c.runner = runner.New(ropts...)
	}
	return c
}

// Dir returns the environment directory the Client is bound to.
func (c *Client) Dir() string {
	return c.dir
}

// run executes vagrant and discards stdout, for operations whose
// output carries no information beyond success.
func (c *Client) run(ctx context.Context, args ...string) error {
	_, err := c.runner.Run(ctx, c.dir, args...)
	return err
}
