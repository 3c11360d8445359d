package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jbweber/drover/internal/config"
	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/output"
	"github.com/jbweber/drover/internal/vagrant"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drover",
	Short: "Drover - Vagrant environment management tool",
	Long: `Drover is a CLI wrapper around the vagrant command line tool.

It provides commands to control vagrant machines, inspect their state,
and drive whole multi-machine environments from declarative YAML
manifests.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

var (
	cfgPath      string
	envDir       string
	outputFormat string
	noHeaders    bool
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the drover config file")
	rootCmd.PersistentFlags().StringVarP(&envDir, "dir", "C", ".", "Vagrant environment directory")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format (table, yaml, json)")
	rootCmd.PersistentFlags().BoolVar(&noHeaders, "no-headers", false, "Omit table headers")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log vagrant invocations to stderr")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(haltCmd)
	rootCmd.AddCommand(suspendCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(sshConfigCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(boxCmd)
	rootCmd.AddCommand(pluginCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(sandboxCmd)
	rootCmd.AddCommand(envCmd)
}

// newLogger returns the logger shared by all commands. Quiet unless
// --verbose is set.
func newLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// clientOptions translates the tool configuration into vagrant client
// options.
func clientOptions(cfg *config.ToolConfig) []vagrant.Option {
	opts := []vagrant.Option{
		vagrant.WithLogger(newLogger()),
		vagrant.WithQuietStderr(cfg.QuietStderrOrDefault()),
	}
	if cfg.Vagrant.Executable != "" {
		opts = append(opts, vagrant.WithExecutable(cfg.Vagrant.Executable))
	}
	if env := cfg.PassthroughEnv(); len(env) > 0 {
		opts = append(opts, vagrant.WithEnv(env...))
	}
	return opts
}

// newClient builds a vagrant client for the --dir environment.
func newClient() (*vagrant.Client, *config.ToolConfig, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return vagrant.New(envDir, clientOptions(cfg)...), cfg, nil
}

// newManager builds a fleet manager for manifest-driven commands.
func newManager() (*fleet.Manager, *config.ToolConfig, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	mgr := fleet.NewManager(
		fleet.WithLogger(newLogger()),
		fleet.WithClientOptions(clientOptions(cfg)...),
	)
	return mgr, cfg, nil
}

// newFormatter builds the output formatter, letting the -o flag win
// over the configured default.
func newFormatter(cfg *config.ToolConfig) (output.Formatter, error) {
	format := outputFormat
	if format == "" {
		format = cfg.Output.Format
	}
	if err := output.ValidateFormat(format); err != nil {
		return nil, err
	}
	return output.NewFormatter(output.Options{
		Format:    output.Format(format),
		NoHeaders: noHeaders || cfg.Output.NoHeaders,
	})
}

// resolveProvider prefers the command's --provider flag over the
// configured default.
func resolveProvider(flagValue string, cfg *config.ToolConfig) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Vagrant.DefaultProvider
}

// targetArg returns the optional machine name argument, empty when the
// command addresses the whole environment.
func targetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
