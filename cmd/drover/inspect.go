package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [machine]",
	Short: "Show machine status",
	Long: `Show the status of the machines in the current environment.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   YAML machine list
  -o json   JSON machine list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		statuses, err := client.Status(context.Background(), targetArg(args))
		if err != nil {
			return fmt.Errorf("failed to read status: %w", err)
		}

		result, err := formatter.FormatStatuses(statuses)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var sshCmd = &cobra.Command{
	Use:   "ssh [machine]",
	Short: "Run a command on a machine over ssh",
	Long: `Run a shell command on a running machine over ssh and print its
output. Interactive sessions are not supported; a command is required.

Example:
  drover ssh -c "uname -a"
  drover ssh web -c "systemctl status nginx"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, _ := cmd.Flags().GetString("command")
		if command == "" {
			return fmt.Errorf("a command is required, pass one with --command")
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		out, err := client.SSH(context.Background(), targetArg(args), command)
		if err != nil {
			return fmt.Errorf("failed to run ssh command: %w", err)
		}

		fmt.Print(out)
		return nil
	},
}

var sshConfigCmd = &cobra.Command{
	Use:   "ssh-config [machine]",
	Short: "Show the ssh configuration of a machine",
	Long: `Show the ssh connection settings vagrant generated for a running
machine: host, port, user, identity file, and the rest of the
generated OpenSSH options.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		sshCfg, err := client.SSHConfig(context.Background(), targetArg(args))
		if err != nil {
			return fmt.Errorf("failed to read ssh config: %w", err)
		}

		result, err := formatter.FormatSSHConfig(sshCfg)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init [box-name] [box-url]",
	Short: "Initialize a new Vagrantfile",
	Long: `Write a fresh Vagrantfile into the current environment directory.

Example:
  drover init
  drover init generic/alpine316
  drover init mybox https://example.com/mybox.box`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		boxName, boxURL := "", ""
		if len(args) > 0 {
			boxName = args[0]
		}
		if len(args) > 1 {
			boxURL = args[1]
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Init(context.Background(), boxName, boxURL); err != nil {
			return fmt.Errorf("failed to initialize environment: %w", err)
		}

		fmt.Printf("✓ Vagrantfile created in %s\n", client.Dir())
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the Vagrantfile",
	Long:  `Ask vagrant to validate the Vagrantfile of the current environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Validate(context.Background()); err != nil {
			return fmt.Errorf("failed to validate Vagrantfile: %w", err)
		}

		fmt.Println("✓ Vagrantfile is valid")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show drover and vagrant versions",
	Long:  `Show the drover build version and the version of the vagrant binary it drives.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("drover %s (commit: %s)\n", version, commit)

		client, _, err := newClient()
		if err != nil {
			return err
		}

		v, err := client.Version(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read vagrant version: %w", err)
		}

		fmt.Printf("vagrant %s\n", v)
		return nil
	},
}

func init() {
	sshCmd.Flags().StringP("command", "c", "", "Command to run on the machine")
}
