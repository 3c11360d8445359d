package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/drover/internal/vagrant"
)

var upCmd = &cobra.Command{
	Use:   "up [machine]",
	Short: "Create and start machines",
	Long: `Create and start the machines of the current environment.

Without a machine name the whole environment is brought up. Use
--stream to relay vagrant's output line by line while it runs.

Example:
  drover up
  drover up web --provider libvirt --stream`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		noProvision, _ := cmd.Flags().GetBool("no-provision")
		provisionWith, _ := cmd.Flags().GetStringSlice("provision-with")
		stream, _ := cmd.Flags().GetBool("stream")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		opts := &vagrant.UpOptions{
			Provider:      resolveProvider(provider, cfg),
			ProvisionWith: provisionWith,
		}
		if noProvision {
			off := false
			opts.Provision = &off
		}

		ctx := context.Background()
		target := targetArg(args)

		if stream {
			err = client.UpStream(ctx, target, func(line string) {
				fmt.Println(line)
			}, opts)
		} else {
			fmt.Printf("Bringing up machines in %s...\n", client.Dir())
			err = client.Up(ctx, target, opts)
		}
		if err != nil {
			return fmt.Errorf("failed to bring machines up: %w", err)
		}

		fmt.Println("✓ Machines are up")
		return nil
	},
}

var haltCmd = &cobra.Command{
	Use:   "halt [machine]",
	Short: "Stop machines",
	Long: `Stop the machines of the current environment.

Machines are shut down gracefully unless --force is given, which cuts
power immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Halt(context.Background(), targetArg(args), force); err != nil {
			return fmt.Errorf("failed to halt machines: %w", err)
		}

		fmt.Println("✓ Machines halted")
		return nil
	},
}

var suspendCmd = &cobra.Command{
	Use:   "suspend [machine]",
	Short: "Suspend machines",
	Long:  `Suspend the machines of the current environment, saving their running state to disk.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Suspend(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to suspend machines: %w", err)
		}

		fmt.Println("✓ Machines suspended")
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume [machine]",
	Short: "Resume suspended machines",
	Long:  `Resume machines previously suspended with drover suspend.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Resume(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to resume machines: %w", err)
		}

		fmt.Println("✓ Machines resumed")
		return nil
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload [machine]",
	Short: "Restart machines, picking up Vagrantfile changes",
	Long: `Restart the machines of the current environment so that changes to
the Vagrantfile take effect. Use --stream to relay vagrant's output
line by line while it runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noProvision, _ := cmd.Flags().GetBool("no-provision")
		provisionWith, _ := cmd.Flags().GetStringSlice("provision-with")
		stream, _ := cmd.Flags().GetBool("stream")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		opts := &vagrant.ReloadOptions{ProvisionWith: provisionWith}
		if noProvision {
			off := false
			opts.Provision = &off
		}

		ctx := context.Background()
		target := targetArg(args)

		if stream {
			err = client.ReloadStream(ctx, target, func(line string) {
				fmt.Println(line)
			}, opts)
		} else {
			err = client.Reload(ctx, target, opts)
		}
		if err != nil {
			return fmt.Errorf("failed to reload machines: %w", err)
		}

		fmt.Println("✓ Machines reloaded")
		return nil
	},
}

var provisionCmd = &cobra.Command{
	Use:   "provision [machine]",
	Short: "Run provisioners on running machines",
	Long: `Run provisioners on the machines of the current environment.

Use --provision-with to restrict the run to the named provisioners.

Example:
  drover provision
  drover provision web --provision-with shell`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provisionWith, _ := cmd.Flags().GetStringSlice("provision-with")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Provision(context.Background(), targetArg(args), provisionWith...); err != nil {
			return fmt.Errorf("failed to provision machines: %w", err)
		}

		fmt.Println("✓ Provisioners finished")
		return nil
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy [machine]",
	Short: "Destroy machines",
	Long: `Destroy the machines of the current environment.

This stops each machine and deletes all of its provider resources.
The environment directory and its Vagrantfile are left in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Printf("Destroying machines in %s...\n", client.Dir())
		if err := client.Destroy(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to destroy machines: %w", err)
		}

		fmt.Println("✓ Machines destroyed")
		return nil
	},
}

var packageCmd = &cobra.Command{
	Use:   "package [machine]",
	Short: "Package a machine into a reusable box",
	Long: `Package a halted machine into a box file that can be added with
drover box add.

Example:
  drover package --box-output web.box
  drover package web --box-output web.box --vagrantfile Vagrantfile.pkg`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		boxOutput, _ := cmd.Flags().GetString("box-output")
		embedded, _ := cmd.Flags().GetString("vagrantfile")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		var opts *vagrant.PackageOptions
		if boxOutput != "" || embedded != "" {
			opts = &vagrant.PackageOptions{Output: boxOutput, Vagrantfile: embedded}
		}

		fmt.Println("Packaging machine...")
		if err := client.Package(context.Background(), targetArg(args), opts); err != nil {
			return fmt.Errorf("failed to package machine: %w", err)
		}

		fmt.Println("✓ Box created")
		return nil
	},
}

func init() {
	upCmd.Flags().String("provider", "", "Provider to back new machines")
	upCmd.Flags().Bool("no-provision", false, "Skip provisioners")
	upCmd.Flags().StringSlice("provision-with", nil, "Run only the named provisioners")
	upCmd.Flags().Bool("stream", false, "Relay vagrant output line by line")

	haltCmd.Flags().Bool("force", false, "Cut power instead of shutting down gracefully")

	reloadCmd.Flags().Bool("no-provision", false, "Skip provisioners")
	reloadCmd.Flags().StringSlice("provision-with", nil, "Run only the named provisioners")
	reloadCmd.Flags().Bool("stream", false, "Relay vagrant output line by line")

	provisionCmd.Flags().StringSlice("provision-with", nil, "Run only the named provisioners")

	packageCmd.Flags().String("box-output", "", "Path of the box file to write")
	packageCmd.Flags().String("vagrantfile", "", "Vagrantfile to embed in the box")
}
