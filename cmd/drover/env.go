package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/loader"
	"github.com/jbweber/drover/internal/vagrantfile"
)

// Environment manifest commands
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage manifest-driven environments",
	Long: `Manage whole vagrant environments from declarative YAML manifests.

A manifest describes the environment's box, machines, provisioning,
and directory. The env commands render the Vagrantfile, install
missing boxes, and drive the machine lifecycle from it.`,
}

var manifestPath string

func init() {
	envCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "f", "", "Path to the environment manifest")

	envCmd.AddCommand(envUpCmd)
	envCmd.AddCommand(envDownCmd)
	envCmd.AddCommand(envStatusCmd)
	envCmd.AddCommand(envInfoCmd)
	envCmd.AddCommand(envRenderCmd)
}

func requireManifest() error {
	if manifestPath == "" {
		return fmt.Errorf("a manifest is required, pass one with --manifest")
	}
	return nil
}

var envUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring an environment up from its manifest",
	Long: `Bring an environment up from its manifest.

Renders the Vagrantfile, installs missing boxes, starts the machines,
and reports the resulting environment phase.

Example:
  drover env up -f demo.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireManifest(); err != nil {
			return err
		}

		mgr, cfg, err := newManager()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		report, err := mgr.Up(context.Background(), manifestPath)
		if err != nil {
			return err
		}

		result, err := formatter.FormatReport(report)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var envDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Shut an environment down",
	Long: `Shut an environment down.

Machines are halted gracefully by default. With --destroy they are
destroyed instead, deleting all provider resources.

Example:
  drover env down -f demo.yaml
  drover env down -f demo.yaml --destroy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireManifest(); err != nil {
			return err
		}
		destroy, _ := cmd.Flags().GetBool("destroy")

		mgr, cfg, err := newManager()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		report, err := mgr.Down(context.Background(), manifestPath, destroy)
		if err != nil {
			return err
		}

		result, err := formatter.FormatReport(report)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var envStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report an environment's machine states",
	Long: `Report the state of every machine the manifest declares, including
machines vagrant has never created.

Example:
  drover env status -f demo.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireManifest(); err != nil {
			return err
		}

		mgr, cfg, err := newManager()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		report, err := mgr.Status(context.Background(), manifestPath)
		if err != nil {
			return err
		}

		result, err := formatter.FormatReport(report)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var envInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show machine details for an environment",
	Long: `Show per-machine details for an environment, merging live vagrant
status with the identity vagrant recorded on disk: machine id and
global index uuid.

The environment is located through the manifest when -f is given,
otherwise through --dir.

Example:
  drover env info -f demo.yaml
  drover env info -C /envs/demo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cfg, err := newManager()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		dir := envDir
		if manifestPath != "" {
			env, err := loader.LoadFromFile(manifestPath)
			if err != nil {
				return err
			}
			dir = fleet.ResolveDir(manifestPath, env)
		}

		infos, err := mgr.Info(context.Background(), dir)
		if err != nil {
			return err
		}

		result, err := formatter.FormatMachineInfos(infos)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var envRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a manifest's Vagrantfile",
	Long: `Render the Vagrantfile a manifest describes.

The rendered Vagrantfile is printed to stdout. With --write it is
written into the environment directory instead.

Example:
  drover env render -f demo.yaml
  drover env render -f demo.yaml --write`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireManifest(); err != nil {
			return err
		}
		write, _ := cmd.Flags().GetBool("write")

		env, err := loader.LoadFromFile(manifestPath)
		if err != nil {
			return err
		}

		if write {
			dir := fleet.ResolveDir(manifestPath, env)
			if err := vagrantfile.Write(env, dir); err != nil {
				return fmt.Errorf("failed to write Vagrantfile: %w", err)
			}
			fmt.Printf("✓ Vagrantfile written to %s\n", filepath.Join(dir, vagrantfile.Filename))
			return nil
		}

		content, err := vagrantfile.Render(env)
		if err != nil {
			return fmt.Errorf("failed to render Vagrantfile: %w", err)
		}

		fmt.Print(content)
		return nil
	},
}

func init() {
	envDownCmd.Flags().Bool("destroy", false, "Destroy machines instead of halting them")
	envRenderCmd.Flags().Bool("write", false, "Write the Vagrantfile into the environment directory")
}
