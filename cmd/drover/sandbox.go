package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Sandbox mode commands, backed by the sahara plugin
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Manage sandbox mode",
	Long: `Manage sandbox mode for the machines of the current environment.

In sandbox mode changes to a machine are kept in a throwaway layer
until they are committed or rolled back. Requires the sahara vagrant
plugin.`,
}

func init() {
	sandboxCmd.AddCommand(sandboxOnCmd)
	sandboxCmd.AddCommand(sandboxOffCmd)
	sandboxCmd.AddCommand(sandboxCommitCmd)
	sandboxCmd.AddCommand(sandboxRollbackCmd)
	sandboxCmd.AddCommand(sandboxStatusCmd)
}

var sandboxOnCmd = &cobra.Command{
	Use:   "on [machine]",
	Short: "Enable sandbox mode",
	Long:  `Enable sandbox mode. Subsequent changes to the machine can be rolled back.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Sandbox().On(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to enable sandbox mode: %w", err)
		}

		fmt.Println("✓ Sandbox mode enabled")
		return nil
	},
}

var sandboxOffCmd = &cobra.Command{
	Use:   "off [machine]",
	Short: "Disable sandbox mode",
	Long:  `Disable sandbox mode, discarding the uncommitted sandbox state.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Sandbox().Off(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to disable sandbox mode: %w", err)
		}

		fmt.Println("✓ Sandbox mode disabled")
		return nil
	},
}

var sandboxCommitCmd = &cobra.Command{
	Use:   "commit [machine]",
	Short: "Commit sandbox changes",
	Long: `Commit the changes made since sandbox mode was enabled, making them
permanent. Sandbox mode stays on afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println("Committing sandbox changes...")
		if err := client.Sandbox().Commit(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to commit sandbox changes: %w", err)
		}

		fmt.Println("✓ Sandbox changes committed")
		return nil
	},
}

var sandboxRollbackCmd = &cobra.Command{
	Use:   "rollback [machine]",
	Short: "Roll back sandbox changes",
	Long: `Discard the changes made since sandbox mode was enabled, returning the
machine to its state at the last commit. Sandbox mode stays on
afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println("Rolling back sandbox changes...")
		if err := client.Sandbox().Rollback(context.Background(), targetArg(args)); err != nil {
			return fmt.Errorf("failed to roll back sandbox changes: %w", err)
		}

		fmt.Println("✓ Sandbox changes rolled back")
		return nil
	},
}

var sandboxStatusCmd = &cobra.Command{
	Use:   "status [machine]",
	Short: "Show sandbox mode status",
	Long:  `Show whether sandbox mode is on, off, or unavailable for the current environment.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		st, err := client.Sandbox().Status(context.Background(), targetArg(args))
		if err != nil {
			return fmt.Errorf("failed to read sandbox status: %w", err)
		}

		fmt.Printf("Sandbox mode: %s\n", st)
		return nil
	},
}
