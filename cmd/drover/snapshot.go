package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Snapshot management commands
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage machine snapshots",
	Long: `Manage snapshots of the machines in the current environment.

Snapshots come in two flavors: a push/pop stack for quick save and
restore cycles, and named snapshots for states worth keeping around.
Mixing the two on the same environment is not recommended.`,
}

func init() {
	snapshotCmd.AddCommand(snapshotPushCmd)
	snapshotCmd.AddCommand(snapshotPopCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

var snapshotPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Snapshot the current state onto the stack",
	Long:  `Take a snapshot of the current machine state and push it onto the snapshot stack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println("Pushing snapshot...")
		if err := client.SnapshotPush(context.Background()); err != nil {
			return fmt.Errorf("failed to push snapshot: %w", err)
		}

		fmt.Println("✓ Snapshot pushed")
		return nil
	},
}

var snapshotPopCmd = &cobra.Command{
	Use:   "pop",
	Short: "Restore the most recently pushed snapshot",
	Long: `Restore the machine state from the most recently pushed snapshot and
remove it from the snapshot stack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println("Popping snapshot...")
		if err := client.SnapshotPop(context.Background()); err != nil {
			return fmt.Errorf("failed to pop snapshot: %w", err)
		}

		fmt.Println("✓ Snapshot restored")
		return nil
	},
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a named snapshot",
	Long: `Save the current machine state as a named snapshot.

Example:
  drover snapshot save clean`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Printf("Saving snapshot %s...\n", name)
		if err := client.SnapshotSave(context.Background(), name); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		fmt.Printf("✓ Snapshot %s saved\n", name)
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore a named snapshot",
	Long: `Restore the machine state from a named snapshot. The snapshot is kept
and can be restored again.

Example:
  drover snapshot restore clean`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Printf("Restoring snapshot %s...\n", name)
		if err := client.SnapshotRestore(context.Background(), name); err != nil {
			return fmt.Errorf("failed to restore snapshot: %w", err)
		}

		fmt.Printf("✓ Snapshot %s restored\n", name)
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	Long:  `List the snapshots of the current environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		snapshots, err := client.SnapshotList(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}

		result, err := formatter.FormatSnapshots(snapshots)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a named snapshot",
	Long: `Delete a named snapshot.

Example:
  drover snapshot delete clean`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Printf("Deleting snapshot %s...\n", name)
		if err := client.SnapshotDelete(context.Background(), name); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}

		fmt.Printf("✓ Snapshot %s deleted\n", name)
		return nil
	},
}
