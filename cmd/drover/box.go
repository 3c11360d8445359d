package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/drover/internal/vagrant"
)

// Box management commands
var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Manage boxes",
	Long: `Manage the boxes installed on this host.

Boxes are the base images machines are created from. They are shared
across environments and addressed by name, optionally qualified by
provider.`,
}

func init() {
	boxCmd.AddCommand(boxListCmd)
	boxCmd.AddCommand(boxAddCmd)
	boxCmd.AddCommand(boxUpdateCmd)
	boxCmd.AddCommand(boxRemoveCmd)
}

var boxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed boxes",
	Long: `List all boxes installed on this host.

Shows box name, provider, and version for each box.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		boxes, err := client.BoxList(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list boxes: %w", err)
		}

		result, err := formatter.FormatBoxes(boxes)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var boxAddCmd = &cobra.Command{
	Use:   "add <name> [url]",
	Short: "Install a box",
	Long: `Install a box on this host.

With only a name the box is fetched from the public catalog. With a
url the box file is fetched directly and stored under the given name.

Example:
  drover box add generic/alpine316
  drover box add mybox https://example.com/mybox.box --force`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		url := ""
		if len(args) == 2 {
			url = args[1]
		}
		provider, _ := cmd.Flags().GetString("provider")
		force, _ := cmd.Flags().GetBool("force")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		var opts *vagrant.BoxAddOptions
		if provider != "" || force {
			opts = &vagrant.BoxAddOptions{Provider: provider, Force: force}
		}

		fmt.Printf("Adding box %s...\n", name)
		if err := client.BoxAdd(context.Background(), name, url, opts); err != nil {
			return fmt.Errorf("failed to add box: %w", err)
		}

		fmt.Printf("✓ Box %s added successfully\n", name)
		return nil
	},
}

var boxUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update an installed box",
	Long: `Update an installed box to the latest version in its catalog.

Machines already created from the old version keep running it until
they are destroyed and recreated.

Example:
  drover box update generic/alpine316
  drover box update generic/alpine316 --provider libvirt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		provider, _ := cmd.Flags().GetString("provider")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Printf("Updating box %s...\n", name)
		if err := client.BoxUpdate(context.Background(), name, provider); err != nil {
			return fmt.Errorf("failed to update box: %w", err)
		}

		fmt.Printf("✓ Box %s updated successfully\n", name)
		return nil
	},
}

var boxRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed box",
	Long: `Remove an installed box from this host.

Warning: machines already created from the box are not affected, but
the box must be downloaded again to create new ones.

Example:
  drover box remove generic/alpine316 --provider virtualbox`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		provider, _ := cmd.Flags().GetString("provider")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Printf("Removing box %s...\n", name)
		if err := client.BoxRemove(context.Background(), name, provider); err != nil {
			return fmt.Errorf("failed to remove box: %w", err)
		}

		fmt.Printf("✓ Box %s removed successfully\n", name)
		return nil
	},
}

func init() {
	boxAddCmd.Flags().String("provider", "", "Constrain the catalog download to a provider")
	boxAddCmd.Flags().Bool("force", false, "Overwrite an existing box of the same name")
	boxUpdateCmd.Flags().String("provider", "", "Update only the named provider's copy")
	boxRemoveCmd.Flags().String("provider", "", "Remove only the named provider's copy")
}
