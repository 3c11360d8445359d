package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Plugin inspection commands
var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Inspect vagrant plugins",
	Long: `Inspect the plugins installed into vagrant on this host.

Some drover commands depend on plugins; sandbox mode, for example,
needs the sahara plugin.`,
}

func init() {
	pluginCmd.AddCommand(pluginListCmd)
}

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	Long: `List all plugins installed into vagrant on this host.

Shows plugin name, version, and whether the plugin ships with vagrant
itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}

		plugins, err := client.PluginList(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list plugins: %w", err)
		}

		result, err := formatter.FormatPlugins(plugins)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}
