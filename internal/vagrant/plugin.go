package vagrant

import (
	"context"
	"strings"
)

// Plugin is one entry from `vagrant plugin list`.
type Plugin struct {
	// Name is the plugin gem name, e.g. "vagrant-share".
	Name string `json:"name" yaml:"name"`

	// Version is the installed plugin version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// System reports whether the plugin ships with vagrant itself
	// rather than having been installed by the user.
	System bool `json:"system" yaml:"system"`
}

// PluginList returns the plugins known to this vagrant installation.
func (c *Client) PluginList(ctx context.Context) ([]Plugin, error) {
	output, err := c.runner.Run(ctx, c.dir, "plugin", "list", "--machine-readable")
	if err != nil {
		return nil, err
	}
	return parsePluginList(output)
}

// parsePluginList assembles plugins from plugin-name and
// plugin-version records. A plugin-name record opens a new plugin. The
// version data of system plugins carries an encoded comma followed by
// a "system" marker, e.g. "1.1.4%!(VAGRANT_COMMA) system".
func parsePluginList(output string) ([]Plugin, error) {
	records, err := decodeMachineReadable(output)
	if err != nil {
		return nil, err
	}

	plugins := []Plugin{}
	var current Plugin
	started := false
	for _, r := range records {
		switch r.kind {
		case "plugin-name":
			if started {
				plugins = append(plugins, current)
			}
			current = Plugin{Name: r.data}
			started = true
		case "plugin-version":
			version, marker, found := strings.Cut(r.data, EncodedComma)
			current.Version = strings.TrimSpace(version)
			if found {
				current.System = strings.EqualFold(strings.TrimSpace(marker), "system")
			}
		}
	}
	if started {
		plugins = append(plugins, current)
	}
	return plugins, nil
}
