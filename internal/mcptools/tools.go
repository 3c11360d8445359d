package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jbweber/drover/internal/vagrant"
)

// VagrantTools returns the tool registrations for all vagrant MCP
// tools, wired to the provided client factory, ConfirmationTracker,
// and AuditLogger.
func VagrantTools(newClient Factory, confirm *ConfirmationTracker, audit *AuditLogger) []Registration {
	return []Registration{
		vagrantStatus(newClient, audit),
		vagrantUp(newClient, audit),
		vagrantHalt(newClient, audit),
		vagrantDestroy(newClient, confirm, audit),
		boxList(newClient, audit),
		pluginList(newClient, audit),
		sshConfig(newClient, audit),
		snapshotList(newClient, audit),
		vagrantVersion(newClient, audit),
	}
}

func vagrantStatus(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("vagrant_status",
		mcp.WithDescription("Report the state of the machines in a vagrant environment."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Environment directory containing the Vagrantfile"),
		),
		mcp.WithString("machine",
			mcp.Description("Machine name, empty for all machines"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		dir := req.GetString("dir", "")
		machine := req.GetString("machine", "")
		params := map[string]any{"dir": dir, "machine": machine}

		statuses, err := newClient(dir).Status(ctx, machine)
		if err != nil {
			logAudit(audit, "vagrant_status", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "vagrant_status", params, "ok", start)
		return jsonResult(statuses), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func vagrantUp(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("vagrant_up",
		mcp.WithDescription("Create and start the machines of a vagrant environment."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Environment directory containing the Vagrantfile"),
		),
		mcp.WithString("machine",
			mcp.Description("Machine name, empty for all machines"),
		),
		mcp.WithString("provider",
			mcp.Description("Provider to back new machines, e.g. virtualbox or libvirt"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		dir := req.GetString("dir", "")
		machine := req.GetString("machine", "")
		provider := req.GetString("provider", "")
		params := map[string]any{"dir": dir, "machine": machine, "provider": provider}

		var opts *vagrant.UpOptions
		if provider != "" {
			opts = &vagrant.UpOptions{Provider: provider}
		}

		if err := newClient(dir).Up(ctx, machine, opts); err != nil {
			logAudit(audit, "vagrant_up", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "vagrant_up", params, "ok", start)
		return mcp.NewToolResultText(fmt.Sprintf("machines in %q are up", dir)), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func vagrantHalt(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("vagrant_halt",
		mcp.WithDescription("Stop the machines of a vagrant environment."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Environment directory containing the Vagrantfile"),
		),
		mcp.WithString("machine",
			mcp.Description("Machine name, empty for all machines"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Cut power instead of shutting down gracefully"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		dir := req.GetString("dir", "")
		machine := req.GetString("machine", "")
		force := req.GetBool("force", false)
		params := map[string]any{"dir": dir, "machine": machine, "force": force}

		if err := newClient(dir).Halt(ctx, machine, force); err != nil {
			logAudit(audit, "vagrant_halt", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "vagrant_halt", params, "ok", start)
		return mcp.NewToolResultText(fmt.Sprintf("machines in %q halted", dir)), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func vagrantDestroy(newClient Factory, confirm *ConfirmationTracker, audit *AuditLogger) Registration {
	const toolName = "vagrant_destroy"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Destroy the machines of a vagrant environment. Requires confirmation."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Environment directory containing the Vagrantfile"),
		),
		mcp.WithString("machine",
			mcp.Description("Machine name, empty for all machines"),
		),
		mcp.WithString("confirmation_token",
			mcp.Description("Confirmation token returned by a prior call to this tool"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		dir := req.GetString("dir", "")
		machine := req.GetString("machine", "")
		token := req.GetString("confirmation_token", "")
		params := map[string]any{"dir": dir, "machine": machine}

		if !confirm.Confirm(token) {
			desc := fmt.Sprintf("This will destroy the machines in %q and delete all of their provider resources.", dir)
			return confirmPrompt(confirm, toolName, dir, desc), nil
		}

		if err := newClient(dir).Destroy(ctx, machine); err != nil {
			logAudit(audit, toolName, params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, toolName, params, "ok", start)
		return mcp.NewToolResultText(fmt.Sprintf("machines in %q destroyed", dir)), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func boxList(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("box_list",
		mcp.WithDescription("List the boxes installed on this host."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		// Box inventories are host level, any directory serves.
		boxes, err := newClient(".").BoxList(ctx)
		if err != nil {
			logAudit(audit, "box_list", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "box_list", params, "ok", start)
		return jsonResult(boxes), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func pluginList(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("plugin_list",
		mcp.WithDescription("List the plugins installed into vagrant on this host."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		plugins, err := newClient(".").PluginList(ctx)
		if err != nil {
			logAudit(audit, "plugin_list", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "plugin_list", params, "ok", start)
		return jsonResult(plugins), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func sshConfig(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("ssh_config",
		mcp.WithDescription("Read the generated ssh settings of a running machine."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Environment directory containing the Vagrantfile"),
		),
		mcp.WithString("machine",
			mcp.Description("Machine name, empty for the primary machine"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		dir := req.GetString("dir", "")
		machine := req.GetString("machine", "")
		params := map[string]any{"dir": dir, "machine": machine}

		cfg, err := newClient(dir).SSHConfig(ctx, machine)
		if err != nil {
			logAudit(audit, "ssh_config", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "ssh_config", params, "ok", start)
		return jsonResult(cfg), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func snapshotList(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("snapshot_list",
		mcp.WithDescription("List the snapshots of a vagrant environment."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Environment directory containing the Vagrantfile"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		dir := req.GetString("dir", "")
		params := map[string]any{"dir": dir}

		snapshots, err := newClient(dir).SnapshotList(ctx)
		if err != nil {
			logAudit(audit, "snapshot_list", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "snapshot_list", params, "ok", start)
		return jsonResult(snapshots), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func vagrantVersion(newClient Factory, audit *AuditLogger) Registration {
	tool := mcp.NewTool("vagrant_version",
		mcp.WithDescription("Report the version of the vagrant binary."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		v, err := newClient(".").Version(ctx)
		if err != nil {
			logAudit(audit, "vagrant_version", params, "error: "+err.Error(), start)
			return errorResult(err.Error()), nil
		}

		logAudit(audit, "vagrant_version", params, "ok", start)
		return jsonResult(map[string]string{"version": v}), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
