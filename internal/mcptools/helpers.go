package mcptools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v to indented JSON and wraps it in a text
// result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error marshaling result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// errorResult wraps an error message in a text result.
func errorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultText(fmt.Sprintf("error: %s", msg))
}

// logAudit records a tool invocation, silently ignoring a nil logger.
func logAudit(audit *AuditLogger, tool string, params map[string]any, result string, start time.Time) {
	if audit == nil {
		return
	}
	_ = audit.Log(AuditEntry{
		Timestamp: start,
		Tool:      tool,
		Params:    params,
		Result:    result,
		Duration:  time.Since(start),
	})
}

// confirmPrompt issues a confirmation token and returns the prompt the
// caller must answer.
func confirmPrompt(confirm *ConfirmationTracker, tool, resource, description string) *mcp.CallToolResult {
	token := confirm.RequestConfirmation(tool, resource)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Confirmation required for %s on %q.\n\n%s\n\nTo proceed, call %s again with confirmation_token=%q.",
		tool, resource, description, tool, token,
	))
}
