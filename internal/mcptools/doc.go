// Package mcptools exposes drover's vagrant operations as MCP tools.
//
// The main pieces are:
//   - VagrantTools: builds the tool registrations for an MCP server
//   - ConfirmationTracker: single-use tokens gating destructive tools
//   - AuditLogger: newline-delimited JSON log of tool invocations
//   - NewAuthMiddleware: bearer-token HTTP middleware for the server
//
// Error Handling:
// Tool handlers never return Go errors for operational failures; they
// return "error: ..." text results so MCP clients can read the cause.
// The error return of a handler is reserved for protocol failures.
//
// Context Support:
// Handlers pass the request context through to vagrant, so canceling
// an MCP request cancels the underlying vagrant subprocess.
package mcptools
