package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wordseer-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking its output type.
// Every slice or map field reachable from Out, client.Record and
// client.ResultSet fields included, must be tagged omitzero or omitempty,
// since a nil value marshals as null and fails the SDK's inferred schema.
//
// AddTool panics naming the offending fields when the check fails.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
