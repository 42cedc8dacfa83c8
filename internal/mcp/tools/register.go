package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wordseer_search_documents",
		Description: "Search documents in a WordSeer instance. Returns the matching records in server order with the request url and count. Pass params for search terms and filters; set expression (jq) to project each record, e.g. '.title'. Full document text is omitted unless include_text=true.",
	}, ToolSearchDocuments(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "wordseer_search_batch",
		Description: "Run several document searches at once. Each query has its own params and optional jq expression and returns its own result or error; one failure never affects the others. Results are in query order.",
	}, ToolSearchBatch(d))
}
