// Package mcpsrv provides an extensible MCP server for WordSeer document search.
//
// The server exposes the builtin wordseer_search_documents and
// wordseer_search_batch tools over stdio. Users can add their own tools with
// functional options.
//
// # Basic Usage
//
//	c, err := client.New(client.WithBaseURL("https://wordseer.example.org/api/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server, err := mcpsrv.NewServer(c, mcpsrv.WithIdentity(mcpsrv.StaticIdentity{
//	    InstanceID: "shakespeare",
//	    User:       "alice",
//	}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// Without WithIdentity, the instance and user come from WORDSEER_INSTANCE and
// WORDSEER_USER, or from the instance and user arguments of each tool call.
//
// # Extension
//
// Tools that need the search client use WithDepsTool:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_documents", Description: "Count matching documents"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            params, err := d.Params(ctx, false, url.Values{"search": {in.Term}})
//	            if err != nil {
//	                return nil, CountOutput{}, err
//	            }
//	            rs, err := d.Client.Search(ctx, params)
//	            if err != nil {
//	                return nil, CountOutput{}, err
//	            }
//	            return nil, CountOutput{Count: len(rs)}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Logging and the remaining settings are read from the environment (see
// internal/config); options override them:
//
//	server, err := mcpsrv.NewServer(c,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/wordseer-mcp.log"),
//	)
package mcpsrv
