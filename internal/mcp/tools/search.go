package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchDocumentsInput is the input for wordseer_search_documents.
type SearchDocumentsInput struct {
	Params      map[string]string `json:"params,omitempty" jsonschema:"Per-query parameters sent with the search, such as search terms or filters"`
	IncludeText bool              `json:"include_text,omitempty" jsonschema:"Include full document text in each record (default: false)"`
	Instance    string            `json:"instance,omitempty" jsonschema:"Instance to search (default: the configured instance)"`
	User        string            `json:"user,omitempty" jsonschema:"User the search runs as (default: the configured user)"`
	Expression  string            `json:"expression,omitempty" jsonschema:"JQ expression applied to each record; its values are returned instead of the records"`
	Limit       int               `json:"limit,omitempty" jsonschema:"Max records or values to return (default: 50)"`
}

// SearchDocumentsOutput is the output for wordseer_search_documents.
type SearchDocumentsOutput struct {
	URL       string           `json:"url"`
	Count     int              `json:"count"`
	Returned  int              `json:"returned"`
	Truncated bool             `json:"truncated,omitempty"`
	Records   []map[string]any `json:"records,omitzero"`
	Values    []any            `json:"values,omitzero"`
	Errors    []string         `json:"errors,omitzero"`
}

// ToolSearchDocuments runs one document search. Records come back in server
// order; with an expression, the jq values of each record replace them.
func ToolSearchDocuments(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchDocumentsInput) (*sdkmcp.CallToolResult, SearchDocumentsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchDocumentsInput) (*sdkmcp.CallToolResult, SearchDocumentsOutput, error) {
		output, err := d.searchDocuments(ctx, input)
		if err != nil {
			return nil, SearchDocumentsOutput{}, err
		}
		return nil, output, nil
	}
}

// searchDocuments is shared by the single and batch search tools.
func (d *Deps) searchDocuments(ctx context.Context, input SearchDocumentsInput) (SearchDocumentsOutput, error) {
	if input.Expression != "" {
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return SearchDocumentsOutput{}, ErrInvalidInput(err.Error())
		}
	}
	limit := d.resultLimit(input.Limit)

	params, err := d.Params(ctx, input.Instance, input.User, input.IncludeText, input.Params)
	if err != nil {
		return SearchDocumentsOutput{}, WrapSearchError(err)
	}

	rs, searchURL, err := d.Client.SearchWithURL(ctx, params)
	if err != nil {
		return SearchDocumentsOutput{}, WrapSearchError(err)
	}

	records := make([]map[string]any, len(rs))
	for i, r := range rs {
		records[i] = r
	}

	output := SearchDocumentsOutput{
		URL:   searchURL,
		Count: len(records),
	}

	if input.Expression == "" {
		output.Truncated = len(records) > limit
		if output.Truncated {
			records = records[:limit]
		}
		output.Records = records
		output.Returned = len(records)
		return output, nil
	}

	// One extra value tells whether the limit cut anything off.
	result, err := d.Query.Query(recordMaps(records), input.Expression, limit+1)
	if err != nil {
		return SearchDocumentsOutput{}, ErrInvalidInput(err.Error())
	}
	values := result.Values
	output.Truncated = len(values) > limit
	if output.Truncated {
		values = values[:limit]
	}
	output.Values = values
	output.Returned = len(values)
	output.Errors = result.Errors
	return output, nil
}
