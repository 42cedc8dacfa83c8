package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// SearchBatchInput is the input for wordseer_search_batch.
type SearchBatchInput struct {
	Queries     []BatchQuery `json:"queries" jsonschema:"Searches to run; each one succeeds or fails on its own"`
	IncludeText bool         `json:"include_text,omitempty" jsonschema:"Include full document text in each record (default: false)"`
	Instance    string       `json:"instance,omitempty" jsonschema:"Instance to search (default: the configured instance)"`
	User        string       `json:"user,omitempty" jsonschema:"User the searches run as (default: the configured user)"`
	Limit       int          `json:"limit,omitempty" jsonschema:"Max records or values per query (default: 50)"`
}

// BatchQuery is one search in a batch.
type BatchQuery struct {
	ID         string            `json:"id,omitempty" jsonschema:"Label echoed back with this query's result"`
	Params     map[string]string `json:"params,omitempty" jsonschema:"Per-query parameters sent with the search"`
	Expression string            `json:"expression,omitempty" jsonschema:"JQ expression applied to each record"`
}

// SearchBatchOutput is the output for wordseer_search_batch.
type SearchBatchOutput struct {
	Results   []BatchResult `json:"results,omitzero"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// BatchResult is the outcome of one query, in input order.
type BatchResult struct {
	Index  int                    `json:"index"`
	ID     string                 `json:"id,omitempty"`
	Result *SearchDocumentsOutput `json:"result,omitempty"`
	Error  *BatchError            `json:"error,omitempty"`
}

// BatchError describes why one query failed.
type BatchError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToolSearchBatch runs several independent searches concurrently, bounded by
// the configured worker count. A failing query is reported in its own result
// and never cancels the others.
func ToolSearchBatch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchBatchInput) (*sdkmcp.CallToolResult, SearchBatchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchBatchInput) (*sdkmcp.CallToolResult, SearchBatchOutput, error) {
		if len(input.Queries) == 0 {
			return nil, SearchBatchOutput{}, ErrInvalidInput("queries is required")
		}
		if len(input.Queries) > d.Config.MaxBatchQueries {
			return nil, SearchBatchOutput{}, ErrInvalidInput(
				fmt.Sprintf("at most %d queries per batch, got %d", d.Config.MaxBatchQueries, len(input.Queries)))
		}

		results := make([]BatchResult, len(input.Queries))

		var g errgroup.Group
		g.SetLimit(max(d.Config.SearchWorkers, 1))

		for i, q := range input.Queries {
			g.Go(func() error {
				out, err := d.searchDocuments(ctx, SearchDocumentsInput{
					Params:      q.Params,
					IncludeText: input.IncludeText,
					Instance:    input.Instance,
					User:        input.User,
					Expression:  q.Expression,
					Limit:       input.Limit,
				})

				results[i] = BatchResult{Index: i, ID: q.ID}
				if err != nil {
					results[i].Error = batchError(err)
					return nil
				}
				results[i].Result = &out
				return nil
			})
		}
		_ = g.Wait()

		output := SearchBatchOutput{Results: results}
		for _, r := range results {
			if r.Error != nil {
				output.Failed++
			} else {
				output.Succeeded++
			}
		}

		slog.Debug("batch search completed",
			slog.Int("queries", len(results)),
			slog.Int("failed", output.Failed),
		)

		return nil, output, nil
	}
}

func batchError(err error) *BatchError {
	var coded *CodedError
	if !errors.As(err, &coded) {
		coded = WrapSearchError(err).(*CodedError)
	}
	msg := coded.Message
	if coded.Cause != nil && coded.Code != ErrCodeInvalidInput {
		msg = fmt.Sprintf("%s: %v", coded.Message, coded.Cause)
	}
	return &BatchError{Code: coded.Code, Message: msg}
}
