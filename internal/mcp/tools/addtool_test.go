package tools

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/wordseer-mcp/pkg/client"
)

func TestCheckOutputSchema_builtinOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[SearchDocumentsOutput]("wordseer_search_documents")
		CheckOutputSchema[*SearchDocumentsOutput]("wordseer_search_documents_ptr")
		CheckOutputSchema[SearchBatchOutput]("wordseer_search_batch")
	})
}

func TestCheckOutputSchema_okWithAny(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[any]("untyped")
	})
}

func TestCheckOutputSchema_records(t *testing.T) {
	tests := []struct {
		name   string
		check  func()
		panics bool
	}{
		{
			name: "record without omitzero",
			check: func() {
				type out struct {
					Record client.Record `json:"record"`
				}
				CheckOutputSchema[out]("first_record")
			},
			panics: true,
		},
		{
			name: "record with omitempty",
			check: func() {
				type out struct {
					Record client.Record `json:"record,omitempty"`
				}
				CheckOutputSchema[out]("first_record")
			},
		},
		{
			name: "result set without omitzero",
			check: func() {
				type out struct {
					Records client.ResultSet `json:"records"`
					Count   int              `json:"count"`
				}
				CheckOutputSchema[out]("raw_records")
			},
			panics: true,
		},
		{
			name: "result set with omitzero",
			check: func() {
				type out struct {
					Records client.ResultSet `json:"records,omitzero"`
				}
				CheckOutputSchema[out]("raw_records")
			},
		},
		{
			name: "record map ignored by json",
			check: func() {
				type out struct {
					Debug map[string]any `json:"-"`
					Count int            `json:"count"`
				}
				CheckOutputSchema[out]("counted")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				assert.Panics(t, tt.check)
			} else {
				assert.NotPanics(t, tt.check)
			}
		})
	}
}

// The zero value never holds a batch result, so nested fields are only
// caught by walking the type.
func TestCheckOutputSchema_nestedBehindPointer(t *testing.T) {
	type result struct {
		Values []any `json:"values"`
	}
	type entry struct {
		Result *result `json:"result,omitempty"`
	}
	type out struct {
		Results []entry `json:"results,omitzero"`
	}

	assert.PanicsWithValue(t,
		"AddTool \"nested_batch\": output type tools.out has slice or map fields that marshal as null when nil: out.results[].result.values\n"+
			"  Fix: tag them omitzero, or always set them to empty values",
		func() { CheckOutputSchema[out]("nested_batch") })
}

func TestCheckOutputSchema_recursiveType(t *testing.T) {
	type node struct {
		Title    string  `json:"title"`
		Children []*node `json:"children,omitzero"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[node]("document_tree")
	})
}

func TestNullableFields_paths(t *testing.T) {
	type inner struct {
		Terms map[string]int `json:"terms"`
	}
	type out struct {
		Hits    []inner          `json:"hits"`
		ByField map[string]inner `json:"by_field,omitempty"`
	}

	paths := nullableFields(reflect.TypeFor[out](), "out", map[reflect.Type]bool{})
	assert.Equal(t, []string{"out.hits", "out.hits[].terms", "out.by_field[value].terms"}, paths)
}
