package query

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, raw string) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestEngine_Query_Field(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"id": 1, "title": "Hamlet"}, {"id": 2, "title": "Macbeth"}]`), ".title", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Hamlet", "Macbeth"}, result.Values)
	assert.Equal(t, []int{0, 1}, result.MatchedIndices)
	assert.Empty(t, result.Errors)
}

func TestEngine_Query_PreservesRecordOrder(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"id": 3}, {"id": 1}, {"id": 2}]`), ".id", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(3), float64(1), float64(2)}, result.Values)
}

func TestEngine_Query_Object(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"id": 1, "title": "Hamlet", "text": "..."}]`), "{id, title}", 0)
	require.NoError(t, err)
	require.Len(t, result.Values, 1)
	assert.Equal(t, map[string]any{"id": float64(1), "title": "Hamlet"}, result.Values[0])
}

func TestEngine_Query_Select(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"id": 1, "year": 1600}, {"id": 2, "year": 1606}]`), "select(.year > 1603) | .id", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(2)}, result.Values)
	assert.Equal(t, []int{1}, result.MatchedIndices)
}

func TestEngine_Query_MaxResults(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"tags": ["a", "b"]}, {"tags": ["c", "d"]}]`), ".tags[]", 3)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, result.Values)
}

func TestEngine_Query_NilValuesSkipped(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"title": null}, {"title": "Lear"}]`), ".title", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Lear"}, result.Values)
	assert.Equal(t, []int{1}, result.MatchedIndices)
}

func TestEngine_Query_RuntimeErrorsLabeled(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(records(t, `[{"tags": ["a"]}, {"tags": null}, {"tags": ["b"]}]`), ".tags[]", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, result.Values)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "record[1]: "), result.Errors[0])
}

func TestEngine_Query_InvalidExpression(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Query(records(t, `[{}]`), ".[", 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEngine_Query_Empty(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query(nil, ".id", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	assert.NotNil(t, result.Values)
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine()

	assert.NoError(t, engine.ValidateExpression(".title"))
	assert.NoError(t, engine.ValidateExpression("{id, title}"))
	assert.Error(t, engine.ValidateExpression(".["))
	assert.Error(t, engine.ValidateExpression("undefined_function_xyz"))
}
