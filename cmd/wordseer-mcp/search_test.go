package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSearchServer points the environment at a fake API serving body and
// returns a func reporting the last query it received.
func setupSearchServer(t *testing.T, body string) func() url.Values {
	t.Helper()
	var mu sync.Mutex
	var last url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = r.URL.Query()
		mu.Unlock()
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("WORDSEER_API_ROOT", srv.URL+"/api/")
	t.Setenv("WORDSEER_INSTANCE", "shakespeare")
	t.Setenv("WORDSEER_USER", "alice")
	t.Setenv("LOG_LEVEL", "error")
	return func() url.Values {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestSearchCmd_JSON(t *testing.T) {
	lastQuery := setupSearchServer(t, `{"results":[{"id":1,"title":"Hamlet"},{"id":2,"title":"Lear"}]}`)

	out, err := execute(t, "search", "--json", "-p", "search=love", "-p", "search=death", "--instance", "folio")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Hamlet", records[0]["title"])

	last := lastQuery()
	assert.Equal(t, []string{"love", "death"}, last["search"])
	assert.Equal(t, "folio", last.Get("instance"))
	assert.Equal(t, "alice", last.Get("user"))
	assert.Equal(t, "false", last.Get("include_text"))
}

func TestSearchCmd_Expression(t *testing.T) {
	setupSearchServer(t, `{"results":[{"title":"Hamlet"},{"title":"Lear"}]}`)

	out, err := execute(t, "search", "--jq", ".title")
	require.NoError(t, err)
	assert.Contains(t, out, `[1] "Hamlet"`)
	assert.Contains(t, out, `[2] "Lear"`)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupSearchServer(t, `{}`)

	out, err := execute(t, "search", "--include-text")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_Errors(t *testing.T) {
	setupSearchServer(t, `{"results":"nope"}`)

	_, err := execute(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")

	_, err = execute(t, "search", "--param", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")

	_, err = execute(t, "search", "--jq", ".[")
	assert.Error(t, err)
}

func TestSearchCmd_MissingIdentity(t *testing.T) {
	setupSearchServer(t, `{}`)
	t.Setenv("WORDSEER_USER", "")

	_, err := execute(t, "search")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "user"), err.Error())
}

func TestParseParams(t *testing.T) {
	values, err := parseParams([]string{"a=1", "a=2", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"a": {"1", "2"}, "b": {"x=y"}, "c": {""}}, values)

	values, err = parseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = parseParams([]string{"=v"})
	assert.Error(t, err)
}
