package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"valyuagent/internal/valyu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *valyu.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client, err := valyu.New("test-key", valyu.WithBaseURL(ts.URL))
	require.NoError(t, err)
	return client
}

func captureRequest(t *testing.T, got *valyu.SearchRequest, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.Write([]byte(body))
	}
}

func TestWebSearchExecute(t *testing.T) {
	var got valyu.SearchRequest
	client := testClient(t, captureRequest(t, &got, `{"results":[{"title":"A","url":"https://a.com"}]}`))

	tool := NewWebSearch(client, Options{})
	out, err := tool.Execute(context.Background(), `{"query":"latest go release"}`)
	require.NoError(t, err)

	assert.Equal(t, "latest go release", got.Query)
	assert.Equal(t, valyu.SearchTypeAll, got.SearchType)
	assert.Equal(t, 5, got.MaxNumResults)
	assert.Contains(t, out, "https://a.com")
}

func TestWebSearchPerCallFilters(t *testing.T) {
	var got valyu.SearchRequest
	client := testClient(t, captureRequest(t, &got, `{"results":[]}`))

	tool := NewWebSearch(client, Options{})
	_, err := tool.Execute(context.Background(),
		`{"query":"q","included_sources":["arxiv.org"],"excluded_sources":["reddit.com"]}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"arxiv.org"}, got.IncludedSources)
	assert.Equal(t, []string{"reddit.com"}, got.ExcludedSources)
}

func TestDomainToolsIgnorePerCallFilters(t *testing.T) {
	var got valyu.SearchRequest
	client := testClient(t, captureRequest(t, &got, `{"results":[]}`))

	tool := NewFinanceSearch(client, Options{})
	_, err := tool.Execute(context.Background(),
		`{"query":"AAPL earnings","included_sources":["evil.com"]}`)
	require.NoError(t, err)

	// The finance catalog stays pinned regardless of caller input.
	assert.Equal(t, financeSources, got.IncludedSources)
	assert.Equal(t, valyu.SearchTypeProprietary, got.SearchType)
}

func TestEconomicsSearchDefaults(t *testing.T) {
	var got valyu.SearchRequest
	client := testClient(t, captureRequest(t, &got, `{"results":[]}`))

	tool := NewEconomicsSearch(client, Options{})
	_, err := tool.Execute(context.Background(), `{"query":"unemployment rate"}`)
	require.NoError(t, err)

	assert.Equal(t, 3, got.MaxNumResults)
	assert.Contains(t, got.IncludedSources, "valyu/valyu-fred")
	assert.Contains(t, got.IncludedSources, "valyu/valyu-bls")
}

func TestSearchRequiresQuery(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	tool := NewWebSearch(client, Options{})
	_, err := tool.Execute(context.Background(), `{}`)
	assert.ErrorContains(t, err, "query is required")

	_, err = tool.Execute(context.Background(), `not json`)
	assert.Error(t, err)
}

func TestSearchTruncatesLargeOutput(t *testing.T) {
	big := `{"results":[{"title":"` + strings.Repeat("x", maxOutputBytes) + `"}]}`
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(big))
	})

	tool := NewWebSearch(client, Options{})
	out, err := tool.Execute(context.Background(), `{"query":"q"}`)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "... (truncated)"))
	assert.LessOrEqual(t, len(out), maxOutputBytes+len("\n... (truncated)"))
}

func TestInputSchemas(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	web := NewWebSearch(client, Options{})
	schema, ok := web.InputSchema().(map[string]any)
	require.True(t, ok)
	props := schema["properties"].(map[string]any)
	assert.Contains(t, props, "query")
	assert.Contains(t, props, "included_sources")
	assert.Contains(t, props, "excluded_sources")

	sec := NewSECSearch(client, Options{})
	schema = sec.InputSchema().(map[string]any)
	props = schema["properties"].(map[string]any)
	assert.Contains(t, props, "query")
	assert.NotContains(t, props, "included_sources")
}

func TestOptionsOverrideDefaults(t *testing.T) {
	var got valyu.SearchRequest
	client := testClient(t, captureRequest(t, &got, `{"results":[]}`))

	tool := NewPaperSearch(client, Options{MaxResults: 10, MaxPrice: 50})
	_, err := tool.Execute(context.Background(), `{"query":"transformers"}`)
	require.NoError(t, err)

	assert.Equal(t, 10, got.MaxNumResults)
	assert.Equal(t, 50.0, got.MaxPrice)
	assert.Equal(t, paperSources, got.IncludedSources)
}
