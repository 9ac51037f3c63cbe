package valyu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALYU_API_KEY")
}

func TestDeepSearch(t *testing.T) {
	var gotPath, gotKey, gotContentType string
	var gotReq SearchRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"FRED GDP","url":"https://fred.stlouisfed.org/series/GDP","source":"valyu/valyu-fred"}]}`))
	}))
	defer ts.Close()

	client, err := New("test-key", WithBaseURL(ts.URL))
	require.NoError(t, err)

	resp, err := client.DeepSearch(context.Background(), SearchRequest{
		Query:           "US GDP",
		SearchType:      SearchTypeProprietary,
		MaxNumResults:   3,
		IncludedSources: []string{"valyu/valyu-fred"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/deepsearch", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "US GDP", gotReq.Query)
	assert.Equal(t, SearchTypeProprietary, gotReq.SearchType)
	assert.Equal(t, 3, gotReq.MaxNumResults)
	assert.Equal(t, []string{"valyu/valyu-fred"}, gotReq.IncludedSources)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "FRED GDP", resp.Results[0].Title)
	assert.Contains(t, string(resp.Raw), "valyu-fred")
}

func TestDeepSearchAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"insufficient credits"}`, http.StatusPaymentRequired)
	}))
	defer ts.Close()

	client, err := New("test-key", WithBaseURL(ts.URL))
	require.NoError(t, err)

	_, err = client.DeepSearch(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "insufficient credits")
}

func TestAnswer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/answer", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"GDP grew 2.8% in 2024."}`))
	}))
	defer ts.Close()

	client, err := New("test-key", WithBaseURL(ts.URL))
	require.NoError(t, err)

	resp, err := client.Answer(context.Background(), AnswerRequest{Query: "US GDP growth"})
	require.NoError(t, err)
	assert.Equal(t, "GDP grew 2.8% in 2024.", resp.Answer)
}
