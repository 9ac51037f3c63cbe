package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"valyuagent/internal/agent"
	"valyuagent/internal/tools"

	"github.com/openai/openai-go/v3/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubResponseJSON = `{
	"id": "resp_1",
	"object": "response",
	"model": "stub",
	"status": "completed",
	"output": [
		{
			"type": "message",
			"id": "msg_1",
			"role": "assistant",
			"status": "completed",
			"content": [
				{"type": "output_text", "text": "Hello from the agent.", "annotations": []}
			]
		}
	]
}`

// stubProvider answers every turn with a fixed response and no tool calls.
type stubProvider struct {
	resp *responses.Response
}

func (p *stubProvider) ChatStream(ctx context.Context, input []responses.ResponseInputItemUnionParam, toolParams []responses.ToolUnionParam, onToken func(string)) (*responses.Response, error) {
	onToken("Hello from the agent.")
	return p.resp, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	var resp responses.Response
	require.NoError(t, json.Unmarshal([]byte(stubResponseJSON), &resp))

	registry := agent.NewRegistry()
	factory := agent.NewRunnerFactory(&stubProvider{resp: &resp}, nil, registry, tools.DefaultProfiles())

	ts := httptest.NewServer(NewServer(factory, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfiles(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/profiles")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Profiles []string `json:"profiles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Profiles, "research-assistant")
	assert.Contains(t, body.Profiles, "finance")
}

func TestChatStreamsSSE(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`{"session_id":"s1","message":"hi","profile":"web"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "event: token")
	assert.Contains(t, string(body), "Hello from the agent.")
	assert.Contains(t, string(body), "event: done")
}

func TestChatValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`not json`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatUnknownProfile(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`{"session_id":"s1","message":"hi","profile":"nope"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompareWithoutRuntime(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/compare", "application/json",
		strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
