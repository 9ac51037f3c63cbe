package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completedEvent = `data: {"type":"response.completed","response":{"id":"resp_1","object":"response","model":"test-model","status":"completed","output":[{"type":"message","id":"msg_1","role":"assistant","status":"completed","content":[{"type":"output_text","text":"Hello.","annotations":[]}]}]}}` + "\n\n"

func sseServer(t *testing.T, events ...string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, ev := range events {
			io.WriteString(w, ev)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestChatStreamCollectsTokens(t *testing.T) {
	ts := sseServer(t,
		`data: {"type":"response.output_text.delta","delta":"Hel"}`+"\n\n",
		`data: {"type":"response.output_text.delta","delta":"lo."}`+"\n\n",
		completedEvent,
	)

	p := NewOpenAI(ts.URL, "test-key", "test-model")
	assert.Equal(t, "test-model", p.Model())

	var tokens []string
	resp, err := p.ChatStream(context.Background(), nil, nil, func(tok string) {
		tokens = append(tokens, tok)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hel", "lo."}, tokens)
	assert.Equal(t, "Hello.", resp.OutputText())
}

func TestChatStreamWithoutCompletion(t *testing.T) {
	ts := sseServer(t,
		`data: {"type":"response.output_text.delta","delta":"Hel"}`+"\n\n",
	)

	p := NewOpenAI(ts.URL, "test-key", "test-model")
	_, err := p.ChatStream(context.Background(), nil, nil, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a completed response")
}

func TestChatStreamFailedResponse(t *testing.T) {
	ts := sseServer(t,
		`data: {"type":"response.failed","response":{"id":"resp_1","object":"response","model":"test-model","status":"failed","output":[],"error":{"code":"server_error","message":"backend overloaded"}}}`+"\n\n",
	)

	p := NewOpenAI(ts.URL, "test-key", "test-model")
	_, err := p.ChatStream(context.Background(), nil, nil, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend overloaded")
}
