package agentcore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRequiresCredentials(t *testing.T) {
	_, err := Token(context.Background(), &GatewayConfig{GatewayID: "gw-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cognito credentials not found")
}

func TestFetchToken(t *testing.T) {
	var gotScope, gotClientID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotScope = r.FormValue("scope")
		gotClientID = r.FormValue("client_id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer ts.Close()

	cfg := &GatewayConfig{
		GatewayID:           "valyu-abc123",
		Region:              "us-east-1",
		CognitoClientID:     "client-id",
		CognitoClientSecret: "client-secret",
		CognitoDomain:       "my-domain",
	}

	token, err := fetchToken(context.Background(), cfg, ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "client-id", gotClientID)
	// Scope derived from the gateway id when none is stored.
	assert.Equal(t, "valyu-search-gateway/invoke", gotScope)
}

func TestFetchTokenExplicitScope(t *testing.T) {
	var gotScope string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotScope = r.FormValue("scope")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-456","token_type":"Bearer"}`))
	}))
	defer ts.Close()

	cfg := &GatewayConfig{
		GatewayID:           "valyu-abc123",
		CognitoClientID:     "client-id",
		CognitoClientSecret: "client-secret",
		CognitoDomain:       "my-domain",
		CognitoScope:        "custom-server/invoke",
	}

	_, err := fetchToken(context.Background(), cfg, ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "custom-server/invoke", gotScope)
}

func TestFetchTokenServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	cfg := &GatewayConfig{
		GatewayID:           "gw-1",
		CognitoClientID:     "bad",
		CognitoClientSecret: "bad",
		CognitoDomain:       "d",
	}

	_, err := fetchToken(context.Background(), cfg, ts.URL)
	assert.Error(t, err)
}
