package agentcore

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Token acquires an OAuth access token for the gateway via the Cognito
// client-credentials grant.
func Token(ctx context.Context, cfg *GatewayConfig) (string, error) {
	if cfg.CognitoClientID == "" || cfg.CognitoClientSecret == "" || cfg.CognitoDomain == "" {
		return "", fmt.Errorf("cognito credentials not found in gateway config")
	}
	endpoint := fmt.Sprintf("https://%s.auth.%s.amazoncognito.com/oauth2/token", cfg.CognitoDomain, cfg.Region)
	return fetchToken(ctx, cfg, endpoint)
}

func fetchToken(ctx context.Context, cfg *GatewayConfig, tokenURL string) (string, error) {
	scope := cfg.CognitoScope
	if scope == "" {
		// The setup tooling names the resource server after the gateway.
		scope = strings.SplitN(cfg.GatewayID, "-", 2)[0] + "-search-gateway/invoke"
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.CognitoClientID,
		ClientSecret: cfg.CognitoClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{scope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tok, err := cc.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("acquiring access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return tok.AccessToken, nil
}
