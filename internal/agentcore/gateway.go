// Package agentcore connects the Valyu tools to AWS Bedrock AgentCore:
// gateway target management on the control plane, OAuth token acquisition,
// MCP tool access through the gateway, and streaming runtime invocation.
package agentcore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

const (
	// ValyuMCPURL is the hosted Valyu MCP server the gateway fronts.
	ValyuMCPURL = "https://mcp.valyu.ai/mcp"

	DefaultConfigPath  = "valyu_gateway_config.json"
	DefaultTargetName  = "valyu-search"
	DefaultRegion      = "us-east-1"
	targetPollInterval = 10 * time.Second
	targetPollAttempts = 12
)

// GatewayConfig is the small JSON document persisted after target setup.
// It carries everything needed to talk to the gateway later: control-plane
// identifiers plus the Cognito OAuth credentials.
type GatewayConfig struct {
	GatewayID           string `json:"gateway_id"`
	GatewayURL          string `json:"gateway_url"`
	TargetID            string `json:"target_id"`
	Region              string `json:"region"`
	CognitoClientID     string `json:"cognito_client_id,omitempty"`
	CognitoClientSecret string `json:"cognito_client_secret,omitempty"`
	CognitoUserPoolID   string `json:"cognito_user_pool_id,omitempty"`
	CognitoDomain       string `json:"cognito_domain,omitempty"`
	CognitoScope        string `json:"cognito_scope,omitempty"`
}

func (c *GatewayConfig) Save(path string) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	// Contains the client secret.
	return os.WriteFile(path, b, 0o600)
}

func LoadGatewayConfig(path string) (*GatewayConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gateway config: %w", err)
	}
	cfg := &GatewayConfig{Region: DefaultRegion}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing gateway config: %w", err)
	}
	return cfg, nil
}

// GatewayClient manages Valyu targets on an existing AgentCore Gateway.
type GatewayClient struct {
	control *bedrockagentcorecontrol.Client
	cognito *cognitoidentityprovider.Client
	region  string
}

func NewGatewayClient(ctx context.Context, region string) (*GatewayClient, error) {
	if region == "" {
		region = DefaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &GatewayClient{
		control: bedrockagentcorecontrol.NewFromConfig(awsCfg),
		cognito: cognitoidentityprovider.NewFromConfig(awsCfg),
		region:  region,
	}, nil
}

type AddTargetParams struct {
	GatewayID   string
	ValyuAPIKey string
	TargetName  string // defaults to DefaultTargetName
}

// AddTarget registers the Valyu MCP server as a target on an existing
// gateway, then polls until the target is READY. FAILED status or cap
// exhaustion without READY is fatal.
func (g *GatewayClient) AddTarget(ctx context.Context, p AddTargetParams) (string, error) {
	if p.ValyuAPIKey == "" {
		return "", fmt.Errorf("VALYU_API_KEY is required: set it in the environment or pass it in config")
	}
	if p.TargetName == "" {
		p.TargetName = DefaultTargetName
	}

	// The Valyu MCP endpoint carries the API key as a query parameter;
	// the gateway stores it so callers never see it.
	endpoint := ValyuMCPURL + "?valyuApiKey=" + url.QueryEscape(p.ValyuAPIKey)

	slog.Info("adding Valyu target to gateway", "gateway_id", p.GatewayID, "target_name", p.TargetName)

	out, err := g.control.CreateGatewayTarget(ctx, &bedrockagentcorecontrol.CreateGatewayTargetInput{
		GatewayIdentifier: aws.String(p.GatewayID),
		Name:              aws.String(p.TargetName),
		Description:       aws.String("Valyu search tools - web, finance, SEC filings, patents, academic papers, company research"),
		TargetConfiguration: &types.TargetConfigurationMemberMcp{
			Value: &types.McpTargetConfigurationMemberMcpServer{
				Value: types.McpServerTargetConfiguration{
					Endpoint: aws.String(endpoint),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating gateway target: %w", err)
	}

	targetID := aws.ToString(out.TargetId)
	slog.Info("target created, waiting for sync", "target_id", targetID)

	if err := waitTargetReady(ctx, g.control, p.GatewayID, targetID, targetPollInterval); err != nil {
		return targetID, err
	}

	slog.Info("target ready", "target_id", targetID)
	return targetID, nil
}

// TargetInfo summarizes one gateway target.
type TargetInfo struct {
	TargetID string
	Name     string
	Status   string
}

func (g *GatewayClient) ListTargets(ctx context.Context, gatewayID string) ([]TargetInfo, error) {
	out, err := g.control.ListGatewayTargets(ctx, &bedrockagentcorecontrol.ListGatewayTargetsInput{
		GatewayIdentifier: aws.String(gatewayID),
	})
	if err != nil {
		return nil, fmt.Errorf("listing gateway targets: %w", err)
	}
	targets := make([]TargetInfo, 0, len(out.Items))
	for _, item := range out.Items {
		targets = append(targets, TargetInfo{
			TargetID: aws.ToString(item.TargetId),
			Name:     aws.ToString(item.Name),
			Status:   string(item.Status),
		})
	}
	return targets, nil
}

func (g *GatewayClient) RemoveTarget(ctx context.Context, gatewayID, targetID string) error {
	_, err := g.control.DeleteGatewayTarget(ctx, &bedrockagentcorecontrol.DeleteGatewayTargetInput{
		GatewayIdentifier: aws.String(gatewayID),
		TargetId:          aws.String(targetID),
	})
	if err != nil {
		return fmt.Errorf("deleting gateway target: %w", err)
	}
	return nil
}

// Cleanup tears down everything the config references: the target, the
// gateway, and the Cognito user pool. Each step is best-effort; a failure
// is logged and the remaining steps still run.
func (g *GatewayClient) Cleanup(ctx context.Context, cfg *GatewayConfig) {
	if cfg.TargetID != "" {
		slog.Info("deleting target", "target_id", cfg.TargetID)
		if err := g.RemoveTarget(ctx, cfg.GatewayID, cfg.TargetID); err != nil {
			slog.Warn("target deletion failed", "error", err)
		}
	}

	if cfg.GatewayID != "" {
		slog.Info("deleting gateway", "gateway_id", cfg.GatewayID)
		if _, err := g.control.DeleteGateway(ctx, &bedrockagentcorecontrol.DeleteGatewayInput{
			GatewayIdentifier: aws.String(cfg.GatewayID),
		}); err != nil {
			slog.Warn("gateway deletion failed", "error", err)
		}
	}

	if cfg.CognitoUserPoolID != "" {
		slog.Info("deleting Cognito user pool", "user_pool_id", cfg.CognitoUserPoolID)
		if _, err := g.cognito.DeleteUserPool(ctx, &cognitoidentityprovider.DeleteUserPoolInput{
			UserPoolId: aws.String(cfg.CognitoUserPoolID),
		}); err != nil {
			slog.Warn("user pool deletion failed", "error", err)
		}
	}
}

// targetStatusAPI is the slice of the control-plane API the poll loop needs.
type targetStatusAPI interface {
	GetGatewayTarget(ctx context.Context, in *bedrockagentcorecontrol.GetGatewayTargetInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.GetGatewayTargetOutput, error)
}

// waitTargetReady polls target status on a fixed interval with a fixed
// attempt cap. No backoff: target sync takes a predictable minute or two.
func waitTargetReady(ctx context.Context, api targetStatusAPI, gatewayID, targetID string, interval time.Duration) error {
	for attempt := 0; attempt < targetPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		out, err := api.GetGatewayTarget(ctx, &bedrockagentcorecontrol.GetGatewayTargetInput{
			GatewayIdentifier: aws.String(gatewayID),
			TargetId:          aws.String(targetID),
		})
		if err != nil {
			return fmt.Errorf("polling target status: %w", err)
		}

		switch out.Status {
		case types.TargetStatusReady:
			return nil
		case types.TargetStatusFailed:
			return fmt.Errorf("target sync failed: %v", out.StatusReasons)
		}
		slog.Info("waiting for target sync", "status", out.Status)
	}
	return fmt.Errorf("target %s not READY after %d attempts", targetID, targetPollAttempts)
}
