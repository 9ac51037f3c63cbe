package agentcore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"valyuagent/internal/agent"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

// GatewayAgent holds an authenticated MCP session against the gateway and
// exposes the remote Valyu tools as agent tools.
type GatewayAgent struct {
	client *mcpclient.Client
	tools  []agent.Tool
}

// ConnectGateway opens a streamable-HTTP MCP session to the gateway using
// a bearer access token, initializes it, and lists the available tools.
func ConnectGateway(ctx context.Context, gatewayURL, accessToken string) (*GatewayAgent, error) {
	c, err := mcpclient.NewStreamableHttpClient(gatewayURL,
		transport.WithHTTPHeaders(map[string]string{
			"Authorization": "Bearer " + accessToken,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating MCP client: %w", err)
	}

	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting MCP client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "valyuagent", Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("initializing MCP session: %w", err)
	}

	listResp, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("listing gateway tools: %w", err)
	}

	ga := &GatewayAgent{client: c}
	for _, t := range listResp.Tools {
		// Minimal tool descriptor: name, description, input schema. The
		// full (namespaced) name is what the gateway dispatches on.
		schema := map[string]any{}
		if b, err := json.Marshal(t.InputSchema); err == nil {
			_ = json.Unmarshal(b, &schema)
		}
		desc := t.Description
		if desc == "" {
			desc = "Valyu tool " + agent.CleanName(t.Name)
		}
		ga.tools = append(ga.tools, &gatewayTool{
			client:      c,
			name:        t.Name,
			description: desc,
			schema:      schema,
		})
	}
	return ga, nil
}

// Tools returns the remote tools discovered at connect time.
func (g *GatewayAgent) Tools() []agent.Tool { return g.tools }

func (g *GatewayAgent) Close() error { return g.client.Close() }

type gatewayTool struct {
	client      *mcpclient.Client
	name        string
	description string
	schema      map[string]any
}

func (t *gatewayTool) Name() string        { return t.name }
func (t *gatewayTool) Description() string { return t.description }
func (t *gatewayTool) InputSchema() any    { return t.schema }

func (t *gatewayTool) Execute(ctx context.Context, input string) (string, error) {
	args := map[string]any{}
	if strings.TrimSpace(input) != "" {
		if err := json.Unmarshal([]byte(input), &args); err != nil {
			return "", fmt.Errorf("parsing %s input: %w", agent.CleanName(t.name), err)
		}
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = t.name
	req.Params.Arguments = args

	res, err := t.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("calling gateway tool %s: %w", agent.CleanName(t.name), err)
	}

	var b strings.Builder
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			b.WriteString(tc.Text)
		}
	}
	if res.IsError {
		return "", fmt.Errorf("gateway tool %s failed: %s", agent.CleanName(t.name), b.String())
	}
	return b.String(), nil
}
